package jwtx

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// DefaultStateTTL bounds how long a user may sit on the Health ID login page.
const DefaultStateTTL = 10 * time.Minute

// hkdfInfo separates the state-signing key from every other use of the
// session secret.
const hkdfInfo = "providerid/state-binding/v1"

// StateBinder signs and checks HS256 state bindings. The binding travels in
// an httpOnly cookie; the callback accepts a state only if it matches the one
// signed into that cookie.
type StateBinder struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewStateBinder derives a dedicated HMAC key from secret with HKDF-SHA256.
func NewStateBinder(secret string, ttl time.Duration) (*StateBinder, error) {
	if secret == "" {
		return nil, errors.New("jwtx: state binder requires a secret")
	}
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("jwtx: derive state key: %w", err)
	}

	return &StateBinder{key: key, ttl: ttl, now: time.Now}, nil
}

// TTL reports how long a binding stays valid; the cookie carrying it should
// expire at the same time.
func (b *StateBinder) TTL() time.Duration { return b.ttl }

// Bind returns a signed binding for state.
func (b *StateBinder) Bind(state string) (string, error) {
	claims := NewStateClaims(state, b.ttl, b.now().UTC())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(b.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign state: %w", err)
	}
	return signed, nil
}

// Verify checks that binding is a live token minted by this binder for
// exactly state.
func (b *StateBinder) Verify(binding, state string) error {
	if binding == "" {
		return ErrMissingBinding
	}
	if state == "" {
		return ErrStateMismatch
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(StateIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(b.now),
	)

	var claims StateClaims
	_, err := parser.ParseWithClaims(binding, &claims, func(t *jwt.Token) (any, error) {
		return b.key, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case err != nil:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if subtle.ConstantTimeCompare([]byte(claims.State), []byte(state)) != 1 {
		return ErrStateMismatch
	}
	return nil
}
