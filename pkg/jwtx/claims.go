package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed      = errors.New("jwtx: malformed token")
	ErrExpired        = errors.New("jwtx: token expired")
	ErrStateMismatch  = errors.New("jwtx: state mismatch")
	ErrMissingBinding = errors.New("jwtx: missing state binding")
)

// StateIssuer is the "iss" of every state binding this service mints.
const StateIssuer = "providerid-federation"

// StateClaims bind the OAuth state parameter of one authorization attempt to
// the browser that started it.
type StateClaims struct {
	jwt.RegisteredClaims

	// State is the opaque value sent to Health ID as ?state=.
	State string `json:"state"`
}

// NewStateClaims builds claims valid from now for ttl.
func NewStateClaims(state string, ttl time.Duration, now time.Time) StateClaims {
	return StateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    StateIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		State: state,
	}
}
