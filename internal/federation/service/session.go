package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/providerid/internal/federation/domain"
	"github.com/aussiebroadwan/providerid/internal/federation/store"
	"github.com/aussiebroadwan/providerid/pkg/cryptox"
	"github.com/aussiebroadwan/providerid/pkg/slogx"
)

var (
	// ErrMissingSession means no session cookie was presented.
	ErrMissingSession = errors.New("missing_session")

	// ErrInvalidSession means the cookie was malformed, failed
	// authentication or had already been read.
	ErrInvalidSession = errors.New("invalid_session")

	// ErrSessionUnavailable means the replay guard could not be consulted.
	ErrSessionUnavailable = errors.New("session_unavailable")
)

// Unsealer opens a sealed cookie value. *cryptox.Sealer implements it.
type Unsealer interface {
	Unseal(token string) (any, error)
}

// SessionService implements the one-time read of a sealed profile cookie.
type SessionService struct {
	Unsealer Unsealer

	// Store is optional. When set, every successfully opened cookie is
	// fingerprinted and a second presentation is rejected.
	Store store.Store

	// MaxAge is how long a session cookie lives; fingerprints are kept as long.
	MaxAge time.Duration
}

// ReadProfile opens sealed and marks it consumed.
func (s *SessionService) ReadProfile(ctx context.Context, sealed string) (any, error) {
	if sealed == "" {
		return nil, ErrMissingSession
	}

	profile, err := s.Unsealer.Unseal(sealed)
	if err != nil {
		reason := "malformed"
		if errors.Is(err, cryptox.ErrAuthenticationFailed) {
			reason = "authentication_failed"
		}
		slogx.FromContext(ctx).Info("rejected session cookie", "reason", reason)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	if s.Store == nil {
		return profile, nil
	}

	now := time.Now()
	err = s.Store.ConsumedSessions().ConsumeSession(ctx, domain.ConsumedSession{
		Fingerprint: cryptox.FingerprintToken(sealed),
		ConsumedAt:  now,
		ExpiresAt:   now.Add(s.MaxAge),
	})
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		slogx.FromContext(ctx).Warn("rejected session cookie", "reason", "replayed")
		return nil, fmt.Errorf("%w: already consumed", ErrInvalidSession)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}

	return profile, nil
}
