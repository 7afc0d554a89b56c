package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/providerid/internal/federation/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. It exposes sub-repositories so a
// transaction-scoped Store offers exactly the same surface as the root one.
type Store interface {
	Identities() Identities
	ConsumedSessions() ConsumedSessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns nil
	// and rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Identities interface {
	// UpsertIdentity inserts the identity or, when the provider id is already
	// known, refreshes its name, email, organization and profile. The stored
	// ID and CreatedAt of an existing row are kept.
	UpsertIdentity(ctx context.Context, id domain.Identity) error

	// GetIdentityByProviderID returns ErrNotFound for an unknown provider id.
	GetIdentityByProviderID(ctx context.Context, providerID string) (domain.Identity, error)

	CountIdentities(ctx context.Context) (int64, error)
}

type ConsumedSessions interface {
	// ConsumeSession records a fingerprint as used. It returns
	// ErrAlreadyExists when the fingerprint was recorded before.
	ConsumeSession(ctx context.Context, s domain.ConsumedSession) error

	// DeleteExpiredConsumedSessions removes fingerprints whose cookie can no
	// longer be presented and reports how many were removed.
	DeleteExpiredConsumedSessions(ctx context.Context) (int64, error)
}
