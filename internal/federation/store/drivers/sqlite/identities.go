package sqlite

import (
	"context"

	"github.com/aussiebroadwan/providerid/internal/federation/domain"
)

type identitiesRepo struct {
	db dbtx
}

const upsertIdentity = `
INSERT INTO identities (id, provider_id, display_name, email, organization, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (provider_id) DO UPDATE SET
    display_name = excluded.display_name,
    email        = excluded.email,
    organization = excluded.organization,
    updated_at   = excluded.updated_at`

func (r *identitiesRepo) UpsertIdentity(ctx context.Context, id domain.Identity) error {
	_, err := r.db.ExecContext(ctx, upsertIdentity,
		id.ID,
		id.ProviderID,
		id.DisplayName,
		id.Email,
		id.Organization,
		toUnix(id.CreatedAt),
		toUnix(id.UpdatedAt),
	)
	return err
}

const getIdentityByProviderID = `
SELECT id, provider_id, display_name, email, organization, created_at, updated_at
FROM identities
WHERE provider_id = ?`

func (r *identitiesRepo) GetIdentityByProviderID(ctx context.Context, providerID string) (domain.Identity, error) {
	var (
		id                   domain.Identity
		createdAt, updatedAt int64
	)
	err := r.db.QueryRowContext(ctx, getIdentityByProviderID, providerID).Scan(
		&id.ID,
		&id.ProviderID,
		&id.DisplayName,
		&id.Email,
		&id.Organization,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}

	id.CreatedAt = fromUnix(createdAt)
	id.UpdatedAt = fromUnix(updatedAt)
	return id, nil
}

func (r *identitiesRepo) CountIdentities(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM identities`).Scan(&n)
	return n, err
}
