package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/providerid/internal/federation/domain"
	"github.com/aussiebroadwan/providerid/internal/federation/store"
	"github.com/aussiebroadwan/providerid/pkg/idx"
)

// IdentityService keeps the local record of federated identities.
type IdentityService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *IdentityService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// RecordIdentity upserts the identity described by a Provider ID profile
// response and returns the stored row.
func (s *IdentityService) RecordIdentity(ctx context.Context, profile any) (domain.Identity, error) {
	id, err := domain.IdentityFromProfile(profile)
	if err != nil {
		return domain.Identity{}, err
	}

	now := s.now()
	id.ID = idx.NewAt(now).String()
	id.CreatedAt = now
	id.UpdatedAt = now

	var stored domain.Identity
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Identities().UpsertIdentity(ctx, id); err != nil {
			return fmt.Errorf("upsert identity: %w", err)
		}
		stored, err = tx.Identities().GetIdentityByProviderID(ctx, id.ProviderID)
		return err
	})
	if err != nil {
		return domain.Identity{}, err
	}
	return stored, nil
}
