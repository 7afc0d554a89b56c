package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/providerid/internal/federation/domain"
	"github.com/aussiebroadwan/providerid/internal/federation/store"
	"github.com/stretchr/testify/require"
)

func TestHousekeeping_Cleanup(t *testing.T) {
	t.Parallel()

	s := newMemStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.ConsumedSessions().ConsumeSession(ctx, domain.ConsumedSession{
		Fingerprint: "expired", ConsumedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	}))
	require.NoError(t, s.ConsumedSessions().ConsumeSession(ctx, domain.ConsumedSession{
		Fingerprint: "live", ConsumedAt: now, ExpiresAt: now.Add(time.Hour),
	}))

	hk := NewHousekeepingService(s, slog.New(slog.NewTextHandler(io.Discard, nil)), 0)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	hk.Stop()

	require.NoError(t, s.ConsumedSessions().ConsumeSession(ctx, domain.ConsumedSession{
		Fingerprint: "expired", ConsumedAt: now, ExpiresAt: now.Add(time.Hour),
	}), "expired fingerprint was purged on start")
	require.ErrorIs(t, s.ConsumedSessions().ConsumeSession(ctx, domain.ConsumedSession{
		Fingerprint: "live", ConsumedAt: now, ExpiresAt: now.Add(time.Hour),
	}), store.ErrAlreadyExists)
}
