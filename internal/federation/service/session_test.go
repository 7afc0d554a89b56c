package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadProfile(t *testing.T) {
	t.Parallel()

	sealer := newSealer(t)
	svc := &SessionService{Unsealer: sealer, Store: newMemStore(t), MaxAge: time.Hour}

	sealed, err := sealer.Seal(map[string]any{"data": map[string]any{"provider_id": "P1"}})
	require.NoError(t, err)

	profile, err := svc.ReadProfile(context.Background(), sealed)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"data": map[string]any{"provider_id": "P1"}}, profile)

	_, err = svc.ReadProfile(context.Background(), sealed)
	require.ErrorIs(t, err, ErrInvalidSession, "a cookie can be read once")
}

func TestReadProfile_ReplayWithAlteredEncoding(t *testing.T) {
	t.Parallel()

	sealer := newSealer(t)
	svc := &SessionService{Unsealer: sealer, Store: newMemStore(t), MaxAge: time.Hour}

	sealed, err := sealer.Seal(map[string]any{"data": map[string]any{"provider_id": "P1"}})
	require.NoError(t, err)

	_, err = svc.ReadProfile(context.Background(), sealed)
	require.NoError(t, err)

	// Same tag bytes, different string: the final tag character carries
	// four unused bits.
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	parts := strings.Split(sealed, ".")
	tag := parts[1]
	idx := strings.IndexByte(alphabet, tag[len(tag)-1])
	require.GreaterOrEqual(t, idx, 0)
	parts[1] = tag[:len(tag)-1] + string(alphabet[idx^1])
	replay := strings.Join(parts, ".")
	require.NotEqual(t, sealed, replay)

	profile, err := svc.ReadProfile(context.Background(), replay)
	require.ErrorIs(t, err, ErrInvalidSession)
	require.Nil(t, profile)
}

func TestReadProfile_Rejections(t *testing.T) {
	t.Parallel()

	sealer := newSealer(t)
	svc := &SessionService{Unsealer: sealer, MaxAge: time.Hour}

	_, err := svc.ReadProfile(context.Background(), "")
	require.ErrorIs(t, err, ErrMissingSession)

	_, err = svc.ReadProfile(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrInvalidSession)

	other, err := newSealerWithSecret("another-secret")
	require.NoError(t, err)
	foreign, err := other.Seal("x")
	require.NoError(t, err)
	_, err = svc.ReadProfile(context.Background(), foreign)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestReadProfile_NullProfile(t *testing.T) {
	t.Parallel()

	sealer := newSealer(t)
	svc := &SessionService{Unsealer: sealer}

	sealed, err := sealer.Seal(nil)
	require.NoError(t, err)

	profile, err := svc.ReadProfile(context.Background(), sealed)
	require.NoError(t, err)
	require.Nil(t, profile)
}

func TestReadProfile_StoreUnavailable(t *testing.T) {
	t.Parallel()

	sealer := newSealer(t)
	store := newMemStore(t)
	require.NoError(t, store.Close())

	svc := &SessionService{Unsealer: sealer, Store: store, MaxAge: time.Hour}

	sealed, err := sealer.Seal("x")
	require.NoError(t, err)

	_, err = svc.ReadProfile(context.Background(), sealed)
	require.ErrorIs(t, err, ErrSessionUnavailable)
}
