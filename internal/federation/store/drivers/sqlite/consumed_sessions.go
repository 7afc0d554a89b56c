package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/providerid/internal/federation/domain"
	"github.com/aussiebroadwan/providerid/internal/federation/store"
)

type consumedSessionsRepo struct {
	db dbtx
}

const consumeSession = `
INSERT INTO consumed_sessions (fingerprint, consumed_at, expires_at)
VALUES (?, ?, ?)
ON CONFLICT (fingerprint) DO NOTHING`

func (r *consumedSessionsRepo) ConsumeSession(ctx context.Context, s domain.ConsumedSession) error {
	res, err := r.db.ExecContext(ctx, consumeSession,
		s.Fingerprint,
		toUnix(s.ConsumedAt),
		toUnix(s.ExpiresAt),
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrAlreadyExists
	}
	return nil
}

func (r *consumedSessionsRepo) DeleteExpiredConsumedSessions(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM consumed_sessions WHERE expires_at <= ?`,
		toUnix(time.Now()),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
