package signalcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"screening-backend/internal/matching"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Get returns the cached signals for a fingerprint.
func (r *PGRepo) Get(ctx context.Context, fingerprint string) (matching.ResumeSignals, error) {
	const query = `
SELECT signals
FROM signal_cache
WHERE fingerprint = $1
LIMIT 1`

	var payload []byte
	err := r.DB.QueryRowContext(ctx, query, fingerprint).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return matching.ResumeSignals{}, ErrNotFound
		}
		return matching.ResumeSignals{}, err
	}

	var signals matching.ResumeSignals
	if err := json.Unmarshal(payload, &signals); err != nil {
		return matching.ResumeSignals{}, err
	}
	return signals, nil
}

// Put stores signals for a fingerprint, replacing any previous entry.
func (r *PGRepo) Put(ctx context.Context, fingerprint string, signals matching.ResumeSignals) error {
	const query = `
INSERT INTO signal_cache (fingerprint, signals, created_at)
VALUES ($1, $2::jsonb, now())
ON CONFLICT (fingerprint) DO UPDATE SET signals = EXCLUDED.signals`

	payload, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query, fingerprint, payload)
	return err
}

var _ Repo = (*PGRepo)(nil)
