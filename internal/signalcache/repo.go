// Package signalcache stores extracted resume signals keyed by content
// fingerprint, so re-screening a known resume skips the LLM round trip.
package signalcache

import (
	"context"
	"errors"
	"time"

	"screening-backend/internal/matching"
)

// ErrNotFound is returned when no entry exists for a fingerprint.
var ErrNotFound = errors.New("signal cache entry not found")

// Entry is one cached extraction.
type Entry struct {
	Fingerprint string
	Signals     matching.ResumeSignals
	CreatedAt   time.Time
}

// Repo abstracts signal cache storage.
type Repo interface {
	Get(ctx context.Context, fingerprint string) (matching.ResumeSignals, error)
	Put(ctx context.Context, fingerprint string, signals matching.ResumeSignals) error
}
