package signalcache

import (
	"context"
	"sync"
	"time"

	"screening-backend/internal/matching"
)

// MemoryRepo is an in-memory cache for local development and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryRepo constructs an empty in-memory cache.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{entries: make(map[string]Entry)}
}

// Get returns the cached signals for a fingerprint.
func (r *MemoryRepo) Get(ctx context.Context, fingerprint string) (matching.ResumeSignals, error) {
	if err := ctx.Err(); err != nil {
		return matching.ResumeSignals{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[fingerprint]
	if !ok {
		return matching.ResumeSignals{}, ErrNotFound
	}
	return entry.Signals, nil
}

// Put stores signals for a fingerprint, replacing any previous entry.
func (r *MemoryRepo) Put(ctx context.Context, fingerprint string, signals matching.ResumeSignals) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[fingerprint] = Entry{
		Fingerprint: fingerprint,
		Signals:     signals,
		CreatedAt:   time.Now().UTC(),
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
