package screening

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for local development and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	runs map[string]Run
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{runs: make(map[string]Run)}
}

func (r *MemoryRepo) Create(ctx context.Context, run Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = run
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, runID string) (Run, error) {
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[runID]
	if !ok {
		return Run{}, ErrNotFound
	}
	return run, nil
}

func (r *MemoryRepo) SetProcessing(ctx context.Context, runID string, startedAt time.Time) error {
	return r.update(ctx, runID, func(run *Run) {
		run.Status = StatusProcessing
		run.StartedAt = &startedAt
	})
}

func (r *MemoryRepo) SetResult(ctx context.Context, runID string, result RunResult, completedAt time.Time) error {
	return r.update(ctx, runID, func(run *Run) {
		run.Status = StatusCompleted
		run.Result = &result
		run.CompletedAt = &completedAt
		run.ErrorCode = ""
		run.ErrorMessage = nil
		run.ErrorRetryable = false
	})
}

func (r *MemoryRepo) SetFailed(ctx context.Context, runID string, code string, message string, retryable bool, completedAt time.Time) error {
	return r.update(ctx, runID, func(run *Run) {
		run.Status = StatusFailed
		run.ErrorCode = code
		run.ErrorMessage = &message
		run.ErrorRetryable = retryable
		run.CompletedAt = &completedAt
	})
}

func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]Run, 0, len(r.runs))
	for _, run := range r.runs {
		all = append(all, run)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []Run{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *MemoryRepo) update(ctx context.Context, runID string, apply func(*Run)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[runID]
	if !ok {
		return ErrNotFound
	}
	apply(&run)
	run.UpdatedAt = time.Now().UTC()
	r.runs[runID] = run
	return nil
}
