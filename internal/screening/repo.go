package screening

import (
	"context"
	"time"
)

// Repo defines persistence operations for runs.
type Repo interface {
	Create(ctx context.Context, run Run) error
	GetByID(ctx context.Context, runID string) (Run, error)
	SetProcessing(ctx context.Context, runID string, startedAt time.Time) error
	SetResult(ctx context.Context, runID string, result RunResult, completedAt time.Time) error
	SetFailed(ctx context.Context, runID string, code string, message string, retryable bool, completedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]Run, error)
}
