package screening

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres. Resume refs and results are stored
// as jsonb so a run row is self-contained.
type PGRepo struct {
	DB *sql.DB
}

const runColumns = `id, job_description, resumes, provider, model, status, result,
       error_code, error_message, error_retryable, started_at, completed_at, created_at, updated_at`

// Create inserts a new run.
func (r *PGRepo) Create(ctx context.Context, run Run) error {
	const query = `
INSERT INTO screening_runs (id, job_description, resumes, provider, model, status, created_at, updated_at)
VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7, $7)`
	refs, err := json.Marshal(run.Resumes)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		run.ID,
		run.JobDescription,
		refs,
		run.Provider,
		run.Model,
		run.Status,
		run.CreatedAt,
	)
	return err
}

// GetByID returns a run by ID.
func (r *PGRepo) GetByID(ctx context.Context, runID string) (Run, error) {
	const query = `
SELECT ` + runColumns + `
FROM screening_runs
WHERE id = $1
LIMIT 1`
	run, err := scanRun(r.DB.QueryRowContext(ctx, query, runID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrNotFound
		}
		return Run{}, err
	}
	return run, nil
}

// SetProcessing marks a run as picked up by a worker.
func (r *PGRepo) SetProcessing(ctx context.Context, runID string, startedAt time.Time) error {
	const query = `
UPDATE screening_runs
SET status = $1,
    started_at = COALESCE(started_at, $2::timestamptz),
    updated_at = now()
WHERE id = $3::uuid`
	return r.exec(ctx, query, StatusProcessing, startedAt, runID)
}

// SetResult stores the outcome and marks the run completed.
func (r *PGRepo) SetResult(ctx context.Context, runID string, result RunResult, completedAt time.Time) error {
	const query = `
UPDATE screening_runs
SET status = $1,
    result = $2::jsonb,
    error_code = NULL,
    error_message = NULL,
    error_retryable = NULL,
    completed_at = $3::timestamptz,
    updated_at = now()
WHERE id = $4::uuid`
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return r.exec(ctx, query, StatusCompleted, payload, completedAt, runID)
}

// SetFailed records a classified failure.
func (r *PGRepo) SetFailed(ctx context.Context, runID string, code string, message string, retryable bool, completedAt time.Time) error {
	const query = `
UPDATE screening_runs
SET status = $1,
    error_code = $2,
    error_message = $3,
    error_retryable = $4,
    completed_at = $5::timestamptz,
    updated_at = now()
WHERE id = $6::uuid`
	return r.exec(ctx, query, StatusFailed, code, message, retryable, completedAt, runID)
}

// List returns runs ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT ` + runColumns + `
FROM screening_runs
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (r *PGRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var resumes sql.NullString
	var provider sql.NullString
	var model sql.NullString
	var result sql.NullString
	var errorCode sql.NullString
	var errorMessage sql.NullString
	var errorRetryable sql.NullBool
	var startedAt sql.NullTime
	var completedAt sql.NullTime
	if err := row.Scan(
		&run.ID,
		&run.JobDescription,
		&resumes,
		&provider,
		&model,
		&run.Status,
		&result,
		&errorCode,
		&errorMessage,
		&errorRetryable,
		&startedAt,
		&completedAt,
		&run.CreatedAt,
		&run.UpdatedAt,
	); err != nil {
		return Run{}, err
	}
	if resumes.Valid {
		if err := json.Unmarshal([]byte(resumes.String), &run.Resumes); err != nil {
			return Run{}, err
		}
	}
	if provider.Valid {
		run.Provider = provider.String
	}
	if model.Valid {
		run.Model = model.String
	}
	if result.Valid {
		var parsed RunResult
		if err := json.Unmarshal([]byte(result.String), &parsed); err == nil {
			run.Result = &parsed
		}
	}
	if errorCode.Valid {
		run.ErrorCode = errorCode.String
	}
	if errorMessage.Valid {
		run.ErrorMessage = &errorMessage.String
	}
	if errorRetryable.Valid {
		run.ErrorRetryable = errorRetryable.Bool
	}
	if startedAt.Valid {
		run.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	return run, nil
}

var _ Repo = (*PGRepo)(nil)
