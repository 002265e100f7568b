package resumes

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, file_name, mime_type, size_bytes, storage_key, extracted_text_key, fingerprint, created_at`

// Create inserts a new resume row.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (id, file_name, mime_type, size_bytes, storage_key, extracted_text_key, fingerprint, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.FileName,
		resume.MimeType,
		resume.SizeBytes,
		resume.StorageKey,
		resume.ExtractedTextKey,
		resume.Fingerprint,
		resume.CreatedAt,
	)
	return err
}

// GetByID returns a resume by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// GetByFingerprint returns the resume with the given content fingerprint.
func (r *PGRepo) GetByFingerprint(ctx context.Context, fingerprint string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE fingerprint = $1
ORDER BY created_at ASC
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, fingerprint))
}

// List returns resumes newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Resume, error) {
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
SELECT ` + resumeColumns + `
FROM resumes
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		var resume Resume
		var extractedKey sql.NullString
		if err := rows.Scan(
			&resume.ID,
			&resume.FileName,
			&resume.MimeType,
			&resume.SizeBytes,
			&resume.StorageKey,
			&extractedKey,
			&resume.Fingerprint,
			&resume.CreatedAt,
		); err != nil {
			return nil, err
		}
		if extractedKey.Valid {
			resume.ExtractedTextKey = extractedKey.String
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func (r *PGRepo) scanOne(row *sql.Row) (Resume, error) {
	var resume Resume
	var extractedKey sql.NullString
	err := row.Scan(
		&resume.ID,
		&resume.FileName,
		&resume.MimeType,
		&resume.SizeBytes,
		&resume.StorageKey,
		&extractedKey,
		&resume.Fingerprint,
		&resume.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if extractedKey.Valid {
		resume.ExtractedTextKey = extractedKey.String
	}
	return resume, nil
}

var _ Repo = (*PGRepo)(nil)
