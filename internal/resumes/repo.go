package resumes

import "context"

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, id string) (Resume, error)
	GetByFingerprint(ctx context.Context, fingerprint string) (Resume, error)
	List(ctx context.Context, limit, offset int) ([]Resume, error)
}
