package resumes

import "time"

// Resume is an uploaded resume with its extracted text stored alongside
// the original file. Fingerprint identifies the content regardless of
// file format, and drives duplicate detection.
type Resume struct {
	ID               string
	FileName         string
	MimeType         string
	SizeBytes        int64
	StorageKey       string
	ExtractedTextKey string
	Fingerprint      string
	CreatedAt        time.Time
}
