package resumes

import "errors"

var (
	// ErrNotFound indicates the resume does not exist.
	ErrNotFound = errors.New("resume not found")
	// ErrInvalidInput indicates a bad upload request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyDocument indicates the file produced no usable text.
	ErrEmptyDocument = errors.New("document contains no extractable text")
)
