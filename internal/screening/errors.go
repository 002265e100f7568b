package screening

import "errors"

var (
	ErrNotFound                = errors.New("run not found")
	ErrInvalidInput            = errors.New("invalid input")
	ErrExtractionNotConfigured = errors.New("no extraction backend configured")
)

const (
	ErrorCodeValidation        = "VALIDATION_ERROR"
	ErrorCodeLLMTimeout        = "LLM_TIMEOUT"
	ErrorCodeLLMSchemaMismatch = "LLM_SCHEMA_MISMATCH"
	ErrorCodeStorage           = "STORAGE_ERROR"
	ErrorCodeInternal          = "INTERNAL_ERROR"
)
