package analyses

import "errors"

var (
	// ErrNotFound means the requested analysis does not exist or is not
	// visible to the caller.
	ErrNotFound = errors.New("analysis not found")
	// ErrEmptyResume means the uploaded PDF carried no extractable text.
	ErrEmptyResume = errors.New("resume contains no extractable text")
	// ErrUploadMissing means the stored upload vanished before it could
	// be read back.
	ErrUploadMissing = errors.New("uploaded file missing")
)

// Error codes used in API responses.
const (
	CodeNotFound          = "not_found"
	CodeEmptyText         = "empty_text"
	CodeInvalidUpload     = "invalid_upload"
	CodeExtractionFailure = "extraction_failure"
	CodeUploadNotFound    = "upload_not_found"
	CodeNoJSONFound       = "no_json_found"
	CodeMalformedJSON     = "malformed_json"
	CodeSchemaViolation   = "schema_violation"
	CodeProviderTimeout   = "provider_timeout"
	CodeInternal          = "internal"
)
