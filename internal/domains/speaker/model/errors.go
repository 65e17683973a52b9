package model

import (
	"errors"
	"net/http"
)

var (
	// Business rule errors
	ErrSpeakerNotFound  = errors.New("eminent speaker not found")
	ErrDuplicateName    = errors.New("speaker with this name already exists")
	ErrInvalidSpeakerID = errors.New("valid speaker ID is required")

	// Infrastructure errors
	ErrStorageWrite = errors.New("failed to store speaker photo")
)

// ValidationError wraps field-level validation failures so the transport
// layer can distinguish them from infrastructure errors while keeping the
// per-field detail for the response body.
type ValidationError struct {
	Err error
}

func NewValidationError(err error) *ValidationError {
	return &ValidationError{Err: err}
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ToErrorCode maps a domain error to its stable API error code.
func ToErrorCode(err error) string {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrInvalidSpeakerID):
		return "INVALID_PARAMETER"
	case errors.Is(err, ErrSpeakerNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrDuplicateName):
		return "DUPLICATE_ENTRY"
	case errors.Is(err, ErrStorageWrite):
		return "STORAGE_WRITE_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus maps a domain error to its HTTP status. The mapping is 1:1
// and stable: 400 validation/parameter, 404 missing, 409 duplicate, 500 rest.
func ToHTTPStatus(err error) int {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve), errors.Is(err, ErrInvalidSpeakerID):
		return http.StatusBadRequest
	case errors.Is(err, ErrSpeakerNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateName):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
