// Package errors provides standardized error handling for the prediction API.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Caller errors
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidRequestBody ErrorCode = "INVALID_REQUEST_BODY"
	ErrCodeUnseenCategory     ErrorCode = "UNSEEN_CATEGORY"

	// Artifact / deployment errors
	ErrCodeFeatureMismatch    ErrorCode = "FEATURE_MISMATCH"
	ErrCodeShapeMismatch      ErrorCode = "SHAPE_MISMATCH"
	ErrCodeInferenceFailed    ErrorCode = "INFERENCE_FAILED"
	ErrCodeArtifactLoadFailed ErrorCode = "ARTIFACT_LOAD_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Fields    []FieldError           `json:"fields,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// Status returns the HTTP status the error maps to.
func (e *StandardError) Status() int {
	return HTTPStatus(e.Code)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError reports request fields that failed schema validation.
func NewValidationFailedError(fields []FieldError) *StandardError {
	msgs := make([]string, len(fields))
	for i, f := range fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   strings.Join(msgs, "; "),
		Fields:    fields,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestBodyError reports a body that could not be decoded.
func NewInvalidRequestBodyError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequestBody,
		Message:   "Request body could not be decoded",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewUnseenCategoryError reports a categorical value unknown to the column's encoder.
func NewUnseenCategoryError(column, value string) *StandardError {
	return &StandardError{
		Code:    ErrCodeUnseenCategory,
		Message: "Categorical value not seen during training",
		Details: fmt.Sprintf("Invalid value for %s: %s. Must be one of the categories in training data.", column, value),
		Metadata: map[string]interface{}{
			"column": column,
			"value":  value,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewFeatureMismatchError reports a feature row that does not match the training columns.
func NewFeatureMismatchError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeFeatureMismatch,
		Message:   "Feature row does not match training columns",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewShapeMismatchError reports a vector whose width differs from the artifact's.
func NewShapeMismatchError(stage string, expected, got int) *StandardError {
	return &StandardError{
		Code:    ErrCodeShapeMismatch,
		Message: "Feature vector shape mismatch",
		Details: fmt.Sprintf("%s expects %d features, got %d", stage, expected, got),
		Metadata: map[string]interface{}{
			"stage":    stage,
			"expected": expected,
			"got":      got,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewInferenceFailedError wraps a failure inside the model call.
func NewInferenceFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInferenceFailed,
		Message:   "Model inference failed",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewArtifactLoadFailedError wraps a failure to load one startup artifact.
func NewArtifactLoadFailedError(artifact string, err error) *StandardError {
	return &StandardError{
		Code:    ErrCodeArtifactLoadFailed,
		Message: fmt.Sprintf("Failed to load artifact '%s'", artifact),
		Details: err.Error(),
		Metadata: map[string]interface{}{
			"artifact": artifact,
		},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInternalError wraps any error without a more specific code.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// HTTPStatus maps an error code to the HTTP status returned to the caller.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidRequestBody:
		return http.StatusUnprocessableEntity
	case ErrCodeUnseenCategory:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsClientErrorCode reports whether the code describes a caller mistake.
func IsClientErrorCode(code ErrorCode) bool {
	return HTTPStatus(code) < http.StatusInternalServerError
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidRequestBody:
		return "VALIDATION"
	case ErrCodeUnseenCategory:
		return "ENCODING"
	case ErrCodeFeatureMismatch, ErrCodeShapeMismatch, ErrCodeArtifactLoadFailed:
		return "ARTIFACT"
	case ErrCodeInferenceFailed:
		return "INFERENCE"
	default:
		return "OTHER"
	}
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}
