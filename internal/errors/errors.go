// Package errors provides shared error types for the chemistry data backends.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// NotFoundError indicates an entity was not found in a backend.
type NotFoundError struct {
	Service    string // "pdb", "chembl", "opentargets", ...
	EntityType string // "structure", "target", "drug", ...
	Identifier string // PDB ID, ChEMBL ID, Ensembl ID, or search query
}

func (e *NotFoundError) Error() string {
	if e.EntityType != "" {
		return fmt.Sprintf("%s not found in %s: %s", e.EntityType, e.Service, e.Identifier)
	}
	return fmt.Sprintf("not found in %s: %s", e.Service, e.Identifier)
}

// NewNotFoundError creates a NotFoundError.
func NewNotFoundError(service, entityType, identifier string) *NotFoundError {
	return &NotFoundError{
		Service:    service,
		EntityType: entityType,
		Identifier: identifier,
	}
}

// ValidationError indicates invalid input parameters.
// It is returned before any network call is made.
type ValidationError struct {
	Field   string // field name that failed validation
	Value   string // the invalid value (may be empty for sensitive data)
	Message string // human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("validation failed for %s=%q: %s", e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// HTTPStatusError is returned by backend clients for any non-2xx response.
type HTTPStatusError struct {
	Service    string
	StatusCode int
	URL        string
	Body       string // truncated response body
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("%s API error %d (%s)", e.Service, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// IsNotFound returns true if the error is or wraps a NotFoundError,
// or an HTTPStatusError carrying 404.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	if stderrors.As(err, &nf) {
		return true
	}
	var he *HTTPStatusError
	return stderrors.As(err, &he) && he.StatusCode == http.StatusNotFound
}

// IsValidation returns true if the error is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// StatusCode extracts the HTTP status code from err, or 0 if it carries none.
func StatusCode(err error) int {
	var he *HTTPStatusError
	if stderrors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}
