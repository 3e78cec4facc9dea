package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNotFoundError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		expected string
	}{
		{
			name: "with entity type",
			err: &NotFoundError{
				Service:    "opentargets",
				EntityType: "target",
				Identifier: "ENSG00000157764",
			},
			expected: "target not found in opentargets: ENSG00000157764",
		},
		{
			name: "without entity type",
			err: &NotFoundError{
				Service:    "pdb",
				Identifier: "9zzz",
			},
			expected: "not found in pdb: 9zzz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("NotFoundError.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("drugbank", "drug", "DB00001")

	if err.Service != "drugbank" {
		t.Errorf("Service = %q, want %q", err.Service, "drugbank")
	}
	if err.EntityType != "drug" {
		t.Errorf("EntityType = %q, want %q", err.EntityType, "drug")
	}
	if err.Identifier != "DB00001" {
		t.Errorf("Identifier = %q, want %q", err.Identifier, "DB00001")
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name: "with field and value",
			err: &ValidationError{
				Field:   "pdb_id",
				Value:   "ABC1",
				Message: "must be a digit followed by 3 alphanumeric characters",
			},
			expected: "validation failed for pdb_id=\"ABC1\": must be a digit followed by 3 alphanumeric characters",
		},
		{
			name: "with field only",
			err: &ValidationError{
				Field:   "query",
				Message: "is required",
			},
			expected: "validation failed for query: is required",
		},
		{
			name: "message only",
			err: &ValidationError{
				Message: "invalid input",
			},
			expected: "validation failed: invalid input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestHTTPStatusError_Error(t *testing.T) {
	err := &HTTPStatusError{Service: "chembl", StatusCode: 500, Body: "boom"}
	want := "chembl API error 500 (Internal Server Error): boom"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = &HTTPStatusError{Service: "pdb", StatusCode: 404}
	want = "pdb API error 404 (Not Found)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsNotFound(t *testing.T) {
	notFoundErr := &NotFoundError{Service: "pdb", Identifier: "1abc"}
	validationErr := &ValidationError{Message: "test"}
	status404 := &HTTPStatusError{Service: "pdb", StatusCode: http.StatusNotFound}
	status500 := &HTTPStatusError{Service: "pdb", StatusCode: http.StatusInternalServerError}
	plainErr := errors.New("plain error")

	if !IsNotFound(notFoundErr) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
	if !IsNotFound(fmt.Errorf("wrapped: %w", notFoundErr)) {
		t.Error("IsNotFound should see through wrapping")
	}
	if !IsNotFound(status404) {
		t.Error("IsNotFound should return true for a 404 HTTPStatusError")
	}
	if IsNotFound(status500) {
		t.Error("IsNotFound should return false for a 500 HTTPStatusError")
	}
	if IsNotFound(validationErr) {
		t.Error("IsNotFound should return false for ValidationError")
	}
	if IsNotFound(plainErr) {
		t.Error("IsNotFound should return false for plain error")
	}
	if IsNotFound(nil) {
		t.Error("IsNotFound should return false for nil")
	}
}

func TestIsValidation(t *testing.T) {
	notFoundErr := &NotFoundError{Service: "pdb", Identifier: "1abc"}
	validationErr := &ValidationError{Message: "test"}
	plainErr := errors.New("plain error")

	if IsValidation(notFoundErr) {
		t.Error("IsValidation should return false for NotFoundError")
	}
	if !IsValidation(validationErr) {
		t.Error("IsValidation should return true for ValidationError")
	}
	if !IsValidation(fmt.Errorf("tool: %w", validationErr)) {
		t.Error("IsValidation should see through wrapping")
	}
	if IsValidation(plainErr) {
		t.Error("IsValidation should return false for plain error")
	}
	if IsValidation(nil) {
		t.Error("IsValidation should return false for nil")
	}
}

func TestStatusCode(t *testing.T) {
	if got := StatusCode(&HTTPStatusError{StatusCode: 503}); got != 503 {
		t.Errorf("StatusCode = %d, want 503", got)
	}
	if got := StatusCode(fmt.Errorf("x: %w", &HTTPStatusError{StatusCode: 429})); got != 429 {
		t.Errorf("StatusCode = %d, want 429", got)
	}
	if got := StatusCode(errors.New("plain")); got != 0 {
		t.Errorf("StatusCode = %d, want 0", got)
	}
}
