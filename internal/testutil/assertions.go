package testutil

import (
	"errors"
	"testing"

	apperrors "github.com/ssamucr/chenchen/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertValidationField checks that err is a VALIDATION_ERROR carrying a
// violation for the given field.
func AssertValidationField(t *testing.T, err error, field string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected validation error on %q, got nil", field)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if appErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %q (message: %s)", appErr.Code, appErr.Message)
	}

	var valErr *apperrors.ValidationError
	if !errors.As(appErr.Internal, &valErr) {
		t.Fatalf("expected wrapped *ValidationError, got %T", appErr.Internal)
	}
	if !valErr.Has(field) {
		t.Errorf("expected violation on field %q, got %v", field, valErr.Fields)
	}
}
