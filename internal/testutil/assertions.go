package testutil

import (
	"errors"
	"testing"

	apperrors "goldbook/internal/errors"
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

// AssertAppErrorField checks that err is an *AppError with the expected code
// that points at the named request field.
func AssertAppErrorField(t *testing.T, err error, expectedCode, expectedField string) {
	t.Helper()

	AssertAppError(t, err, expectedCode)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Field != expectedField {
		t.Errorf("expected %s on field %q, got field %q (message: %s)", expectedCode, expectedField, appErr.Field, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
