package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name       string
		err        *AppError
		wantType   ErrorType
		wantStatus int
	}{
		{"validation", NewValidationError("bad input", nil), ErrorTypeValidation, http.StatusBadRequest},
		{"timeout", NewTimeoutError("too slow", context.DeadlineExceeded), ErrorTypeTimeout, http.StatusGatewayTimeout},
		{"generation", NewGenerationError("provider failed", cause), ErrorTypeGeneration, http.StatusBadGateway},
		{"internal", NewInternalError("oops", cause), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Type != tt.wantType {
				t.Errorf("Expected type %s, got %s", tt.wantType, tt.err.Type)
			}
			if tt.err.StatusCode != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, tt.err.StatusCode)
			}
			if !IsType(tt.err, tt.wantType) {
				t.Errorf("IsType(%s) returned false", tt.wantType)
			}
		})
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := NewGenerationError("image description failed", cause)

	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("Expected error text to mention the cause, got %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the cause")
	}

	plain := NewValidationError("please enter an identifier", nil)
	if plain.Error() != "validation: please enter an identifier" {
		t.Errorf("Unexpected error text %q", plain.Error())
	}
}

func TestAs_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("describe: %w", NewTimeoutError("generation timed out", context.DeadlineExceeded))

	appErr, ok := As(wrapped)
	if !ok {
		t.Fatal("Expected As to find the wrapped AppError")
	}
	if appErr.StatusCode != http.StatusGatewayTimeout {
		t.Errorf("Expected %d, got %d", http.StatusGatewayTimeout, appErr.StatusCode)
	}
	if !IsType(wrapped, ErrorTypeTimeout) {
		t.Error("Expected wrapped error to keep its type")
	}
	if _, ok := As(errors.New("plain")); ok {
		t.Error("Expected plain errors not to match")
	}
	if IsType(errors.New("plain"), ErrorTypeInternal) {
		t.Error("Expected IsType false for plain errors")
	}
}
