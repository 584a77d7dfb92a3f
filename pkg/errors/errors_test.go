package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad shape: %s", "scalar")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "bad shape: scalar" {
		t.Errorf("Message = %v, want %v", err.Message, "bad shape: scalar")
	}

	expected := "INVALID_INPUT: bad shape: scalar"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("font not found")
	err := Wrap(ErrCodeRenderFailure, cause, "draw text")

	if err.Code != ErrCodeRenderFailure {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRenderFailure)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// The original cause stays reachable through the chain.
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeUnsupportedFormat, "test"),
			code:     ErrCodeUnsupportedFormat,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeUnsupportedFormat, "test"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "wrapped structured error",
			err:      fmt.Errorf("outer: %w", New(ErrCodeInvalidOrder, "inner")),
			code:     ErrCodeInvalidOrder,
			expected: true,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidSheet, "x")); got != ErrCodeInvalidSheet {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidSheet)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}
