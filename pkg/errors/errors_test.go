package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownType, "type %q not found", "Cat")

	if err.Code != ErrCodeUnknownType {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnknownType)
	}

	if err.Message != `type "Cat" not found` {
		t.Errorf("Message = %v, want %v", err.Message, `type "Cat" not found`)
	}

	expected := `UNKNOWN_TYPE: type "Cat" not found`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeOrderConflict, cause, "link failed")

	if err.Code != ErrCodeOrderConflict {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeOrderConflict)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

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
			err:      New(ErrCodeDuplicateLabel, "test"),
			code:     ErrCodeDuplicateLabel,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeDuplicateLabel, "test"),
			code:     ErrCodeOrderConflict,
			expected: false,
		},
		{
			name:     "outer code of wrapped error",
			err:      Wrap(ErrCodeInternal, New(ErrCodeOrderConflict, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "inner code of wrapped error",
			err:      Wrap(ErrCodeInternal, New(ErrCodeOrderConflict, "inner"), "outer"),
			code:     ErrCodeOrderConflict,
			expected: true,
		},
		{
			name:     "through fmt wrapping",
			err:      fmt.Errorf("context: %w", New(ErrCodeUnsupportedMode, "inner")),
			code:     ErrCodeUnsupportedMode,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
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
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidConfiguration, "test"), ErrCodeInvalidConfiguration},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "friendly message")); got != "friendly message" {
		t.Errorf("UserMessage() = %v, want %v", got, "friendly message")
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %v, want %v", got, "plain error")
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeOrderConflict,
		ErrCodeDuplicateLabel,
		ErrCodeUnknownType,
		ErrCodeInvalidConfiguration,
		ErrCodeUnsupportedMode,
		ErrCodeInvalidInput,
		ErrCodeInvalidLabel,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
