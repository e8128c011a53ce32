package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped error",
			err:      errors.New("failed to connect: connection refused"),
			expected: "Error: failed to connect: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	result := Formatf("failed to load %s", "config")
	expected := "Error: failed to load config"
	if result != expected {
		t.Errorf("Formatf() = %q, want %q", result, expected)
	}
}

func TestWrap(t *testing.T) {
	base := errors.New("boom")

	wrapped := Wrap("save entry", base)
	if wrapped == nil {
		t.Fatal("Wrap returned nil for non-nil error")
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error lost its chain")
	}
	if wrapped.Error() != "save entry: boom" {
		t.Errorf("Wrap() = %q, want %q", wrapped.Error(), "save entry: boom")
	}

	if Wrap("save entry", nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(ErrNotFound) {
		t.Error("IsNotFound(ErrNotFound) = false")
	}
	if !IsNotFound(fmt.Errorf("get entry: %w", ErrNotFound)) {
		t.Error("IsNotFound should see through wrapping")
	}
	if IsNotFound(errors.New("other")) {
		t.Error("IsNotFound matched an unrelated error")
	}
}
