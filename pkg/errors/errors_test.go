package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownNode, "edge references unknown node %q", "db")

	if err.Code != ErrCodeUnknownNode {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnknownNode)
	}

	if err.Message != `edge references unknown node "db"` {
		t.Errorf("Message = %v, want %v", err.Message, `edge references unknown node "db"`)
	}

	expected := `UNKNOWN_NODE: edge references unknown node "db"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("syntax error in line 3")
	err := Wrap(ErrCodeRenderFailed, cause, "render diagram")

	if err.Code != ErrCodeRenderFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRenderFailed)
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

	expected := "RENDER_FAILED: render diagram: syntax error in line 3"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
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
			err:      New(ErrCodeInvalidDiagram, "test"),
			code:     ErrCodeInvalidDiagram,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidDiagram, "test"),
			code:     ErrCodeRenderFailed,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeRenderFailed, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeRenderFailed,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("generate: %w", New(ErrCodeRendererUnavailable, "init")),
			code:     ErrCodeRendererUnavailable,
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
		{
			name:     "Error type",
			err:      New(ErrCodeDuplicateNode, "test"),
			expected: ErrCodeDuplicateNode,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
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
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeDiagramNotFound, "unknown diagram %q", "foo"),
			expected: `unknown diagram "foo"`,
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
		{
			name:     "wrapped plain cause",
			err:      Wrap(ErrCodeRenderFailed, errors.New("syntax error in line 1"), "render %s", "notes.svg"),
			expected: "render notes.svg: syntax error in line 1",
		},
		{
			name: "nested coded cause",
			err: Wrap(ErrCodeInvalidInput, New(ErrCodeFileNotFound, "config %s", "a.toml"),
				"load config"),
			expected: "load config: config a.toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
