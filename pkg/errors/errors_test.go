package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidGate, "unknown gate %q", "qq")
	if got, want := err.Error(), `INVALID_GATE: unknown gate "qq"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !Is(err, ErrCodeInvalidGate) {
		t.Error("Is() should match the code the error was created with")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is() should not match a different code")
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("no such file")
	err := Wrap(ErrCodeNotFound, cause, "read %s", "bell.toml")

	if got, want := err.Error(), "NOT_FOUND: read bell.toml: no such file"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !stderrors.Is(err, cause) {
		t.Error("Wrap() should preserve the cause in the error chain")
	}
	if !Is(err, ErrCodeNotFound) {
		t.Error("Is() should see the code through the wrapper")
	}

	// A code is still found through further fmt wrapping.
	outer := fmt.Errorf("loading circuit: %w", err)
	if !Is(outer, ErrCodeNotFound) {
		t.Error("Is() should unwrap fmt.Errorf chains")
	}
	if got := GetCode(outer); got != ErrCodeNotFound {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeNotFound)
	}
}

func TestGetCode_PlainError(t *testing.T) {
	if got := GetCode(stderrors.New("boom")); got != "" {
		t.Errorf("GetCode(plain error) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodeInvalidDocument, stderrors.New("toml: line 3"), "decode TOML")
	if got := UserMessage(err); got != "decode TOML" {
		t.Errorf("UserMessage() = %q, want %q", got, "decode TOML")
	}
	if got := UserMessage(stderrors.New("boom")); got != "boom" {
		t.Errorf("UserMessage(plain error) = %q, want %q", got, "boom")
	}
}
