package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewFormatsMessage(t *testing.T) {
	err := New(ErrCodeInvalidMetadata, "table %q listed twice", "users")

	if err.Code != ErrCodeInvalidMetadata {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidMetadata)
	}
	if err.Message != `table "users" listed twice` {
		t.Errorf("Message = %q", err.Message)
	}
	if want := `INVALID_METADATA: table "users" listed twice`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "publish diagram %q", "inventory")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the original cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should see through the wrapper")
	}
}

func TestWrapChainThroughStages(t *testing.T) {
	// A failure surfacing from deep in the pipeline keeps its original
	// code visible at every level of wrapping.
	inner := New(ErrCodeInvalidMetadata, "column without a table")
	mid := Wrap(ErrCodeInternal, inner, "normalize")
	outer := fmt.Errorf("import: %w", mid)

	if !Is(outer, ErrCodeInternal) {
		t.Error("outer code lost through fmt wrapping")
	}
	if GetCode(outer) != ErrCodeInternal {
		t.Errorf("GetCode = %v, want %v", GetCode(outer), ErrCodeInternal)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeInvalidDiagram, "bad name"), ErrCodeInvalidDiagram, true},
		{"different code", New(ErrCodeInvalidDiagram, "bad name"), ErrCodeInvalidFormat, false},
		{"outer code of a wrap", Wrap(ErrCodeUnauthorized, New(ErrCodeNetwork, "401"), "publish"), ErrCodeUnauthorized, true},
		{"plain stdlib error", errors.New("boom"), ErrCodeInternal, false},
		{"nil", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is(%v, %v) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"coded error", New(ErrCodeTokenNotFound, "no token"), ErrCodeTokenNotFound},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessageHidesCodes(t *testing.T) {
	err := New(ErrCodeFileNotFound, "diagram.json not found")
	if got := UserMessage(err); got != "diagram.json not found" {
		t.Errorf("UserMessage = %q", got)
	}

	// Non-coded errors pass through unchanged.
	if got := UserMessage(errors.New("disk full")); got != "disk full" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestRateLimitedError(t *testing.T) {
	withRetry := &RateLimitedError{RetryAfter: 30}
	if want := "rate limited: retry after 30 seconds"; withRetry.Error() != want {
		t.Errorf("Error() = %q, want %q", withRetry.Error(), want)
	}

	bare := &RateLimitedError{}
	if bare.Error() != "rate limited" {
		t.Errorf("Error() = %q", bare.Error())
	}
	if bare.Code() != ErrCodeRateLimited {
		t.Errorf("Code() = %v, want %v", bare.Code(), ErrCodeRateLimited)
	}
}
