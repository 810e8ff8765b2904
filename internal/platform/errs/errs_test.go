package errs

import (
	"errors"
	"fmt"
	"testing"
)

var errDial = errors.New("dial tcp: connection refused")

func TestAppError_Error(t *testing.T) {
	withCause := &AppError{Kind: Unreachable, Message: "fetch failed", Cause: errDial}
	if got, want := withCause.Error(), "fetch failed: dial tcp: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	bare := &AppError{Kind: Timeout, Message: "fetch timed out"}
	if got := bare.Error(); got != "fetch timed out" {
		t.Errorf("Error() = %q, want %q", got, "fetch timed out")
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := &AppError{Kind: Unreachable, Message: "fetch failed", Cause: errDial}
	if !errors.Is(err, errDial) {
		t.Error("errors.Is did not find the cause")
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Unknown, "unknown"},
		{Unreachable, "unreachable"},
		{Timeout, "timeout"},
		{Canceled, "canceled"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: Unknown},
		{name: "plain error", err: errDial, want: Unknown},
		{name: "direct", err: &AppError{Kind: Timeout}, want: Timeout},
		{name: "wrapped", err: fmt.Errorf("albums: %w", &AppError{Kind: Unreachable}), want: Unreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}
