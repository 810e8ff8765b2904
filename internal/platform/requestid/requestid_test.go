package requestid

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := NewContext(context.Background(), "abc-123")
	if got := FromContext(ctx); got != "abc-123" {
		t.Errorf("FromContext() = %q, want %q", got, "abc-123")
	}
	if got := FromContext(context.Background()); got != "" {
		t.Errorf("FromContext(empty) = %q, want empty", got)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "keeps caller id", incoming: "req-42", keep: true},
		{name: "empty gets uuid", incoming: "", keep: false},
		{name: "too long gets uuid", incoming: strings.Repeat("x", 129), keep: false},
		{name: "whitespace gets uuid", incoming: "a b", keep: false},
		{name: "newline gets uuid", incoming: "a\nb", keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.incoming)
			if tt.keep {
				if got != tt.incoming {
					t.Errorf("Resolve(%q) = %q, want it kept", tt.incoming, got)
				}
				return
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("Resolve(%q) = %q, want a UUID", tt.incoming, got)
			}
		})
	}
}
