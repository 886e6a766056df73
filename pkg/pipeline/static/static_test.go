package static

import (
	"context"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		query string
		want  string
	}{
		{"fixed reply", "always this", "anything", "always this"},
		{"placeholder substitution", "echo: {query}", "hello", "echo: hello"},
		{"default echoes query", "", "hello", "You asked: hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.reply).Generate(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New("x").Generate(ctx, "q"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
