package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestAccountID(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		id := uuid.New()
		ctx := WithAccountID(context.Background(), id)

		got, ok := AccountIDFromCtx(ctx)
		if !ok {
			t.Fatal("expected account id to be present")
		}
		if got != id {
			t.Errorf("got %s, want %s", got, id)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, ok := AccountIDFromCtx(context.Background()); ok {
			t.Error("expected ok=false for empty context")
		}
	})

	t.Run("nil uuid is treated as absent", func(t *testing.T) {
		ctx := WithAccountID(context.Background(), uuid.Nil)
		if _, ok := AccountIDFromCtx(ctx); ok {
			t.Error("expected ok=false for nil uuid")
		}
	})
}

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Errorf("got %q, want %q", got, "req-123")
	}
	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Errorf("got %q, want empty string", got)
	}
}
