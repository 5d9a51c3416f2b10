package telemetry_test

import (
	"context"
	"testing"

	"github.com/coursechat/coursechat/internal/telemetry"
)

func TestTurnID_RoundTrip(t *testing.T) {
	ctx := telemetry.WithTurnID(context.Background(), "turn-123")
	id, ok := telemetry.TurnIDFromContext(ctx)
	if !ok || id != "turn-123" {
		t.Fatalf("got (%q, %v), want (turn-123, true)", id, ok)
	}
}

func TestTurnID_Missing(t *testing.T) {
	if id, ok := telemetry.TurnIDFromContext(context.Background()); ok || id != "" {
		t.Fatalf("expected missing turn ID, got (%q, %v)", id, ok)
	}
}

func TestTurnID_NilContext(t *testing.T) {
	if _, ok := telemetry.TurnIDFromContext(nil); ok {
		t.Fatal("expected no turn ID from nil context")
	}
	ctx := telemetry.WithTurnID(nil, "turn-xyz")
	if id, ok := telemetry.TurnIDFromContext(ctx); !ok || id != "turn-xyz" {
		t.Fatalf("got (%q, %v), want (turn-xyz, true)", id, ok)
	}
}

func TestTurnID_EmptyStringTreatedAsMissing(t *testing.T) {
	ctx := telemetry.WithTurnID(context.Background(), "")
	if _, ok := telemetry.TurnIDFromContext(ctx); ok {
		t.Fatal("empty turn ID should be reported as missing")
	}
}
