package controller

import (
	"encoding/json"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestQueryContext_DeriveDecrementsWithoutMutating(t *testing.T) {
	qc := newQueryContext("what is MCP?", "", 2)
	if qc.RoundsRemaining != 2 || len(qc.Rounds) != 0 {
		t.Fatalf("fresh context wrong: %+v", qc)
	}

	rec := RoundRecord{
		Assistant: anthropic.NewAssistantMessage(anthropic.NewTextBlock("raw payload")),
		Results:   []ToolResult{{InvocationID: "i1", Content: "ok", Succeeded: true}},
	}
	next := qc.withRound(rec)

	if next.RoundsRemaining != 1 {
		t.Fatalf("budget should decrement by exactly 1, got %d", next.RoundsRemaining)
	}
	if len(next.Rounds) != 1 {
		t.Fatalf("derived context missing round: %+v", next.Rounds)
	}
	// Prior context untouched.
	if qc.RoundsRemaining != 2 || len(qc.Rounds) != 0 {
		t.Fatalf("prior context mutated: %+v", qc)
	}

	third := next.withRound(rec)
	if third.RoundsRemaining != 0 || len(third.Rounds) != 2 {
		t.Fatalf("second derivation wrong: remaining=%d rounds=%d", third.RoundsRemaining, len(third.Rounds))
	}
	if len(next.Rounds) != 1 {
		t.Fatal("intermediate context mutated by later derivation")
	}
}

func TestQueryContext_MessagesInterleaveRounds(t *testing.T) {
	qc := newQueryContext("query", "", 2)
	qc = qc.withRound(RoundRecord{
		Assistant: anthropic.NewAssistantMessage(anthropic.NewTextBlock("assistant turn")),
		Results: []ToolResult{
			{InvocationID: "i1", Content: "first", Succeeded: true},
			{InvocationID: "i2", Content: "broken", Succeeded: false},
		},
	})

	msgs := qc.messages()
	if len(msgs) != 3 {
		t.Fatalf("expected query + assistant + tool results, got %d messages", len(msgs))
	}

	b, err := json.Marshal(msgs[2])
	if err != nil {
		t.Fatal(err)
	}
	var m struct {
		Role    string `json:"role"`
		Content []struct {
			Type      string `json:"type"`
			ToolUseID string `json:"tool_use_id"`
			IsError   bool   `json:"is_error"`
		} `json:"content"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	if m.Role != "user" || len(m.Content) != 2 {
		t.Fatalf("unexpected tool result message: %+v", m)
	}
	if m.Content[0].Type != "tool_result" || m.Content[0].ToolUseID != "i1" || m.Content[0].IsError {
		t.Fatalf("first tool_result wrong: %+v", m.Content[0])
	}
	if m.Content[1].ToolUseID != "i2" || !m.Content[1].IsError {
		t.Fatalf("failing tool_result should carry is_error: %+v", m.Content[1])
	}
}
