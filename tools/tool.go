package tools

import (
	"context"
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
)

// Source is a displayable attribution reference produced by a tool:
// what material backed a piece of content, with an optional link.
type Source struct {
	Text string `json:"text"`
	Link string `json:"link,omitempty"`
}

// Result is a successful tool execution: the content text fed back to the
// model and any attribution sources gathered while producing it.
type Result struct {
	Content string
	Sources []Source
}

// ToolDefinition binds a tool name and its input schema to an executor.
// Definitions are registered once at startup and immutable afterwards.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema anthropic.ToolInputSchemaParam
	Execute     func(ctx context.Context, input json.RawMessage) (Result, error)
}
