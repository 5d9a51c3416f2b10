package controller

import (
	"context"
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
)

// ResponseKind tags how a model response should be handled.
type ResponseKind string

const (
	// KindFinal is a plain text answer; the query terminates.
	KindFinal ResponseKind = "final"
	// KindToolRequest carries one or more tool invocations to dispatch.
	KindToolRequest ResponseKind = "tool_request"
)

// Invocation is a single tool call requested by the model.
type Invocation struct {
	ID   string
	Name string
	Args json.RawMessage
}

// ModelRequest is everything one model call needs. Tools is nil on the
// forced final call so the model must answer from what is already in context.
type ModelRequest struct {
	HistorySummary string
	Messages       []anthropic.MessageParam
	Tools          []anthropic.ToolUnionParam
	MaxTokens      int64
}

// ModelResponse is the classified outcome of one model call. Raw preserves
// the assistant payload verbatim; it is replayed unmodified as the assistant
// turn of the next request.
type ModelResponse struct {
	Kind        ResponseKind
	Text        string
	Invocations []Invocation
	Raw         anthropic.MessageParam
}

// ModelClient is the language-model collaborator. Send blocks until the call
// settles; ctx carries the query deadline. A nil error implies a non-nil
// response.
type ModelClient interface {
	Send(ctx context.Context, req ModelRequest) (*ModelResponse, error)
}
