package controller

import (
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
)

// ToolResult is the outcome of one invocation. Ordering within a round
// mirrors request order. Attribution, when present, is a JSON array of
// {text, link} objects; only the source aggregator interprets it.
type ToolResult struct {
	InvocationID string
	Content      string
	Succeeded    bool
	Attribution  json.RawMessage
}

// RoundRecord is one completed round: the model's raw request payload and the
// ordered tool results it produced. Immutable once created.
type RoundRecord struct {
	Assistant anthropic.MessageParam
	Results   []ToolResult
}

// QueryContext is the immutable per-query state threaded through rounds.
// Deriving a new context never mutates the prior one, so earlier contexts
// stay inspectable.
type QueryContext struct {
	Query           string
	HistorySummary  string
	RoundsRemaining int
	Rounds          []RoundRecord
}

func newQueryContext(query, historySummary string, maxRounds int) QueryContext {
	return QueryContext{
		Query:           query,
		HistorySummary:  historySummary,
		RoundsRemaining: maxRounds,
	}
}

// withRound derives the successor context: the record appended, the budget
// decremented by exactly 1. Caller must ensure RoundsRemaining > 0.
func (qc QueryContext) withRound(rec RoundRecord) QueryContext {
	rounds := make([]RoundRecord, len(qc.Rounds), len(qc.Rounds)+1)
	copy(rounds, qc.Rounds)
	return QueryContext{
		Query:           qc.Query,
		HistorySummary:  qc.HistorySummary,
		RoundsRemaining: qc.RoundsRemaining - 1,
		Rounds:          append(rounds, rec),
	}
}

// messages rebuilds the request message sequence: the original query, then
// each round's assistant payload followed by its tool results.
func (qc QueryContext) messages() []anthropic.MessageParam {
	msgs := make([]anthropic.MessageParam, 0, 1+2*len(qc.Rounds))
	msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(qc.Query)))
	for _, rec := range qc.Rounds {
		msgs = append(msgs, rec.Assistant)
		blocks := make([]anthropic.ContentBlockParamUnion, 0, len(rec.Results))
		for _, res := range rec.Results {
			blocks = append(blocks, anthropic.NewToolResultBlock(res.InvocationID, res.Content, !res.Succeeded))
		}
		msgs = append(msgs, anthropic.NewUserMessage(blocks...))
	}
	return msgs
}
