package controller

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coursechat/coursechat/internal/telemetry"
	"github.com/coursechat/coursechat/tools"
)

// DefaultMaxRounds bounds tool rounds per query; it bounds both latency and
// cost, and the forced tool-free final call guarantees a textual answer.
const DefaultMaxRounds = 2

// DefaultMaxTokens is the per-call output budget.
const DefaultMaxTokens = 800

// Answer is the caller-facing result: the final text and the attribution
// trail gathered across all executed rounds.
type Answer struct {
	Text    string
	Sources []tools.Source
}

// Controller orchestrates the round loop for one query at a time. It holds
// no per-query state, so one instance serves concurrent queries.
type Controller struct {
	model      ModelClient
	registry   *tools.Registry
	dispatcher *Dispatcher
	maxRounds  int
	maxTokens  int64
}

// Options tune a controller; zero values fall back to the defaults.
type Options struct {
	MaxRounds int
	MaxTokens int64
}

func New(model ModelClient, reg *tools.Registry, opts Options) *Controller {
	maxRounds := opts.MaxRounds
	if maxRounds < 1 {
		maxRounds = DefaultMaxRounds
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Controller{
		model:      model,
		registry:   reg,
		dispatcher: NewDispatcher(reg),
		maxRounds:  maxRounds,
		maxTokens:  maxTokens,
	}
}

// Run answers one query. Rounds proceed strictly sequentially: ask the model,
// dispatch any requested tools, derive the next context, repeat. Termination
// is guaranteed within maxRounds+1 model calls: once the budget hits zero the
// next call advertises no tools and its response is treated as final, tool
// shapes included. A deadline on ctx cancels the in-flight round and surfaces
// as an error; it is never silently converted into a partial answer.
func (c *Controller) Run(ctx context.Context, query, historySummary string) (Answer, error) {
	if strings.TrimSpace(query) == "" {
		return Answer{}, fmt.Errorf("query must not be empty")
	}

	turnID, ok := telemetry.TurnIDFromContext(ctx)
	if !ok {
		turnID = fmt.Sprintf("turn-%d", time.Now().UnixNano())
		ctx = telemetry.WithTurnID(ctx, turnID)
	}

	qc := newQueryContext(query, historySummary, c.maxRounds)
	for {
		withTools := qc.RoundsRemaining > 0

		telemetry.Emit("model_call", map[string]any{
			"turn_id":          turnID,
			"rounds_remaining": qc.RoundsRemaining,
			"tools_offered":    withTools,
			"messages":         1 + 2*len(qc.Rounds),
		})

		req := ModelRequest{
			HistorySummary: qc.HistorySummary,
			Messages:       qc.messages(),
			MaxTokens:      c.maxTokens,
		}
		if withTools {
			req.Tools = c.registry.Definitions()
		}

		resp, err := c.model.Send(ctx, req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Answer{}, fmt.Errorf("query abandoned: %w", ctxErr)
			}
			return Answer{}, &ModelError{Err: err}
		}
		if resp == nil {
			return Answer{}, &ModelError{Err: fmt.Errorf("model client returned no response")}
		}

		// Terminal on a plain answer, and unconditionally on the forced
		// tool-free call: with tools withheld, even a nominally tool-shaped
		// response is coerced to its text.
		if !withTools || resp.Kind == KindFinal || len(resp.Invocations) == 0 {
			answer := Answer{Text: resp.Text, Sources: AggregateSources(qc.Rounds)}
			telemetry.Emit("query_done", map[string]any{
				"turn_id":      turnID,
				"rounds_used":  len(qc.Rounds),
				"sources":      len(answer.Sources),
				"forced_final": !withTools,
			})
			return answer, nil
		}

		results := c.dispatcher.ExecuteAll(ctx, resp.Invocations)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Answer{}, fmt.Errorf("query abandoned: %w", ctxErr)
		}
		qc = qc.withRound(RoundRecord{Assistant: resp.Raw, Results: results})
	}
}
