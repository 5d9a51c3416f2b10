package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/coursechat/coursechat/internal/telemetry"
	"github.com/coursechat/coursechat/tools"
)

// Dispatcher executes requested invocations against the registry. It is
// stateless and safe to share across rounds and concurrent queries.
type Dispatcher struct {
	registry *tools.Registry
}

func NewDispatcher(reg *tools.Registry) *Dispatcher {
	return &Dispatcher{registry: reg}
}

// ExecuteAll runs every invocation and returns one result per request, in
// request order. It is a total function: unknown tools, executor errors, and
// executor panics all become failing results, never an error or a crash, so a
// bad invocation cannot abort the rest of the round.
//
// Invocations are independent reads and run concurrently; the pre-sized
// result slice keeps output order independent of completion order.
func (d *Dispatcher) ExecuteAll(ctx context.Context, reqs []Invocation) []ToolResult {
	results := make([]ToolResult, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req Invocation) {
			defer wg.Done()
			results[i] = d.execute(ctx, req)
		}(i, req)
	}
	wg.Wait()
	return results
}

func (d *Dispatcher) execute(ctx context.Context, req Invocation) (result ToolResult) {
	turnID, _ := telemetry.TurnIDFromContext(ctx)
	start := time.Now()

	emit := func(outputSize int, errStr string) {
		fields := map[string]any{
			"tool_name":   req.Name,
			"duration_ms": time.Since(start).Milliseconds(),
			"input_size":  len(req.Args),
			"output_size": outputSize,
			"turn_id":     turnID,
		}
		if errStr != "" {
			fields["error"] = errStr
		} else {
			fields["error"] = nil
		}
		telemetry.Emit("tool_exec", fields)
	}

	defer func() {
		if r := recover(); r != nil {
			// Keep the panic value out of telemetry; the model still gets
			// a readable failure to react to.
			emit(0, "tool panic")
			result = ToolResult{
				InvocationID: req.ID,
				Content:      fmt.Sprintf("tool '%s' failed unexpectedly", req.Name),
			}
		}
	}()

	def, err := d.registry.Lookup(req.Name)
	if err != nil {
		emit(0, "tool not found")
		return ToolResult{
			InvocationID: req.ID,
			Content:      fmt.Sprintf("Tool '%s' not found", req.Name),
		}
	}

	res, err := def.Execute(ctx, req.Args)
	if err != nil {
		// Generic error string in telemetry to avoid leaking payloads;
		// the detailed message goes back to the model in the result.
		emit(0, "tool error")
		return ToolResult{
			InvocationID: req.ID,
			Content:      err.Error(),
		}
	}

	emit(len(res.Content), "")
	return ToolResult{
		InvocationID: req.ID,
		Content:      res.Content,
		Succeeded:    true,
		Attribution:  marshalAttribution(res.Sources),
	}
}

func marshalAttribution(sources []tools.Source) json.RawMessage {
	if len(sources) == 0 {
		return nil
	}
	b, err := json.Marshal(sources)
	if err != nil {
		return nil
	}
	return b
}
