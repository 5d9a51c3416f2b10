// Package controller drives the bounded, multi-round tool-calling
// conversation between the model and the registered tools.
//
// Invariants:
//   - RoundsRemaining decreases by exactly 1 per derived context and never
//     goes negative; a context at 0 is never offered tools again.
//   - The model's raw assistant payload is carried verbatim into the next
//     request; the controller never inspects or rewrites it.
//   - Tool failures become failing ToolResults fed back to the model; only
//     transport failures to the model service abort a query.
//
// Flow:
//
//	user(query) -> assistant(tool_use...) -> user(tool_result...) -> ... -> assistant(text)
//
// When the round budget is exhausted the final call advertises no tools, so
// the caller always receives a textual answer.
package controller
