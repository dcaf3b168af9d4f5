package model

// TurnState stores per-invocation state for the Eino graph.
// Concurrency model:
//   - This struct is registered as Graph Local State via compose.WithGenLocalState.
//   - All reads/writes happen only inside Eino state handlers:
//     WithStatePreHandler, WithStatePostHandler, or compose.ProcessState.
//   - Eino serializes access to state within these handlers, so no additional
//     mutex/atomic is required as long as it is never touched outside handlers.
type TurnState struct {
	UserID string // empty for anonymous sessions
	Query  string
	Intent *ClassifiedIntent // set by the parser post-handler, read by the responder

	// Accumulated total LLM cost (USD) across model invocations for this turn
	TotalCostUSD float64
}

// TurnInput is the public input of one conversation turn.
type TurnInput struct {
	UserID string `json:"user_id,omitempty"`
	Query  string `json:"query"`
}
