package llm

import "context"

// Provider defines the interface for the external generation capability:
// prompt in, text out, or error. No richer contract is assumed; parsing and
// validation of the returned text live in the generation gateway.
type Provider interface {
	// Complete sends a system prompt and user message to the model and
	// returns the raw text of the completion.
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}
