package llm

import "context"

// Sentinel substituted when the completion service returns a response
// with no usable text output.
const NoTextOutput = "No text output returned."

// Client is the one capability the rest of the system needs from a
// completion service. One request per call: no retries, no backoff.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
