package llm

import (
	"context"
	"errors"
)

// Message is a role-tagged chat message.
type Message struct {
	Role    string
	Content string
}

// Request captures the inputs for a single chat-completion call.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float32
	// JSONObject asks the provider for a structured JSON object response.
	JSONObject bool
}

// Client abstracts chat-completion providers.
type Client interface {
	// Complete sends a buffered request and returns the full response text.
	Complete(ctx context.Context, req Request) (string, error)
	// Stream sends the same request with streaming enabled and returns a
	// lazy, single-pass sequence of text fragments. The caller may stop
	// consuming at any point and must call Close when done.
	Stream(ctx context.Context, req Request) (Stream, error)
}

// Stream is a lazy sequence of incremental response fragments.
type Stream interface {
	// Next advances to the next fragment. It returns false when the stream
	// is exhausted or failed; check Err afterwards.
	Next() bool
	// Text returns the current fragment.
	Text() string
	// Err returns the first error encountered mid-stream, if any.
	Err() error
	// Close releases the underlying transport.
	Close() error
}

// KeyProvider supplies the API key at call time. The key lives in user
// settings and may change between calls.
type KeyProvider interface {
	APIKey(ctx context.Context) (string, error)
}

// ErrMissingAPIKey indicates the gateway has no configured API key. Callers
// surface this as a blocking configuration message; no network call is made.
var ErrMissingAPIKey = errors.New("OpenRouter API key is missing. Please configure it in Settings.")
