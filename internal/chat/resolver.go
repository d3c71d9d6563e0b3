package chat

import "context"

// Request is one visitor utterance plus the transcript that preceded it.
type Request struct {
	Text    string
	History []Message
}

// Reply carries the assistant text. Confidence is informational only.
type Reply struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Resolver turns a visitor utterance into a reply. Callers reject blank
// input before calling Resolve.
type Resolver interface {
	Resolve(ctx context.Context, req Request) (Reply, error)
	Name() string
}
