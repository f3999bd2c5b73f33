// Package provider abstracts the outbound LLM dependency behind a minimal
// completion contract so the reply engine can be tested without a network.
package provider

import "context"

// Message is a normalized chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options carries per-call sampling parameters.
type Options struct {
	Model       string
	Temperature float32
	MaxTokens   int
	TopP        float64
}

// Client is the single contract the engine holds against any LLM provider.
type Client interface {
	// Complete sends the messages and returns the assistant text. The call
	// must honor ctx cancellation and return within a bounded time.
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
}
