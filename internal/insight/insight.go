// Package insight talks to the text-generation collaborator: one-shot spending
// insights and the streaming chat assistant.
package insight

import (
	"context"
	"iter"
)

// Generator produces a complete answer for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ChatProvider opens conversational sessions.
type ChatProvider interface {
	NewSession(ctx context.Context, systemPrompt string) (ChatSession, error)
}

// ChatSession keeps the history of one conversation.
type ChatSession interface {
	// SendStreaming sends message and yields the answer as text increments.
	// Iteration stops at the first error.
	SendStreaming(ctx context.Context, message string) iter.Seq2[string, error]
}
