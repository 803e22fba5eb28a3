package insight

import (
	"context"
	"iter"
	"log/slog"
	"sync"
)

const (
	// GreetingMessage opens every conversation.
	GreetingMessage = "Hello! I am BudgetBuddy. How can I help you manage your finances today?"
	// FallbackMessage is streamed when the collaborator cannot answer.
	FallbackMessage = "I'm having trouble connecting right now. Please try again."
)

// SystemPrompt frames the assistant's persona.
const SystemPrompt = "You are BudgetBuddy, an intelligent, empathetic, and professional financial assistant. " +
	"You help users track expenses, plan budgets, and find ways to save. " +
	"The user's currency is Indian Rupee (₹). Keep answers concise, encouraging, and financially sound. " +
	"If asked about specific user data, ask them to provide it or assume hypothetical scenarios if not provided."

// Assistant is a chat conversation with one session, opened on the first message.
type Assistant struct {
	provider ChatProvider
	prompt   string

	mu      sync.Mutex
	session ChatSession
}

// NewAssistant creates an assistant using SystemPrompt.
func NewAssistant(provider ChatProvider) *Assistant {
	return &Assistant{provider: provider, prompt: SystemPrompt}
}

// Greeting returns the opening message shown before the user writes anything.
func (a *Assistant) Greeting() string {
	return GreetingMessage
}

// Send streams the reply to message. Collaborator failures are not returned:
// whatever was received is kept and FallbackMessage is yielded in place of the
// rest. The only error yielded is ctx.Err() once ctx is done.
func (a *Assistant) Send(ctx context.Context, message string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		session, err := a.sessionFor(ctx)
		if err != nil {
			a.fail(ctx, yield, "Failed to open chat session", err)
			return
		}
		for chunk, err := range session.SendStreaming(ctx, message) {
			if err != nil {
				a.fail(ctx, yield, "Chat stream failed", err)
				return
			}
			if chunk == "" {
				continue
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

func (a *Assistant) fail(ctx context.Context, yield func(string, error) bool, msg string, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		yield("", ctxErr)
		return
	}
	slog.Warn(msg, "error", err)
	yield(FallbackMessage, nil)
}

func (a *Assistant) sessionFor(ctx context.Context) (ChatSession, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil {
		return a.session, nil
	}
	s, err := a.provider.NewSession(ctx, a.prompt)
	if err != nil {
		return nil, err
	}
	a.session = s
	return s, nil
}

// Close drops the session; the next Send starts a new conversation.
func (a *Assistant) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = nil
}
