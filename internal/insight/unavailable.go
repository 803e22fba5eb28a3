package insight

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no AI provider is configured.
var ErrUnavailable = errors.New("insight: no AI provider configured")

// Unavailable stands in for a provider when AI is disabled. Every call fails, so
// callers produce their fallback messages.
type Unavailable struct{}

var (
	_ Generator    = Unavailable{}
	_ ChatProvider = Unavailable{}
)

func (Unavailable) Generate(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) NewSession(context.Context, string) (ChatSession, error) {
	return nil, ErrUnavailable
}
