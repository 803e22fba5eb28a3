// Package gemini implements the insight collaborator interfaces on the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"google.golang.org/genai"

	"github.com/mmynk/budgetbuddy/internal/insight"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-3-flash-preview"

var ErrMissingAPIKey = errors.New("gemini: api key is required")

// Client generates text and opens chat sessions with one model.
type Client struct {
	genai *genai.Client
	model string
}

var (
	_ insight.Generator    = (*Client)(nil)
	_ insight.ChatProvider = (*Client)(nil)
)

// New creates a client for the Gemini developer API.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{genai: c, model: model}, nil
}

// Model returns the model name requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// Generate sends prompt as a single user turn and returns the concatenated text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// NewSession opens a chat primed with systemPrompt.
func (c *Client) NewSession(ctx context.Context, systemPrompt string) (insight.ChatSession, error) {
	chat, err := c.genai.Chats.Create(ctx, c.model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}
	return &session{chat: chat}, nil
}

type session struct {
	chat *genai.Chat
}

func (s *session) SendStreaming(ctx context.Context, message string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for resp, err := range s.chat.SendMessageStream(ctx, genai.Part{Text: message}) {
			if err != nil {
				yield("", err)
				return
			}
			if !yield(resp.Text(), nil) {
				return
			}
		}
	}
}
