package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/budgetbuddy/internal/auth"
	"github.com/mmynk/budgetbuddy/internal/insight"
	"github.com/mmynk/budgetbuddy/internal/ledger"
	"github.com/mmynk/budgetbuddy/internal/middleware"
	api "github.com/mmynk/budgetbuddy/pkg/api"
	"github.com/mmynk/budgetbuddy/pkg/api/apiconnect"
)

// DefaultChatIdleTimeout is how long an unused chat assistant is kept.
const DefaultChatIdleTimeout = 30 * time.Minute

// InsightService implements the InsightService RPC interface.
//
// Each user gets one chat assistant, created on their first chat message.
// Assistants unused for the idle timeout are dropped together with their
// conversation; the next message starts a fresh one.
type InsightService struct {
	ledgers   *ledger.Manager
	requestor *insight.Requestor
	provider  insight.ChatProvider
	logger    *slog.Logger

	idleTimeout time.Duration
	now         func() time.Time

	mu         sync.Mutex
	assistants map[string]*chatEntry
}

type chatEntry struct {
	assistant *insight.Assistant
	lastUsed  time.Time
}

var _ apiconnect.InsightServiceHandler = (*InsightService)(nil)

// InsightOption configures an InsightService.
type InsightOption func(*InsightService)

// WithChatIdleTimeout sets how long an unused assistant is kept. Non-positive
// values keep DefaultChatIdleTimeout.
func WithChatIdleTimeout(d time.Duration) InsightOption {
	return func(s *InsightService) {
		if d > 0 {
			s.idleTimeout = d
		}
	}
}

// NewInsightService creates an InsightService.
func NewInsightService(ledgers *ledger.Manager, requestor *insight.Requestor, provider insight.ChatProvider, logger *slog.Logger, opts ...InsightOption) *InsightService {
	s := &InsightService{
		ledgers:     ledgers,
		requestor:   requestor,
		provider:    provider,
		logger:      logger,
		idleTimeout: DefaultChatIdleTimeout,
		now:         time.Now,
		assistants:  make(map[string]*chatEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze returns three insights about the caller's transactions. Collaborator
// failures produce a fallback text, never an RPC error. The log is copied before
// the call, so changes made meanwhile are not reflected.
func (s *InsightService) Analyze(ctx context.Context, req *connect.Request[api.AnalyzeRequest]) (*connect.Response[api.AnalyzeResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	l, err := s.ledgers.Get(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	txs := l.Transactions()
	s.logger.Info("Analyze request", "user_id", userID, "transactions", len(txs))
	return connect.NewResponse(&api.AnalyzeResponse{Insights: s.requestor.Analyze(ctx, txs)}), nil
}

// Chat streams the assistant's reply. An empty message streams the greeting.
func (s *InsightService) Chat(ctx context.Context, req *connect.Request[api.ChatRequest], stream *connect.ServerStream[api.ChatResponse]) error {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	assistant := s.assistantFor(userID)

	if req.Msg.Message == "" {
		return stream.Send(&api.ChatResponse{Text: assistant.Greeting()})
	}

	for chunk, err := range assistant.Send(ctx, req.Msg.Message) {
		if err != nil {
			return connect.NewError(connect.CodeCanceled, err)
		}
		if err := stream.Send(&api.ChatResponse{Text: chunk}); err != nil {
			return err
		}
	}
	return nil
}

func (s *InsightService) assistantFor(userID string) *insight.Assistant {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.assistants {
		if now.Sub(e.lastUsed) > s.idleTimeout {
			delete(s.assistants, id)
			s.logger.Debug("Dropped idle chat assistant", "user_id", id)
		}
	}

	e, ok := s.assistants[userID]
	if !ok {
		e = &chatEntry{assistant: insight.NewAssistant(s.provider)}
		s.assistants[userID] = e
	}
	e.lastUsed = now
	return e.assistant
}
