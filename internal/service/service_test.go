package service

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/budgetbuddy/internal/auth"
	"github.com/mmynk/budgetbuddy/internal/insight"
	"github.com/mmynk/budgetbuddy/internal/ledger"
	"github.com/mmynk/budgetbuddy/internal/storage"
	"github.com/mmynk/budgetbuddy/internal/storage/memory"
	api "github.com/mmynk/budgetbuddy/pkg/api"
	"github.com/mmynk/budgetbuddy/pkg/api/apiconnect"
)

type testClients struct {
	url     string
	auth    apiconnect.AuthServiceClient
	ledger  apiconnect.LedgerServiceClient
	insight apiconnect.InsightServiceClient
}

type stubGenerator struct {
	text string
	err  error
}

func (g stubGenerator) Generate(context.Context, string) (string, error) {
	return g.text, g.err
}

type stubChat struct {
	chunks []string
}

func (c stubChat) NewSession(context.Context, string) (insight.ChatSession, error) {
	return c, nil
}

func (c stubChat) SendStreaming(context.Context, string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, chunk := range c.chunks {
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

// setupTestServer starts the full API on an in-memory gateway.
func setupTestServer(t *testing.T, gen insight.Generator, chat insight.ChatProvider) (testClients, func()) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := storage.NewRepository(memory.New())
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(repo)
	ledgers := ledger.NewManager(repo)

	mux := http.NewServeMux()
	Mount(mux,
		NewAuthService(authenticator, authenticator, jwtManager, logger),
		NewLedgerService(ledgers, logger),
		NewInsightService(ledgers, insight.NewRequestor(gen, insight.Currency{}, time.Second), chat, logger),
		jwtManager,
	)
	server := httptest.NewServer(mux)

	clients := testClients{
		url:     server.URL,
		auth:    apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		ledger:  apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL),
		insight: apiconnect.NewInsightServiceClient(http.DefaultClient, server.URL),
	}
	return clients, server.Close
}

func withToken[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func register(t *testing.T, c testClients, email string) string {
	t.Helper()
	resp, err := c.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "password123",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Msg.Token == "" {
		t.Fatal("expected token in register response")
	}
	return resp.Msg.Token
}

func wantCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	if got := connect.CodeOf(err); got != code {
		t.Fatalf("expected code %v, got %v (%v)", code, got, err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	c, cleanup := setupTestServer(t, insight.Unavailable{}, insight.Unavailable{})
	defer cleanup()
	ctx := context.Background()

	register(t, c, "asha@example.com")

	resp, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "asha@example.com", Password: "password123"}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Msg.User.Email != "asha@example.com" || resp.Msg.Token == "" {
		t.Errorf("unexpected login response: %+v", resp.Msg)
	}

	_, err = c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "asha@example.com", Password: "wrong-password"}))
	wantCode(t, err, connect.CodeUnauthenticated)

	_, err = c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{Name: "Again", Email: "asha@example.com", Password: "password123"}))
	wantCode(t, err, connect.CodeAlreadyExists)

	_, err = c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{Name: "Weak", Email: "weak@example.com", Password: "short"}))
	wantCode(t, err, connect.CodeInvalidArgument)
}

func TestProfile(t *testing.T) {
	c, cleanup := setupTestServer(t, insight.Unavailable{}, insight.Unavailable{})
	defer cleanup()
	ctx := context.Background()

	_, err := c.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	wantCode(t, err, connect.CodeUnauthenticated)

	token := register(t, c, "asha@example.com")
	register(t, c, "ravi@example.com")

	phone := "+91 98765 43210"
	updated, err := c.auth.UpdateProfile(ctx, withToken(&api.UpdateProfileRequest{Phone: &phone}, token))
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Msg.User.Phone != phone || updated.Msg.User.Name != "Test User" {
		t.Errorf("unexpected profile: %+v", updated.Msg.User)
	}

	me, err := c.auth.GetCurrentUser(ctx, withToken(&api.GetCurrentUserRequest{}, token))
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if me.Msg.User.Phone != phone {
		t.Errorf("expected stored phone, got %q", me.Msg.User.Phone)
	}

	taken := "ravi@example.com"
	_, err = c.auth.UpdateProfile(ctx, withToken(&api.UpdateProfileRequest{Email: &taken}, token))
	wantCode(t, err, connect.CodeAlreadyExists)
}

func TestLedgerRequiresToken(t *testing.T) {
	c, cleanup := setupTestServer(t, insight.Unavailable{}, insight.Unavailable{})
	defer cleanup()

	_, err := c.ledger.GetDashboard(context.Background(), connect.NewRequest(&api.GetDashboardRequest{}))
	wantCode(t, err, connect.CodeUnauthenticated)
}

func TestDashboardAfterLunch(t *testing.T) {
	c, cleanup := setupTestServer(t, insight.Unavailable{}, insight.Unavailable{})
	defer cleanup()
	ctx := context.Background()
	token := register(t, c, "asha@example.com")

	added, err := c.ledger.AddTransaction(ctx, withToken(&api.AddTransactionRequest{
		Description: "Lunch", Amount: "200", Date: "2024-01-05", Category: "Food", Type: "expense",
	}, token))
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	if !added.Msg.Added || added.Msg.Transaction == nil {
		t.Fatalf("expected transaction to be added: %+v", added.Msg)
	}

	dash, err := c.ledger.GetDashboard(ctx, withToken(&api.GetDashboardRequest{}, token))
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	sum := dash.Msg.Summary
	if sum.TotalExpense != "200" || sum.CurrentBalance != "-200" {
		t.Errorf("expected expense 200 and balance -200, got %s and %s", sum.TotalExpense, sum.CurrentBalance)
	}
	if len(sum.ExpensesByCategory) != 1 || sum.ExpensesByCategory[0] != (api.CategoryAmount{Name: "Food", Value: "200"}) {
		t.Errorf("unexpected expensesByCategory: %+v", sum.ExpensesByCategory)
	}
	if len(dash.Msg.Accounts) != 2 || len(dash.Msg.Transactions) != 1 {
		t.Errorf("unexpected dashboard: %d accounts, %d transactions", len(dash.Msg.Accounts), len(dash.Msg.Transactions))
	}
	if dash.Msg.SelectedCategory != "Food" {
		t.Errorf("expected Food selected, got %q", dash.Msg.SelectedCategory)
	}
}

func TestAddTransactionRejectedAndBreaches(t *testing.T) {
	c, cleanup := setupTestServer(t, insight.Unavailable{}, insight.Unavailable{})
	defer cleanup()
	ctx := context.Background()
	token := register(t, c, "asha@example.com")

	rejected, err := c.ledger.AddTransaction(ctx, withToken(&api.AddTransactionRequest{Description: "Lunch", Date: "2024-01-05", Type: "expense"}, token))
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	if rejected.Msg.Added {
		t.Error("expected draft without amount to be rejected")
	}

	if _, err := c.ledger.SetBudgetMode(ctx, withToken(&api.SetBudgetModeRequest{Mode: "custom"}, token)); err != nil {
		t.Fatalf("SetBudgetMode failed: %v", err)
	}
	budget, err := c.ledger.SetCustomLimit(ctx, withToken(&api.SetCustomLimitRequest{CustomLimit: "500"}, token))
	if err != nil {
		t.Fatalf("SetCustomLimit failed: %v", err)
	}
	if budget.Msg.EffectiveLimit != "500" {
		t.Errorf("expected effective limit 500, got %s", budget.Msg.EffectiveLimit)
	}
	limit, err := c.ledger.SetCategoryLimit(ctx, withToken(&api.SetCategoryLimitRequest{Category: "Food", Limit: "150"}, token))
	if err != nil {
		t.Fatalf("SetCategoryLimit failed: %v", err)
	}
	if limit.Msg.Limit != 150 {
		t.Errorf("expected limit 150, got %v", limit.Msg.Limit)
	}

	resp, err := c.ledger.AddTransaction(ctx, withToken(&api.AddTransactionRequest{
		Description: "Feast", Amount: "600", Date: "2024-01-06", Category: "Food", Type: "expense",
	}, token))
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	if !resp.Msg.GlobalBudgetExceeded || resp.Msg.CategoryBudgetExceeded != "Food" {
		t.Errorf("expected both breaches, got %+v", resp.Msg)
	}

	dash, err := c.ledger.GetDashboard(ctx, withToken(&api.GetDashboardRequest{}, token))
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	if !dash.Msg.Summary.IsOverBudget || dash.Msg.Summary.BudgetUsagePercent != 100 {
		t.Errorf("expected over budget at 100%%, got %+v", dash.Msg.Summary)
	}
	if !dash.Msg.Summary.CategoryStatus["Food"] {
		t.Error("expected Food to be over its limit")
	}

	_, err = c.ledger.SetBudgetMode(ctx, withToken(&api.SetBudgetModeRequest{Mode: "yolo"}, token))
	wantCode(t, err, connect.CodeInvalidArgument)
}

func TestTransactionEditing(t *testing.T) {
	c, cleanup := setupTestServer(t, insight.Unavailable{}, insight.Unavailable{})
	defer cleanup()
	ctx := context.Background()
	token := register(t, c, "asha@example.com")

	added, err := c.ledger.AddTransaction(ctx, withToken(&api.AddTransactionRequest{
		Description: "Bus", Amount: "30", Date: "2024-01-05", Category: "Transport", Type: "expense",
	}, token))
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}

	tx := *added.Msg.Transaction
	tx.Amount = 45
	if _, err := c.ledger.UpdateTransaction(ctx, withToken(&api.UpdateTransactionRequest{Transaction: &tx}, token)); err != nil {
		t.Fatalf("UpdateTransaction failed: %v", err)
	}

	missing := tx
	missing.Id = "missing"
	_, err = c.ledger.UpdateTransaction(ctx, withToken(&api.UpdateTransactionRequest{Transaction: &missing}, token))
	wantCode(t, err, connect.CodeNotFound)

	if _, err := c.ledger.DeleteTransaction(ctx, withToken(&api.DeleteTransactionRequest{Id: tx.Id}, token)); err != nil {
		t.Fatalf("DeleteTransaction failed: %v", err)
	}
	dash, err := c.ledger.GetDashboard(ctx, withToken(&api.GetDashboardRequest{}, token))
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	if len(dash.Msg.Transactions) != 0 {
		t.Errorf("expected empty log, got %d", len(dash.Msg.Transactions))
	}
}

func TestCategoriesAndAccounts(t *testing.T) {
	c, cleanup := setupTestServer(t, insight.Unavailable{}, insight.Unavailable{})
	defer cleanup()
	ctx := context.Background()
	token := register(t, c, "asha@example.com")

	cats, err := c.ledger.AddCategory(ctx, withToken(&api.AddCategoryRequest{Name: "Travel"}, token))
	if err != nil {
		t.Fatalf("AddCategory failed: %v", err)
	}
	if last := cats.Msg.Categories[len(cats.Msg.Categories)-1]; last != "Travel" {
		t.Errorf("expected Travel appended, got %q", last)
	}

	cats, err = c.ledger.RenameCategory(ctx, withToken(&api.RenameCategoryRequest{Index: 0, NewName: "Groceries"}, token))
	if err != nil {
		t.Fatalf("RenameCategory failed: %v", err)
	}
	if cats.Msg.Categories[0] != "Groceries" || cats.Msg.SelectedCategory != "Groceries" {
		t.Errorf("unexpected registry after rename: %+v", cats.Msg)
	}

	_, err = c.ledger.RenameCategory(ctx, withToken(&api.RenameCategoryRequest{Index: 0, NewName: "Transport"}, token))
	wantCode(t, err, connect.CodeAlreadyExists)

	_, err = c.ledger.DeleteCategory(ctx, withToken(&api.DeleteCategoryRequest{Index: 99}, token))
	wantCode(t, err, connect.CodeNotFound)

	cats, err = c.ledger.SelectCategory(ctx, withToken(&api.SelectCategoryRequest{Name: "Travel"}, token))
	if err != nil {
		t.Fatalf("SelectCategory failed: %v", err)
	}
	if cats.Msg.SelectedCategory != "Travel" {
		t.Errorf("expected Travel selected, got %q", cats.Msg.SelectedCategory)
	}

	acc, err := c.ledger.AddAccount(ctx, withToken(&api.AddAccountRequest{Name: "Card", Type: "Credit", Balance: "1000"}, token))
	if err != nil {
		t.Fatalf("AddAccount failed: %v", err)
	}
	_, err = c.ledger.AddAccount(ctx, withToken(&api.AddAccountRequest{Name: "Card", Balance: "-1"}, token))
	wantCode(t, err, connect.CodeInvalidArgument)

	renamed := *acc.Msg.Account
	renamed.Name = "Travel Card"
	if _, err := c.ledger.UpdateAccount(ctx, withToken(&api.UpdateAccountRequest{Account: &renamed}, token)); err != nil {
		t.Fatalf("UpdateAccount failed: %v", err)
	}
	if _, err := c.ledger.DeleteAccount(ctx, withToken(&api.DeleteAccountRequest{Id: renamed.Id}, token)); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}
}

func TestUnknownFieldsRejected(t *testing.T) {
	c, cleanup := setupTestServer(t, insight.Unavailable{}, insight.Unavailable{})
	defer cleanup()

	body := strings.NewReader(`{"email":"a@example.com","password":"password123","admin":true}`)
	resp, err := http.Post(c.url+apiconnect.AuthServiceLoginProcedure, "application/json", body)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown field, got %d", resp.StatusCode)
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name string
		gen  insight.Generator
		want string
	}{
		{name: "insights", gen: stubGenerator{text: "1. Spend less on food"}, want: "1. Spend less on food"},
		{name: "collaborator error", gen: stubGenerator{err: errors.New("503")}, want: insight.ErrorMessage},
		{name: "no provider", gen: insight.Unavailable{}, want: insight.ErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, cleanup := setupTestServer(t, tt.gen, insight.Unavailable{})
			defer cleanup()
			token := register(t, c, "asha@example.com")

			resp, err := c.insight.Analyze(context.Background(), withToken(&api.AnalyzeRequest{}, token))
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			if resp.Msg.Insights != tt.want {
				t.Errorf("expected %q, got %q", tt.want, resp.Msg.Insights)
			}
		})
	}
}

func receiveAll(t *testing.T, stream *connect.ServerStreamForClient[api.ChatResponse]) []string {
	t.Helper()
	defer stream.Close()
	var out []string
	for stream.Receive() {
		out = append(out, stream.Msg().Text)
	}
	if err := stream.Err(); err != nil {
		t.Fatalf("stream failed: %v", err)
	}
	return out
}

func TestChat(t *testing.T) {
	c, cleanup := setupTestServer(t, insight.Unavailable{}, stubChat{chunks: []string{"Track ", "every rupee."}})
	defer cleanup()
	ctx := context.Background()
	token := register(t, c, "asha@example.com")

	stream, err := c.insight.Chat(ctx, withToken(&api.ChatRequest{}, token))
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if got := receiveAll(t, stream); len(got) != 1 || got[0] != insight.GreetingMessage {
		t.Errorf("expected greeting, got %q", got)
	}

	stream, err = c.insight.Chat(ctx, withToken(&api.ChatRequest{Message: "How do I save?"}, token))
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if got := strings.Join(receiveAll(t, stream), ""); got != "Track every rupee." {
		t.Errorf("unexpected reply %q", got)
	}
}

func TestChatWithoutProvider(t *testing.T) {
	c, cleanup := setupTestServer(t, insight.Unavailable{}, insight.Unavailable{})
	defer cleanup()
	token := register(t, c, "asha@example.com")

	stream, err := c.insight.Chat(context.Background(), withToken(&api.ChatRequest{Message: "hi"}, token))
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if got := receiveAll(t, stream); len(got) != 1 || got[0] != insight.FallbackMessage {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestChatRequiresToken(t *testing.T) {
	c, cleanup := setupTestServer(t, insight.Unavailable{}, insight.Unavailable{})
	defer cleanup()

	stream, err := c.insight.Chat(context.Background(), connect.NewRequest(&api.ChatRequest{Message: "hi"}))
	if err != nil {
		wantCode(t, err, connect.CodeUnauthenticated)
		return
	}
	defer stream.Close()
	for stream.Receive() {
		t.Fatal("expected no messages without a token")
	}
	wantCode(t, stream.Err(), connect.CodeUnauthenticated)
}

func TestInsightServiceDropsIdleAssistants(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewInsightService(nil, nil, insight.Unavailable{}, logger, WithChatIdleTimeout(time.Minute))
	now := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	first := s.assistantFor("user-1")
	if s.assistantFor("user-1") != first {
		t.Fatal("expected the same assistant within the idle timeout")
	}

	now = now.Add(30 * time.Second)
	s.assistantFor("user-2")
	now = now.Add(45 * time.Second)
	s.assistantFor("user-2")

	s.mu.Lock()
	_, kept := s.assistants["user-2"]
	n := len(s.assistants)
	s.mu.Unlock()
	if n != 1 || !kept {
		t.Fatalf("expected only user-2 to remain, got %d assistants", n)
	}

	if s.assistantFor("user-1") == first {
		t.Error("expected a fresh assistant after the idle timeout")
	}
}

func TestWithChatIdleTimeoutIgnoresNonPositive(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewInsightService(nil, nil, insight.Unavailable{}, logger, WithChatIdleTimeout(0))
	if s.idleTimeout != DefaultChatIdleTimeout {
		t.Errorf("idleTimeout = %v, want %v", s.idleTimeout, DefaultChatIdleTimeout)
	}
}
