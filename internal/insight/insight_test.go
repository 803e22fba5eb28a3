package insight_test

import (
	"context"
	"errors"
	"iter"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/budgetbuddy/internal/insight"
	"github.com/mmynk/budgetbuddy/internal/models"
)

type fakeGenerator struct {
	text   string
	err    error
	block  bool
	prompt string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	if g.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return g.text, g.err
}

var usd = insight.Currency{Code: "USD", Symbol: "$"}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{ID: "2", Description: "Lunch", Amount: 200, Date: "2024-01-05", Category: "Food", Type: models.Expense},
		{ID: "1", Description: "Salary", Amount: 50000.5, Date: "2024-01-01", Category: "Income", Type: models.Income},
	}
}

func TestRequestorPrompt(t *testing.T) {
	gen := &fakeGenerator{text: "1. Cook at home"}
	r := insight.NewRequestor(gen, insight.Currency{}, 0)

	got := r.Analyze(context.Background(), sampleTransactions())

	assert.Equal(t, "1. Cook at home", got)
	assert.True(t, strings.HasPrefix(gen.prompt, "Analyze the following financial transactions (Currency: INR ₹) and provide 3 brief, actionable insights"))
	assert.Contains(t, gen.prompt, "Format the output as a simple list.")
	assert.True(t, strings.HasSuffix(gen.prompt, "Transactions:\n"+
		"2024-01-05: Lunch (Food) - ₹200 [expense]\n"+
		"2024-01-01: Salary (Income) - ₹50000.5 [income]"))
}

func TestRequestorFallbacks(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
		want string
	}{
		{name: "empty answer", gen: &fakeGenerator{text: "  "}, want: insight.NoInsightsMessage},
		{name: "error", gen: &fakeGenerator{err: errors.New("503")}, want: insight.ErrorMessage},
		{name: "timeout", gen: &fakeGenerator{block: true}, want: insight.ErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := insight.NewRequestor(tt.gen, usd, 10*time.Millisecond)
			assert.Equal(t, tt.want, r.Analyze(context.Background(), sampleTransactions()))
		})
	}
}

func TestRequestorPromptCurrency(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	insight.NewRequestor(gen, usd, time.Second).Analyze(context.Background(), sampleTransactions())

	assert.Contains(t, gen.prompt, "(Currency: USD $)")
	assert.NotContains(t, gen.prompt, "INR")
	assert.Contains(t, gen.prompt, "Lunch (Food) - $200")
}

func TestFormatTransactionsCustomSymbol(t *testing.T) {
	r := insight.NewRequestor(&fakeGenerator{}, usd, time.Second)
	assert.Equal(t, "2024-01-05: Lunch (Food) - $200 [expense]", r.FormatTransactions(sampleTransactions()[:1]))
	assert.Equal(t, "", r.FormatTransactions(nil))
}

type fakeSession struct {
	chunks []string
	err    error
	sent   []string
}

func (s *fakeSession) SendStreaming(_ context.Context, message string) iter.Seq2[string, error] {
	s.sent = append(s.sent, message)
	return func(yield func(string, error) bool) {
		for _, c := range s.chunks {
			if !yield(c, nil) {
				return
			}
		}
		if s.err != nil {
			yield("", s.err)
		}
	}
}

type fakeProvider struct {
	session *fakeSession
	err     error
	opened  int
	prompt  string
}

func (p *fakeProvider) NewSession(_ context.Context, systemPrompt string) (insight.ChatSession, error) {
	p.opened++
	p.prompt = systemPrompt
	if p.err != nil {
		return nil, p.err
	}
	return p.session, nil
}

func collect(t *testing.T, seq iter.Seq2[string, error]) []string {
	t.Helper()
	var out []string
	for chunk, err := range seq {
		require.NoError(t, err)
		out = append(out, chunk)
	}
	return out
}

func TestAssistantStreamsAndReusesSession(t *testing.T) {
	p := &fakeProvider{session: &fakeSession{chunks: []string{"Try ", "", "a budget."}}}
	a := insight.NewAssistant(p)
	ctx := context.Background()

	assert.Equal(t, insight.GreetingMessage, a.Greeting())
	assert.Equal(t, 0, p.opened)

	assert.Equal(t, []string{"Try ", "a budget."}, collect(t, a.Send(ctx, "help")))
	collect(t, a.Send(ctx, "more"))

	assert.Equal(t, 1, p.opened)
	assert.Equal(t, insight.SystemPrompt, p.prompt)
	assert.Equal(t, []string{"help", "more"}, p.session.sent)

	a.Close()
	collect(t, a.Send(ctx, "again"))
	assert.Equal(t, 2, p.opened)
}

func TestAssistantFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("session error", func(t *testing.T) {
		a := insight.NewAssistant(&fakeProvider{err: errors.New("no network")})
		assert.Equal(t, []string{insight.FallbackMessage}, collect(t, a.Send(ctx, "hi")))
	})

	t.Run("mid-stream error keeps partial text", func(t *testing.T) {
		p := &fakeProvider{session: &fakeSession{chunks: []string{"Partial"}, err: errors.New("reset")}}
		a := insight.NewAssistant(p)
		assert.Equal(t, []string{"Partial", insight.FallbackMessage}, collect(t, a.Send(ctx, "hi")))
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		a := insight.NewAssistant(&fakeProvider{err: context.Canceled})
		var errs []error
		for _, err := range a.Send(cctx, "hi") {
			errs = append(errs, err)
		}
		require.Len(t, errs, 1)
		assert.ErrorIs(t, errs[0], context.Canceled)
	})
}

func TestAssistantStopsWhenConsumerStops(t *testing.T) {
	p := &fakeProvider{session: &fakeSession{chunks: []string{"a", "b", "c"}}}
	a := insight.NewAssistant(p)

	var got []string
	for chunk := range a.Send(context.Background(), "hi") {
		got = append(got, chunk)
		break
	}
	assert.Equal(t, []string{"a"}, got)
}
