package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/budgetbuddy/internal/ledger"
	"github.com/mmynk/budgetbuddy/internal/models"
	"github.com/mmynk/budgetbuddy/internal/storage"
	"github.com/mmynk/budgetbuddy/internal/storage/memory"
)

const userID = "user-1"

var fixedNow = time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []ledger.BreachAlert
	err    error
}

func (n *recordingNotifier) BudgetBreached(_ context.Context, alert ledger.BreachAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
	return n.err
}

type failingGateway struct {
	*memory.Gateway
	fail bool
}

func (g *failingGateway) Set(ctx context.Context, key, value string) error {
	if g.fail {
		return errors.New("quota exceeded")
	}
	return g.Gateway.Set(ctx, key, value)
}

func newLedger(t *testing.T, opts ...ledger.Option) (*ledger.Ledger, *memory.Gateway) {
	t.Helper()
	gw := memory.New()
	opts = append([]ledger.Option{ledger.WithClock(func() time.Time { return fixedNow })}, opts...)
	l, err := ledger.Open(context.Background(), storage.NewRepository(gw), userID, opts...)
	require.NoError(t, err)
	return l, gw
}

func lunch() ledger.Draft {
	return ledger.Draft{Description: "Lunch", Amount: "200", Date: "2024-01-05", Category: "Food", Type: "expense"}
}

func TestAddTransactionDefaultTemplate(t *testing.T) {
	l, gw := newLedger(t)
	ctx := context.Background()

	res, err := l.AddTransaction(ctx, lunch())
	require.NoError(t, err)
	require.True(t, res.Added)
	assert.Equal(t, "1704456000000", res.Transaction.ID)
	assert.False(t, res.Breach.Any())

	snap := l.Snapshot()
	assert.Equal(t, "200", snap.TotalExpense.String())
	assert.Equal(t, "-200", snap.CurrentBalance.String())
	require.Len(t, snap.ExpensesByCategory, 1)
	assert.Equal(t, "Food", snap.ExpensesByCategory[0].Name)
	assert.Equal(t, "200", snap.ExpensesByCategory[0].Value.String())

	// write-through
	stored, err := storage.NewRepository(gw).UserData(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, l.Transactions(), stored.Transactions)
}

func TestAddTransactionPrependsWithUniqueIDs(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()

	first, err := l.AddTransaction(ctx, lunch())
	require.NoError(t, err)
	d := lunch()
	d.Description = "Dinner"
	second, err := l.AddTransaction(ctx, d)
	require.NoError(t, err)

	assert.NotEqual(t, first.Transaction.ID, second.Transaction.ID)
	txs := l.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, "Dinner", txs[0].Description)
	assert.Equal(t, "Lunch", txs[1].Description)
}

func TestAddTransactionRejectsInvalidDrafts(t *testing.T) {
	tests := []struct {
		name  string
		draft func(d *ledger.Draft)
	}{
		{name: "blank description", draft: func(d *ledger.Draft) { d.Description = "  " }},
		{name: "empty amount", draft: func(d *ledger.Draft) { d.Amount = "" }},
		{name: "unparseable amount", draft: func(d *ledger.Draft) { d.Amount = "abc" }},
		{name: "zero amount", draft: func(d *ledger.Draft) { d.Amount = "0" }},
		{name: "negative amount", draft: func(d *ledger.Draft) { d.Amount = "-5" }},
		{name: "infinite amount", draft: func(d *ledger.Draft) { d.Amount = "Inf" }},
		{name: "empty date", draft: func(d *ledger.Draft) { d.Date = "" }},
		{name: "unparseable date", draft: func(d *ledger.Draft) { d.Date = "yesterday" }},
		{name: "unknown type", draft: func(d *ledger.Draft) { d.Type = "transfer" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, gw := newLedger(t)
			d := lunch()
			tt.draft(&d)

			res, err := l.AddTransaction(context.Background(), d)
			require.NoError(t, err)
			assert.False(t, res.Added)
			assert.Empty(t, l.Transactions())
			assert.Equal(t, 0, gw.Len())
		})
	}
}

func TestAddTransactionDefaultsToSelectedCategory(t *testing.T) {
	l, _ := newLedger(t)
	require.NoError(t, l.SelectCategory("Transport"))

	d := lunch()
	d.Category = ""
	res, err := l.AddTransaction(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "Transport", res.Transaction.Category)
}

func TestAddTransactionBreaches(t *testing.T) {
	ctx := context.Background()

	t.Run("custom limit", func(t *testing.T) {
		n := &recordingNotifier{}
		l, _ := newLedger(t, ledger.WithNotifier(n))
		require.NoError(t, l.SetBudgetMode(ctx, models.BudgetCustom))
		require.NoError(t, l.SetCustomLimit(ctx, "500"))

		d := lunch()
		d.Amount = "400"
		res, err := l.AddTransaction(ctx, d)
		require.NoError(t, err)
		assert.False(t, res.Breach.Any())

		d.Amount = "200"
		res, err = l.AddTransaction(ctx, d)
		require.NoError(t, err)
		assert.True(t, res.Added)
		assert.True(t, res.Breach.Global)

		snap := l.Snapshot()
		assert.True(t, snap.IsOverBudget)
		assert.Equal(t, 100.0, snap.BudgetUsagePercent)

		require.Len(t, n.alerts, 1)
		assert.Equal(t, userID, n.alerts[0].UserID)
		assert.Equal(t, res.Transaction.ID, n.alerts[0].TransactionID)
		assert.True(t, n.alerts[0].Global)
		assert.Equal(t, 200.0, n.alerts[0].Amount)
	})

	t.Run("category limit", func(t *testing.T) {
		n := &recordingNotifier{}
		l, _ := newLedger(t, ledger.WithNotifier(n))
		_, err := l.AddTransaction(ctx, ledger.Draft{Description: "Salary", Amount: "5000", Date: "2024-01-01", Category: "Income", Type: "income"})
		require.NoError(t, err)
		require.NoError(t, l.SetCategoryLimit(ctx, "Food", "150"))

		res, err := l.AddTransaction(ctx, lunch())
		require.NoError(t, err)
		assert.Equal(t, "Food", res.Breach.Category)
		assert.False(t, res.Breach.Global)

		snap := l.Snapshot()
		assert.False(t, snap.IsOverBudget)
		assert.True(t, snap.IsCategoryOver("Food"))
		require.Len(t, n.alerts, 1)
		assert.Equal(t, "Food", n.alerts[0].Category)
	})

	t.Run("notifier failure keeps transaction", func(t *testing.T) {
		n := &recordingNotifier{err: errors.New("broker down")}
		l, _ := newLedger(t, ledger.WithNotifier(n))
		require.NoError(t, l.SetCategoryLimit(ctx, "Food", "100"))

		res, err := l.AddTransaction(ctx, lunch())
		require.NoError(t, err)
		assert.True(t, res.Added)
		assert.Len(t, l.Transactions(), 1)
	})

	t.Run("notifier runs without the ledger lock", func(t *testing.T) {
		n := &callbackNotifier{}
		l, _ := newLedger(t, ledger.WithNotifier(n))
		require.NoError(t, l.SetCategoryLimit(ctx, "Food", "100"))

		// A slow broker must not block readers of the same ledger.
		readable := make(chan bool, 1)
		n.fn = func() {
			done := make(chan struct{})
			go func() {
				l.Transactions()
				close(done)
			}()
			select {
			case <-done:
				readable <- true
			case <-time.After(2 * time.Second):
				readable <- false
			}
		}

		res, err := l.AddTransaction(ctx, lunch())
		require.NoError(t, err)
		assert.True(t, res.Breach.Any())
		assert.True(t, <-readable)
	})
}

type callbackNotifier struct {
	fn func()
}

func (n *callbackNotifier) BudgetBreached(context.Context, ledger.BreachAlert) error {
	n.fn()
	return nil
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()
	l, gw := newLedger(t)
	res, err := l.AddTransaction(ctx, lunch())
	require.NoError(t, err)
	_, err = l.AddTransaction(ctx, ledger.Draft{Description: "Bus", Amount: "30", Date: "2024-01-06", Category: "Transport", Type: "expense"})
	require.NoError(t, err)

	t.Run("unchanged is byte identical", func(t *testing.T) {
		before, _, err := gw.Get(ctx, storage.DataKey(userID))
		require.NoError(t, err)

		require.NoError(t, l.UpdateTransaction(ctx, res.Transaction))

		after, _, err := gw.Get(ctx, storage.DataKey(userID))
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("keeps position", func(t *testing.T) {
		tx := res.Transaction
		tx.Amount = 250
		require.NoError(t, l.UpdateTransaction(ctx, tx))

		txs := l.Transactions()
		require.Len(t, txs, 2)
		assert.Equal(t, tx, txs[1])
	})

	t.Run("unknown id", func(t *testing.T) {
		tx := res.Transaction
		tx.ID = "missing"
		assert.ErrorIs(t, l.UpdateTransaction(ctx, tx), ledger.ErrTransactionNotFound)
	})

	t.Run("invalid amount", func(t *testing.T) {
		tx := res.Transaction
		tx.Amount = -1
		assert.ErrorIs(t, l.UpdateTransaction(ctx, tx), ledger.ErrInvalidTransaction)
	})
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)
	res, err := l.AddTransaction(ctx, lunch())
	require.NoError(t, err)

	require.NoError(t, l.DeleteTransaction(ctx, "missing"))
	assert.Len(t, l.Transactions(), 1)

	require.NoError(t, l.DeleteTransaction(ctx, res.Transaction.ID))
	assert.Empty(t, l.Transactions())
}

func TestFailedWriteLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	gw := &failingGateway{Gateway: memory.New()}
	l, err := ledger.Open(ctx, storage.NewRepository(gw), userID)
	require.NoError(t, err)

	gw.fail = true
	_, err = l.AddTransaction(ctx, lunch())
	require.Error(t, err)
	assert.Empty(t, l.Transactions())

	err = l.AddCategory(ctx, "Travel")
	require.Error(t, err)
	assert.NotContains(t, l.Categories(), "Travel")
}

func TestManagerCachesLedgers(t *testing.T) {
	ctx := context.Background()
	m := ledger.NewManager(storage.NewRepository(memory.New()))

	a, err := m.Get(ctx, "a")
	require.NoError(t, err)
	again, err := m.Get(ctx, "a")
	require.NoError(t, err)
	b, err := m.Get(ctx, "b")
	require.NoError(t, err)

	assert.Same(t, a, again)
	assert.NotSame(t, a, b)

	m.Forget("a")
	reloaded, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.NotSame(t, a, reloaded)
}

func TestConcurrentAddsAreSerialized(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.AddTransaction(ctx, lunch())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	txs := l.Transactions()
	require.Len(t, txs, 20)
	seen := map[string]bool{}
	for _, tx := range txs {
		assert.False(t, seen[tx.ID], "duplicate id %s", tx.ID)
		seen[tx.ID] = true
	}
}
