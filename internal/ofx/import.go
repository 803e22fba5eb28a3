package ofx

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/budgetbuddy/internal/ledger"
)

// Adder is the part of a ledger an import writes to.
type Adder interface {
	AddTransaction(ctx context.Context, d ledger.Draft) (ledger.AddResult, error)
}

// ImportResult summarizes an Import call.
type ImportResult struct {
	Added      int
	Duplicates int
	Rejected   int
	Breaches   int
}

// Import adds entries to dst in statement order. Statements list lines oldest
// first and the ledger prepends, so the newest line ends up first. Entries
// whose Key was seen earlier in the same call are counted as duplicates. With
// dryRun set nothing is written.
func Import(ctx context.Context, dst Adder, entries []Entry, dryRun bool) (ImportResult, error) {
	var res ImportResult
	seen := make(map[string]bool, len(entries))

	for _, e := range entries {
		if seen[e.Key()] {
			res.Duplicates++
			continue
		}
		seen[e.Key()] = true

		if dryRun {
			res.Added++
			continue
		}

		added, err := dst.AddTransaction(ctx, e.Draft)
		if err != nil {
			return res, fmt.Errorf("failed to add transaction %s: %w", e.FITID, err)
		}
		if !added.Added {
			slog.Warn("OFX line rejected", "fitid", e.FITID, "description", e.Draft.Description)
			res.Rejected++
			continue
		}
		res.Added++
		if added.Breach.Any() {
			res.Breaches++
		}
	}
	return res, nil
}
