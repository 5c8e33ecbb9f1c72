// Package derive recomputes the presentation views whenever the raw
// collections, the filter criteria, the selected currency or the rate table
// change. The computation itself is pure and total: the same inputs always
// yield the same view, and missing inputs degrade to empty aggregates and
// zero totals instead of an error.
package derive

import (
	"time"

	"kopilka/internal/cache"
	"kopilka/internal/core"
)

// Inputs is an immutable snapshot of everything a view depends on. The
// pipeline borrows the slices read-only and never mutates them.
type Inputs struct {
	Transactions []core.Transaction
	Categories   []core.Category
	Criteria     core.Criteria
	Currency     string
	Rates        core.RateTable
}

// View is the derived output: the filtered list, the base-currency
// breakdown and the same breakdown converted into the selected currency.
type View struct {
	Filtered  []core.Transaction `json:"transactions"`
	Breakdown core.Breakdown     `json:"breakdown"`
	Display   core.Breakdown     `json:"display"`
	Currency  string             `json:"currency"`
}

// Compute runs the full dependency chain: filtered transactions from
// {transactions, criteria}, breakdown from {filtered, categories}, display
// figures from {breakdown, currency, rates}.
func Compute(in Inputs) View {
	currency := in.Currency
	if currency == "" {
		currency = core.BaseCurrency
	}
	filtered := core.Filter(in.Transactions, in.Criteria)
	breakdown := core.Aggregate(filtered, in.Categories)
	return View{
		Filtered:  filtered,
		Breakdown: breakdown,
		Display:   core.ConvertBreakdown(breakdown, in.Rates, currency),
		Currency:  currency,
	}
}

// Pipeline memoizes Compute on a structural fingerprint of the inputs, so a
// recomputation triggered by an unchanged snapshot is a cache hit.
type Pipeline struct {
	memo *cache.LRU[View]
}

func NewPipeline(maxEntries int, ttl time.Duration) *Pipeline {
	return &Pipeline{memo: cache.NewLRU[View](maxEntries, ttl)}
}

func (p *Pipeline) View(in Inputs) View {
	key := Fingerprint(in)
	if v, ok := p.memo.Get(key); ok {
		return v
	}
	v := Compute(in)
	p.memo.Set(key, v)
	return v
}

// Invalidate drops every memoized view; called after a mutation to the
// underlying collections.
func (p *Pipeline) Invalidate() {
	p.memo.Purge()
}
