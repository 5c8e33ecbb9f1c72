package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"kopilka/internal/core"
	"kopilka/internal/derive"
	"kopilka/internal/store"
)

// StatsService assembles the derived view for a user: it fetches both
// collections concurrently, runs the pipeline and returns the result.
type StatsService struct {
	store    store.Store
	pipeline *derive.Pipeline
	rates    core.RateTable
}

func NewStatsService(st store.Store, rates core.RateTable) *StatsService {
	if rates == nil {
		rates = core.DefaultRates()
	}
	return &StatsService{
		store:    st,
		pipeline: derive.NewPipeline(64, 5*time.Minute),
		rates:    rates,
	}
}

// Overview computes the derived view for the user's records under the
// given criteria and display currency.
func (s *StatsService) Overview(ctx context.Context, userID int64, criteria core.Criteria, currency string) (derive.View, error) {
	var (
		txns []core.Transaction
		cats []core.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.store.ListTransactions(gctx, userID)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		cats, err = s.store.ListCategories(gctx, userID)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return derive.View{}, err
	}

	return s.pipeline.View(derive.Inputs{
		Transactions: txns,
		Categories:   cats,
		Criteria:     criteria,
		Currency:     currency,
		Rates:        s.rates,
	}), nil
}

// Invalidate drops memoized views; callers invoke it after any write to
// the underlying collections.
func (s *StatsService) Invalidate() {
	s.pipeline.Invalidate()
}

// Rates exposes the configured rate table.
func (s *StatsService) Rates() core.RateTable {
	return s.rates
}
