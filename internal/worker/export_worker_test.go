package worker

import (
	"context"
	"errors"
	"testing"

	"kopilka/internal/amqp"
	"kopilka/internal/core"
	"kopilka/internal/export"
	exportmemory "kopilka/internal/export/memory"
	"kopilka/internal/services"
	storememory "kopilka/internal/store/memory"
)

func seedStats(t *testing.T) *services.StatsService {
	t.Helper()
	ctx := context.Background()
	st := storememory.New()

	salary, err := st.CreateCategory(ctx, core.Category{Name: "Зарплата", Type: core.Income, Icon: "salary", UserID: 1})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	food, err := st.CreateCategory(ctx, core.Category{Name: "Продукты", Type: core.Expense, Icon: "groceries", UserID: 1})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	for _, txn := range []core.Transaction{
		{Type: core.Income, Amount: 500, CategoryID: salary.ID, Date: core.NewDate(2024, 3, 1), UserID: 1},
		{Type: core.Expense, Amount: 150, CategoryID: food.ID, Date: core.NewDate(2024, 3, 2), UserID: 1},
	} {
		if _, err := st.CreateTransaction(ctx, txn); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return services.NewStatsService(st, core.DefaultRates())
}

func TestHandleLedgerEventAppendsSnapshot(t *testing.T) {
	stats := seedStats(t)
	sink := exportmemory.New()
	w := NewExportWorker(stats, sink)

	event := amqp.NewLedgerEvent("transaction", "create", 2, 1)
	if err := w.HandleLedgerEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleLedgerEvent: %v", err)
	}

	snaps := sink.Snapshots()
	if len(snaps) != 1 {
		t.Fatalf("appended %d snapshots, want 1", len(snaps))
	}
	s := snaps[0]
	if s.UserID != 1 {
		t.Errorf("user = %d, want 1", s.UserID)
	}
	if s.Income != 500 || s.Expense != 150 || s.Balance != 350 {
		t.Errorf("snapshot = %+v, want 500/150/350", s)
	}
	if s.Currency != core.BaseCurrency {
		t.Errorf("currency = %q, want base", s.Currency)
	}
}

func TestHandleLedgerEventWriterFailure(t *testing.T) {
	stats := seedStats(t)
	w := NewExportWorker(stats, failingWriter{})

	event := amqp.NewLedgerEvent("transaction", "delete", 2, 1)
	if err := w.HandleLedgerEvent(context.Background(), event); err == nil {
		t.Fatal("expected error when sink fails")
	}
}

type failingWriter struct{}

func (failingWriter) AppendSnapshot(context.Context, export.Snapshot) error {
	return errors.New("sink unavailable")
}
