// Package worker consumes ledger events and exports fresh stats
// snapshots.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kopilka/internal/amqp"
	"kopilka/internal/core"
	"kopilka/internal/derive"
	"kopilka/internal/export"
)

// Overviewer recomputes the derived view for a user. Satisfied by
// services.StatsService.
type Overviewer interface {
	Overview(ctx context.Context, userID int64, criteria core.Criteria, currency string) (derive.View, error)
	Invalidate()
}

// ExportWorker reacts to ledger events: it recomputes the affected
// user's totals and appends a snapshot to the configured sink.
type ExportWorker struct {
	stats  Overviewer
	writer export.StatsWriter
}

func NewExportWorker(stats Overviewer, writer export.StatsWriter) *ExportWorker {
	return &ExportWorker{stats: stats, writer: writer}
}

// HandleLedgerEvent processes a single ledger event. Returning an error
// requeues the delivery.
func (w *ExportWorker) HandleLedgerEvent(ctx context.Context, event *amqp.LedgerEvent) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"entity", event.Entity,
		"op", event.Op,
		"id", event.ID,
		"user_id", event.UserID)

	// The event marks the collections stale
	w.stats.Invalidate()

	view, err := w.stats.Overview(ctx, event.UserID, core.Criteria{}, "")
	if err != nil {
		return fmt.Errorf("recompute overview: %w", err)
	}

	snapshot := export.Snapshot{
		UserID:    event.UserID,
		Income:    view.Breakdown.Totals.Income,
		Expense:   view.Breakdown.Totals.Expense,
		Balance:   view.Breakdown.Totals.Balance,
		Currency:  core.BaseCurrency,
		Timestamp: time.Now(),
	}
	if err := w.writer.AppendSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("append snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Exported stats snapshot",
		"user_id", event.UserID,
		"balance", snapshot.Balance)
	return nil
}
