// Package export defines the ports for pushing stats snapshots to
// external sinks.
package export

import (
	"context"
	"time"
)

// Snapshot is one exported stats row: the totals for a user at a point
// in time, in the base currency.
type Snapshot struct {
	UserID    int64
	Income    float64
	Expense   float64
	Balance   float64
	Currency  string
	Timestamp time.Time
}

// StatsWriter appends stats snapshots to a sink.
type StatsWriter interface {
	AppendSnapshot(ctx context.Context, s Snapshot) error
}
