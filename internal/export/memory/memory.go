// Package memory records snapshots in memory, used in tests and when
// no external sink is configured.
package memory

import (
	"context"
	"sync"

	"kopilka/internal/export"
)

type Writer struct {
	mu        sync.Mutex
	snapshots []export.Snapshot
}

var _ export.StatsWriter = (*Writer)(nil)

func New() *Writer {
	return &Writer{}
}

func (w *Writer) AppendSnapshot(_ context.Context, s export.Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.snapshots = append(w.snapshots, s)
	return nil
}

// Snapshots returns a copy of everything appended so far.
func (w *Writer) Snapshots() []export.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]export.Snapshot, len(w.snapshots))
	copy(out, w.snapshots)
	return out
}
