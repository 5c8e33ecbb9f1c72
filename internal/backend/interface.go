// Package backend selects and builds the record store implementation.
package backend

import (
	"context"
	"time"

	"kopilka/internal/store"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result holds the built store and an optional cleanup function.
type Result struct {
	Store   store.Store
	Cleanup CleanupFunc
}

// Factory creates record stores based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds everything any backend type may need.
type Config struct {
	Type Type

	// REST backend
	StoreURL     string
	StoreTimeout time.Duration

	// SQLite backend
	SQLiteDBPath string
}

type Type string

const (
	RESTBackend   Type = "rest"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case RESTBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
