// Package store defines the ports to the record store holding users,
// categories and transactions. The pipeline only ever borrows read-only
// snapshots from these; it owns no records itself.
package store

import (
	"context"
	"errors"

	"kopilka/internal/core"
)

// ErrNotFound is returned when a record id matches nothing.
var ErrNotFound = errors.New("record not found")

type (
	UserStore interface {
		// FindByCredentials returns the zero-or-one user matching the
		// email+password pair. (nil, nil) means no match.
		FindByCredentials(ctx context.Context, email, password string) (*core.User, error)

		// EmailExists reports whether any user carries the email.
		EmailExists(ctx context.Context, email string) (bool, error)

		// CreateUser stores a new user; the store assigns the id.
		CreateUser(ctx context.Context, u core.User) (core.User, error)

		GetUser(ctx context.Context, id int64) (core.User, error)

		// SetCurrency patches the stored currency preference.
		SetCurrency(ctx context.Context, id int64, currency string) (core.User, error)
	}

	CategoryStore interface {
		ListCategories(ctx context.Context, userID int64) ([]core.Category, error)
		CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
		// UpdateCategory replaces the record wholesale; no partial patching.
		UpdateCategory(ctx context.Context, c core.Category) (core.Category, error)
		DeleteCategory(ctx context.Context, id int64) error
	}

	TransactionStore interface {
		ListTransactions(ctx context.Context, userID int64) ([]core.Transaction, error)
		CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		// UpdateTransaction replaces the record wholesale.
		UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
		DeleteTransaction(ctx context.Context, id int64) error
	}

	// Store is the full record API a backend provides.
	Store interface {
		UserStore
		CategoryStore
		TransactionStore
	}
)
