package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"kopilka/internal/amqp"
	"kopilka/internal/core"
	"kopilka/internal/store"
)

var (
	ErrCategoryNotFound = errors.New("category does not exist")
	ErrTypeMismatch     = errors.New("transaction type does not match category type")
)

// EventPublisher fans out ledger change events. Publishing is best
// effort, the write has already been committed when it runs.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event *amqp.LedgerEvent) error
}

// LedgerService owns category and transaction writes. Every amount is
// normalized to the base currency before it reaches the store.
type LedgerService struct {
	store     store.Store
	publisher EventPublisher
	rates     core.RateTable
}

func NewLedgerService(st store.Store, publisher EventPublisher, rates core.RateTable) *LedgerService {
	if rates == nil {
		rates = core.DefaultRates()
	}
	return &LedgerService{store: st, publisher: publisher, rates: rates}
}

func (s *LedgerService) Categories(ctx context.Context, userID int64) ([]core.Category, error) {
	cats, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (s *LedgerService) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	if c.Icon == "" {
		c.Icon = core.DefaultIcon
	}
	if c.Color == "" {
		c.Color = core.DefaultColor
	}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}

	created, err := s.store.CreateCategory(ctx, c)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	s.publish(ctx, "category", "create", created.ID, created.UserID)
	return created, nil
}

func (s *LedgerService) UpdateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}

	updated, err := s.store.UpdateCategory(ctx, c)
	if err != nil {
		return core.Category{}, fmt.Errorf("update category: %w", err)
	}
	s.publish(ctx, "category", "update", updated.ID, updated.UserID)
	return updated, nil
}

// DeleteCategory removes the category even while transactions still
// reference it; those transactions keep counting toward totals as
// orphans.
func (s *LedgerService) DeleteCategory(ctx context.Context, userID, id int64) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	s.publish(ctx, "category", "delete", id, userID)
	return nil
}

func (s *LedgerService) Transactions(ctx context.Context, userID int64) ([]core.Transaction, error) {
	txns, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}

// CreateTransaction validates against the category and converts the
// amount from the given display currency to the base currency before
// persisting. An empty currency means the amount is already in base.
func (s *LedgerService) CreateTransaction(ctx context.Context, t core.Transaction, currency string) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if err := s.checkCategory(ctx, t); err != nil {
		return core.Transaction{}, err
	}

	amount, err := s.normalizeAmount(t.Amount, currency)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Amount = amount

	created, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	s.publish(ctx, "transaction", "create", created.ID, created.UserID)
	return created, nil
}

func (s *LedgerService) UpdateTransaction(ctx context.Context, t core.Transaction, currency string) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if err := s.checkCategory(ctx, t); err != nil {
		return core.Transaction{}, err
	}

	amount, err := s.normalizeAmount(t.Amount, currency)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Amount = amount

	updated, err := s.store.UpdateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	s.publish(ctx, "transaction", "update", updated.ID, updated.UserID)
	return updated, nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, userID, id int64) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.publish(ctx, "transaction", "delete", id, userID)
	return nil
}

func (s *LedgerService) checkCategory(ctx context.Context, t core.Transaction) error {
	cats, err := s.store.ListCategories(ctx, t.UserID)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	for _, c := range cats {
		if c.ID == t.CategoryID {
			if c.Type != t.Type {
				return ErrTypeMismatch
			}
			return nil
		}
	}
	return ErrCategoryNotFound
}

func (s *LedgerService) normalizeAmount(amount float64, currency string) (float64, error) {
	if currency == "" || currency == core.BaseCurrency {
		return amount, nil
	}
	base, err := core.ToBase(amount, s.rates, currency)
	if err != nil {
		return 0, fmt.Errorf("normalize amount from %s: %w", currency, err)
	}
	return base, nil
}

func (s *LedgerService) publish(ctx context.Context, entity, op string, id, userID int64) {
	if s.publisher == nil {
		return
	}
	event := amqp.NewLedgerEvent(entity, op, id, userID)
	if err := s.publisher.PublishLedgerEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"entity", entity, "op", op, "id", id, "error", err)
	}
}
