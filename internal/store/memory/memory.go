// Package memory keeps the record collections in process memory. It backs
// tests and local development where no external store is running.
package memory

import (
	"context"
	"fmt"
	"sync"

	"kopilka/internal/core"
	"kopilka/internal/store"
)

type Store struct {
	mu           sync.Mutex
	users        []core.User
	categories   []core.Category
	transactions []core.Transaction
	nextID       int64
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{nextID: 1}
}

func (s *Store) assignID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) FindByCredentials(_ context.Context, email, password string) (*core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email && u.Password == password {
			match := u
			return &match, nil
		}
	}
	return nil, nil
}

func (s *Store) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreateUser(_ context.Context, u core.User) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.assignID()
	if u.Currency == "" {
		u.Currency = core.BaseCurrency
	}
	s.users = append(s.users, u)
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id int64) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return core.User{}, fmt.Errorf("user %d: %w", id, store.ErrNotFound)
}

func (s *Store) SetCurrency(_ context.Context, id int64, currency string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users[i].Currency = currency
			return s.users[i], nil
		}
	}
	return core.User{}, fmt.Errorf("user %d: %w", id, store.ErrNotFound)
}

func (s *Store) ListCategories(_ context.Context, userID int64) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Category, 0)
	for _, c := range s.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) CreateCategory(_ context.Context, c core.Category) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.assignID()
	s.categories = append(s.categories, c)
	return c, nil
}

func (s *Store) UpdateCategory(_ context.Context, c core.Category) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.categories {
		if existing.ID == c.ID {
			s.categories[i] = c
			return c, nil
		}
	}
	return core.Category{}, fmt.Errorf("category %d: %w", c.ID, store.ErrNotFound)
}

func (s *Store) DeleteCategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("category %d: %w", id, store.ErrNotFound)
}

func (s *Store) ListTransactions(_ context.Context, userID int64) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, 0)
	for _, t := range s.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) CreateTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.assignID()
	s.transactions = append(s.transactions, t)
	return t, nil
}

func (s *Store) UpdateTransaction(_ context.Context, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.transactions {
		if existing.ID == t.ID {
			s.transactions[i] = t
			return t, nil
		}
	}
	return core.Transaction{}, fmt.Errorf("transaction %d: %w", t.ID, store.ErrNotFound)
}

func (s *Store) DeleteTransaction(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.transactions {
		if t.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("transaction %d: %w", id, store.ErrNotFound)
}
