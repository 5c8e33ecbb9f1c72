// Package services orchestrates the record store, session, derived
// state and event publishing behind the HTTP surface.
package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"kopilka/internal/core"
	"kopilka/internal/session"
	"kopilka/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotSignedIn        = errors.New("not signed in")
)

// AuthService signs users in and out and keeps the session file in
// step with the record store.
type AuthService struct {
	users    store.UserStore
	cats     store.CategoryStore
	sessions *session.Manager
}

func NewAuthService(users store.UserStore, cats store.CategoryStore, sessions *session.Manager) *AuthService {
	return &AuthService{users: users, cats: cats, sessions: sessions}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (core.User, error) {
	u := core.User{Email: email, Password: password}
	if err := u.Validate(); err != nil {
		return core.User{}, err
	}

	found, err := s.users.FindByCredentials(ctx, email, password)
	if err != nil {
		return core.User{}, fmt.Errorf("look up credentials: %w", err)
	}
	if found == nil {
		return core.User{}, ErrInvalidCredentials
	}

	if err := s.sessions.Save(*found); err != nil {
		return core.User{}, fmt.Errorf("save session: %w", err)
	}
	return *found, nil
}

// Register creates the account, seeds the starter categories and signs
// the new user in.
func (s *AuthService) Register(ctx context.Context, email, password string) (core.User, error) {
	u := core.User{Email: email, Password: password}
	if err := u.Validate(); err != nil {
		return core.User{}, err
	}

	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return core.User{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return core.User{}, ErrEmailTaken
	}

	created, err := s.users.CreateUser(ctx, core.User{
		Email:    email,
		Password: password,
		Currency: core.BaseCurrency,
	})
	if err != nil {
		return core.User{}, fmt.Errorf("create user: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, cat := range core.StarterCategories(created.ID) {
		g.Go(func() error {
			if _, err := s.cats.CreateCategory(gctx, cat); err != nil {
				return fmt.Errorf("seed category %q: %w", cat.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return core.User{}, err
	}

	if err := s.sessions.Save(created); err != nil {
		return core.User{}, fmt.Errorf("save session: %w", err)
	}
	return created, nil
}

func (s *AuthService) Logout() error {
	return s.sessions.Clear()
}

// Current returns the signed-in user or ErrNotSignedIn.
func (s *AuthService) Current() (core.User, error) {
	u := s.sessions.Current()
	if u == nil {
		return core.User{}, ErrNotSignedIn
	}
	return *u, nil
}

// SetCurrency updates the user's display currency preference and keeps
// the session copy current.
func (s *AuthService) SetCurrency(ctx context.Context, currency string) (core.User, error) {
	current, err := s.Current()
	if err != nil {
		return core.User{}, err
	}

	updated, err := s.users.SetCurrency(ctx, current.ID, currency)
	if err != nil {
		return core.User{}, fmt.Errorf("update currency: %w", err)
	}

	if err := s.sessions.Save(updated); err != nil {
		return core.User{}, fmt.Errorf("save session: %w", err)
	}
	return updated, nil
}
