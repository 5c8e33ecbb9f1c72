// Package session persists the signed-in user between runs as a small
// JSON key-value file.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"kopilka/internal/core"
)

const userKey = "user"

type Manager struct {
	mu   sync.Mutex
	path string
}

func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Current returns the stored user, or nil when no session exists. A
// missing or unreadable file means signed out, never an error.
func (m *Manager) Current() *core.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.load()
	if err != nil {
		return nil
	}
	raw, ok := data[userKey]
	if !ok {
		return nil
	}
	var u core.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil
	}
	if u.ID == 0 {
		return nil
	}
	return &u
}

func (m *Manager) Save(u core.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.load()
	if err != nil {
		data = map[string]json.RawMessage{}
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}
	data[userKey] = raw
	return m.flush(data)
}

func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.load()
	if err != nil {
		return nil
	}
	delete(data, userKey)
	return m.flush(data)
}

func (m *Manager) load() (map[string]json.RawMessage, error) {
	raw, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	data := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	return data, nil
}

func (m *Manager) flush(data map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal session file: %w", err)
	}
	if err := os.WriteFile(m.path, raw, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
