package session

import (
	"os"
	"path/filepath"
	"testing"

	"kopilka/internal/core"
)

func TestSaveAndCurrent(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "session.json"))

	if u := m.Current(); u != nil {
		t.Errorf("Current = %+v, want nil before save", u)
	}

	want := core.User{ID: 3, Email: "a@b.com", Currency: "RUB"}
	if err := m.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := m.Current()
	if got == nil {
		t.Fatal("Current = nil after save")
	}
	if got.ID != want.ID || got.Email != want.Email || got.Currency != want.Currency {
		t.Errorf("Current = %+v, want %+v", got, want)
	}
}

func TestClear(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "session.json"))

	if err := m.Save(core.User{ID: 1, Email: "a@b.com"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if u := m.Current(); u != nil {
		t.Errorf("Current = %+v, want nil after clear", u)
	}
}

func TestCorruptFileMeansSignedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	m := NewManager(path)
	if u := m.Current(); u != nil {
		t.Errorf("Current = %+v, want nil for corrupt file", u)
	}

	// A save replaces the corrupt file and recovers the session
	if err := m.Save(core.User{ID: 2, Email: "b@c.com"}); err != nil {
		t.Fatalf("Save after corruption: %v", err)
	}
	if u := m.Current(); u == nil || u.ID != 2 {
		t.Errorf("Current = %+v, want recovered user", u)
	}
}

func TestClearWithoutFileIsNoop(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing", "session.json"))
	if err := m.Clear(); err != nil {
		t.Errorf("Clear: %v", err)
	}
}
