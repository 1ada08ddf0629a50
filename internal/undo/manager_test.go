// internal/undo/manager_test.go
package undo

import (
	"errors"
	"testing"

	"github.com/tamzrod/extcontrol/internal/kv"
)

// ---- failing store ----

type failingStore struct {
	*kv.Memory
	failApply bool
}

func (f *failingStore) Apply(writes []kv.Write) error {
	if f.failApply {
		return errors.New("disk full")
	}
	return f.Memory.Apply(writes)
}

func get(t *testing.T, s kv.Store, key string) (string, bool) {
	t.Helper()
	v, ok, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get(%q) err=%v", key, err)
	}
	return v, ok
}

// ---- tests ----

func TestRecordChanges_AppliesAndRecords(t *testing.T) {
	store := kv.NewMemory(nil)
	m := NewManager(store, Config{})

	tx := NewTransaction("master",
		kv.Set("MASTER_NAME", "B"),
		kv.Set("MASTER", "10.0.0.2"),
		kv.Set("PORT", "50003"),
	)
	if err := m.RecordChanges(tx); err != nil {
		t.Fatalf("RecordChanges err=%v", err)
	}

	if v, _ := get(t, store, "MASTER"); v != "10.0.0.2" {
		t.Fatalf("MASTER=%q", v)
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 history entry, got %d", m.Len())
	}
	if h := m.History(); h[0].ID != tx.ID {
		t.Fatalf("history does not carry the recorded transaction")
	}
}

func TestUndoRedo_RestoresAllFieldsTogether(t *testing.T) {
	store := kv.NewMemory(map[string]string{
		"MASTER_NAME": "A",
		"MASTER":      "10.0.0.1",
		"PORT":        "50002",
	})
	m := NewManager(store, Config{})

	if err := m.RecordChanges(NewTransaction("master",
		kv.Set("MASTER_NAME", "B"),
		kv.Set("MASTER", "10.0.0.2"),
		kv.Set("PORT", "50003"),
	)); err != nil {
		t.Fatalf("RecordChanges err=%v", err)
	}

	if _, ok, err := m.Undo(); err != nil || !ok {
		t.Fatalf("Undo ok=%v err=%v", ok, err)
	}
	for key, want := range map[string]string{"MASTER_NAME": "A", "MASTER": "10.0.0.1", "PORT": "50002"} {
		if v, _ := get(t, store, key); v != want {
			t.Fatalf("after undo %s=%q want %q", key, v, want)
		}
	}
	if !m.CanRedo() {
		t.Fatalf("expected redo to be available")
	}

	if _, ok, err := m.Redo(); err != nil || !ok {
		t.Fatalf("Redo ok=%v err=%v", ok, err)
	}
	for key, want := range map[string]string{"MASTER_NAME": "B", "MASTER": "10.0.0.2", "PORT": "50003"} {
		if v, _ := get(t, store, key); v != want {
			t.Fatalf("after redo %s=%q want %q", key, v, want)
		}
	}
}

func TestUndo_RemovesKeysThatDidNotExist(t *testing.T) {
	store := kv.NewMemory(nil)
	m := NewManager(store, Config{})

	if err := m.RecordChanges(NewTransaction("set", kv.Set("maxlostpackages", "50"))); err != nil {
		t.Fatalf("RecordChanges err=%v", err)
	}
	if _, _, err := m.Undo(); err != nil {
		t.Fatalf("Undo err=%v", err)
	}
	if _, ok := get(t, store, "maxlostpackages"); ok {
		t.Fatalf("undo must remove a key that was absent before")
	}
}

func TestUndo_EmptyHistory(t *testing.T) {
	m := NewManager(kv.NewMemory(nil), Config{})

	if _, ok, err := m.Undo(); ok || err != nil {
		t.Fatalf("Undo on empty history: ok=%v err=%v", ok, err)
	}
	if _, ok, err := m.Redo(); ok || err != nil {
		t.Fatalf("Redo on empty history: ok=%v err=%v", ok, err)
	}
}

func TestRecordChanges_ClearsRedo(t *testing.T) {
	m := NewManager(kv.NewMemory(nil), Config{})

	_ = m.RecordChanges(NewTransaction("a", kv.Set("k", "1")))
	_, _, _ = m.Undo()
	_ = m.RecordChanges(NewTransaction("b", kv.Set("k", "2")))

	if m.CanRedo() {
		t.Fatalf("new transaction must clear the redo stack")
	}
}

func TestRecordChanges_RejectsEmpty(t *testing.T) {
	m := NewManager(kv.NewMemory(nil), Config{})

	if err := m.RecordChanges(Transaction{Label: "nothing"}); !errors.Is(err, ErrEmptyTransaction) {
		t.Fatalf("expected ErrEmptyTransaction, got %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("empty transaction must not be recorded")
	}
}

func TestRecordChanges_StoreFailureLeavesHistory(t *testing.T) {
	store := &failingStore{Memory: kv.NewMemory(nil), failApply: true}
	m := NewManager(store, Config{})

	if err := m.RecordChanges(NewTransaction("set", kv.Set("k", "v"))); err == nil {
		t.Fatalf("expected store error")
	}
	if m.Len() != 0 {
		t.Fatalf("failed transaction must not be recorded")
	}
}

func TestLimit_DropsOldest(t *testing.T) {
	m := NewManager(kv.NewMemory(nil), Config{Limit: 2})

	for _, v := range []string{"1", "2", "3"} {
		if err := m.RecordChanges(NewTransaction("set "+v, kv.Set("k", v))); err != nil {
			t.Fatalf("RecordChanges err=%v", err)
		}
	}

	h := m.History()
	if len(h) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(h))
	}
	if h[0].Label != "set 2" || h[1].Label != "set 3" {
		t.Fatalf("unexpected history order: %q, %q", h[0].Label, h[1].Label)
	}
}
