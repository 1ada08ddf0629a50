// internal/kv/sqlitekv/store_test.go
package sqlitekv

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/tamzrod/extcontrol/internal/kv"
)

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.db")

	s1, err := Open(Options{Path: path})
	if err != nil {
		t.Fatalf("Open err=%v", err)
	}

	if err := s1.Apply([]kv.Write{
		kv.Set("MASTER_NAME", "B"),
		kv.Set("MASTER", "10.0.0.2"),
		kv.Set("PORT", "50003"),
	}); err != nil {
		t.Fatalf("Apply err=%v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("Close err=%v", err)
	}

	s2, err := Open(Options{Path: path})
	if err != nil {
		t.Fatalf("reopen err=%v", err)
	}
	defer s2.Close()

	v, ok, err := s2.Get("MASTER")
	if err != nil || !ok || v != "10.0.0.2" {
		t.Fatalf("Get MASTER: v=%q ok=%v err=%v", v, ok, err)
	}

	entries, err := s2.Entries()
	if err != nil {
		t.Fatalf("Entries err=%v", err)
	}
	if len(entries) != 3 || entries[0].Key != "MASTER" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}

func TestStore_UpsertAndDelete(t *testing.T) {
	s, err := Open(Options{Path: filepath.Join(t.TempDir(), "params.db")})
	if err != nil {
		t.Fatalf("Open err=%v", err)
	}
	defer s.Close()

	if err := s.Apply([]kv.Write{kv.Set("maxlostpackages", "50")}); err != nil {
		t.Fatalf("Apply err=%v", err)
	}
	if err := s.Apply([]kv.Write{kv.Set("maxlostpackages", "75")}); err != nil {
		t.Fatalf("Apply err=%v", err)
	}
	if v, _, _ := s.Get("maxlostpackages"); v != "75" {
		t.Fatalf("expected 75, got %q", v)
	}

	if err := s.Apply([]kv.Write{kv.Delete("maxlostpackages")}); err != nil {
		t.Fatalf("Apply delete err=%v", err)
	}
	if _, ok, err := s.Get("maxlostpackages"); ok || err != nil {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}
}

func TestStore_NodesAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.db")

	a, err := Open(Options{Path: path, Node: "a"})
	if err != nil {
		t.Fatalf("Open a err=%v", err)
	}
	if err := a.Apply([]kv.Write{kv.Set("PORT", "1")}); err != nil {
		t.Fatalf("Apply err=%v", err)
	}
	a.Close()

	b, err := Open(Options{Path: path, Node: "b"})
	if err != nil {
		t.Fatalf("Open b err=%v", err)
	}
	defer b.Close()

	if _, ok, _ := b.Get("PORT"); ok {
		t.Fatalf("node b must not see node a's entries")
	}
}

func TestStore_InvalidBatchRejected(t *testing.T) {
	s, err := Open(Options{Path: filepath.Join(t.TempDir(), "params.db")})
	if err != nil {
		t.Fatalf("Open err=%v", err)
	}
	defer s.Close()

	err = s.Apply([]kv.Write{kv.Set("MASTER", "x"), {Key: ""}})
	if !errors.Is(err, kv.ErrInvalidWrite) {
		t.Fatalf("expected ErrInvalidWrite, got %v", err)
	}
	if _, ok, _ := s.Get("MASTER"); ok {
		t.Fatalf("rejected batch must not be applied")
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	if _, err := Open(Options{}); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
