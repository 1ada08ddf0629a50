// internal/kv/memory_test.go
package kv

import (
	"errors"
	"testing"
)

func TestMemory_GetAbsent(t *testing.T) {
	m := NewMemory(nil)

	v, ok, err := m.Get("maxlostpackages")
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if ok || v != "" {
		t.Fatalf("expected absent key, got ok=%v v=%q", ok, v)
	}
}

func TestMemory_ApplyBatch(t *testing.T) {
	m := NewMemory(map[string]string{"PORT": "50002"})

	err := m.Apply([]Write{
		Set("MASTER_NAME", "B"),
		Set("MASTER", "10.0.0.2"),
		Delete("PORT"),
	})
	if err != nil {
		t.Fatalf("Apply err=%v", err)
	}

	if v, _, _ := m.Get("MASTER"); v != "10.0.0.2" {
		t.Fatalf("MASTER=%q", v)
	}
	if _, ok, _ := m.Get("PORT"); ok {
		t.Fatalf("PORT should be deleted")
	}

	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "MASTER" || keys[1] != "MASTER_NAME" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestMemory_InvalidBatchAppliesNothing(t *testing.T) {
	m := NewMemory(nil)

	err := m.Apply([]Write{
		Set("MASTER", "10.0.0.2"),
		Set("", "x"),
	})
	if !errors.Is(err, ErrInvalidWrite) {
		t.Fatalf("expected ErrInvalidWrite, got %v", err)
	}
	if _, ok, _ := m.Get("MASTER"); ok {
		t.Fatalf("partial batch must not be visible")
	}
}
