// internal/kv/kv.go
package kv

import (
	"errors"
	"fmt"
)

// ErrInvalidWrite is returned by Apply when a batch fails validation.
// Nothing from the batch is applied.
var ErrInvalidWrite = errors.New("kv: invalid write")

// Write is one key mutation inside a batch.
// Delete removes the entry; Value is ignored in that case.
type Write struct {
	Key    string
	Value  string
	Delete bool
}

// Store is the flat string-keyed persistence model.
//
// Apply is all-or-nothing: a concurrent Get never observes part of a batch.
// An absent key is reported with ok=false, never as an error.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Apply(writes []Write) error
	Close() error
}

// Set builds a single-key write.
func Set(key, value string) Write {
	return Write{Key: key, Value: value}
}

// Delete builds a single-key removal.
func Delete(key string) Write {
	return Write{Key: key, Delete: true}
}

// Validate checks a batch before any backend touches storage.
func Validate(writes []Write) error {
	for i, w := range writes {
		if w.Key == "" {
			return fmt.Errorf("%w: write %d has empty key", ErrInvalidWrite, i)
		}
	}
	return nil
}
