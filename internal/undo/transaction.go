// internal/undo/transaction.go
package undo

import (
	"errors"

	"github.com/google/uuid"

	"github.com/tamzrod/extcontrol/internal/kv"
)

// ErrEmptyTransaction is returned when a transaction carries no writes.
var ErrEmptyTransaction = errors.New("undo: transaction has no writes")

// Transaction is one user-initiated change: a batch of key writes
// recorded as a single undo step. Plain data, inspectable in tests.
type Transaction struct {
	ID     uuid.UUID
	Label  string
	Writes []kv.Write
}

// Recorder executes a transaction and records it as one undoable step.
type Recorder interface {
	RecordChanges(tx Transaction) error
}

// NewTransaction stamps a fresh ID on the given writes.
func NewTransaction(label string, writes ...kv.Write) Transaction {
	return Transaction{
		ID:     uuid.New(),
		Label:  label,
		Writes: writes,
	}
}

// Keys lists the keys touched by tx in write order.
func (tx Transaction) Keys() []string {
	keys := make([]string, 0, len(tx.Writes))
	for _, w := range tx.Writes {
		keys = append(keys, w.Key)
	}
	return keys
}
