// internal/undo/manager.go
package undo

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tamzrod/extcontrol/internal/kv"
)

// DefaultLimit caps the undo stack when Config.Limit is zero.
const DefaultLimit = 100

// Config is the minimal runtime config the manager needs.
type Config struct {
	Limit  int // max undo entries kept; <= 0 means DefaultLimit
	Logger *zap.Logger
}

// entry pairs a recorded transaction with the batch that reverts it.
type entry struct {
	tx      Transaction
	inverse []kv.Write
}

// Manager is an undo/redo history over a kv.Store.
// Forward and inverse batches are applied with a single Store.Apply each.
type Manager struct {
	mu    sync.Mutex
	store kv.Store
	limit int
	log   *zap.Logger

	undo []entry
	redo []entry
}

var _ Recorder = (*Manager)(nil)

// NewManager creates a manager with an empty history.
func NewManager(store kv.Store, cfg Config) *Manager {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Manager{
		store: store,
		limit: cfg.Limit,
		log:   cfg.Logger,
	}
}

// RecordChanges applies tx and pushes it as one undo step.
// All-or-nothing: if the store rejects the batch, history is untouched.
func (m *Manager) RecordChanges(tx Transaction) error {
	if len(tx.Writes) == 0 {
		return ErrEmptyTransaction
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	inverse, err := m.inverseOf(tx.Writes)
	if err != nil {
		return err
	}

	if err := m.store.Apply(tx.Writes); err != nil {
		return fmt.Errorf("undo: apply %q: %w", tx.Label, err)
	}

	m.undo = append(m.undo, entry{tx: tx, inverse: inverse})
	if len(m.undo) > m.limit {
		m.undo = m.undo[len(m.undo)-m.limit:]
	}
	m.redo = nil

	m.log.Debug("recorded transaction",
		zap.String("id", tx.ID.String()),
		zap.String("label", tx.Label),
		zap.Strings("keys", tx.Keys()),
	)
	return nil
}

// Undo reverts the most recent transaction.
// ok is false when there is nothing to undo.
func (m *Manager) Undo() (tx Transaction, ok bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.undo) == 0 {
		return Transaction{}, false, nil
	}

	e := m.undo[len(m.undo)-1]
	if err := m.store.Apply(e.inverse); err != nil {
		return Transaction{}, false, fmt.Errorf("undo: revert %q: %w", e.tx.Label, err)
	}

	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, e)

	m.log.Debug("undid transaction", zap.String("id", e.tx.ID.String()), zap.String("label", e.tx.Label))
	return e.tx, true, nil
}

// Redo re-applies the most recently undone transaction.
func (m *Manager) Redo() (tx Transaction, ok bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.redo) == 0 {
		return Transaction{}, false, nil
	}

	e := m.redo[len(m.redo)-1]
	if err := m.store.Apply(e.tx.Writes); err != nil {
		return Transaction{}, false, fmt.Errorf("undo: redo %q: %w", e.tx.Label, err)
	}

	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, e)

	m.log.Debug("redid transaction", zap.String("id", e.tx.ID.String()), zap.String("label", e.tx.Label))
	return e.tx, true, nil
}

// History returns the undoable transactions, oldest first.
func (m *Manager) History() []Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Transaction, 0, len(m.undo))
	for _, e := range m.undo {
		out = append(out, e.tx)
	}
	return out
}

// Len is the number of undoable transactions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo)
}

// CanRedo reports whether Redo has anything to re-apply.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo) > 0
}

// inverseOf snapshots the current value of every written key.
// Writes are reverted in reverse order so repeated keys restore correctly.
func (m *Manager) inverseOf(writes []kv.Write) ([]kv.Write, error) {
	inverse := make([]kv.Write, 0, len(writes))
	for i := len(writes) - 1; i >= 0; i-- {
		key := writes[i].Key
		prev, ok, err := m.store.Get(key)
		if err != nil {
			return nil, fmt.Errorf("undo: snapshot %q: %w", key, err)
		}
		if ok {
			inverse = append(inverse, kv.Set(key, prev))
		} else {
			inverse = append(inverse, kv.Delete(key))
		}
	}
	return inverse, nil
}
