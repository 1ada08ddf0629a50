// internal/kv/sqlitekv/store.go
package sqlitekv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tamzrod/extcontrol/internal/kv"
)

const (
	defaultBusyTimeout = 5 * time.Second
	defaultOpTimeout   = 2 * time.Second
	defaultNode        = "default"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS params (
		node TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (node, key)
	)`,
}

// Options describes parameters for opening a parameter database.
type Options struct {
	Path      string        // database file; parent directories are created
	Node      string        // program node scope (defaults to "default")
	OpTimeout time.Duration // per-operation deadline (defaults to 2s)
}

// Store is a kv.Store persisted in SQLite.
// One SQL transaction per Apply.
type Store struct {
	db        *sql.DB
	node      string
	path      string
	opTimeout time.Duration
}

var _ kv.Store = (*Store)(nil)

// Open initialises the parameter database at opts.Path.
func Open(opts Options) (*Store, error) {
	if opts.Path == "" {
		return nil, errors.New("sqlitekv: path required")
	}
	if opts.Node == "" {
		opts.Node = defaultNode
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = defaultOpTimeout
	}

	if dir := filepath.Dir(opts.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlitekv: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlitekv: open: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	if err := applySchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:        db,
		node:      opts.Node,
		path:      opts.Path,
		opTimeout: opts.OpTimeout,
	}, nil
}

// Close finalises the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the filesystem path of the backing database.
func (s *Store) Path() string { return s.path }

// Node returns the program node scope of this store.
func (s *Store) Node() string { return s.node }

func (s *Store) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM params WHERE node = ? AND key = ?`,
		s.node, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlitekv: get %q: %w", key, err)
	}
	return value, true, nil
}

// Apply upserts and deletes the batch inside one transaction.
func (s *Store) Apply(writes []kv.Write) error {
	if err := kv.Validate(writes); err != nil {
		return err
	}
	if len(writes) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		upsert, err := tx.PrepareContext(ctx, `
            INSERT INTO params (node, key, value, updated_at)
            VALUES (?, ?, ?, CURRENT_TIMESTAMP)
            ON CONFLICT(node, key) DO UPDATE SET
                value = excluded.value,
                updated_at = CURRENT_TIMESTAMP
        `)
		if err != nil {
			return fmt.Errorf("sqlitekv: prepare upsert: %w", err)
		}
		defer upsert.Close()

		for _, w := range writes {
			if w.Delete {
				if _, err := tx.ExecContext(ctx,
					`DELETE FROM params WHERE node = ? AND key = ?`,
					s.node, w.Key,
				); err != nil {
					return fmt.Errorf("sqlitekv: delete %q: %w", w.Key, err)
				}
				continue
			}
			if _, err := upsert.ExecContext(ctx, s.node, w.Key, w.Value); err != nil {
				return fmt.Errorf("sqlitekv: set %q: %w", w.Key, err)
			}
		}
		return nil
	})
}

// Entries returns every key/value of this node, sorted by key.
func (s *Store) Entries() ([]kv.Write, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM params WHERE node = ?`, s.node)
	if err != nil {
		return nil, fmt.Errorf("sqlitekv: list: %w", err)
	}
	defer rows.Close()

	var out []kv.Write
	for rows.Next() {
		var w kv.Write
		if err := rows.Scan(&w.Key, &w.Value); err != nil {
			return nil, fmt.Errorf("sqlitekv: scan row: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlitekv: iterate rows: %w", err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlitekv: begin: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("sqlitekv: rollback failed after %v: %w", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", int(defaultBusyTimeout.Milliseconds())),
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("sqlitekv: apply pragma %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlitekv: apply schema: %w", err)
		}
	}
	return nil
}
