// internal/kv/yamlkv/store.go
package yamlkv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/extcontrol/internal/kv"
)

// Store keeps a flat key/value map in a YAML file.
// Every Apply rewrites the whole file through a temp file + rename,
// so readers of the file never see half a batch either.
type Store struct {
	mu   sync.RWMutex
	path string
	data map[string]string
}

var _ kv.Store = (*Store)(nil)

// document is the on-disk layout.
type document struct {
	Params map[string]string `yaml:"params"`
}

// Open loads path. A missing file is an empty store.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("yamlkv: path required")
	}

	s := &Store{path: path, data: map[string]string{}}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("yamlkv: read %s: %w", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("yamlkv: parse %s: %w", path, err)
	}
	for k, v := range doc.Params {
		s.data[k] = v
	}
	return s, nil
}

func (s *Store) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	return v, ok, nil
}

// Apply mutates a copy, persists it, and only then swaps it in.
func (s *Store) Apply(writes []kv.Write) error {
	if err := kv.Validate(writes); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]string, len(s.data)+len(writes))
	for k, v := range s.data {
		next[k] = v
	}
	for _, w := range writes {
		if w.Delete {
			delete(next, w.Key)
			continue
		}
		next[w.Key] = w.Value
	}

	if err := s.persist(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *Store) Close() error { return nil }

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

func (s *Store) persist(data map[string]string) error {
	raw, err := yaml.Marshal(document{Params: data})
	if err != nil {
		return fmt.Errorf("yamlkv: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("yamlkv: create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("yamlkv: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("yamlkv: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("yamlkv: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("yamlkv: replace %s: %w", s.path, err)
	}
	return nil
}
