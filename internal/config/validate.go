// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil configuration")
	}

	// ------------------------------------------------------------
	// STORE
	// ------------------------------------------------------------

	switch strings.ToLower(cfg.Store.Backend) {
	case BackendMemory:
	case BackendSQLite, BackendYAML:
		if strings.TrimSpace(cfg.Store.Path) == "" {
			return fmt.Errorf("store: backend %q requires path", cfg.Store.Backend)
		}
	default:
		return fmt.Errorf("store: unknown backend %q (want memory, sqlite or yaml)", cfg.Store.Backend)
	}

	if cfg.Store.TimeoutMs < 0 {
		return fmt.Errorf("store: timeout_ms must be >= 0, got %d", cfg.Store.TimeoutMs)
	}

	// ------------------------------------------------------------
	// INSTALLATION
	// ------------------------------------------------------------

	// name sanity (single line, shown in the node title)
	if strings.ContainsAny(cfg.Installation.Name, "\r\n") {
		return fmt.Errorf("installation: name must be a single line")
	}

	switch strings.ToLower(cfg.Installation.Mode) {
	case ModeStatic:
		if cfg.Installation.Script == "" && cfg.Installation.ScriptPath == "" {
			return fmt.Errorf("installation: mode static requires script or script_path")
		}
	case ModeRemote:
		if cfg.Installation.TimeoutMs < 0 {
			return fmt.Errorf("installation: timeout_ms must be >= 0, got %d", cfg.Installation.TimeoutMs)
		}
	default:
		return fmt.Errorf("installation: unknown mode %q (want static or remote)", cfg.Installation.Mode)
	}

	// ------------------------------------------------------------
	// UNDO / LOG
	// ------------------------------------------------------------

	if cfg.Undo.Limit < 0 {
		return fmt.Errorf("undo: limit must be >= 0, got %d", cfg.Undo.Limit)
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: unknown level %q", cfg.Log.Level)
	}

	return nil
}
