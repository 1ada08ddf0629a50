// internal/config/normalize.go
package config

import "strings"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.Store.Backend = strings.ToLower(cfg.Store.Backend)
	cfg.Installation.Mode = strings.ToLower(cfg.Installation.Mode)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	// Title is "Control by <name>"; surrounding blanks would leak into it.
	cfg.Installation.Name = strings.TrimSpace(cfg.Installation.Name)

	if cfg.Store.Node == "" {
		cfg.Store.Node = "default"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	// No other normalization is performed here.
	// Zero timeouts and limits are resolved by the components themselves.
}
