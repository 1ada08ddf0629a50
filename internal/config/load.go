// internal/config/load.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. EXTCONTROL_STORE_PATH.
const EnvPrefix = "EXTCONTROL"

// DefaultStorePath is where parameters live when nothing else is configured.
func DefaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "extcontrol", "params.db")
}

// Load reads path (optional, YAML) and environment overrides on top of defaults.
// An empty path means defaults + env only. Load does not validate.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("store.backend", BackendSQLite)
	v.SetDefault("store.path", DefaultStorePath())
	v.SetDefault("store.node", "default")
	v.SetDefault("store.timeout_ms", 2000)
	v.SetDefault("installation.name", "External Control")
	v.SetDefault("installation.mode", ModeRemote)
	v.SetDefault("installation.script", "")
	v.SetDefault("installation.script_path", "")
	v.SetDefault("installation.timeout_ms", 2000)
	v.SetDefault("undo.limit", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config: %s not found", path)
			}
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}
