// internal/config/config.go
package config

type Config struct {
	Store        StoreConfig        `yaml:"store" mapstructure:"store"`
	Installation InstallationConfig `yaml:"installation" mapstructure:"installation"`
	Undo         UndoConfig         `yaml:"undo" mapstructure:"undo"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
}

// ---- STORE ----

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendYAML   = "yaml"
)

type StoreConfig struct {
	Backend   string `yaml:"backend" mapstructure:"backend"`
	Path      string `yaml:"path" mapstructure:"path"`
	Node      string `yaml:"node" mapstructure:"node"` // sqlite only: program node scope
	TimeoutMs int    `yaml:"timeout_ms" mapstructure:"timeout_ms"`
}

// ---- INSTALLATION ----

const (
	ModeStatic = "static"
	ModeRemote = "remote"
)

type InstallationConfig struct {
	Name       string `yaml:"name" mapstructure:"name"`
	Mode       string `yaml:"mode" mapstructure:"mode"`
	Script     string `yaml:"script" mapstructure:"script"`           // static, inline
	ScriptPath string `yaml:"script_path" mapstructure:"script_path"` // static, file
	TimeoutMs  int    `yaml:"timeout_ms" mapstructure:"timeout_ms"`   // remote
}

// ---- UNDO ----

type UndoConfig struct {
	Limit int `yaml:"limit" mapstructure:"limit"`
}

// ---- LOG ----

type LogConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Development bool   `yaml:"development" mapstructure:"development"`
}
