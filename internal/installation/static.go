// internal/installation/static.go
package installation

import (
	"errors"
	"fmt"
	"os"

	"github.com/tamzrod/extcontrol/internal/contribution"
)

// Static serves a control loop from inline text or a script file.
// The file is read on every request so edits are picked up without restart.
type Static struct {
	name       string
	script     string
	scriptPath string
}

var _ contribution.Installation = (*Static)(nil)

// StaticConfig describes a Static installation. Exactly one of Script or
// ScriptPath is used; ScriptPath wins when both are set.
type StaticConfig struct {
	Name       string
	Script     string
	ScriptPath string
}

// NewStatic validates cfg.
func NewStatic(cfg StaticConfig) (*Static, error) {
	if cfg.Script == "" && cfg.ScriptPath == "" {
		return nil, errors.New("installation: static needs script or script_path")
	}
	return &Static{
		name:       cfg.Name,
		script:     cfg.Script,
		scriptPath: cfg.ScriptPath,
	}, nil
}

func (s *Static) Name() string { return s.name }

func (s *Static) ControlLoop(contribution.ScriptWriter) (string, error) {
	if s.scriptPath == "" {
		return s.script, nil
	}
	raw, err := os.ReadFile(s.scriptPath)
	if err != nil {
		return "", fmt.Errorf("installation: read script: %w", err)
	}
	return string(raw), nil
}
