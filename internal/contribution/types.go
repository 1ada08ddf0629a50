// internal/contribution/types.go
package contribution

import (
	"errors"
	"strings"
)

// ErrInstallationNotFound is returned when no installation is available.
var ErrInstallationNotFound = errors.New("contribution: installation not found")

// ScriptWriter is the output sink of script generation.
type ScriptWriter interface {
	AppendRaw(script string)
}

// Installation owns the network-wide settings and produces the control loop.
type Installation interface {
	Name() string
	ControlLoop(w ScriptWriter) (string, error)
}

// Locator finds the installation this node belongs to.
type Locator interface {
	Installation() (Installation, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func() (Installation, error)

func (f LocatorFunc) Installation() (Installation, error) { return f() }

// State is the lifecycle state of the node view.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	default:
		return "unknown"
	}
}

// Buffer is a ScriptWriter collecting everything appended to it.
type Buffer struct {
	b strings.Builder
}

func (b *Buffer) AppendRaw(script string) { b.b.WriteString(script) }

// String returns the accumulated script.
func (b *Buffer) String() string { return b.b.String() }
