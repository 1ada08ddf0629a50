// internal/contribution/node.go
package contribution

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tamzrod/extcontrol/internal/params"
)

const titlePrefix = "Control by"

// Node is the program node contribution: it answers the host's
// lifecycle and generation requests and hands parameter edits to Params.
type Node struct {
	params  *params.Adapter
	locator Locator
	log     *zap.Logger

	state State
}

// New creates a closed node.
func New(p *params.Adapter, locator Locator, log *zap.Logger) (*Node, error) {
	if p == nil {
		return nil, errors.New("contribution: params adapter required")
	}
	if locator == nil {
		return nil, errors.New("contribution: installation locator required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Node{params: p, locator: locator, log: log, state: Closed}, nil
}

// Params exposes the parameter adapter for the host's edit callbacks.
func (n *Node) Params() *params.Adapter { return n.params }

// State reports whether the view is attached.
func (n *Node) State() State { return n.state }

// Open attaches the view and refreshes the endpoint info.
func (n *Node) Open() {
	n.state = Open
	n.params.RefreshView()
}

// Close detaches the view. Nothing is held, nothing to release.
func (n *Node) Close() {
	n.state = Closed
}

// IsDefined is always true: there is no validation gate before generation.
func (n *Node) IsDefined() bool { return true }

// Title is "Control by <installation name>".
func (n *Node) Title() (string, error) {
	inst, err := n.installation()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(titlePrefix + " " + inst.Name()), nil
}

// GenerateScript appends the installation's control loop to w verbatim
// and returns it. Whatever the installation returns is passed through.
func (n *Node) GenerateScript(w ScriptWriter) (string, error) {
	if w == nil {
		return "", errors.New("contribution: script writer required")
	}

	inst, err := n.installation()
	if err != nil {
		return "", err
	}

	body, err := inst.ControlLoop(w)
	if err != nil {
		return "", fmt.Errorf("contribution: control loop from %q: %w", inst.Name(), err)
	}

	w.AppendRaw(body)
	n.log.Debug("control loop generated",
		zap.String("installation", inst.Name()),
		zap.Int("bytes", len(body)),
	)
	return body, nil
}

func (n *Node) installation() (Installation, error) {
	inst, err := n.locator.Installation()
	if err != nil {
		if errors.Is(err, ErrInstallationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInstallationNotFound, err)
	}
	if inst == nil {
		return nil, ErrInstallationNotFound
	}
	return inst, nil
}
