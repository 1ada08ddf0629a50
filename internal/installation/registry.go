// internal/installation/registry.go
package installation

import (
	"sync"

	"github.com/tamzrod/extcontrol/internal/contribution"
)

// Registry is the contribution.Locator for a single installation slot.
type Registry struct {
	mu   sync.RWMutex
	inst contribution.Installation
}

var _ contribution.Locator = (*Registry)(nil)

// Register replaces the current installation. nil unregisters.
func (r *Registry) Register(inst contribution.Installation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inst = inst
}

func (r *Registry) Installation() (contribution.Installation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.inst == nil {
		return nil, contribution.ErrInstallationNotFound
	}
	return r.inst, nil
}
