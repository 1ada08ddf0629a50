// internal/params/snapshot.go
package params

import "github.com/tamzrod/extcontrol/internal/endpoint"

// Snapshot is the typed view of every persisted parameter.
// It contains no logic; defaults are already resolved.
type Snapshot struct {
	AdvancedVisible bool
	MaxLostPackages string
	ServoGain       string
	Master          endpoint.Descriptor
}
