// internal/params/keys.go
package params

// Persisted key layout.
// These keys are shared with existing program files and MUST NOT change.

// ---- VIEW STATE ----

// KeyAdvancedVisible holds whether advanced parameters are shown.
const KeyAdvancedVisible = "showadvancedparam"

// DefaultAdvancedVisible is used when KeyAdvancedVisible is absent or not a boolean.
const DefaultAdvancedVisible = false

// ---- STANDARD PARAMETERS ----

// KeyMaxLostPackages holds the number of lost packages tolerated before the loop stops.
const KeyMaxLostPackages = "maxlostpackages"

// DefaultMaxLostPackages is the value restored on an empty edit.
const DefaultMaxLostPackages = "1000"

// ---- ADVANCED PARAMETERS ----

// KeyServoGain holds the servoj gain.
const KeyServoGain = "gain_servo_j"

// DefaultServoGain is the value restored on an empty edit.
const DefaultServoGain = "0"

// ---- MASTER ENDPOINT ----
// The three master keys are only ever written together.

// KeyMasterAddress holds the master network address.
const KeyMasterAddress = "MASTER"

// KeyMasterName holds the master display name.
const KeyMasterName = "MASTER_NAME"

// KeyMasterPort holds the master port.
const KeyMasterPort = "PORT"

const (
	DefaultMasterAddress = ""
	DefaultMasterName    = ""
	DefaultMasterPort    = ""
)

var defaults = map[string]string{
	KeyAdvancedVisible: "false",
	KeyMaxLostPackages: DefaultMaxLostPackages,
	KeyServoGain:       DefaultServoGain,
	KeyMasterAddress:   DefaultMasterAddress,
	KeyMasterName:      DefaultMasterName,
	KeyMasterPort:      DefaultMasterPort,
}

// DefaultFor returns the default of a known key; ok is false for unknown keys.
func DefaultFor(key string) (def string, ok bool) {
	def, ok = defaults[key]
	return def, ok
}

// Keys lists every known key.
func Keys() []string {
	return []string{
		KeyAdvancedVisible,
		KeyMaxLostPackages,
		KeyServoGain,
		KeyMasterName,
		KeyMasterAddress,
		KeyMasterPort,
	}
}
