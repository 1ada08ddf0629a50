// internal/params/adapter.go
package params

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/tamzrod/extcontrol/internal/endpoint"
	"github.com/tamzrod/extcontrol/internal/kv"
	"github.com/tamzrod/extcontrol/internal/undo"
)

// Adapter mediates every read and write of the program node parameters.
// It owns neither the data (store) nor the history (recorder).
type Adapter struct {
	store kv.Store
	rec   undo.Recorder
	view  View
	log   *zap.Logger
}

// Options wires the adapter's collaborators. View and Logger are optional.
type Options struct {
	Store    kv.Store
	Recorder undo.Recorder
	View     View
	Logger   *zap.Logger
}

// New creates an adapter. Store and Recorder are required.
func New(opts Options) (*Adapter, error) {
	if opts.Store == nil {
		return nil, errors.New("params: store required")
	}
	if opts.Recorder == nil {
		return nil, errors.New("params: recorder required")
	}
	if opts.View == nil {
		opts.View = NopView{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Adapter{
		store: opts.Store,
		rec:   opts.Recorder,
		view:  opts.View,
		log:   opts.Logger,
	}, nil
}

// SetView replaces the display target, e.g. when a host attaches a new view.
func (a *Adapter) SetView(v View) {
	if v == nil {
		v = NopView{}
	}
	a.view = v
}

// Get returns the stored value for key, or def when absent.
// A store failure is logged and resolved to def.
func (a *Adapter) Get(key, def string) string {
	v, ok, err := a.store.Get(key)
	if err != nil {
		a.log.Warn("parameter read failed, using default",
			zap.String("key", key),
			zap.String("default", def),
			zap.Error(err),
		)
		return def
	}
	if !ok {
		return def
	}
	return v
}

// Set records one transaction storing value under key.
// An empty value resets the entry to def.
func (a *Adapter) Set(key, value, def string) error {
	if value == "" {
		value = def
	}
	tx := undo.NewTransaction("set "+key, kv.Set(key, value))
	if err := a.rec.RecordChanges(tx); err != nil {
		return fmt.Errorf("params: set %s: %w", key, err)
	}
	return nil
}

// ---- advanced parameters visibility ----

// AdvancedVisible returns the persisted visibility flag.
func (a *Adapter) AdvancedVisible() bool {
	raw := a.Get(KeyAdvancedVisible, strconv.FormatBool(DefaultAdvancedVisible))
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return DefaultAdvancedVisible
	}
	return b
}

// SetAdvancedVisible updates the view first, then records the flag
// as its own transaction. A failed write does not revert the view.
func (a *Adapter) SetAdvancedVisible(show bool) error {
	a.view.ShowAdvancedParameters(show)

	tx := undo.NewTransaction("set "+KeyAdvancedVisible,
		kv.Set(KeyAdvancedVisible, strconv.FormatBool(show)),
	)
	if err := a.rec.RecordChanges(tx); err != nil {
		return fmt.Errorf("params: set %s: %w", KeyAdvancedVisible, err)
	}
	return nil
}

// ---- numeric-looking parameters ----

// MaxLostPackages is the value a keyboard input starts with.
func (a *Adapter) MaxLostPackages() string {
	return a.Get(KeyMaxLostPackages, DefaultMaxLostPackages)
}

// SetMaxLostPackages stores value (empty resets) and echoes the raw value to the view.
func (a *Adapter) SetMaxLostPackages(value string) error {
	if err := a.Set(KeyMaxLostPackages, value, DefaultMaxLostPackages); err != nil {
		return err
	}
	a.view.UpdateMaxLostPackages(value)
	return nil
}

// ServoGain is the value a keyboard input starts with.
func (a *Adapter) ServoGain() string {
	return a.Get(KeyServoGain, DefaultServoGain)
}

// SetServoGain stores value (empty resets) and echoes the raw value to the view.
func (a *Adapter) SetServoGain(value string) error {
	if err := a.Set(KeyServoGain, value, DefaultServoGain); err != nil {
		return err
	}
	a.view.UpdateServoGain(value)
	return nil
}

// ---- master endpoint ----

// MasterAddress returns the stored master address.
func (a *Adapter) MasterAddress() string {
	return a.Get(KeyMasterAddress, DefaultMasterAddress)
}

// MasterPort returns the stored master port.
func (a *Adapter) MasterPort() string {
	return a.Get(KeyMasterPort, DefaultMasterPort)
}

// Endpoint returns the stored master as a descriptor.
func (a *Adapter) Endpoint() endpoint.Descriptor {
	return endpoint.Descriptor{
		Name:    a.Get(KeyMasterName, DefaultMasterName),
		Address: a.MasterAddress(),
		Port:    a.MasterPort(),
	}
}

// SetEndpoint applies a master selection coming from the UI.
//
// A selection that cannot be parsed is logged and dropped.
// A selection with the stored address and port is a no-op, even if the
// name differs. Otherwise name, address and port are written as one
// transaction. changed reports whether a transaction was recorded.
func (a *Adapter) SetEndpoint(selected string) (changed bool, err error) {
	next, err := endpoint.Parse(selected)
	if err != nil {
		a.log.Warn("ignoring malformed master selection",
			zap.String("selection", selected),
			zap.Error(err),
		)
		return false, nil
	}

	if next.SameTarget(a.Endpoint()) {
		return false, nil
	}

	tx := undo.NewTransaction("select master",
		kv.Set(KeyMasterName, next.Name),
		kv.Set(KeyMasterAddress, next.Address),
		kv.Set(KeyMasterPort, next.Port),
	)
	if err := a.rec.RecordChanges(tx); err != nil {
		return false, fmt.Errorf("params: set master: %w", err)
	}

	a.log.Info("master endpoint set",
		zap.String("master", next.String()),
		zap.String("tx", tx.ID.String()),
	)
	return true, nil
}

// Snapshot reads every parameter with defaults resolved.
func (a *Adapter) Snapshot() Snapshot {
	return Snapshot{
		AdvancedVisible: a.AdvancedVisible(),
		MaxLostPackages: a.MaxLostPackages(),
		ServoGain:       a.ServoGain(),
		Master:          a.Endpoint(),
	}
}

// RefreshView pushes the current endpoint to the view.
func (a *Adapter) RefreshView() {
	a.view.UpdateInfoLabel(a.MasterAddress(), a.MasterPort())
}
