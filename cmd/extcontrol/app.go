// cmd/extcontrol/app.go
package main

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/extcontrol/internal/config"
	"github.com/tamzrod/extcontrol/internal/contribution"
	"github.com/tamzrod/extcontrol/internal/installation"
	"github.com/tamzrod/extcontrol/internal/kv"
	"github.com/tamzrod/extcontrol/internal/kv/sqlitekv"
	"github.com/tamzrod/extcontrol/internal/kv/yamlkv"
	"github.com/tamzrod/extcontrol/internal/logging"
	"github.com/tamzrod/extcontrol/internal/params"
	"github.com/tamzrod/extcontrol/internal/undo"
)

// app is one wired program node: store, history, adapter, node.
type app struct {
	store   kv.Store
	history *undo.Manager
	params  *params.Adapter
	node    *contribution.Node
	log     *zap.Logger
}

// buildApp wires every component from a validated, normalized config.
// The returned closer releases the store.
func buildApp(cfg *config.Config, log *zap.Logger, out io.Writer) (*app, func() error, error) {
	store, err := openStore(cfg.Store)
	if err != nil {
		return nil, nil, err
	}

	history := undo.NewManager(store, undo.Config{
		Limit:  cfg.Undo.Limit,
		Logger: logging.For(log, logging.ComponentUndo),
	})

	p, err := params.New(params.Options{
		Store:    store,
		Recorder: history,
		View:     &consoleView{w: out},
		Logger:   logging.For(log, logging.ComponentParams),
	})
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	inst, err := buildInstallation(cfg.Installation, p)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	var registry installation.Registry
	registry.Register(inst)

	node, err := contribution.New(p, &registry, logging.For(log, logging.ComponentNode))
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	log.Debug("program node ready",
		zap.String("backend", cfg.Store.Backend),
		zap.String("installation", cfg.Installation.Name),
		zap.String("mode", cfg.Installation.Mode),
	)

	return &app{
		store:   store,
		history: history,
		params:  p,
		node:    node,
		log:     log,
	}, store.Close, nil
}

func openStore(sc config.StoreConfig) (kv.Store, error) {
	switch sc.Backend {
	case config.BackendMemory:
		return kv.NewMemory(nil), nil
	case config.BackendSQLite:
		return sqlitekv.Open(sqlitekv.Options{
			Path:      sc.Path,
			Node:      sc.Node,
			OpTimeout: time.Duration(sc.TimeoutMs) * time.Millisecond,
		})
	case config.BackendYAML:
		return yamlkv.Open(sc.Path)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", sc.Backend)
	}
}

func buildInstallation(ic config.InstallationConfig, p *params.Adapter) (contribution.Installation, error) {
	switch ic.Mode {
	case config.ModeStatic:
		return installation.NewStatic(installation.StaticConfig{
			Name:       ic.Name,
			Script:     ic.Script,
			ScriptPath: ic.ScriptPath,
		})
	case config.ModeRemote:
		return installation.NewRemote(installation.RemoteConfig{
			Name:    ic.Name,
			Master:  p.Endpoint,
			Timeout: time.Duration(ic.TimeoutMs) * time.Millisecond,
		})
	default:
		return nil, fmt.Errorf("installation: unknown mode %q", ic.Mode)
	}
}
