// cmd/extcontrol/main.go
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tamzrod/extcontrol/internal/config"
	"github.com/tamzrod/extcontrol/internal/logging"
)

// cli holds flag values and the app built for the running command.
type cli struct {
	configPath string
	storePath  string
	backend    string
	logLevel   string

	app     *app
	closeFn func() error
}

func main() {
	if err := newRootCommand(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "extcontrol:", err)
		os.Exit(1)
	}
}

func newRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "extcontrol",
		Short:         "Manage external-control program node parameters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.OutOrStdout())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.teardown()
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file (env EXTCONTROL_* overrides)")
	rootCmd.PersistentFlags().StringVar(&c.storePath, "store", "", "Parameter store path (overrides store.path)")
	rootCmd.PersistentFlags().StringVar(&c.backend, "backend", "", "Store backend: memory|sqlite|yaml (overrides store.backend)")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides log.level)")

	rootCmd.AddCommand(
		c.command("get KEY [DEFAULT]", "Print a parameter (default when unset)", cobra.RangeArgs(1, 2), (*app).cmdGet),
		c.command("set KEY [VALUE [DEFAULT]]", "Store a parameter; no VALUE resets it", cobra.RangeArgs(1, 3), (*app).cmdSet),
		c.command("endpoint [SELECTION]", `Show or select the master, e.g. "A (10.0.0.1:50002)"`, cobra.ArbitraryArgs, (*app).cmdEndpoint),
		c.command("advanced on|off", "Show or hide advanced parameters", cobra.ExactArgs(1), (*app).cmdAdvanced),
		c.command("show", "Print every parameter", cobra.NoArgs, (*app).cmdShow),
		c.command("title", "Print the node title", cobra.NoArgs, (*app).cmdTitle),
		c.command("generate [FILE]", "Generate the control loop script", cobra.MaximumNArgs(1), (*app).cmdGenerate),
		&cobra.Command{
			Use:           "shell",
			Short:         "Interactive session with undo/redo",
			Args:          cobra.NoArgs,
			SilenceUsage:  true,
			SilenceErrors: true,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.app.runShell(cmd.InOrStdin(), cmd.OutOrStdout(), isTerminal(cmd.InOrStdin()))
			},
		},
	)

	return rootCmd
}

func (c *cli) command(use, short string, args cobra.PositionalArgs, h handler) *cobra.Command {
	return &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          args,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, a []string) error {
			return h(c.app, a, cmd.OutOrStdout())
		},
	}
}

// setup loads, validates and normalizes config, then wires the app.
// Flag overrides beat env, env beats file, file beats defaults.
func (c *cli) setup(out io.Writer) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.storePath != "" {
		cfg.Store.Path = c.storePath
	}
	if c.backend != "" {
		cfg.Store.Backend = c.backend
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)

	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}

	a, closeFn, err := buildApp(cfg, log, out)
	if err != nil {
		return err
	}
	c.app = a
	c.closeFn = closeFn

	log.Debug("configuration loaded",
		zap.String("config", c.configPath),
		zap.String("store", cfg.Store.Path),
	)
	return nil
}

func (c *cli) teardown() error {
	if c.app != nil {
		_ = c.app.log.Sync()
	}
	if c.closeFn == nil {
		return nil
	}
	return c.closeFn()
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	st, err := f.Stat()
	if err != nil {
		return false
	}
	return st.Mode()&os.ModeCharDevice != 0
}
