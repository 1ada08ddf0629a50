// cmd/extcontrol/commands.go
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tamzrod/extcontrol/internal/contribution"
	"github.com/tamzrod/extcontrol/internal/params"
)

// Each command takes the arguments after its name and writes results to out.
// The same handlers serve cobra subcommands and the shell.

func (a *app) cmdGet(args []string, out io.Writer) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: get KEY [DEFAULT]")
	}
	key := args[0]
	def, _ := params.DefaultFor(key)
	if len(args) == 2 {
		def = args[1]
	}
	fmt.Fprintln(out, a.params.Get(key, def))
	return nil
}

// cmdSet with no VALUE resets KEY to its default.
func (a *app) cmdSet(args []string, out io.Writer) error {
	if len(args) < 1 || len(args) > 3 {
		return errors.New("usage: set KEY [VALUE [DEFAULT]]")
	}
	key := args[0]
	var value string
	if len(args) >= 2 {
		value = args[1]
	}
	def, known := params.DefaultFor(key)
	if len(args) == 3 {
		def = args[2]
		known = false
	}

	switch {
	case key == params.KeyMaxLostPackages && known:
		return a.params.SetMaxLostPackages(value)
	case key == params.KeyServoGain && known:
		return a.params.SetServoGain(value)
	case key == params.KeyAdvancedVisible && known:
		return a.cmdAdvanced([]string{value}, out)
	case key == params.KeyMasterAddress || key == params.KeyMasterName || key == params.KeyMasterPort:
		return fmt.Errorf("%s is written with the endpoint command", key)
	default:
		return a.params.Set(key, value, def)
	}
}

func (a *app) cmdEndpoint(args []string, out io.Writer) error {
	if len(args) == 0 {
		m := a.params.Endpoint()
		if m.IsZero() {
			fmt.Fprintln(out, "no master selected")
			return nil
		}
		fmt.Fprintln(out, m.String())
		return nil
	}

	changed, err := a.params.SetEndpoint(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintln(out, "master unchanged")
		return nil
	}
	fmt.Fprintf(out, "master set to %s\n", a.params.Endpoint())
	if a.node.State() == contribution.Open {
		a.params.RefreshView()
	}
	return nil
}

func (a *app) cmdAdvanced(args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: advanced on|off")
	}
	var show bool
	switch strings.ToLower(args[0]) {
	case "on", "show":
		show = true
	case "off", "hide", "":
		show = false
	default:
		b, err := strconv.ParseBool(args[0])
		if err != nil {
			return fmt.Errorf("advanced: %q is not on/off", args[0])
		}
		show = b
	}
	return a.params.SetAdvancedVisible(show)
}

func (a *app) cmdShow(_ []string, out io.Writer) error {
	s := a.params.Snapshot()
	master := "-"
	if !s.Master.IsZero() {
		master = s.Master.String()
	}
	fmt.Fprintf(out, "%-20s %s\n", "master", master)
	fmt.Fprintf(out, "%-20s %s\n", params.KeyMaxLostPackages, s.MaxLostPackages)
	fmt.Fprintf(out, "%-20s %s\n", params.KeyServoGain, s.ServoGain)
	fmt.Fprintf(out, "%-20s %t\n", params.KeyAdvancedVisible, s.AdvancedVisible)
	return nil
}

func (a *app) cmdTitle(_ []string, out io.Writer) error {
	title, err := a.node.Title()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, title)
	return nil
}

// cmdGenerate writes the script to out, or to the file named by args[0].
func (a *app) cmdGenerate(args []string, out io.Writer) error {
	if len(args) > 1 {
		return errors.New("usage: generate [FILE]")
	}

	var buf contribution.Buffer
	if _, err := a.node.GenerateScript(&buf); err != nil {
		return err
	}

	if len(args) == 1 {
		if err := os.WriteFile(args[0], []byte(buf.String()), 0o644); err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		fmt.Fprintf(out, "wrote %d bytes to %s\n", len(buf.String()), args[0])
		return nil
	}
	_, err := io.WriteString(out, buf.String())
	return err
}

func (a *app) cmdUndo(_ []string, out io.Writer) error {
	tx, ok, err := a.history.Undo()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "nothing to undo")
		return nil
	}
	fmt.Fprintf(out, "undid %s\n", tx.Label)
	return nil
}

func (a *app) cmdRedo(_ []string, out io.Writer) error {
	tx, ok, err := a.history.Redo()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "nothing to redo")
		return nil
	}
	fmt.Fprintf(out, "redid %s\n", tx.Label)
	return nil
}

func (a *app) cmdHistory(_ []string, out io.Writer) error {
	h := a.history.History()
	if len(h) == 0 {
		fmt.Fprintln(out, "history is empty")
		return nil
	}
	for i, tx := range h {
		fmt.Fprintf(out, "%3d  %s  %s  %s\n", i+1, tx.ID.String()[:8], tx.Label, strings.Join(tx.Keys(), ","))
	}
	return nil
}

func (a *app) cmdOpen(_ []string, _ io.Writer) error {
	a.node.Open()
	return nil
}

func (a *app) cmdClose(_ []string, _ io.Writer) error {
	a.node.Close()
	return nil
}

func (a *app) cmdState(_ []string, out io.Writer) error {
	fmt.Fprintln(out, a.node.State())
	return nil
}
