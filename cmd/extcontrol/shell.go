// cmd/extcontrol/shell.go
package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"
)

type handler func(a *app, args []string, out io.Writer) error

var shellCommands = map[string]handler{
	"get":      (*app).cmdGet,
	"set":      (*app).cmdSet,
	"endpoint": (*app).cmdEndpoint,
	"advanced": (*app).cmdAdvanced,
	"show":     (*app).cmdShow,
	"title":    (*app).cmdTitle,
	"generate": (*app).cmdGenerate,
	"undo":     (*app).cmdUndo,
	"redo":     (*app).cmdRedo,
	"history":  (*app).cmdHistory,
	"open":     (*app).cmdOpen,
	"close":    (*app).cmdClose,
	"state":    (*app).cmdState,
}

// runShell executes one command per line until EOF or "quit".
// Events are handled strictly one at a time. A failing command is
// reported and the session continues.
func (a *app) runShell(in io.Reader, out io.Writer, prompt bool) error {
	sc := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(out, "extcontrol> ")
		}
		if !sc.Scan() {
			break
		}

		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		name := strings.ToLower(fields[0])
		switch name {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Fprintln(out, "commands: "+strings.Join(shellCommandNames(), " ")+" help quit")
			continue
		}

		h, ok := shellCommands[name]
		if !ok {
			fmt.Fprintf(out, "unknown command %q (try help)\n", name)
			continue
		}
		if err := h(a, fields[1:], out); err != nil {
			a.log.Warn("command failed", zap.String("command", name), zap.Error(err))
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	return sc.Err()
}

func shellCommandNames() []string {
	names := make([]string, 0, len(shellCommands))
	for n := range shellCommands {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
