// cmd/extcontrol/view.go
package main

import (
	"fmt"
	"io"
)

// consoleView prints display updates the way a UI would show them.
type consoleView struct {
	w io.Writer
}

func (v *consoleView) ShowAdvancedParameters(show bool) {
	state := "hidden"
	if show {
		state = "shown"
	}
	fmt.Fprintf(v.w, "advanced parameters %s\n", state)
}

func (v *consoleView) UpdateInfoLabel(address, port string) {
	fmt.Fprintf(v.w, "Host IP: %s\nCustom port: %s\n", address, port)
}

func (v *consoleView) UpdateMaxLostPackages(value string) {
	fmt.Fprintf(v.w, "Max Nr. of lost pkg: %s\n", value)
}

func (v *consoleView) UpdateServoGain(value string) {
	fmt.Fprintf(v.w, "Gain servoj: %s\n", value)
}
