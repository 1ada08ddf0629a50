// internal/params/view.go
package params

// View receives display updates. Calls are fire-and-forget.
type View interface {
	ShowAdvancedParameters(show bool)
	UpdateInfoLabel(address, port string)
	UpdateMaxLostPackages(value string)
	UpdateServoGain(value string)
}

// NopView discards every update.
type NopView struct{}

func (NopView) ShowAdvancedParameters(bool)   {}
func (NopView) UpdateInfoLabel(string, string) {}
func (NopView) UpdateMaxLostPackages(string)   {}
func (NopView) UpdateServoGain(string)         {}
