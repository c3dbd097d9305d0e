package garden

// Freeze tracks the three suspension flags. Manual and hidden pause are
// independent so that showing a hidden page never undoes a manual pause.
type Freeze struct {
	manual bool
	hidden bool
	soft   bool
}

// TogglePause flips the manual pause and returns the new value.
func (f *Freeze) TogglePause() bool {
	f.manual = !f.manual
	return f.manual
}

func (f *Freeze) SetHidden(hidden bool) { f.hidden = hidden }
func (f *Freeze) SetSoft(held bool)     { f.soft = held }

// Paused reports whether the loop is suspended for any reason.
func (f Freeze) Paused() bool { return f.manual || f.hidden }

func (f Freeze) ManuallyPaused() bool { return f.manual }
func (f Freeze) Hidden() bool         { return f.hidden }
func (f Freeze) SoftFrozen() bool     { return f.soft }
