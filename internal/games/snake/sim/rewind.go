package sim

// RewindMode selects how rewind input is interpreted.
type RewindMode string

const (
	// RewindHold rewinds while any rewind input is held down.
	RewindHold RewindMode = "hold"
	// RewindToggle flips rewind on each press.
	RewindToggle RewindMode = "toggle"
)

// ParseRewindMode validates a mode name.
func ParseRewindMode(s string) (RewindMode, bool) {
	switch RewindMode(s) {
	case RewindHold, RewindToggle:
		return RewindMode(s), true
	}
	return "", false
}

// RewindControl folds rewind inputs from several sources (keyboard, each
// touch contact) into one flag. In hold mode the flag stays up while any
// source is still held, not just the most recent one.
type RewindControl struct {
	mode    RewindMode
	held    map[string]struct{}
	toggled bool
}

// NewRewindControl creates a control in the given mode.
func NewRewindControl(mode RewindMode) *RewindControl {
	if _, ok := ParseRewindMode(string(mode)); !ok {
		mode = RewindHold
	}
	return &RewindControl{mode: mode, held: make(map[string]struct{})}
}

// Mode returns the configured mode.
func (r *RewindControl) Mode() RewindMode {
	return r.mode
}

// Press registers a rewind input from source. In toggle mode it flips the
// flag; repeated presses from a held source are the caller's to filter.
func (r *RewindControl) Press(source string) {
	if r.mode == RewindToggle {
		r.toggled = !r.toggled
		return
	}
	r.held[source] = struct{}{}
}

// Release ends the hold from source. Ignored in toggle mode.
func (r *RewindControl) Release(source string) {
	if r.mode == RewindToggle {
		return
	}
	delete(r.held, source)
}

// Held reports whether source is currently holding rewind.
func (r *RewindControl) Held(source string) bool {
	_, ok := r.held[source]
	return ok
}

// Toggle flips rewind in toggle mode. Hold mode has nothing to toggle.
func (r *RewindControl) Toggle() {
	if r.mode == RewindToggle {
		r.toggled = !r.toggled
	}
}

// Active reports whether rewind is currently requested.
func (r *RewindControl) Active() bool {
	if r.mode == RewindToggle {
		return r.toggled
	}
	return len(r.held) > 0
}

// Reset drops every held source and clears the toggle.
func (r *RewindControl) Reset() {
	clear(r.held)
	r.toggled = false
}
