package input

import "github.com/gdamore/tcell/v2"

// KeyPhase classifies where the input stream is in a press/repeat cycle.
type KeyPhase int

const (
	PhaseIdle KeyPhase = iota
	PhaseDown          // first delivery of a key
	PhaseHeld          // the same key again: terminal auto-repeat
	PhaseUp            // the repeat stream just stopped
)

func (p KeyPhase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseHeld:
		return "held"
	case PhaseUp:
		return "up"
	default:
		return "idle"
	}
}

// KeyCode identifies a key independently of modifiers' event objects.
type KeyCode struct {
	Key  tcell.Key
	Rune rune
}

// CodeOf extracts the KeyCode of a key event.
func CodeOf(ev *tcell.EventKey) KeyCode {
	if ev.Key() == tcell.KeyRune {
		return KeyCode{Key: tcell.KeyRune, Rune: ev.Rune()}
	}
	return KeyCode{Key: ev.Key()}
}

// KeyState is the debouncer's phase together with the last key seen.
type KeyState struct {
	Phase KeyPhase
	Code  KeyCode
}

// KeyDebouncer tells single taps from held keys so that expensive work can
// be skipped during auto-repeat and done once when it stops.
//
// The classification relies on the terminal repeating the same code faster
// than the no-input timeout; terminals that coalesce repeats may look like
// a series of taps.
type KeyDebouncer struct {
	state KeyState
}

// State returns the current classification.
func (d *KeyDebouncer) State() KeyState {
	return d.state
}

// Feed advances the machine by one step. ok is false for a step without
// input. The returned bool is true exactly when a held key has been
// released and the deferred refresh is due.
func (d *KeyDebouncer) Feed(code KeyCode, ok bool) (KeyState, bool) {
	s := &d.state
	fire := false

	switch s.Phase {
	case PhaseIdle:
		if ok {
			*s = KeyState{Phase: PhaseDown, Code: code}
		}
	case PhaseDown:
		switch {
		case !ok:
			*s = KeyState{}
		case code == s.Code:
			s.Phase = PhaseHeld
		default:
			*s = KeyState{Phase: PhaseDown, Code: code}
		}
	case PhaseHeld:
		switch {
		case !ok:
			s.Phase = PhaseUp
		case code != s.Code:
			*s = KeyState{Phase: PhaseDown, Code: code}
		}
	case PhaseUp:
		if ok {
			*s = KeyState{Phase: PhaseDown, Code: code}
		} else {
			*s = KeyState{}
			fire = true
		}
	}

	return *s, fire
}
