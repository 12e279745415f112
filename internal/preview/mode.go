// Package preview draws the right-hand pane: inline previews, thumbnails
// produced by background jobs, and the metadata summary.
package preview

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidMode     = errors.New("invalid preview mode")
	ErrModeUnavailable = errors.New("preview mode unavailable")
)

// Mode names how images reach the terminal.
type Mode string

const (
	ModeX11   Mode = "x11"   // w3mimgdisplay drawing into the terminal window
	ModeSixel Mode = "sixel" // sixel escape sequences
	ModeChafa Mode = "chafa" // character art
	ModeNone  Mode = "none"
)

var allModes = []Mode{ModeX11, ModeSixel, ModeChafa, ModeNone}

// ParseMode validates a mode name.
func ParseMode(name string) (Mode, error) {
	for _, m := range allModes {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidMode, name)
}

// AvailableModes lists the modes the capabilities allow, in preference order.
// ModeNone is always last.
func AvailableModes(c Capabilities) []Mode {
	modes := make([]Mode, 0, len(allModes))
	for _, m := range allModes {
		if c.supports(m) == nil {
			modes = append(modes, m)
		}
	}
	return modes
}

// ModeList joins modes for usage text.
func ModeList(modes []Mode) string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, " ")
}

// thumbExt is the cache file extension the mode's thumbnailers write.
func (m Mode) thumbExt() string {
	if m == ModeSixel {
		return "six"
	}
	return "jpg"
}
