package preview

import (
	"fmt"
	"os"
	"os/exec"
)

var w3mImgDisplayLocations = []string{
	"/usr/lib/w3m/w3mimgdisplay",
	"/usr/libexec/w3m/w3mimgdisplay",
	"/usr/lib64/w3m/w3mimgdisplay",
	"/usr/libexec64/w3m/w3mimgdisplay",
	"/usr/local/libexec/w3m/w3mimgdisplay",
}

// Capabilities records which external renderers are installed and what the
// terminal can show.
type Capabilities struct {
	X11           bool
	W3mImgDisplay string // empty when not found

	Chafa       bool
	Convert     bool
	Djvutxt     bool
	Img2sixel   bool
	Pdftotext   bool
	Mediainfo   bool
	Thumbnailer bool // ffmpegthumbnailer

	// Terminal size in pixels; zero when the terminal does not report it.
	PixelWidth  int
	PixelHeight int
}

// Probe abstracts the environment checks so they can be faked.
type Probe struct {
	LookPath func(string) (string, error)
	Exists   func(string) bool
	Getenv   func(string) string
	// Pixels reports the terminal window size in pixels.
	Pixels func() (width, height int, ok bool)
}

// DefaultProbe inspects the real environment. ttyFd is the terminal used for
// the pixel size query.
func DefaultProbe(ttyFd int) Probe {
	return Probe{
		LookPath: exec.LookPath,
		Exists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
		Getenv: os.Getenv,
		Pixels: func() (int, int, bool) { return terminalPixels(ttyFd) },
	}
}

// NewCapabilities runs the probe.
func NewCapabilities(p Probe) Capabilities {
	has := func(name string) bool {
		if p.LookPath == nil {
			return false
		}
		_, err := p.LookPath(name)
		return err == nil
	}

	c := Capabilities{
		Chafa:       has("chafa"),
		Convert:     has("convert"),
		Djvutxt:     has("djvutxt"),
		Img2sixel:   has("img2sixel"),
		Pdftotext:   has("pdftotext"),
		Mediainfo:   has("mediainfo"),
		Thumbnailer: has("ffmpegthumbnailer"),
	}

	if p.Exists != nil {
		for _, loc := range w3mImgDisplayLocations {
			if p.Exists(loc) {
				c.W3mImgDisplay = loc
				break
			}
		}
	}

	if p.Getenv != nil && p.Getenv("DISPLAY") != "" {
		c.X11 = true
	}
	c.refreshPixels(p)
	return c
}

func (c *Capabilities) refreshPixels(p Probe) {
	if p.Pixels == nil {
		return
	}
	if w, h, ok := p.Pixels(); ok {
		c.PixelWidth, c.PixelHeight = w, h
	}
}

func (c Capabilities) supports(m Mode) error {
	switch m {
	case ModeX11:
		if !c.X11 || c.W3mImgDisplay == "" {
			return fmt.Errorf("%w: x11 needs an X display and w3mimgdisplay", ErrModeUnavailable)
		}
	case ModeSixel:
		if !c.Img2sixel {
			return fmt.Errorf("%w: sixel needs img2sixel", ErrModeUnavailable)
		}
	case ModeChafa:
		if !c.Chafa {
			return fmt.Errorf("%w: chafa needs chafa", ErrModeUnavailable)
		}
	case ModeNone:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidMode, m)
	}
	return nil
}
