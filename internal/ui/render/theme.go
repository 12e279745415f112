package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	UserFg       tcell.Color
	DirectoryFg  tcell.Color
	CursorFg     tcell.Color
	SelectedBg   tcell.Color
	SelectedFg   tcell.Color
	SymlinkFg    tcell.Color
	ExecutableFg tcell.Color
	DocumentFg   tcell.Color
	MediaFg      tcell.Color
	ArchiveFg    tcell.Color
	ModeFg       tcell.Color
	AlertFg      tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		UserFg:       tcell.ColorGreen,
		DirectoryFg:  tcell.ColorBlue,
		CursorFg:     tcell.ColorRed,
		SelectedBg:   tcell.ColorYellow,
		SelectedFg:   tcell.ColorBlack,
		SymlinkFg:    tcell.ColorGreen,
		ExecutableFg: tcell.ColorGreen,
		DocumentFg:   tcell.ColorTeal,
		MediaFg:      tcell.ColorPurple,
		ArchiveFg:    tcell.ColorRed,
		ModeFg:       tcell.ColorOlive,
		AlertFg:      tcell.ColorRed,
	}
}

func (t ColorTheme) alertStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(t.AlertFg).Bold(true)
}
