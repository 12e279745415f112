package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/raider/internal/fs"
	statepkg "github.com/kk-code-lab/raider/internal/state"
	"github.com/kk-code-lab/raider/internal/textutil"
)

// statusColumn is where the status details start, after the mode string.
const statusColumn = 11

// Renderer draws the top bar, the entry list and the status line. The
// preview pane is drawn by whoever holds PreviewPane.
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
	user   string
	host   string
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen, user, host string) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
		user:   user,
		host:   host,
	}
}

// Layout reports the current pane geometry.
func (r *Renderer) Layout() Layout {
	w, h := r.screen.Size()
	return ComputeLayout(w, h)
}

// ListHeight is the number of entry rows that fit on screen.
func (r *Renderer) ListHeight() int {
	return r.Layout().BodyHeight
}

// PreviewPane returns the right-hand pane for the current screen size.
func (r *Renderer) PreviewPane() *Pane {
	l := r.Layout()
	return &Pane{
		screen: r.screen,
		x:      l.PreviewX,
		y:      1,
		w:      l.PreviewWidth,
		h:      l.BodyHeight,
		style:  tcell.StyleDefault,
		alert:  r.theme.alertStyle(),
	}
}

// Render redraws everything except the preview pane.
func (r *Renderer) Render(s *statepkg.Session) {
	r.DrawTop(s.CurrentDir)
	r.DrawList(s)
	r.DrawStatus(s)
	r.screen.Show()
}

// DrawTop shows user@host and the current directory.
func (r *Renderer) DrawTop(dir string) {
	l := r.Layout()
	if l.Height < 1 {
		return
	}
	userStyle := tcell.StyleDefault.Foreground(r.theme.UserFg).Bold(true)
	dirStyle := tcell.StyleDefault.Foreground(r.theme.DirectoryFg).Bold(true)

	x := drawText(r.screen, 0, 0, l.Width, fmt.Sprintf("%s@%s: ", r.user, r.host), userStyle)
	x = drawText(r.screen, x, 0, l.Width-x, textutil.SanitizeTerminalText(dir), dirStyle)
	fillRow(r.screen, x, l.Width, 0, tcell.StyleDefault)
}

// DrawList shows the visible window of entries with a '>' on the cursor
// row, or the session notice in its place.
func (r *Renderer) DrawList(s *statepkg.Session) {
	l := r.Layout()
	for row := 0; row < l.BodyHeight; row++ {
		fillRow(r.screen, 0, l.ListWidth, row+1, tcell.StyleDefault)
	}
	if l.BodyHeight == 0 {
		return
	}

	if s.Notice != "" {
		drawText(r.screen, 0, 1, l.ListWidth, s.Notice, r.theme.alertStyle())
		return
	}

	vs := s.View.State()
	cursor := tcell.StyleDefault.Foreground(r.theme.CursorFg).Bold(true)
	nameWidth := l.ListWidth - 3

	for row, i := 0, vs.StartPos; i <= vs.EndPos && i < len(s.Entries) && row < l.BodyHeight; i, row = i+1, row+1 {
		e := s.Entries[i]
		if i == vs.Pos {
			r.screen.SetContent(0, row+1, '>', nil, cursor)
		}
		if nameWidth > 0 {
			name := textutil.SanitizeTerminalText(e.Name)
			drawText(r.screen, 2, row+1, nameWidth, name, r.entryStyle(e, s.IsSelected(e)))
		}
	}
}

func (r *Renderer) entryStyle(e fs.Entry, selected bool) tcell.Style {
	base := tcell.StyleDefault
	switch {
	case selected:
		return base.Background(r.theme.SelectedBg).Foreground(r.theme.SelectedFg).Bold(true)
	case e.IsSymlink:
		return base.Foreground(r.theme.SymlinkFg).Underline(true)
	case e.IsDir:
		return base.Foreground(r.theme.DirectoryFg)
	case e.IsExecutable():
		return base.Foreground(r.theme.ExecutableFg).Bold(true)
	}

	switch e.Type {
	case fs.TypeDocument:
		return base.Foreground(r.theme.DocumentFg)
	case fs.TypeImage, fs.TypeVideo:
		return base.Foreground(r.theme.MediaFg)
	case fs.TypeArchive:
		return base.Foreground(r.theme.ArchiveFg)
	}
	return base
}

// StatusText is the status line after the mode string: owner, group, size,
// change time, position and sort order.
func StatusText(e fs.Entry, vs statepkg.ViewState) string {
	return fmt.Sprintf("%s %s %s %s [%d/%d] (%s)",
		fs.OwnerName(e.Stat.Uid), fs.GroupName(e.Stat.Gid), fs.SizeLine(e.Size),
		fs.TimeLine(e.Stat.Ctime), vs.Pos+1, vs.FilesN, vs.Order)
}

// DrawStatus shows details of the current entry and the pending error
// message, if any.
func (r *Renderer) DrawStatus(s *statepkg.Session) {
	l := r.Layout()
	if l.Height < 2 {
		return
	}
	y := l.Height - 1
	fillRow(r.screen, 0, l.Width, y, tcell.StyleDefault)

	x := 0
	if e, ok := s.Current(); ok {
		modeStyle := tcell.StyleDefault.Foreground(r.theme.ModeFg).Dim(true)
		drawText(r.screen, 0, y, l.Width, fs.ModeLine(e.Mode), modeStyle)
		if l.Width > statusColumn {
			text := textutil.SanitizeTerminalText(StatusText(e, s.View.State()))
			x = drawText(r.screen, statusColumn, y, l.Width-statusColumn, text, tcell.StyleDefault.Dim(true))
		}
	}

	if s.Err != "" && x+2 < l.Width {
		msg := textutil.Fit(textutil.SanitizeTerminalText(s.Err), l.Width-x-2)
		drawText(r.screen, x+2, y, l.Width-x-2, msg, r.theme.alertStyle())
	}
}

