package render

import "github.com/gdamore/tcell/v2"

// Pane is a rectangle of the screen the preview draws into.
type Pane struct {
	screen     tcell.Screen
	x, y, w, h int
	style      tcell.Style
	alert      tcell.Style
}

func (p *Pane) Size() (int, int) {
	return p.w, p.h
}

func (p *Pane) Origin() (int, int) {
	return p.x, p.y
}

func (p *Pane) Erase() {
	for row := 0; row < p.h; row++ {
		fillRow(p.screen, p.x, p.x+p.w, p.y+row, p.style)
	}
}

func (p *Pane) SetLine(row int, text string) {
	p.put(row, text, p.style)
}

func (p *Pane) SetAlert(row int, text string) {
	p.put(row, text, p.alert)
}

func (p *Pane) Flush() {
	p.screen.Show()
}

// put writes one row starting a column in from the left edge. Callers pass
// text that is already safe for the terminal.
func (p *Pane) put(row int, text string, style tcell.Style) {
	if row < 0 || row >= p.h || p.w < 2 {
		return
	}
	end := drawText(p.screen, p.x+1, p.y+row, p.w-1, text, style)
	fillRow(p.screen, end, p.x+p.w, p.y+row, p.style)
}
