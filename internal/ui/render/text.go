package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawText writes text from startX, clipped to maxWidth columns, and
// returns the column after the last cell written. Zero-width runes are
// attached to the preceding cell.
func drawText(screen tcell.Screen, startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)

	for i := 0; i < len(runes); {
		mainc := runes[i]
		i++
		w := runewidth.RuneWidth(mainc)
		if w == 0 {
			w = 1
		}
		if x-startX+w > maxWidth {
			break
		}

		var combc []rune
		for i < len(runes) && runewidth.RuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		screen.SetContent(x, y, mainc, combc, style)
		x += w
	}
	return x
}

// fillRow paints blanks from x0 up to x1.
func fillRow(screen tcell.Screen, x0, x1, y int, style tcell.Style) {
	for x := x0; x < x1; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}
