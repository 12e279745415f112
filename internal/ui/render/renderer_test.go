package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/kk-code-lab/raider/internal/state"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init screen: %v", err)
	}
	t.Cleanup(func() {
		screen.Fini()
	})
	screen.SetSize(w, h)
	return screen
}

func rowText(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func cellStyle(screen tcell.SimulationScreen, x, y int) tcell.Style {
	cells, w, _ := screen.GetContents()
	return cells[y*w+x].Style
}

func newTestSession(t *testing.T, height int) (*statepkg.Session, string) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	s := statepkg.NewSession(height, filepath.Join(t.TempDir(), "sel"), false)
	if err := s.Goto(dir, ""); err != nil {
		t.Fatalf("Goto: %v", err)
	}
	return s, dir
}

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(81, 24)
	if l.ListWidth != 40 || l.PreviewX != 40 || l.PreviewWidth != 41 || l.BodyHeight != 22 {
		t.Fatalf("unexpected layout %+v", l)
	}
	if tiny := ComputeLayout(1, 1); tiny.BodyHeight != 0 {
		t.Fatalf("tiny screen body height %d", tiny.BodyHeight)
	}
}

func TestRenderDrawsTopListAndStatus(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, "ann", "box")
	s, dir := newTestSession(t, r.ListHeight())

	r.Render(s)

	if got := rowText(screen, 0); got != "ann@box: "+dir {
		t.Fatalf("top bar %q", got)
	}
	if got := rowText(screen, 1); got != "> a.txt" {
		t.Fatalf("cursor row %q", got)
	}
	if got := rowText(screen, 2); got != "  b.png" {
		t.Fatalf("second row %q", got)
	}
	if got := rowText(screen, 3); got != "  sub" {
		t.Fatalf("third row %q", got)
	}

	fg, _, _ := cellStyle(screen, 2, 3).Decompose()
	if fg != GetColorTheme().DirectoryFg {
		t.Fatalf("directory colour %v", fg)
	}

	status := rowText(screen, 23)
	if !strings.HasPrefix(status, "-rw-r--r--") || !strings.HasSuffix(status, "[1/3] (n)") {
		t.Fatalf("status line %q", status)
	}
}

func TestRenderHighlightsSelection(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, "ann", "box")
	s, _ := newTestSession(t, r.ListHeight())

	s.View.Down()
	if !s.ToggleSelect() {
		t.Fatalf("ToggleSelect failed")
	}
	r.Render(s)

	if got := rowText(screen, 3); got != "> sub" {
		t.Fatalf("cursor should move past the selected entry, row %q", got)
	}
	_, bg, _ := cellStyle(screen, 2, 2).Decompose()
	if bg != GetColorTheme().SelectedBg {
		t.Fatalf("selected entry background %v", bg)
	}
}

func TestRenderShowsNoticeAndError(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, "ann", "box")
	s, dir := newTestSession(t, r.ListHeight())

	_ = s.Goto(filepath.Join(dir, "missing"), "")
	s.Err = "cannot open shell here"
	r.Render(s)

	if got := rowText(screen, 1); got != statepkg.NoticeNotFound {
		t.Fatalf("notice row %q", got)
	}
	if got := rowText(screen, 2); got != "" {
		t.Fatalf("rows below the notice should be blank, got %q", got)
	}
	if got := rowText(screen, 23); got != "  cannot open shell here" {
		t.Fatalf("status line %q", got)
	}
}

func TestRenderTruncatesLongNames(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	r := NewRenderer(screen, "ann", "box")

	dir := t.TempDir()
	long := strings.Repeat("x", 30)
	if err := os.WriteFile(filepath.Join(dir, long), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	s := statepkg.NewSession(r.ListHeight(), "", false)
	if err := s.Goto(dir, ""); err != nil {
		t.Fatal(err)
	}
	r.Render(s)

	cells, w, _ := screen.GetContents()
	for x := r.Layout().ListWidth; x < w; x++ {
		if c := cells[1*w+x]; len(c.Runes) > 0 && c.Runes[0] != ' ' {
			t.Fatalf("name spilled into the preview pane at column %d", x)
		}
	}
	if got := rowText(screen, 1); got != "> "+strings.Repeat("x", 7) {
		t.Fatalf("truncated row %q", got)
	}
}

func TestPreviewPane(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewRenderer(screen, "ann", "box")
	p := r.PreviewPane()

	cols, rows := p.Size()
	if cols != 40 || rows != 22 {
		t.Fatalf("pane size %dx%d", cols, rows)
	}
	if x, y := p.Origin(); x != 40 || y != 1 {
		t.Fatalf("pane origin %d,%d", x, y)
	}

	p.SetLine(0, "hello")
	p.SetAlert(1, "[Not Found]")
	p.SetLine(rows, "off the bottom")
	p.Flush()

	if got := rowText(screen, 1); got != strings.Repeat(" ", 41)+"hello" {
		t.Fatalf("pane line %q", got)
	}
	fg, _, _ := cellStyle(screen, 41, 2).Decompose()
	if fg != GetColorTheme().AlertFg {
		t.Fatalf("alert colour %v", fg)
	}
	if got := rowText(screen, 23); got != "" {
		t.Fatalf("row past the pane was written: %q", got)
	}

	p.Erase()
	p.Flush()
	if got := rowText(screen, 1); got != "" {
		t.Fatalf("erase left %q", got)
	}
}
