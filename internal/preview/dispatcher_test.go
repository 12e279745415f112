package preview

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kk-code-lab/raider/internal/fs"
)

type fakePane struct {
	cols, rows int
	x, y       int
	lines      map[int]string
	alerts     map[int]string
	erased     int
	flushed    int
}

func newFakePane() *fakePane {
	return &fakePane{cols: 40, rows: 10, x: 40, y: 1, lines: map[int]string{}, alerts: map[int]string{}}
}

func (p *fakePane) Size() (int, int)   { return p.cols, p.rows }
func (p *fakePane) Origin() (int, int) { return p.x, p.y }
func (p *fakePane) Erase() {
	p.erased++
	p.lines = map[int]string{}
	p.alerts = map[int]string{}
}
func (p *fakePane) SetLine(row int, text string)  { p.lines[row] = text }
func (p *fakePane) SetAlert(row int, text string) { p.alerts[row] = text }
func (p *fakePane) Flush()                        { p.flushed++ }

type spawnCall struct {
	name string
	args []string
}

type harness struct {
	d      *Dispatcher
	tty    *bytes.Buffer
	spawns []spawnCall
	cache  string
}

func newHarness(t *testing.T, caps Capabilities, mode Mode) *harness {
	t.Helper()
	h := &harness{tty: &bytes.Buffer{}, cache: t.TempDir()}
	h.d = NewDispatcher(caps, Options{CacheDir: h.cache, TTY: h.tty, PID: 4242})
	h.d.spawn = func(name string, args ...string) error {
		h.spawns = append(h.spawns, spawnCall{name: name, args: args})
		return nil
	}
	h.d.output = func(context.Context, string, string, ...string) ([]byte, error) {
		return nil, errors.New("no external tools in tests")
	}
	if err := h.d.SetMode(mode); err != nil {
		t.Fatalf("SetMode(%s): %v", mode, err)
	}
	return h
}

func writeEntry(t *testing.T, dir, name, content string) fs.Entry {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	e, err := fs.ReadEntry(path)
	if err != nil {
		t.Fatalf("ReadEntry: %v", err)
	}
	return e
}

var sixelCaps = Capabilities{Img2sixel: true, Convert: true, Thumbnailer: true}

func TestRenderWithCachedThumbnailDoesNotSpawn(t *testing.T) {
	h := newHarness(t, sixelCaps, ModeSixel)
	e := writeEntry(t, t.TempDir(), "b.png", "png")

	cache := h.d.CachePath(e)
	if err := os.WriteFile(cache, []byte("SIXELDATA"), 0o600); err != nil {
		t.Fatalf("write cache: %v", err)
	}

	pane := newFakePane()
	h.d.Render(pane, e)

	if len(h.spawns) != 0 {
		t.Fatalf("cached thumbnail must not spawn, got %v", h.spawns)
	}
	if !strings.Contains(h.tty.String(), "SIXELDATA") {
		t.Fatalf("cached thumbnail not written to terminal: %q", h.tty.String())
	}
	if h.d.Pending() != "" {
		t.Fatalf("nothing should be pending, got %q", h.d.Pending())
	}
}

func TestRenderWithoutThumbnailSpawnsOnceAndShowsSummary(t *testing.T) {
	h := newHarness(t, sixelCaps, ModeSixel)
	e := writeEntry(t, t.TempDir(), "b.png", "png")
	pane := newFakePane()

	h.d.Render(pane, e)

	if len(h.spawns) != 1 {
		t.Fatalf("expected exactly one job, got %d", len(h.spawns))
	}
	call := h.spawns[0]
	cache := h.d.CachePath(e)
	if call.name != "sh" || len(call.args) != 5 {
		t.Fatalf("unexpected job %+v", call)
	}
	if call.args[2] != e.Path || call.args[3] != cache || call.args[4] != "4242" {
		t.Fatalf("job arguments %v", call.args)
	}
	if !strings.Contains(call.args[1], "img2sixel") || !strings.Contains(call.args[1], "-w 400") {
		t.Fatalf("job script %q", call.args[1])
	}
	if !strings.HasPrefix(pane.lines[0], "  File: b.png") {
		t.Fatalf("summary should stand in while waiting, got %q", pane.lines[0])
	}
	if h.d.Pending() != cache {
		t.Fatalf("pending = %q, want %q", h.d.Pending(), cache)
	}

	if h.d.RefreshPending(pane) {
		t.Fatalf("refresh before the file exists should do nothing")
	}
	if !strings.HasPrefix(pane.lines[0], "  File: b.png") {
		t.Fatalf("summary should stay visible until the thumbnail appears")
	}

	if err := os.WriteFile(cache, []byte("READY"), 0o600); err != nil {
		t.Fatalf("write cache: %v", err)
	}
	if !h.d.RefreshPending(pane) {
		t.Fatalf("refresh should draw the finished thumbnail")
	}
	if !strings.Contains(h.tty.String(), "READY") {
		t.Fatalf("thumbnail not drawn: %q", h.tty.String())
	}
	if h.d.Pending() != "" {
		t.Fatalf("pending marker should be cleared")
	}
	if len(pane.lines) != 0 {
		t.Fatalf("pane should be cleared before drawing the thumbnail, got %v", pane.lines)
	}
}

func TestRenderAgainRetriesThumbnail(t *testing.T) {
	h := newHarness(t, sixelCaps, ModeSixel)
	e := writeEntry(t, t.TempDir(), "b.png", "png")

	h.d.Render(newFakePane(), e)
	h.d.Render(newFakePane(), e)
	if len(h.spawns) != 2 {
		t.Fatalf("a manual refresh should retry the job, got %d spawns", len(h.spawns))
	}
}

func TestRenderMissingSourceShowsNotFound(t *testing.T) {
	h := newHarness(t, sixelCaps, ModeSixel)
	e := writeEntry(t, t.TempDir(), "gone.png", "png")
	if err := os.Remove(e.Path); err != nil {
		t.Fatalf("remove: %v", err)
	}

	pane := newFakePane()
	h.d.Render(pane, e)
	if len(h.spawns) != 0 {
		t.Fatalf("missing source must not spawn")
	}
	if pane.alerts[0] != notFoundMessage {
		t.Fatalf("expected not-found alert, got %v", pane.alerts)
	}
}

func TestRenderFallsBackToPreviewerThenSummary(t *testing.T) {
	h := newHarness(t, Capabilities{}, ModeNone)
	dir := t.TempDir()

	text := writeEntry(t, dir, "a.txt", "first\tline\nsecond\n")
	pane := newFakePane()
	h.d.Render(pane, text)
	if pane.lines[0] != "first   line" || pane.lines[1] != "second" {
		t.Fatalf("text preview lines %v", pane.lines)
	}

	img := writeEntry(t, dir, "b.png", "png")
	pane = newFakePane()
	h.d.Render(pane, img)
	if len(h.spawns) != 0 {
		t.Fatalf("mode none has no thumbnailers")
	}
	if !strings.HasPrefix(pane.lines[0], "  File: b.png") {
		t.Fatalf("image in mode none should show the summary, got %v", pane.lines)
	}
}

func TestDocumentPreviewFallsBackWhenToolFails(t *testing.T) {
	h := newHarness(t, Capabilities{Pdftotext: true}, ModeNone)
	e := writeEntry(t, t.TempDir(), "paper.pdf", "%PDF")

	var gotArgs []string
	h.d.output = func(_ context.Context, _ string, name string, args ...string) ([]byte, error) {
		gotArgs = append([]string{name}, args...)
		return nil, errors.New("exit status 1")
	}

	pane := newFakePane()
	h.d.Render(pane, e)
	if len(gotArgs) == 0 || gotArgs[0] != "pdftotext" {
		t.Fatalf("pdftotext not invoked: %v", gotArgs)
	}
	if !strings.HasPrefix(pane.lines[0], "  File: paper.pdf") {
		t.Fatalf("failed extraction should show summary, got %v", pane.lines)
	}

	h.d.output = func(context.Context, string, string, ...string) ([]byte, error) {
		return []byte("Abstract\nIntroduction\n"), nil
	}
	pane = newFakePane()
	h.d.Render(pane, e)
	if pane.lines[0] != "Abstract" || pane.lines[1] != "Introduction" {
		t.Fatalf("document text lines %v", pane.lines)
	}
}

func TestShowDirectoryAndSniffing(t *testing.T) {
	h := newHarness(t, Capabilities{}, ModeNone)
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeEntry(t, sub, "visible", "x")
	writeEntry(t, sub, ".secret", "x")

	dirEntry, err := fs.ReadEntry(sub)
	if err != nil {
		t.Fatalf("ReadEntry: %v", err)
	}
	pane := newFakePane()
	h.d.Show(pane, &dirEntry, true)
	if len(pane.lines) != 1 || pane.lines[0] != "visible" {
		t.Fatalf("directory preview %v", pane.lines)
	}

	readme := writeEntry(t, root, "README", "hello")
	pane = newFakePane()
	h.d.Show(pane, &readme, true)
	if pane.lines[0] != "hello" {
		t.Fatalf("unknown text file should be previewed as text, got %v", pane.lines)
	}
	if readme.Type != fs.TypeText || !readme.Sniffed {
		t.Fatalf("sniffed type should be kept in the entry, got %v", readme.Type)
	}

	blob := writeEntry(t, root, "blob", "\x00\x01\x02")
	h.d.Show(newFakePane(), &blob, true)
	if blob.Type != fs.TypeUnknown || !blob.Sniffed {
		t.Fatalf("binary entry should stay unknown and be marked sniffed, got %v %v", blob.Type, blob.Sniffed)
	}
	if err := os.WriteFile(blob.Path, []byte("now text"), 0o644); err != nil {
		t.Fatal(err)
	}
	pane = newFakePane()
	h.d.Show(pane, &blob, true)
	if blob.Type != fs.TypeUnknown {
		t.Fatalf("a sniffed entry must not be sniffed again, got %v", blob.Type)
	}

	pane = newFakePane()
	h.d.Show(pane, &readme, false)
	if !strings.HasPrefix(pane.lines[0], "  File: README") {
		t.Fatalf("show without full preview should draw the summary, got %v", pane.lines)
	}
}

func TestShowDropsStalePendingThumbnail(t *testing.T) {
	h := newHarness(t, sixelCaps, ModeSixel)
	dir := t.TempDir()
	img := writeEntry(t, dir, "b.png", "png")
	txt := writeEntry(t, dir, "a.txt", "text")

	h.d.Show(newFakePane(), &img, true)
	if h.d.Pending() == "" {
		t.Fatalf("expected a pending thumbnail")
	}
	h.d.Show(newFakePane(), &txt, true)
	if h.d.Pending() != "" {
		t.Fatalf("moving to another entry should forget the pending thumbnail")
	}
}

func TestClearErasesOutOfBandOutputOnce(t *testing.T) {
	h := newHarness(t, sixelCaps, ModeSixel)
	pane := newFakePane()

	h.d.Clear(pane)
	if h.tty.Len() != 0 {
		t.Fatalf("nothing drawn yet, clear should not touch the terminal")
	}

	h.d.needsClearing = true
	h.d.Clear(pane)
	if !strings.Contains(h.tty.String(), strings.Repeat(" ", pane.cols)) {
		t.Fatalf("sixel clear should blank the pane cells")
	}
	if h.d.needsClearing {
		t.Fatalf("needsClearing should be reset")
	}
}

func TestSetModeChecksCapabilities(t *testing.T) {
	d := NewDispatcher(Capabilities{Chafa: true}, Options{CacheDir: t.TempDir()})

	if err := d.SetMode(ModeSixel); !errors.Is(err, ErrModeUnavailable) {
		t.Fatalf("sixel without img2sixel: %v", err)
	}
	if err := d.SetMode("bogus"); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("bogus mode: %v", err)
	}
	if err := d.SetMode(ModeChafa); err != nil {
		t.Fatalf("chafa: %v", err)
	}
	if d.Mode() != ModeChafa {
		t.Fatalf("mode = %s", d.Mode())
	}

	got := ModeList(d.AvailableModes())
	if got != "chafa none" {
		t.Fatalf("available modes %q", got)
	}
}

func TestCachePathDependsOnMode(t *testing.T) {
	h := newHarness(t, sixelCaps, ModeSixel)
	e := fs.Entry{Stat: fs.Stat{Dev: 2049, Ino: 1234}}
	if got := h.d.CachePath(e); got != filepath.Join(h.cache, "2049-1234.six") {
		t.Fatalf("sixel cache path %q", got)
	}
	_ = h.d.SetMode(ModeNone)
	if got := h.d.CachePath(e); got != filepath.Join(h.cache, "2049-1234.jpg") {
		t.Fatalf("jpg cache path %q", got)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("x11"); err != nil || m != ModeX11 {
		t.Fatalf("ParseMode(x11) = %v, %v", m, err)
	}
	if _, err := ParseMode("kitty"); !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("ParseMode(kitty) error %v", err)
	}
}

func TestNewCapabilitiesFromProbe(t *testing.T) {
	installed := map[string]bool{"img2sixel": true, "pdftotext": true}
	probe := Probe{
		LookPath: func(name string) (string, error) {
			if installed[name] {
				return "/usr/bin/" + name, nil
			}
			return "", errors.New("not found")
		},
		Exists: func(path string) bool { return path == "/usr/libexec/w3m/w3mimgdisplay" },
		Getenv: func(key string) string {
			if key == "DISPLAY" {
				return ":0"
			}
			return ""
		},
		Pixels: func() (int, int, bool) { return 1920, 1080, true },
	}

	c := NewCapabilities(probe)
	if !c.Img2sixel || !c.Pdftotext || c.Chafa || c.Mediainfo {
		t.Fatalf("unexpected tool flags %+v", c)
	}
	if c.W3mImgDisplay != "/usr/libexec/w3m/w3mimgdisplay" || !c.X11 {
		t.Fatalf("x11 capability not detected: %+v", c)
	}
	if c.PixelWidth != 1920 || c.PixelHeight != 1080 {
		t.Fatalf("pixel size %dx%d", c.PixelWidth, c.PixelHeight)
	}
	if got := ModeList(AvailableModes(c)); got != "x11 sixel none" {
		t.Fatalf("available modes %q", got)
	}
}

func TestSummaryLines(t *testing.T) {
	e := writeEntry(t, t.TempDir(), "notes.txt", "12345")
	lines := SummaryLines(e)
	if lines[0] != "  File: notes.txt" {
		t.Fatalf("line 0 %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "  Size: 5 B") || !strings.Contains(lines[2], "FileType: text (txt)") {
		t.Fatalf("size line %q", lines[2])
	}
	if !strings.Contains(lines[3], "(-rw-r--r--)") {
		t.Fatalf("mode line %q", lines[3])
	}
	if !strings.HasPrefix(lines[7], "Change: ") {
		t.Fatalf("change line %q", lines[7])
	}
}
