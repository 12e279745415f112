package preview

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kk-code-lab/raider/internal/fs"
	"github.com/kk-code-lab/raider/internal/logging"
)

const (
	notFoundMessage = "[Not Found]"
	commandTimeout  = 3 * time.Second

	DefaultThumbnailWidth = 400
)

// Pane is the region the preview draws into. Rows are zero based and
// text starts one column in from the left edge.
type Pane interface {
	Size() (cols, rows int)
	// Origin is the screen cell of the top-left corner.
	Origin() (x, y int)
	Erase()
	SetLine(row int, text string)
	SetAlert(row int, text string)
	// Flush pushes character-grid changes to the terminal.
	Flush()
}

type previewer func(d *Dispatcher, pane Pane, e fs.Entry)

// thumbnailer returns a shell fragment that renders "$1" into "$t".
type thumbnailer func(width int) string

// Options configures a Dispatcher.
type Options struct {
	CacheDir       string
	ThumbnailWidth int
	// TTY receives escape sequences drawn outside the character grid.
	TTY io.Writer
	// PID is signalled by thumbnail jobs when they finish.
	PID   int
	Probe Probe
}

// Dispatcher picks how to preview an entry and owns the pending-thumbnail
// marker. It is used from the session loop only.
type Dispatcher struct {
	caps    Capabilities
	probe   Probe
	mode    Mode
	backend backend

	previewers   [fs.NumTypes]previewer
	thumbnailers [fs.NumTypes]thumbnailer

	cacheDir      string
	thumbWidth    int
	pending       string
	needsClearing bool
	pid           int
	tty           io.Writer

	spawn  func(name string, args ...string) error
	exists func(path string) bool
	output func(ctx context.Context, stdin, name string, args ...string) ([]byte, error)
}

// NewDispatcher returns a dispatcher in ModeNone.
func NewDispatcher(caps Capabilities, opts Options) *Dispatcher {
	d := &Dispatcher{
		caps:       caps,
		probe:      opts.Probe,
		cacheDir:   opts.CacheDir,
		thumbWidth: opts.ThumbnailWidth,
		pid:        opts.PID,
		tty:        opts.TTY,
		spawn:      startDetached,
		exists:     pathExists,
		output:     commandOutput,
	}
	if d.thumbWidth <= 0 {
		d.thumbWidth = DefaultThumbnailWidth
	}
	if d.pid == 0 {
		d.pid = os.Getpid()
	}
	if d.tty == nil {
		d.tty = io.Discard
	}
	_ = d.SetMode(ModeNone)
	return d
}

func (d *Dispatcher) Mode() Mode {
	return d.mode
}

// AvailableModes lists the modes this dispatcher can switch to.
func (d *Dispatcher) AvailableModes() []Mode {
	return AvailableModes(d.caps)
}

// Pending returns the thumbnail path being waited for, if any.
func (d *Dispatcher) Pending() string {
	return d.pending
}

// SetMode installs the previewers and thumbnailers of a mode.
func (d *Dispatcher) SetMode(m Mode) error {
	if err := d.caps.supports(m); err != nil {
		return err
	}

	d.previewers = [fs.NumTypes]previewer{}
	d.thumbnailers = [fs.NumTypes]thumbnailer{}

	d.previewers[fs.TypeText] = previewText
	if d.caps.Pdftotext || d.caps.Djvutxt {
		d.previewers[fs.TypeDocument] = previewDocumentText
	}
	if d.caps.Mediainfo {
		d.previewers[fs.TypeVideo] = previewVideoText
	}

	switch m {
	case ModeX11, ModeChafa:
		if m == ModeX11 {
			d.backend = x11Backend{}
		} else {
			d.backend = chafaBackend{}
		}
		d.previewers[fs.TypeImage] = previewImage
		if d.caps.Convert {
			d.thumbnailers[fs.TypeDocument] = thumbDocumentJPG
		}
		if d.caps.Thumbnailer {
			d.thumbnailers[fs.TypeVideo] = thumbVideoJPG
		}
	case ModeSixel:
		d.backend = sixelBackend{}
		d.thumbnailers[fs.TypeImage] = thumbImageSixel
		if d.caps.Convert {
			d.thumbnailers[fs.TypeDocument] = thumbDocumentSixel
		}
		if d.caps.Thumbnailer {
			d.thumbnailers[fs.TypeVideo] = thumbVideoSixel
		}
	default:
		d.backend = noneBackend{}
	}

	d.mode = m
	d.pending = ""
	return nil
}

// RefreshPixels re-reads the terminal pixel size after a resize.
func (d *Dispatcher) RefreshPixels() {
	d.caps.refreshPixels(d.probe)
}

// CachePath is where the thumbnail of e is stored in the current mode.
func (d *Dispatcher) CachePath(e fs.Entry) string {
	name := fmt.Sprintf("%d-%d.%s", e.Stat.Dev, e.Stat.Ino, d.mode.thumbExt())
	return filepath.Join(d.cacheDir, name)
}

// EnsureCacheDir creates the thumbnail cache directory.
func (d *Dispatcher) EnsureCacheDir() error {
	if err := os.MkdirAll(d.cacheDir, 0o700); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	return nil
}

// Show redraws the pane for e. Without full only the metadata summary is
// drawn; directories list their children. An unknown file is sniffed once
// and the type found is kept in e.
func (d *Dispatcher) Show(pane Pane, e *fs.Entry, full bool) {
	d.pending = ""
	d.Clear(pane)

	switch {
	case full && e.IsDir:
		previewDirectory(pane, *e)
	case full && e.Mode.IsRegular() && e.Mode.Perm()&0o400 != 0:
		if e.Type == fs.TypeUnknown && !e.Sniffed {
			e.Type = fs.Sniff(*e)
			e.Sniffed = true
		}
		d.Render(pane, *e)
	default:
		Summary(pane, *e)
	}
	pane.Flush()
}

// Render previews a file. A cached thumbnail is shown right away; a missing
// one is requested from a background job while the summary stands in for it.
func (d *Dispatcher) Render(pane Pane, e fs.Entry) {
	d.pending = ""

	if th := d.thumbnailers[e.Type]; th != nil {
		cache := d.CachePath(e)
		if d.exists(cache) {
			d.Clear(pane)
			d.backend.display(d, pane, cache)
			pane.Flush()
			return
		}

		if !d.exists(e.Path) {
			d.Clear(pane)
			pane.SetAlert(0, notFoundMessage)
			pane.Flush()
			return
		}

		Summary(pane, e)
		pane.Flush()
		if err := d.startThumbnail(th, e.Path, cache); err != nil {
			logging.L().Warn("thumbnail job failed to start",
				logging.String("path", e.Path), logging.Err(err))
			return
		}
		d.pending = cache
		return
	}

	if pv := d.previewers[e.Type]; pv != nil {
		pv(d, pane, e)
		pane.Flush()
		return
	}

	Summary(pane, e)
	pane.Flush()
}

// RefreshPending shows the awaited thumbnail once its file exists. It
// reports whether anything was drawn.
func (d *Dispatcher) RefreshPending(pane Pane) bool {
	if d.pending == "" || !d.exists(d.pending) {
		return false
	}
	path := d.pending
	d.pending = ""

	d.Clear(pane)
	d.backend.display(d, pane, path)
	pane.Flush()
	return true
}

// Clear erases the pane, including pixels a graphics mode drew outside the
// character grid.
func (d *Dispatcher) Clear(pane Pane) {
	pane.Erase()
	pane.Flush()

	if !d.needsClearing {
		return
	}
	if d.backend.clear(d, pane) {
		d.needsClearing = false
	}
}

// wrapThumbnail turns a thumbnailer fragment into a job that publishes its
// output atomically and then signals the browser. Each job writes its own
// temporary file, so overlapping jobs for one entry never share output.
func wrapThumbnail(script string) string {
	return `t="${2%/*}/.part-$$-${2##*/}"; ` +
		`if (` + script + `) </dev/null >/dev/null 2>&1 && mv -f "$t" "$2"; ` +
		`then kill -s USR1 "$3"; else rm -f "$t"; exit 1; fi`
}

func (d *Dispatcher) startThumbnail(th thumbnailer, src, cache string) error {
	script := wrapThumbnail(th(d.thumbWidth))
	logging.L().Debug("starting thumbnail job",
		logging.String("src", src), logging.String("cache", cache))
	return d.spawn("sh", "-c", script, "raider", src, cache, strconv.Itoa(d.pid))
}

func (d *Dispatcher) runCommand(stdin, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	return d.output(ctx, stdin, name, args...)
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func commandOutput(ctx context.Context, stdin, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	return cmd.Output()
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
