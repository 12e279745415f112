package app

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/raider/internal/config"
	"github.com/kk-code-lab/raider/internal/logging"
	"github.com/kk-code-lab/raider/internal/preview"
	statepkg "github.com/kk-code-lab/raider/internal/state"
	inputui "github.com/kk-code-lab/raider/internal/ui/input"
	renderui "github.com/kk-code-lab/raider/internal/ui/render"
	"github.com/kk-code-lab/raider/internal/watch"
)

// Options configures NewApplication. Zero values fall back to the real
// terminal and environment.
type Options struct {
	Screen     tcell.Screen
	Config     *config.Config
	Dispatcher *preview.Dispatcher
	// StartPath is an absolute directory or file; empty means the working
	// directory.
	StartPath string
	Home      string
	User      string
	Host      string
	PID       int
}

type previewRequest int

const (
	previewNone previewRequest = iota
	previewSummary
	previewFull
)

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	actionCh chan statepkg.Action
	session  *statepkg.Session
	preview  *preview.Dispatcher
	watcher  *watch.DirectoryWatcher
	tools    tools

	home string
	pid  int

	keyTimeout   time.Duration
	watchTimeout time.Duration

	// readyCh receives the signal thumbnail jobs send when they finish.
	readyCh chan os.Signal
	contCh  chan os.Signal

	shouldQuit  bool
	needsRender bool
	previewReq  previewRequest
}

// NewApplication sets up the screen and opens the start directory.
func NewApplication(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.Home == "" {
		opts.Home, _ = os.UserHomeDir()
	}
	if opts.PID == 0 {
		opts.PID = os.Getpid()
	}

	screen := opts.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = preview.NewDispatcher(preview.Capabilities{}, preview.Options{
			CacheDir:       cfg.CacheDir,
			ThumbnailWidth: cfg.ThumbnailWidth,
			PID:            opts.PID,
		})
	}
	if err := dispatcher.EnsureCacheDir(); err != nil {
		logging.L().Warn("thumbnails disabled", logging.Err(err))
	}

	renderer := renderui.NewRenderer(screen, opts.User, opts.Host)
	actionCh := make(chan statepkg.Action, 16)

	app := &Application{
		screen:       screen,
		renderer:     renderer,
		input:        inputui.NewInputHandler(actionCh),
		actionCh:     actionCh,
		session:      statepkg.NewSession(renderer.ListHeight(), statepkg.SelectionFile(opts.Home, opts.PID), cfg.ShowHidden),
		preview:      dispatcher,
		watcher:      watch.NewDirectoryWatcher(),
		tools:        detectTools(runtime.GOOS, os.Getenv, lookPath),
		home:         opts.Home,
		pid:          opts.PID,
		keyTimeout:   cfg.KeyTimeout,
		watchTimeout: cfg.WatchTimeout,
		readyCh:      make(chan os.Signal, 1),
		contCh:       make(chan os.Signal, 1),
	}
	if sigs := readySignals(); len(sigs) > 0 {
		signal.Notify(app.readyCh, sigs...)
	}
	if sigs := contSignals(); len(sigs) > 0 {
		signal.Notify(app.contCh, sigs...)
	}

	start := opts.StartPath
	if start == "" {
		cwd, err := GetCwd()
		if err != nil {
			app.Close()
			return nil, err
		}
		start = cwd
	}
	app.gotoPath(filepath.Clean(start))
	return app, nil
}

// Session exposes the browsing state.
func (app *Application) Session() *statepkg.Session {
	return app.session
}

// Close cleans up resources.
func (app *Application) Close() error {
	signal.Stop(app.readyCh)
	signal.Stop(app.contCh)
	if err := app.watcher.Close(); err != nil {
		logging.L().Debug("closing directory watcher", logging.Err(err))
	}
	if err := app.session.Selection.RemoveFile(); err != nil {
		logging.L().Warn("selection file left behind", logging.Err(err))
	}
	app.screen.Fini()
	return nil
}

// GetCwd returns current working directory.
func GetCwd() (string, error) {
	return os.Getwd()
}

func windowTitle(dir string, pid int) string {
	return fmt.Sprintf("raider: %s [%d]", dir, pid)
}
