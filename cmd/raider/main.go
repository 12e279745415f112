package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	apppkg "github.com/kk-code-lab/raider/internal/app"
	"github.com/kk-code-lab/raider/internal/config"
	"github.com/kk-code-lab/raider/internal/logging"
	"github.com/kk-code-lab/raider/internal/preview"
)

var version = "0.4.2"

func printHelp(w io.Writer, modes []preview.Mode) {
	fmt.Fprintf(w, `raider - terminal file browser

USAGE:
    raider [OPTIONS]

OPTIONS:
    -h            Show this help message and exit
    -v            Show version and exit
    -p MODE       Preview mode, one of: %s
    -s PATH       Start in PATH (a directory, or a file to select)
    -c FILE       Config file (default %s)
    -d            Debug logging
`, preview.ModeList(modes), config.Path())
}

// options are the parsed command line.
type options struct {
	mode       string
	start      string
	configPath string
	debug      bool
}

// parseArgs leaves printing the usage text to the caller, which sends it to
// stdout for -h and to stderr for a bad command line.
func parseArgs(args []string, stderr io.Writer) (options, bool, error) {
	var opts options
	var showVersion bool

	fs := flag.NewFlagSet("raider", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}
	fs.BoolVar(&showVersion, "v", false, "show version")
	fs.StringVar(&opts.mode, "p", "", "preview mode")
	fs.StringVar(&opts.start, "s", "", "start path")
	fs.StringVar(&opts.configPath, "c", config.Path(), "config file")
	fs.BoolVar(&opts.debug, "d", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return opts, false, err
	}
	return opts, showVersion, nil
}

// resolveStart makes a -s path absolute against the working directory.
func resolveStart(path string) (string, error) {
	if path == "" || filepath.IsAbs(path) {
		return path, nil
	}
	cwd, err := apppkg.GetCwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, path), nil
}

// newDispatcher picks the preview mode: -p, then the config file.
func newDispatcher(cfg *config.Config, flagMode string, caps preview.Capabilities, probe preview.Probe, tty io.Writer) (*preview.Dispatcher, error) {
	name := cfg.PreviewMode
	if flagMode != "" {
		name = flagMode
	}
	mode, err := preview.ParseMode(name)
	if err != nil {
		return nil, err
	}

	d := preview.NewDispatcher(caps, preview.Options{
		CacheDir:       cfg.CacheDir,
		ThumbnailWidth: cfg.ThumbnailWidth,
		TTY:            tty,
		Probe:          probe,
	})
	if err := d.SetMode(mode); err != nil {
		return nil, err
	}
	return d, nil
}

func modeNames(modes []preview.Mode) []string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return names
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}

func run(args []string, stdout, stderr io.Writer) int {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	ttyFd := int(os.Stdout.Fd())
	var ttyOut io.Writer = os.Stdout
	if err == nil {
		defer func() {
			_ = tty.Close()
		}()
		ttyFd = int(tty.Fd())
		ttyOut = tty
	}

	probe := preview.DefaultProbe(ttyFd)
	caps := preview.NewCapabilities(probe)
	modes := preview.AvailableModes(caps)

	opts, showVersion, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printHelp(stdout, modes)
			return 0
		}
		printHelp(stderr, modes)
		return 2
	}
	if showVersion {
		fmt.Fprintf(stdout, "raider version %s\n", version)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "raider: %v\n", err)
		return 1
	}

	level := cfg.LogLevel
	if opts.debug {
		level = "debug"
	}
	if err := logging.Init(logging.Config{Level: level, OutputPath: cfg.LogFile}); err != nil {
		fmt.Fprintf(stderr, "raider: %v\n", err)
		return 1
	}
	defer func() {
		_ = logging.Sync()
	}()

	dispatcher, err := newDispatcher(cfg, opts.mode, caps, probe, ttyOut)
	if err != nil {
		fmt.Fprintf(stderr, "raider: %v\navailable modes: %s\n", err, preview.ModeList(modes))
		return 1
	}
	logging.L().Info("starting",
		logging.String("mode", string(dispatcher.Mode())),
		logging.Strings("available", modeNames(modes)),
		logging.Int("pixelWidth", caps.PixelWidth),
		logging.Int("pixelHeight", caps.PixelHeight),
		logging.Duration("keyTimeout", cfg.KeyTimeout),
		logging.Duration("watchTimeout", cfg.WatchTimeout))

	start, err := resolveStart(opts.start)
	if err != nil {
		fmt.Fprintf(stderr, "raider: %v\n", err)
		return 1
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(stderr, "raider: stdout is not a terminal")
		return 1
	}

	host, _ := os.Hostname()
	app, err := apppkg.NewApplication(apppkg.Options{
		Config:     cfg,
		Dispatcher: dispatcher,
		StartPath:  start,
		User:       currentUser(),
		Host:       host,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error initializing application: %v\n", err)
		return 1
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
	return 0
}

func main() {
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
