package app

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kk-code-lab/raider/internal/fs"
	"github.com/kk-code-lab/raider/internal/logging"
)

// commandBuilder is swapped out in tests.
var commandBuilder = exec.Command

const (
	errOpenFile   = "cannot open file"
	errOpenShell  = "cannot open shell here"
	errOpenEditor = "cannot open editor here"
	errFuzzyFind  = "cannot search here"
)

func (app *Application) forward() {
	e, ok := app.session.Current()
	if !ok {
		return
	}
	if e.IsDir {
		app.gotoDir(e.Path, "")
		return
	}
	if e.Mode.IsRegular() && e.Mode.Perm()&0o400 != 0 {
		app.openFile(e.Path)
	}
}

// openFile hands a file to the desktop opener without waiting for it.
func (app *Application) openFile(path string) {
	if app.tools.opener == "" {
		app.fail(errOpenFile, fmt.Errorf("no opener found"))
		return
	}
	cmd := commandBuilder(app.tools.opener, path)
	detach(cmd)
	if err := cmd.Start(); err != nil {
		app.fail(errOpenFile, err)
		return
	}
	go func() {
		_ = cmd.Wait()
	}()
}

func (app *Application) openShell() {
	sel := app.session.Selection
	if err := sel.Save(); err != nil {
		logging.L().Warn("cannot save selection", logging.Err(err))
	}

	cmd := commandBuilder(app.tools.shell)
	cmd.Dir = app.session.CurrentDir
	err := app.runInTerminal(cmd, func(w io.Writer) {
		fmt.Fprintf(w, "selected files are at %s\n", sel.Path())
	})

	app.refresh()
	if err != nil {
		app.fail(errOpenShell, err)
	}
	if err := sel.Purge(); err != nil {
		logging.L().Warn("cannot save selection", logging.Err(err))
	}
}

func (app *Application) openEditor() {
	if len(app.tools.editor) == 0 {
		return
	}
	e, ok := app.session.Current()
	if !ok {
		return
	}

	var target string
	switch {
	case e.IsDir:
		target = "."
	case e.Mode.IsRegular() && e.Mode.Perm()&0o400 != 0 && isText(e):
		target = e.Name
	default:
		return
	}

	args := append(append([]string{}, app.tools.editor[1:]...), target)
	cmd := commandBuilder(app.tools.editor[0], args...)
	cmd.Dir = app.session.CurrentDir
	err := app.runInTerminal(cmd, nil)

	app.refresh()
	if err != nil {
		app.fail(errOpenEditor, err)
	}
}

func isText(e fs.Entry) bool {
	if e.Type == fs.TypeUnknown {
		return fs.Sniff(e) == fs.TypeText
	}
	return e.Type == fs.TypeText
}

// fuzzyFind lets fzf pick a path below the current directory and jumps
// to it.
func (app *Application) fuzzyFind() {
	if app.tools.fzf == "" || len(app.tools.lister) == 0 {
		app.fail(errFuzzyFind, fmt.Errorf("fzf or a file lister not found"))
		return
	}

	pipeline := strings.Join(app.tools.lister, " ") + " | " + app.tools.fzf
	cmd := commandBuilder("sh", "-c", pipeline)
	cmd.Dir = app.session.CurrentDir

	var out bytes.Buffer
	cmd.Stdout = &out
	err := app.runInTerminal(cmd, nil)

	choice := firstLine(out.Bytes())
	if choice == "" {
		// Cancelled with Esc or Ctrl-C; fzf exits non-zero then.
		app.refresh()
		if err != nil {
			logging.L().Debug("fuzzy find ended", logging.Err(err))
		}
		return
	}

	path := choice
	if !filepath.IsAbs(path) {
		path = filepath.Join(app.session.CurrentDir, path)
	}
	app.gotoPath(path)
}

func firstLine(b []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(b))
	if sc.Scan() {
		return strings.TrimSpace(sc.Text())
	}
	return ""
}

// runInTerminal suspends the screen, runs cmd on the controlling terminal
// and takes the screen back. banner, when set, is written before cmd runs.
func (app *Application) runInTerminal(cmd *exec.Cmd, banner func(io.Writer)) error {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err == nil {
		defer func() {
			_ = tty.Close()
		}()
	}

	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	if tty != nil {
		in, out = tty, tty
	}
	if cmd.Stdin == nil {
		cmd.Stdin = in
	}
	if cmd.Stdout == nil {
		cmd.Stdout = out
	}
	if cmd.Stderr == nil {
		cmd.Stderr = out
	}

	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("suspend screen: %w", err)
	}
	if banner != nil {
		banner(out)
	}
	runErr := cmd.Run()

	if err := app.screen.Resume(); err != nil {
		return fmt.Errorf("resume screen: %w", err)
	}
	app.screen.Sync()
	if runErr != nil {
		return fmt.Errorf("%s: %w", filepath.Base(cmd.Path), runErr)
	}
	return nil
}

// fail shows msg on the status line and logs the cause.
func (app *Application) fail(msg string, err error) {
	logging.L().Warn(msg, logging.String("dir", app.session.CurrentDir), logging.Err(err))
	app.session.Err = msg
	app.needsRender = true
}
