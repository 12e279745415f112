//go:build !windows

package app

import (
	"os/exec"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sys/unix"
)

func (app *Application) suspendToShell() {
	// Return terminal control to the shell before stopping the process.
	_ = app.screen.Suspend()
	// Stop only this process so job control in the launching shell keeps
	// working.
	_ = unix.Kill(unix.Getpid(), unix.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	app.session.View.SetHeight(app.renderer.ListHeight())
	app.needsRender = true
	app.requestPreview(true)
	return true
}

// detach puts cmd in its own process group so terminal signals aimed at
// the browser do not reach it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
