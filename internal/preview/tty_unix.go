//go:build linux || darwin || freebsd

package preview

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

func terminalPixels(fd int) (int, int, bool) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Xpixel == 0 || ws.Ypixel == 0 {
		return 0, 0, false
	}
	return int(ws.Xpixel), int(ws.Ypixel), true
}

// detach puts background jobs in their own process group so terminal
// signals aimed at the browser do not reach them.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
