//go:build !windows

package app

import (
	"os"
	"syscall"
)

func contSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}

// readySignals is what thumbnail jobs send once their output is in place.
func readySignals() []os.Signal {
	return []os.Signal{syscall.SIGUSR1}
}
