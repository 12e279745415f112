//go:build windows

package app

import "os"

func contSignals() []os.Signal {
	return nil
}

func readySignals() []os.Signal {
	return nil
}
