//go:build linux

package term

import "golang.org/x/sys/unix"

// isTerminal asks the tty driver for the line settings; only terminals answer.
func isTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), unix.TCGETS)
	return err == nil
}
