//go:build darwin || freebsd

package term

import "golang.org/x/sys/unix"

// isTerminal asks the tty driver for the line settings; only terminals answer.
//
// BSD-derived systems name the request TIOCGETA rather than TCGETS.
func isTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), unix.TIOCGETA)
	return err == nil
}
