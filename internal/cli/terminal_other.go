//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd && !windows

package cli

// IsTerminal always reports false on platforms without terminal detection.
func IsTerminal(fd uintptr) bool {
	return false
}
