//go:build !linux

package terminal

// resetTerminalMode is a no-op where TCGETS termios ioctls are unavailable
func resetTerminalMode() {}
