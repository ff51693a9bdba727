//go:build !windows

package process

import "syscall"

// KillProcessGroup force-kills pid and every child it spawned. The browser
// launcher puts the browser in its own process group, so signalling the
// negative pid reaches the whole tree. Errors are ignored: this is
// best-effort cleanup after a timeout, and the launcher's own Kill is the
// fallback.
func KillProcessGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
