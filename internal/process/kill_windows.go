//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup force-kills pid and every child it spawned via taskkill
// (/F force, /T tree). Errors are ignored: this is best-effort cleanup after
// a timeout, and the launcher's own Kill is the fallback.
func KillProcessGroup(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
