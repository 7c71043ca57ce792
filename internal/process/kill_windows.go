//go:build windows

package process

import (
	"fmt"
	"os/exec"
	"strconv"
)

// KillTree force-terminates pid and its children with taskkill.
func KillTree(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	// /T walks the child tree, /F skips the close request
	if err := exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run(); err != nil { // #nosec G204 -- numeric pid
		return fmt.Errorf("taskkill %d: %w", pid, err)
	}
	return nil
}
