//go:build !windows

package executor

import (
	"fmt"
	"os/exec"
	"syscall"
)

// configureProcAttr puts the runner in its own process group so a kill
// takes down the runner together with every browser and worker process it
// spawned.
func configureProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// killProcessGroup kills an entire process group. The negative PID
// addresses the group; if that fails, kill the process itself.
func killProcessGroup(pid int) error {
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
		if err2 := syscall.Kill(pid, syscall.SIGKILL); err2 != nil {
			return fmt.Errorf("failed to kill process group -%d: %v, also failed to kill process %d: %v", pid, err, pid, err2)
		}
	}
	return nil
}
