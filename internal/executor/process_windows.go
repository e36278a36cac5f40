//go:build windows

package executor

import (
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// configureProcAttr starts the runner in its own process group so a kill
// can address the runner and its children together.
func configureProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}

// killProcessGroup terminates the process tree rooted at pid. taskkill /T
// covers child processes, which plain Process.Kill does not.
func killProcessGroup(pid int) error {
	kill := exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(pid))
	if err := kill.Run(); err != nil {
		proc, findErr := os.FindProcess(pid)
		if findErr != nil {
			return findErr
		}
		return proc.Kill()
	}
	return nil
}
