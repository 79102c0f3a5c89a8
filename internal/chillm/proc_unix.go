//go:build unix

package chillm

import (
	"os/exec"
	"syscall"
)

// configureProcessGroup places the child in its own process group and kills
// the whole group on cancellation. The collaborator spawns subprocesses of
// its own; killing only the direct child would leave grandchildren holding
// the inherited pipes open and stall the deadline.
func configureProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
