//go:build windows

package chillm

import "os/exec"

// configureProcessGroup is a no-op on Windows, where there is no process
// group signal; WaitDelay still unblocks Wait after the deadline kill.
func configureProcessGroup(cmd *exec.Cmd) {}
