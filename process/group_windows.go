//go:build windows

package process

import (
	"os/exec"
	"syscall"
)

const (
	shellBin  = "cmd"
	shellFlag = "/C"
)

func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}

// TerminateGroup kills the immediate process and reaps it. Windows has no
// POSIX process groups; descendants spawned by the command are not
// tracked, so cleanup reaches only the shell itself.
func (p *Proc) TerminateGroup() {
	if p.cmd.Process == nil {
		return
	}
	_ = p.cmd.Process.Kill()
	_ = p.Wait()
}
