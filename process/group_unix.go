//go:build unix

package process

import (
	"os/exec"
	"syscall"
	"time"
)

const (
	shellBin  = "/bin/sh"
	shellFlag = "-c"
)

func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// TerminateGroup sends SIGTERM to the entire process group, escalates to
// SIGKILL after the grace period, and reaps the group leader. Calling it
// on an already-dead process is a no-op.
func (p *Proc) TerminateGroup() {
	proc := p.cmd.Process
	if proc == nil {
		return
	}
	pgid, err := syscall.Getpgid(proc.Pid)
	if err != nil {
		// Group already gone; make sure the leader is reaped.
		_ = p.Wait()
		return
	}
	_ = syscall.Kill(-pgid, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		_ = p.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(p.grace):
		_ = syscall.Kill(-pgid, syscall.SIGKILL)
		<-done
	}
}
