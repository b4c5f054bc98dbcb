package process

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/forgeci/corekit/util"
)

const defaultGracePeriod = 5 * time.Second

// Proc owns a spawned shell process, its process group, and its merged
// output stream. The group must not outlive the call that created it:
// every path reaps or kills the group before returning to the caller.
type Proc struct {
	cmd   *exec.Cmd
	out   *os.File
	grace time.Duration

	waitOnce sync.Once
	waitErr  error
}

// Spawn starts spec.Command through the shell in a new process group
// anchored at its own pid, so every descendant shares the group. The
// returned Proc owns the merged stdout/stderr stream.
func Spawn(spec Spec) (*Proc, error) {
	if strings.TrimSpace(spec.Command) == "" {
		return nil, &SpawnError{Command: spec.Command, Err: errors.New("empty command")}
	}
	if spec.Dir != "" {
		info, err := os.Stat(spec.Dir)
		if err != nil {
			return nil, &SpawnError{Command: spec.Command, Err: err}
		}
		if !info.IsDir() {
			return nil, &SpawnError{Command: spec.Command, Err: fmt.Errorf("not a directory: %s", spec.Dir)}
		}
	}

	cmd := exec.Command(shellBin, shellFlag, spec.Command) //nolint:gosec // running caller commands is the purpose of this package
	cmd.Dir = spec.Dir
	cmd.Env = util.MergeEnv(spec.Env, !spec.NoLocalEnv)

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, &SpawnError{Command: spec.Command, Err: err}
	}
	cmd.Stdout = pw
	cmd.Stderr = pw
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, &SpawnError{Command: spec.Command, Err: err}
	}
	// The child holds the write end now; closing ours makes EOF behave
	// correctly once the group exits.
	pw.Close()

	grace := spec.GracePeriod
	if grace == 0 {
		grace = defaultGracePeriod
	}
	return &Proc{cmd: cmd, out: pr, grace: grace}, nil
}

// Output returns the merged stdout/stderr stream.
func (p *Proc) Output() io.Reader { return p.out }

// Pid returns the process id, which is also the process group id.
func (p *Proc) Pid() int {
	if p.cmd.Process == nil {
		return -1
	}
	return p.cmd.Process.Pid
}

// Wait reaps the process, closing the output stream. Safe to call more
// than once; subsequent calls return the first result.
func (p *Proc) Wait() error {
	p.waitOnce.Do(func() {
		p.waitErr = p.cmd.Wait()
		// Unblocks any reader still draining the pipe, even if something
		// outside the group kept the write end open.
		p.out.Close()
	})
	return p.waitErr
}

// ExitCode returns the exit code of the reaped process. Signal deaths map
// to 128+signal; -1 means the process has not been reaped.
func (p *Proc) ExitCode() int {
	state := p.cmd.ProcessState
	if state == nil {
		return -1
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return state.ExitCode()
}
