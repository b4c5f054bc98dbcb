package process

import (
	"context"
	"fmt"
	"time"
)

// SpawnError reports that a process could not be created at all: the
// working directory is invalid or the shell could not be launched.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("process: spawn %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// CommandError reports a non-zero exit status. Output captured before the
// failure is preserved for caller diagnostics.
type CommandError struct {
	Command  string
	ExitCode int
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("process: %q exited with code %d", e.Command, e.ExitCode)
}

func (e *CommandError) Unwrap() error { return e.Err }

// TimeoutError reports that the command's deadline elapsed before it
// finished. By the time the caller observes this error the whole process
// group has already been terminated.
type TimeoutError struct {
	Command string
	Timeout time.Duration
	Output  string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("process: %q timed out after %s", e.Command, e.Timeout)
}

func (e *TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// OverrunError reports an unterminated line longer than the scan buffer,
// produced by a misbehaving subprocess.
type OverrunError struct {
	Limit int
}

func (e *OverrunError) Error() string {
	return fmt.Sprintf("process: unterminated line exceeds %d bytes", e.Limit)
}
