package process

import "time"

// Spec configures a shell command to execute. It is immutable once
// execution starts.
type Spec struct {
	// Command is the shell command line, run via "sh -c".
	Command string
	// Dir is the working directory. If empty, uses the current directory.
	Dir string
	// Env is additional environment variables, merged on top of the
	// current process environment. A PATH value may use the literal PATH
	// placeholder to append entries to the inherited lookup path.
	Env map[string]string
	// NoLocalEnv disables inheriting the current process environment.
	// The PATH placeholder still expands.
	NoLocalEnv bool
	// Timeout bounds the command's wall-clock lifetime. Zero means no
	// timeout.
	Timeout time.Duration
	// OnLine, if set, is invoked once per output line, in the order lines
	// are produced and strictly before the next line is read.
	OnLine func(command, line string)
	// MaxLineBytes caps the line scan buffer. Defaults to
	// DefaultMaxLineBytes if zero.
	MaxLineBytes int
	// GracePeriod is how long TerminateGroup waits after SIGTERM before
	// SIGKILL. Defaults to 5 seconds if zero.
	GracePeriod time.Duration
}
