package process

import "time"

// Result holds the output and status of a completed command.
type Result struct {
	// Output is the captured output text, stdout and stderr merged, in
	// the order the command emitted it.
	Output string
	// ExitCode is the command exit code. -1 if the process was killed
	// before producing one.
	ExitCode int
	// Duration is how long the command ran.
	Duration time.Duration
}
