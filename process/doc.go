// Package process executes shell commands with bounded lifetime and
// guaranteed cleanup of everything the command spawns.
//
// Commands run through /bin/sh in their own process group, so termination
// reaches every descendant. Output (stdout and stderr merged) is captured
// line by line; callers may observe lines as they are produced via
// Spec.OnLine:
//
//	result, err := process.Execute(ctx, process.Spec{
//	    Command: "make test",
//	    Dir:     workdir,
//	    Timeout: 10 * time.Minute,
//	})
//
// On timeout the whole process group is terminated before Execute returns,
// so no descendant survives past the caller observing the error.
package process
