package process

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/forgeci/corekit/logger"
)

const tracerName = "github.com/forgeci/corekit/process"

// Execute runs one shell command to completion or to its deadline. The
// merged output is drained line by line; each line is handed to
// spec.OnLine (when set) in emit order, strictly before the next line is
// read. Whatever output was captured before a failure is preserved in the
// returned Result.
//
// Error taxonomy: *SpawnError when the process cannot be created,
// *CommandError on non-zero exit, *TimeoutError when spec.Timeout elapses
// first. On the timeout path the whole process group is terminated before
// the error is returned.
func Execute(ctx context.Context, spec Spec) (*Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "process.Execute",
		trace.WithAttributes(attribute.String("process.command", spec.Command)))
	defer span.End()

	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	p, err := Spawn(spec)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "spawn failed")
		return nil, err
	}

	log := logger.WithComponent("process")
	start := time.Now()

	var out strings.Builder
	drained := make(chan error, 1)
	go func() {
		lr := NewLineReader(p.Output(), spec.MaxLineBytes)
		for {
			line, rerr := lr.ReadLine()
			if rerr != nil {
				if errors.Is(rerr, io.EOF) {
					drained <- nil
				} else {
					drained <- rerr
				}
				return
			}
			if spec.OnLine != nil {
				spec.OnLine(spec.Command, line)
			}
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}()

	select {
	case rerr := <-drained:
		if rerr != nil {
			// The line reader gave up (over-length line or read failure).
			// The command may still be running; it gets the same group
			// cleanup as a timeout.
			p.TerminateGroup()
			result := &Result{Output: out.String(), ExitCode: p.ExitCode(), Duration: time.Since(start)}
			span.RecordError(rerr)
			span.SetStatus(codes.Error, "output drain failed")
			return result, rerr
		}
		waitErr := p.Wait()
		result := &Result{Output: out.String(), ExitCode: p.ExitCode(), Duration: time.Since(start)}
		span.SetAttributes(attribute.Int("process.exit_code", result.ExitCode))
		if waitErr != nil {
			log.Debug("command failed", logger.Fields(
				logger.FieldCommand, spec.Command,
				logger.FieldExitCode, result.ExitCode,
			))
			span.SetStatus(codes.Error, "non-zero exit")
			return result, &CommandError{
				Command:  spec.Command,
				ExitCode: result.ExitCode,
				Output:   result.Output,
				Err:      waitErr,
			}
		}
		return result, nil

	case <-ctx.Done():
		// Terminate the whole group before surfacing the error so no
		// descendant survives past the caller observing it.
		p.TerminateGroup()
		<-drained // the pipe closes once the group is reaped
		result := &Result{Output: out.String(), ExitCode: p.ExitCode(), Duration: time.Since(start)}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			terr := &TimeoutError{Command: spec.Command, Timeout: spec.Timeout, Output: result.Output}
			log.Warn("command timed out", logger.Fields(
				logger.FieldCommand, spec.Command,
				logger.FieldDuration, result.Duration.Milliseconds(),
			))
			span.RecordError(terr)
			span.SetStatus(codes.Error, "timeout")
			return result, terr
		}
		span.SetStatus(codes.Error, "canceled")
		return result, ctx.Err()
	}
}
