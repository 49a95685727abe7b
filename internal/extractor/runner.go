package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Runner lets us stub external commands in tests.
// maxOutput caps the bytes captured from stdout; 0 means no cap.
type Runner interface {
	Run(ctx context.Context, maxOutput int64, name string, args ...string) (stdout, stderr []byte, err error)
}

// ProcessError classifies a subprocess failure so callers can treat
// every variant uniformly as "move to the next cascade tier".
type ProcessError struct {
	TimedOut       bool
	OutputExceeded bool
	ExitCode       int
	Stderr         string
	Cause          error
}

func (e *ProcessError) Error() string {
	switch {
	case e.TimedOut:
		return "process timed out"
	case e.OutputExceeded:
		return "process output exceeded limit"
	case e.ExitCode != 0:
		return fmt.Sprintf("process exited with code %d", e.ExitCode)
	default:
		return fmt.Sprintf("process failed: %v", e.Cause)
	}
}

func (e *ProcessError) Unwrap() error { return e.Cause }

var errOutputLimit = errors.New("output limit reached")

// cappedWriter stops accepting bytes once max is reached. onExceed fires
// once, on the first rejected write, so the caller can kill the producer
// instead of leaving it blocked on a full pipe.
type cappedWriter struct {
	buf      bytes.Buffer
	max      int64
	exceeded bool
	onExceed func()
}

func (w *cappedWriter) Write(p []byte) (int, error) {
	if w.max > 0 && int64(w.buf.Len())+int64(len(p)) > w.max {
		if !w.exceeded && w.onExceed != nil {
			w.onExceed()
		}
		w.exceeded = true
		return 0, errOutputLimit
	}
	return w.buf.Write(p)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, maxOutput int64, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	// own cancel so a cap breach kills the child instead of letting it
	// sit on a full pipe until the deadline
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	out := &cappedWriter{max: maxOutput, onExceed: cancel}
	var errb bytes.Buffer
	cmd.Stdout = out
	cmd.Stderr = &errb

	err := cmd.Run()
	dur := time.Since(start)

	if err != nil {
		perr := classifyProcessError(err, ctx.Err(), out.exceeded, errb.String())
		slog.Debug("exec failed",
			"cmd", name,
			"args", strings.Join(args, " "),
			"duration_ms", dur.Milliseconds(),
			"error", perr,
		)
		return out.buf.Bytes(), errb.Bytes(), perr
	}

	slog.Debug("exec ok",
		"cmd", name,
		"args", strings.Join(args, " "),
		"duration_ms", dur.Milliseconds(),
		"stdout_bytes", out.buf.Len(),
		"stderr_bytes", errb.Len(),
	)
	return out.buf.Bytes(), errb.Bytes(), nil
}

// classifyProcessError buckets a subprocess failure. A cap breach wins over
// the context state: the breach cancels the context itself, so checking the
// context first would mislabel it.
func classifyProcessError(err, ctxErr error, exceeded bool, stderr string) *ProcessError {
	perr := &ProcessError{
		Stderr: truncate(stderr, 8<<10), // cap at 8KB
		Cause:  err,
	}
	switch {
	case exceeded:
		perr.OutputExceeded = true
	case errors.Is(ctxErr, context.DeadlineExceeded):
		perr.TimedOut = true
	default:
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			perr.ExitCode = ee.ExitCode()
		}
	}
	return perr
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
