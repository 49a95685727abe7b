package extractor

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCappedWriter(t *testing.T) {
	w := &cappedWriter{max: 10}
	if _, err := w.Write([]byte("12345")); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("67890")); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("x")); !errors.Is(err, errOutputLimit) {
		t.Fatalf("expected errOutputLimit past the cap, got %v", err)
	}
	if !w.exceeded {
		t.Fatal("exceeded flag not set")
	}
	if got := w.buf.String(); got != "1234567890" {
		t.Fatalf("buffer = %q, want the bytes accepted before the cap", got)
	}
}

func TestCappedWriterUnlimited(t *testing.T) {
	w := &cappedWriter{}
	big := strings.Repeat("z", 1<<16)
	if _, err := w.Write([]byte(big)); err != nil {
		t.Fatal(err)
	}
	if w.exceeded {
		t.Fatal("no cap configured, exceeded must stay false")
	}
}

func TestCappedWriterOnExceedFiresOnce(t *testing.T) {
	var calls int
	w := &cappedWriter{max: 4, onExceed: func() { calls++ }}
	if _, err := w.Write([]byte("abcd")); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if _, err := w.Write([]byte("x")); !errors.Is(err, errOutputLimit) {
			t.Fatalf("expected errOutputLimit, got %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("onExceed fired %d times, want 1", calls)
	}
}

func TestClassifyProcessError(t *testing.T) {
	cause := errors.New("copy failed")

	// the cap breach cancels the context, so a cancelled (or even expired)
	// context must still classify as OutputExceeded
	perr := classifyProcessError(cause, context.DeadlineExceeded, true, "")
	if !perr.OutputExceeded || perr.TimedOut {
		t.Fatalf("cap breach classified as %+v, want OutputExceeded", perr)
	}

	perr = classifyProcessError(cause, context.DeadlineExceeded, false, "")
	if !perr.TimedOut {
		t.Fatalf("deadline expiry classified as %+v, want TimedOut", perr)
	}

	perr = classifyProcessError(cause, nil, false, "boom")
	if perr.TimedOut || perr.OutputExceeded {
		t.Fatalf("plain failure classified as %+v", perr)
	}
	if perr.Stderr != "boom" {
		t.Fatalf("stderr = %q, want boom", perr.Stderr)
	}
}

func TestProcessErrorMessages(t *testing.T) {
	tests := []struct {
		err  *ProcessError
		want string
	}{
		{&ProcessError{TimedOut: true}, "process timed out"},
		{&ProcessError{OutputExceeded: true}, "process output exceeded limit"},
		{&ProcessError{ExitCode: 3}, "process exited with code 3"},
	}
	for _, tc := range tests {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}
}
