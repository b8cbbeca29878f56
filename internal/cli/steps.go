package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
)

// steps reports progress through a fixed sequence of named steps.
// Interactive runs print "(n/N) Name: 0.12s (Finished)" lines to w, or
// "(Failed)" for a step that did not complete; every run logs the step
// timings at debug level.
type steps struct {
	w           io.Writer
	logger      hclog.Logger
	interactive bool
	names       []string
	current     int
	start       time.Time
	finished    func(a ...any) string
	failed      func(a ...any) string
}

func newSteps(w io.Writer, logger hclog.Logger, interactive bool, names ...string) *steps {
	finished := color.New(color.FgGreen).SprintFunc()
	failed := color.New(color.FgRed).SprintFunc()
	if !interactive {
		finished = fmt.Sprint
		failed = fmt.Sprint
	}
	return &steps{
		w:           w,
		logger:      logger,
		interactive: interactive,
		names:       names,
		current:     -1,
		finished:    finished,
		failed:      failed,
	}
}

// Next finishes the running step, if any, and starts the next one.
// It returns false once every step has been started.
func (s *steps) Next() bool {
	s.finish()
	if s.current+1 >= len(s.names) {
		return false
	}

	s.current++
	s.start = time.Now()
	if s.interactive {
		fmt.Fprintf(s.w, "(%d/%d) %s: ", s.current+1, len(s.names), s.names[s.current])
	}
	return true
}

// Done finishes the last step.
func (s *steps) Done() {
	s.finish()
	s.current = len(s.names)
}

// Fail ends the running step as failed, completing its line. It does
// nothing when no step is running.
func (s *steps) Fail() {
	s.end("step failed", s.failed("(Failed)"))
	s.current = len(s.names)
}

func (s *steps) finish() {
	s.end("step finished", s.finished("(Finished)"))
}

func (s *steps) end(msg, marker string) {
	if s.current < 0 || s.current >= len(s.names) || s.start.IsZero() {
		return
	}

	elapsed := time.Since(s.start)
	s.start = time.Time{}
	s.logger.Debug(msg, "step", s.names[s.current], "elapsed", elapsed.Round(time.Microsecond))
	if s.interactive {
		fmt.Fprintf(s.w, "%.2fs %s\n", elapsed.Seconds(), marker)
	}
}
