package harness

import (
	"testing"
	"time"
)

// StepLogger writes structured step output through the test log, keeping
// scenario transcripts readable when a test fails.
type StepLogger struct {
	t     *testing.T
	start time.Time
}

// NewStepLogger creates a logger bound to t.
func NewStepLogger(t *testing.T) *StepLogger {
	return &StepLogger{t: t, start: time.Now()}
}

// Info logs a freeform message.
func (l *StepLogger) Info(format string, args ...any) {
	l.t.Helper()
	l.t.Logf("[e2e] "+format, args...)
}

// Step logs a numbered step.
func (l *StepLogger) Step(n int, format string, args ...any) {
	l.t.Helper()
	l.t.Logf("[e2e] step %d: "+format, append([]any{n}, args...)...)
}

// Result logs the outcome of the current step.
func (l *StepLogger) Result(format string, args ...any) {
	l.t.Helper()
	l.t.Logf("[e2e]   -> "+format, args...)
}

// Elapsed logs total scenario time.
func (l *StepLogger) Elapsed() {
	l.t.Helper()
	l.t.Logf("[e2e] elapsed: %s", time.Since(l.start).Round(time.Millisecond))
}
