package conversation

import "time"

// CancelFunc cancels a scheduled task. Calling it after the task ran, or more
// than once, is a no-op.
type CancelFunc func()

// Scheduler runs fn once after d.
//
// Implementations must deliver fn on the goroutine that owns the Runtime.
// The runtime is not safe for concurrent use.
type Scheduler interface {
	After(d time.Duration, fn func()) CancelFunc
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(d time.Duration, fn func()) CancelFunc

func (f SchedulerFunc) After(d time.Duration, fn func()) CancelFunc {
	return f(d, fn)
}

// Immediate ignores the delay and runs every task inline.
var Immediate Scheduler = SchedulerFunc(func(_ time.Duration, fn func()) CancelFunc {
	fn()
	return func() {}
})

// Delays controls the pacing between a submission, its feedback, and the
// next step.
type Delays struct {
	Feedback time.Duration // submission to feedback message
	Advance  time.Duration // feedback message to next step
}

// DefaultDelays returns the standard pacing.
func DefaultDelays() Delays {
	return Delays{
		Feedback: 1 * time.Second,
		Advance:  2 * time.Second,
	}
}
