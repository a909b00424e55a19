package systems

import (
	"fmt"
	"log/slog"
)

// Action is deferred work run by a DelayedQueue.
// A returned error is logged; it never stops other actions from running.
type Action interface {
	Run() error
}

// ActionFunc adapts a plain function to Action.
type ActionFunc func() error

// Run calls f.
func (f ActionFunc) Run() error { return f() }

type scheduled struct {
	fireAt float64
	action Action
}

// DelayedQueue holds actions keyed by the simulation time at which they fire.
// It is not a timer: actions only run from Advance, on the caller's goroutine.
type DelayedQueue struct {
	now     float64
	entries []scheduled
	due     []scheduled
	logger  *slog.Logger
}

// NewDelayedQueue creates an empty queue. A nil logger uses slog.Default().
func NewDelayedQueue(logger *slog.Logger) *DelayedQueue {
	if logger == nil {
		logger = slog.Default()
	}
	return &DelayedQueue{logger: logger}
}

// Now returns the simulation time of the last Advance.
func (q *DelayedQueue) Now() float64 {
	return q.now
}

// Len returns the number of pending actions.
func (q *DelayedQueue) Len() int {
	return len(q.entries)
}

// Schedule runs action once the clock reaches Now()+delay.
func (q *DelayedQueue) Schedule(delay float64, action Action) {
	q.entries = append(q.entries, scheduled{fireAt: q.now + delay, action: action})
}

// Advance moves the clock to now and runs every action whose fire time has
// passed. Due entries are removed before they run, so a failing action is
// still discarded. Actions scheduled while advancing wait for the next call.
// Advance must not be called from inside an action.
func (q *DelayedQueue) Advance(now float64) int {
	q.now = now

	// Partition first: running actions may append to q.entries.
	due := q.due[:0]
	kept := q.entries[:0]
	for _, e := range q.entries {
		if e.fireAt <= now {
			due = append(due, e)
		} else {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(q.entries); i++ {
		q.entries[i] = scheduled{}
	}
	q.entries = kept

	for i := range due {
		q.run(due[i])
		due[i] = scheduled{}
	}
	q.due = due[:0]

	return len(due)
}

// run invokes one action, converting panics into logged failures.
func (q *DelayedQueue) run(e scheduled) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("delayed action panicked",
				"fire_at", e.fireAt,
				"now", q.now,
				"action", describeAction(e.action),
				"panic", fmt.Sprint(r),
			)
		}
	}()

	if err := e.action.Run(); err != nil {
		q.logger.Error("delayed action failed",
			"fire_at", e.fireAt,
			"now", q.now,
			"action", describeAction(e.action),
			"error", err,
		)
	}
}

func describeAction(a Action) string {
	if s, ok := a.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", a)
}
