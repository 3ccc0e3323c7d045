// Package scheduler provides the deferred-task primitive the gating and
// escalation layers use instead of sleeping inside a callback. Every validator
// callback — trigger notifications, scheduled L1/L2/L3 steps — runs serially
// through the scheduler's single dispatcher, so components that only run on
// that dispatcher need no locks of their own.
package scheduler

import "time"

// Task is a unit of work dispatched on the scheduler's single worker.
type Task func()

// Scheduler is the deferred-task primitive: Now and RunAfter. Run is an
// addition used to funnel externally-arriving callbacks (e.g. a hub
// notification) onto the same serial dispatcher as scheduled phases.
type Scheduler interface {
	// Now returns the scheduler's current time. Production schedulers return
	// wall-clock time; the virtual scheduler returns its advanced time,
	// letting tests exercise debounce/rate-limit/escalation timing
	// deterministically.
	Now() time.Time

	// RunAfter schedules task to run on the dispatcher at Now()+delay.
	// Returns an error if the task could not be enqueued (SchedulerError).
	RunAfter(delay time.Duration, task Task) error

	// Run schedules task to run on the dispatcher as soon as possible,
	// after every task already queued ahead of it.
	Run(task Task) error
}
