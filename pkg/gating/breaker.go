// Package gating implements the gating layer: circuit breaker, debounce,
// rate limits, and scene filters, applied in that order with short-circuit
// before a trigger candidate becomes an accepted validation.
//
// Every type in this package is process-global mutable state, owned by a
// single cooperative dispatcher: nothing here takes a lock, because nothing
// in this package is ever called from two goroutines at once — only from
// tasks run through pkg/scheduler's single worker. Do not call Gate methods
// directly from a hub callback or a goroutine you spawned yourself; route it
// through the scheduler first.
package gating

import "time"

// BreakerState is one of the three states in the circuit breaker's gate.
type BreakerState int

const (
	Closed BreakerState = iota
	Open
	HalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case Closed:
		return "CLOSED"
	case Open:
		return "OPEN"
	case HalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// CircuitBreaker suspends validation attempts after sustained L3 failure,
// and verifies recovery with a half-open probe window before fully closing.
type CircuitBreaker struct {
	state            BreakerState
	failureThreshold int
	successThreshold int
	timeout          time.Duration

	failures  int
	successes int
	openedAt  time.Time
}

// NewCircuitBreaker starts CLOSED with zero counters.
func NewCircuitBreaker(failureThreshold, successThreshold int, timeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		state:            Closed,
		failureThreshold: failureThreshold,
		successThreshold: successThreshold,
		timeout:          timeout,
	}
}

// State returns the breaker's current state.
func (b *CircuitBreaker) State() BreakerState {
	return b.state
}

// AllowAt reports whether a new candidate is admitted at time now, applying
// the OPEN → HALF_OPEN timeout transition as a side effect when the timeout
// has elapsed.
func (b *CircuitBreaker) AllowAt(now time.Time) bool {
	switch b.state {
	case Closed:
		return true
	case Open:
		if now.Sub(b.openedAt) < b.timeout {
			return false
		}
		b.state = HalfOpen
		b.successes = 0
		return true
	case HalfOpen:
		return true
	default:
		return true
	}
}

// RecordSuccess applies the outcome transitions driven by a completed
// escalation run.
func (b *CircuitBreaker) RecordSuccess(now time.Time) {
	switch b.state {
	case Closed:
		b.failures = 0
	case HalfOpen:
		b.successes++
		if b.successes >= b.successThreshold {
			b.state = Closed
			b.failures = 0
			b.successes = 0
		}
	case Open:
		// A success reported while OPEN (from an escalation accepted before
		// the breaker opened) leaves the state and counters unchanged.
	}
}

// RecordFailure applies the outcome transitions driven by a failed
// escalation run.
func (b *CircuitBreaker) RecordFailure(now time.Time) {
	switch b.state {
	case Closed:
		b.failures++
		if b.failures >= b.failureThreshold {
			b.state = Open
			b.openedAt = now
		}
	case HalfOpen:
		b.state = Open
		b.openedAt = now
		b.successes = 0
	case Open:
		// Already open; a stray failure report does not restamp opened-at.
	}
}
