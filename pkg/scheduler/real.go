package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/codeready-toolchain/scene-validator/pkg/validatorerrors"
)

// Real is a production Scheduler backed by a single dispatcher goroutine.
// time.AfterFunc fires on its own goroutine; Real re-enqueues that
// expiration onto the dispatcher's task channel rather than running the task
// directly, so every callback — immediate or delayed — still executes
// serially on the one worker.
type Real struct {
	tasks  chan Task
	done   chan struct{}
	once   sync.Once
	closed bool
	mu     sync.Mutex
}

// NewReal starts the dispatcher goroutine and returns a ready Scheduler.
// Call Stop when the validator shuts down.
func NewReal() *Real {
	r := &Real{
		tasks: make(chan Task, 256),
		done:  make(chan struct{}),
	}
	go r.dispatch()
	return r
}

func (r *Real) dispatch() {
	for {
		select {
		case task := <-r.tasks:
			task()
		case <-r.done:
			return
		}
	}
}

func (r *Real) Now() time.Time {
	return time.Now()
}

func (r *Real) RunAfter(delay time.Duration, task Task) error {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return fmt.Errorf("%w: scheduler stopped", validatorerrors.ErrScheduler)
	}

	time.AfterFunc(delay, func() {
		select {
		case r.tasks <- task:
		case <-r.done:
		}
	})
	return nil
}

func (r *Real) Run(task Task) error {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return fmt.Errorf("%w: scheduler stopped", validatorerrors.ErrScheduler)
	}

	select {
	case r.tasks <- task:
		return nil
	default:
		// Buffer full: fall back to a blocking send off the caller's
		// goroutine so a burst of triggers cannot deadlock the caller.
		go func() {
			select {
			case r.tasks <- task:
			case <-r.done:
			}
		}()
		return nil
	}
}

// Stop halts the dispatcher. Tasks already queued are dropped.
func (r *Real) Stop() {
	r.once.Do(func() {
		r.mu.Lock()
		r.closed = true
		r.mu.Unlock()
		close(r.done)
	})
}
