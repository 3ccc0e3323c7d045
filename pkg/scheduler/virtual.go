package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Virtual is a deterministic Scheduler for tests: time only moves when
// Advance is called, and due tasks run synchronously within that call,
// in the order they were scheduled to fire (earliest first; ties broken by
// scheduling order). This lets debounce/rate-limit/escalation invariants be
// asserted without real sleeps.
type Virtual struct {
	mu      sync.Mutex
	now     time.Time
	pending []virtualTask
	seq     int
}

type virtualTask struct {
	at   time.Time
	seq  int
	task Task
}

// NewVirtual starts a Virtual scheduler at the given initial time.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

func (v *Virtual) RunAfter(delay time.Duration, task Task) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	v.pending = append(v.pending, virtualTask{at: v.now.Add(delay), seq: v.seq, task: task})
	return nil
}

// Run schedules task to fire at the current virtual time — it still waits
// for the next Advance (or Drain) rather than running inline, to
// preserve the same single-dispatcher ordering guarantees as Real.
func (v *Virtual) Run(task Task) error {
	return v.RunAfter(0, task)
}

// Advance moves virtual time forward by d and runs every task now due, in
// (at, seq) order. Tasks that schedule further tasks due within the same
// window also run before Advance returns.
func (v *Virtual) Advance(d time.Duration) {
	v.mu.Lock()
	v.now = v.now.Add(d)
	deadline := v.now
	v.mu.Unlock()

	v.drainUntil(deadline)
}

// Drain runs every task due at or before the latest currently-pending task's
// time, in (at, seq) order. It does not move the virtual clock: Now() keeps
// returning the time of the last Advance.
func (v *Virtual) Drain() {
	v.mu.Lock()
	if len(v.pending) == 0 {
		v.mu.Unlock()
		return
	}
	latest := v.pending[0].at
	for _, t := range v.pending {
		if t.at.After(latest) {
			latest = t.at
		}
	}
	v.mu.Unlock()

	v.drainUntil(latest)
}

func (v *Virtual) drainUntil(deadline time.Time) {
	for {
		v.mu.Lock()
		sort.SliceStable(v.pending, func(i, j int) bool {
			if v.pending[i].at.Equal(v.pending[j].at) {
				return v.pending[i].seq < v.pending[j].seq
			}
			return v.pending[i].at.Before(v.pending[j].at)
		})

		var due *virtualTask
		idx := -1
		for i, t := range v.pending {
			if !t.at.After(deadline) {
				due = &v.pending[i]
				idx = i
				break
			}
		}
		if due == nil {
			v.mu.Unlock()
			return
		}
		task := due.task
		v.pending = append(v.pending[:idx], v.pending[idx+1:]...)
		v.mu.Unlock()

		task()
	}
}

// PendingCount returns the number of tasks not yet run, for test assertions.
func (v *Virtual) PendingCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.pending)
}
