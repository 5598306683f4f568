package animation

import (
	"sort"
	"sync"
	"time"
)

// Timer is a one-shot callback registered on a [Timers] queue.
type Timer struct {
	queue    *Timers
	deadline time.Time
	seq      uint64
	fn       func()
}

// Stop cancels the timer. It reports whether the timer was still pending;
// stopping a fired or already stopped timer is a no-op.
func (t *Timer) Stop() bool {
	if t == nil || t.queue == nil {
		return false
	}
	return t.queue.remove(t)
}

// Active reports whether the timer is still waiting to fire.
func (t *Timer) Active() bool {
	if t == nil || t.queue == nil {
		return false
	}
	t.queue.mu.Lock()
	defer t.queue.mu.Unlock()
	_, ok := t.queue.pending[t]
	return ok
}

// Timers is a queue of one-shot timers advanced explicitly by [Timers.Step].
//
// Scheduling and stopping are safe from any goroutine. Callbacks run only
// inside Step, on the goroutine that calls it.
type Timers struct {
	mu      sync.Mutex
	clock   Clock
	pending map[*Timer]struct{}
	nextSeq uint64
}

// NewTimers creates a queue reading time from c. A nil clock follows the
// package clock (see [SetClock]).
func NewTimers(c Clock) *Timers {
	return &Timers{
		clock:   c,
		pending: make(map[*Timer]struct{}),
	}
}

// DefaultTimers is the queue stepped by [StepTimers].
var DefaultTimers = NewTimers(nil)

// StepTimers fires any due timers on [DefaultTimers].
// This should be called once per frame from the host's event loop.
func StepTimers() int {
	return DefaultTimers.Step()
}

// HasActiveTimers returns true if DefaultTimers has pending timers.
func HasActiveTimers() bool {
	return DefaultTimers.Pending() > 0
}

func (q *Timers) now() time.Time {
	if q.clock != nil {
		return q.clock.Now()
	}
	return Now()
}

// After schedules fn to run on the first Step at or after d from now.
func (q *Timers) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextSeq++
	t := &Timer{
		queue:    q,
		deadline: q.now().Add(d),
		seq:      q.nextSeq,
		fn:       fn,
	}
	q.pending[t] = struct{}{}
	return t
}

// Schedule is After returning only the cancel function.
func (q *Timers) Schedule(d time.Duration, fn func()) (cancel func()) {
	t := q.After(d, fn)
	return func() { t.Stop() }
}

// Pending returns the number of timers waiting to fire.
func (q *Timers) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Step fires every timer whose deadline has passed, earliest first, and
// returns how many fired. A timer stopped by an earlier callback in the same
// step does not fire.
func (q *Timers) Step() int {
	q.mu.Lock()
	if len(q.pending) == 0 {
		q.mu.Unlock()
		return 0
	}
	now := q.now()
	due := make([]*Timer, 0, len(q.pending))
	for t := range q.pending {
		if !t.deadline.After(now) {
			due = append(due, t)
		}
	}
	q.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})

	fired := 0
	for _, t := range due {
		if !q.remove(t) {
			continue
		}
		fired++
		if t.fn != nil {
			t.fn()
		}
	}
	return fired
}

func (q *Timers) remove(t *Timer) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.pending[t]; !ok {
		return false
	}
	delete(q.pending, t)
	return true
}
