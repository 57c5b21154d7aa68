package event

import (
	"sort"
	"sync"
	"time"
)

// Clock returns the current time. Schedulers take one so tests can drive time by hand.
type Clock func() time.Time

// Timer is a handle to a fire-once deferred callback.
type Timer interface {
	// Cancel stops the timer if it has not fired yet.
	//
	// Returns:
	//   - bool: true if this call prevented the callback from running
	Cancel() bool

	// Deadline returns the time at which the callback becomes due.
	//
	// Returns:
	//   - time.Time: the due time
	Deadline() time.Time

	// Active reports whether the timer is still pending.
	//
	// Returns:
	//   - bool: true until the timer fires or is cancelled
	Active() bool
}

// Scheduler runs deferred callbacks on the loop that calls RunDue, never on a background goroutine.
// This keeps timer callbacks on the same logical thread as input and render work.
type Scheduler interface {
	// AfterFunc schedules fn to run on the first RunDue at or after now+d.
	//
	// Parameters:
	//   - d: delay before the callback is due
	//   - fn: the callback
	//
	// Returns:
	//   - Timer: a cancellable handle
	AfterFunc(d time.Duration, fn func()) Timer

	// RunDue runs every pending callback whose deadline has passed, in deadline order.
	//
	// Returns:
	//   - int: the number of callbacks run
	RunDue() int

	// CancelAll cancels every pending timer.
	CancelAll()

	// Pending returns the number of timers that have not fired or been cancelled.
	//
	// Returns:
	//   - int: the pending count
	Pending() int

	// Now returns the scheduler's current time.
	//
	// Returns:
	//   - time.Time: the clock reading
	Now() time.Time
}

type timer struct {
	s        *scheduler
	seq      uint64
	deadline time.Time
	fn       func()
	active   bool
}

// scheduler is the implementation of the Scheduler interface.
type scheduler struct {
	mu      sync.Mutex
	clock   Clock
	seq     uint64
	pending []*timer
}

var _ Scheduler = &scheduler{}
var _ Timer = &timer{}

// NewScheduler creates a Scheduler driven by the given clock.
// A nil clock defaults to time.Now.
//
// Parameters:
//   - clock: the time source
//
// Returns:
//   - Scheduler: the new scheduler
func NewScheduler(clock Clock) Scheduler {
	if clock == nil {
		clock = time.Now
	}
	return &scheduler{clock: clock}
}

func (s *scheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &timer{
		s:        s,
		seq:      s.seq,
		deadline: s.clock().Add(d),
		fn:       fn,
		active:   true,
	}
	s.pending = append(s.pending, t)
	return t
}

func (s *scheduler) RunDue() int {
	now := s.Now()

	s.mu.Lock()
	var due []*timer
	kept := s.pending[:0]
	for _, t := range s.pending {
		if !t.active {
			continue
		}
		if !t.deadline.After(now) {
			due = append(due, t)
			continue
		}
		kept = append(kept, t)
	}
	s.pending = kept
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})

	ran := 0
	for _, t := range due {
		// A callback earlier in this batch may have cancelled a later one.
		s.mu.Lock()
		active := t.active
		t.active = false
		s.mu.Unlock()
		if !active {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

func (s *scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.pending {
		t.active = false
	}
	s.pending = nil
}

func (s *scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.pending {
		if t.active {
			n++
		}
	}
	return n
}

func (s *scheduler) Now() time.Time {
	return s.clock()
}

func (t *timer) Cancel() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if !t.active {
		return false
	}
	t.active = false
	return true
}

func (t *timer) Deadline() time.Time {
	return t.deadline
}

func (t *timer) Active() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return t.active
}

// ManualClock is a Clock that only moves when Advance is called.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a ManualClock starting at start.
//
// Parameters:
//   - start: the initial reading
//
// Returns:
//   - *ManualClock: the clock
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current reading. Pass c.Now as a Clock.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
