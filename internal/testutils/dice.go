package testutils

import (
	"fmt"
	"sync"
	"time"
)

// ScriptedRoller returns queued values in order, ignoring die sizes.
// It implements dice.Roller so engine tests can fix every roll.
type ScriptedRoller struct {
	mu     sync.Mutex
	values []int
	sizes  []int
}

// NewScriptedRoller queues values to be returned by Roll and RollN
func NewScriptedRoller(values ...int) *ScriptedRoller {
	return &ScriptedRoller{values: values}
}

// Push appends more values to the queue
func (r *ScriptedRoller) Push(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, values...)
}

// Remaining reports how many queued values are unused
func (r *ScriptedRoller) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Sizes returns the die size of every roll made so far
func (r *ScriptedRoller) Sizes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.sizes))
	copy(out, r.sizes)
	return out
}

// Roll returns the next queued value
func (r *ScriptedRoller) Roll(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next(size)
}

// RollN returns the next count queued values
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, 0, count)
	for range count {
		v, err := r.next(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *ScriptedRoller) next(size int) (int, error) {
	if len(r.values) == 0 {
		return 0, fmt.Errorf("scripted roller exhausted rolling d%d", size)
	}
	v := r.values[0]
	r.values = r.values[1:]
	r.sizes = append(r.sizes, size)
	return v, nil
}

// FixedClock is a clock.Clock that only moves when told to
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock stopped at now
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// Now returns the current fixed time
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TestTime is the default start time used in tests
var TestTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
