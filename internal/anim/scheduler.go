// Package anim drives time-based behaviour from the frame loop. Nothing in
// here starts goroutines: time only moves when Advance is called.
package anim

import "time"

// Scheduler is a manual clock shared by timers and animators
type Scheduler struct {
	now       time.Duration
	timers    []*Timer
	animators []*Animator
}

// NewScheduler creates a scheduler at time zero
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the total time advanced so far
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Advance moves the clock forward, firing due timer ticks in order and
// stepping all animators
func (s *Scheduler) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	s.now += dt
	for _, t := range s.timers {
		t.advance(dt)
	}
	for _, a := range s.animators {
		a.advance(dt)
	}
}

// Timer calls a function once per elapsed interval while running
type Timer struct {
	interval time.Duration
	fn       func()
	running  bool
	elapsed  time.Duration
}

// NewTimer creates a stopped timer on the scheduler
func (s *Scheduler) NewTimer(interval time.Duration, fn func()) *Timer {
	t := &Timer{interval: interval, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Start runs the timer. Starting a running timer changes nothing.
func (t *Timer) Start() {
	if t.running {
		return
	}
	t.running = true
	t.elapsed = 0
}

// Stop halts the timer; stopping twice is harmless
func (t *Timer) Stop() {
	t.running = false
	t.elapsed = 0
}

// Running reports whether the timer is active
func (t *Timer) Running() bool {
	return t.running
}

// Interval returns the tick period
func (t *Timer) Interval() time.Duration {
	return t.interval
}

func (t *Timer) advance(dt time.Duration) {
	if !t.running || t.interval <= 0 {
		return
	}
	t.elapsed += dt
	for t.running && t.elapsed >= t.interval {
		t.elapsed -= t.interval
		t.fn()
	}
}
