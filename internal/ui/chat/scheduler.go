// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// SCHEDULER
// =============================================================================

// Task names owned by the chat screen.
const (
	TaskAnimator = "animator"
	TaskStatus   = "status"
)

// taskBurst lets a task whose interval is not a multiple of the tick period
// carry the remainder over to the next tick.
const taskBurst = 2

type task struct {
	name     string
	interval time.Duration
	limiter  *rate.Limiter
	fn       func(now time.Time)
}

// Scheduler runs named recurring tasks from a single external tick. A task
// fires at most once per Run and on average once per interval; the first
// Run after registration fires it immediately.
type Scheduler struct {
	tasks []*task
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Register adds a task. Registering an existing name replaces it.
func (s *Scheduler) Register(name string, interval time.Duration, fn func(now time.Time)) {
	t := &task{
		name:     name,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), taskBurst),
		fn:       fn,
	}
	for i, existing := range s.tasks {
		if existing.name == name {
			s.tasks[i] = t
			return
		}
	}
	s.tasks = append(s.tasks, t)
}

// SetInterval changes a task's interval. Unknown names are ignored.
func (s *Scheduler) SetInterval(name string, interval time.Duration, now time.Time) {
	for _, t := range s.tasks {
		if t.name == name && t.interval != interval {
			t.interval = interval
			t.limiter.SetLimitAt(now, rate.Every(interval))
		}
	}
}

// Interval returns a task's interval, or zero for unknown names.
func (s *Scheduler) Interval(name string) time.Duration {
	for _, t := range s.tasks {
		if t.name == name {
			return t.interval
		}
	}
	return 0
}

// Run fires every task that is due at now, in registration order, and
// returns the names that fired.
func (s *Scheduler) Run(now time.Time) []string {
	var fired []string
	for _, t := range s.tasks {
		if !t.limiter.AllowN(now, 1) {
			continue
		}
		t.fn(now)
		fired = append(fired, t.name)
	}
	return fired
}

// Names returns the registered task names.
func (s *Scheduler) Names() []string {
	names := make([]string, 0, len(s.tasks))
	for _, t := range s.tasks {
		names = append(names, t.name)
	}
	return names
}
