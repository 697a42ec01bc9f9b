// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func runTicks(s *Scheduler, start time.Time, period time.Duration, n int) map[string]int {
	counts := make(map[string]int)
	for i := 0; i < n; i++ {
		for _, name := range s.Run(start.Add(time.Duration(i) * period)) {
			counts[name]++
		}
	}
	return counts
}

func TestScheduler_FirstRunFiresEveryTask(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.Register(TaskAnimator, time.Second, func(time.Time) { order = append(order, TaskAnimator) })
	s.Register(TaskStatus, time.Second, func(time.Time) { order = append(order, TaskStatus) })

	fired := s.Run(time.Unix(1000, 0))
	assert.Equal(t, []string{TaskAnimator, TaskStatus}, fired)
	assert.Equal(t, fired, order)
	assert.Equal(t, []string{TaskAnimator, TaskStatus}, s.Names())
}

func TestScheduler_RateFollowsInterval(t *testing.T) {
	s := NewScheduler()
	s.Register("fast", RefreshInterval, func(time.Time) {})
	s.Register("slow", 200*time.Millisecond, func(time.Time) {})

	// 2 seconds of 50ms ticks.
	counts := runTicks(s, time.Unix(1000, 0), RefreshInterval, 40)

	assert.Equal(t, 40, counts["fast"])
	// One per 200ms plus the initial burst.
	assert.InDelta(t, 11, counts["slow"], 1)
}

func TestScheduler_AtMostOncePerRun(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.Register("task", time.Millisecond, func(time.Time) { calls++ })

	now := time.Unix(1000, 0)
	s.Run(now)
	s.Run(now.Add(time.Second))
	assert.Equal(t, 2, calls)
}

func TestScheduler_SetInterval(t *testing.T) {
	s := NewScheduler()
	s.Register(TaskAnimator, time.Second, func(time.Time) {})
	start := time.Unix(1000, 0)

	slow := runTicks(s, start, RefreshInterval, 20)
	assert.LessOrEqual(t, slow[TaskAnimator], 3)

	s.SetInterval(TaskAnimator, RefreshInterval, start.Add(time.Second))
	assert.Equal(t, RefreshInterval, s.Interval(TaskAnimator))

	fast := runTicks(s, start.Add(time.Second), RefreshInterval, 20)
	assert.GreaterOrEqual(t, fast[TaskAnimator], 19)

	s.SetInterval("missing", time.Second, start)
	assert.Zero(t, s.Interval("missing"))
}

func TestScheduler_RegisterReplaces(t *testing.T) {
	s := NewScheduler()
	first, second := 0, 0
	s.Register("task", time.Second, func(time.Time) { first++ })
	s.Register("task", time.Second, func(time.Time) { second++ })

	s.Run(time.Unix(1000, 0))
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.Len(t, s.Names(), 1)
}
