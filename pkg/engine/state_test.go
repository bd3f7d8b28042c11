package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStateNext(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		from       State
		exceeded   bool
		at         time.Time
		duration   time.Duration
		wantStatus Status
		wantStart  time.Time
		want       Transition
	}{
		{"inactive stays inactive", State{Status: StatusInactive}, false, t0, time.Second, StatusInactive, time.Time{}, TransitionNone},
		{"inactive to pending", State{Status: StatusInactive}, true, t0, time.Second, StatusPending, t0, TransitionNone},
		{"inactive triggers with zero duration", State{Status: StatusInactive}, true, t0, 0, StatusActive, t0, TransitionTrigger},
		{"pending before duration", State{Status: StatusPending, ConditionStart: t0}, true, t0.Add(time.Second), 2 * time.Second, StatusPending, t0, TransitionNone},
		{"pending at duration", State{Status: StatusPending, ConditionStart: t0}, true, t0.Add(2 * time.Second), 2 * time.Second, StatusActive, t0, TransitionTrigger},
		{"pending reset", State{Status: StatusPending, ConditionStart: t0}, false, t0.Add(time.Second), 2 * time.Second, StatusInactive, time.Time{}, TransitionNone},
		{"active stays active", State{Status: StatusActive, ConditionStart: t0}, true, t0.Add(time.Hour), 2 * time.Second, StatusActive, t0, TransitionNone},
		{"active clears", State{Status: StatusActive, ConditionStart: t0}, false, t0.Add(time.Hour), 2 * time.Second, StatusInactive, time.Time{}, TransitionClear},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, transition := tc.from.next(tc.exceeded, tc.at, tc.duration)
			assert.Equal(t, tc.wantStatus, next.Status)
			assert.Equal(t, tc.wantStart, next.ConditionStart)
			assert.Equal(t, tc.want, transition)
		})
	}
}

func TestStateTableLazyInit(t *testing.T) {
	table := NewStateTable()

	_, ok := table.Get(1)
	assert.False(t, ok)

	s := table.load(1)
	assert.Equal(t, StatusInactive, s.Status)
	assert.Equal(t, uint(1), s.RuleID)

	s.Status = StatusPending
	table.store(s)

	got, ok := table.Get(1)
	assert.True(t, ok)
	assert.Equal(t, StatusPending, got.Status)
	assert.Equal(t, "pending", got.Status.String())
}
