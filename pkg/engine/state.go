package engine

import (
	"sync"
	"time"
)

type Status int

const (
	StatusInactive Status = iota
	StatusPending
	StatusActive
)

func (s Status) String() string {
	switch s {
	case StatusInactive:
		return "inactive"
	case StatusPending:
		return "pending"
	case StatusActive:
		return "active"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Transition is the externally visible effect of one evaluation.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionTrigger
	TransitionClear
)

func (t Transition) String() string {
	switch t {
	case TransitionTrigger:
		return "trigger"
	case TransitionClear:
		return "clear"
	default:
		return "none"
	}
}

// State is the debounce state machine of one rule.
type State struct {
	RuleID         uint      `json:"rule_id"`
	Status         Status    `json:"status"`
	ConditionStart time.Time `json:"condition_start_time"`
	LastValue      float64   `json:"last_value"`
	OccurrenceID   uint      `json:"occurrence_id,omitempty"`
}

// next computes the state after a sample. A trigger proposes Active; the
// caller commits it only once the occurrence has been recorded.
func (s State) next(exceeded bool, now time.Time, duration time.Duration) (State, Transition) {
	if !exceeded {
		prior := s.Status
		s.Status = StatusInactive
		s.ConditionStart = time.Time{}
		if prior == StatusActive {
			return s, TransitionClear
		}
		return s, TransitionNone
	}

	switch s.Status {
	case StatusActive:
		return s, TransitionNone
	case StatusInactive:
		s.Status = StatusPending
		s.ConditionStart = now
	}

	if now.Sub(s.ConditionStart) >= duration {
		s.Status = StatusActive
		return s, TransitionTrigger
	}
	return s, TransitionNone
}

// StateTable holds one State per rule id, created lazily as Inactive.
type StateTable struct {
	mu     sync.RWMutex
	states map[uint]State
}

func NewStateTable() *StateTable {
	return &StateTable{states: make(map[uint]State)}
}

func (t *StateTable) load(ruleID uint) State {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.states[ruleID]
	if !ok {
		s = State{RuleID: ruleID, Status: StatusInactive}
		t.states[ruleID] = s
	}
	return s
}

func (t *StateTable) store(s State) {
	t.mu.Lock()
	t.states[s.RuleID] = s
	t.mu.Unlock()
}

func (t *StateTable) Get(ruleID uint) (State, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, ok := t.states[ruleID]
	return s, ok
}
