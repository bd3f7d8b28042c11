package engine

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type sinkEvent struct {
	Kind   string
	RuleID uint
	At     time.Time
}

// recordingSink keeps every call and hands out increasing occurrence ids.
type recordingSink struct {
	mu     sync.Mutex
	events []sinkEvent
	nextID uint
}

func (s *recordingSink) RecordTrigger(_ context.Context, ruleID uint, start time.Time) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.events = append(s.events, sinkEvent{Kind: "trigger", RuleID: ruleID, At: start})
	return s.nextID, nil
}

func (s *recordingSink) RecordClear(_ context.Context, ruleID uint, end time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, sinkEvent{Kind: "clear", RuleID: ruleID, At: end})
	return nil
}

func (s *recordingSink) Events() []sinkEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sinkEvent(nil), s.events...)
}

func (s *recordingSink) Count(kind string, ruleID uint) int {
	n := 0
	for _, e := range s.Events() {
		if e.Kind == kind && e.RuleID == ruleID {
			n++
		}
	}
	return n
}

type published struct {
	Topic   string
	Payload map[string]any
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []published
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, payload []byte) error {
	var body map[string]any
	if err := json.Unmarshal(payload, &body); err != nil {
		return err
	}
	p.mu.Lock()
	p.messages = append(p.messages, published{Topic: topic, Payload: body})
	p.mu.Unlock()
	return nil
}

func (p *recordingPublisher) Messages() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]published(nil), p.messages...)
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}

func temperatureRule() Rule {
	return Rule{
		Name:             "High Temperature",
		SensorID:         "temperature",
		Kind:             KindSimple,
		PrimaryThreshold: 21.5,
		Duration:         2 * time.Second,
		Topic:            "alarms/temperature",
	}
}

func conditionalRule() Rule {
	return Rule{
		Name:             "High Temperature with Current",
		SensorID:         "temperature",
		Kind:             KindConditional,
		PrimaryThreshold: 21.5,
		Duration:         3 * time.Second,
		Shunt:            &Shunt{SensorID: "current", Threshold: 0.2},
		Topic:            "alarms/conditional",
	}
}
