package engine

//go:generate mockgen -destination=mocks/mock_sink.go -package=mocks liyu1981.xyz/sensor-alarm-service/pkg/engine EventSink,Publisher

import (
	"context"
	"encoding/json"
	"time"
)

// EventSink persists alarm occurrences.
type EventSink interface {
	// RecordTrigger opens an occurrence for ruleID and returns its id.
	RecordTrigger(ctx context.Context, ruleID uint, start time.Time) (uint, error)
	// RecordClear closes the open occurrence of ruleID.
	RecordClear(ctx context.Context, ruleID uint, end time.Time) error
}

// Publisher delivers notifications by topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

const (
	OccurrenceActive  = "ACTIVE"
	OccurrenceCleared = "CLEARED"
)

// Payload is the notification body published to `{topic}/alarm`.
type Payload struct {
	ID        uint       `json:"id"`
	RuleID    uint       `json:"rule_id"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Status    string     `json:"status"`
}

func (p Payload) Marshal() ([]byte, error) {
	type wire struct {
		ID        uint    `json:"id"`
		RuleID    uint    `json:"rule_id"`
		StartTime *string `json:"start_time"`
		EndTime   *string `json:"end_time"`
		Status    string  `json:"status"`
	}
	return json.Marshal(wire{
		ID:        p.ID,
		RuleID:    p.RuleID,
		StartTime: formatTime(p.StartTime),
		EndTime:   formatTime(p.EndTime),
		Status:    p.Status,
	})
}

func formatTime(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339Nano)
	return &s
}
