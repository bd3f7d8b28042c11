package notify

import (
	"encoding/json"
	"fmt"
	"strings"
)

type alarmMessage struct {
	RuleID    uint    `json:"rule_id"`
	Status    string  `json:"status"`
	StartTime *string `json:"start_time"`
}

// FormatAlarm renders a received notification as one line, naming the
// alarm after the second segment of its topic ("alarms/temperature/alarm").
func FormatAlarm(topic string, payload []byte) (string, error) {
	var msg alarmMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return "", fmt.Errorf("decode alarm on %s: %w", topic, err)
	}

	start := "none"
	if msg.StartTime != nil {
		start = *msg.StartTime
	}

	return fmt.Sprintf("%s Alarm: Rule %d, Status: %s, Start: %s",
		topicCategory(topic), msg.RuleID, msg.Status, start), nil
}

func topicCategory(topic string) string {
	segments := strings.Split(strings.Trim(topic, "/"), "/")
	category := segments[0]
	if len(segments) > 1 {
		category = segments[1]
	}
	if category == "" {
		return "Unknown"
	}
	return strings.ToUpper(category[:1]) + strings.ToLower(category[1:])
}
