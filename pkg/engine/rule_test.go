package engine

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *Rule)
		valid  bool
	}{
		{"simple", func(r *Rule) {}, true},
		{"zero duration", func(r *Rule) { r.Duration = 0 }, true},
		{"negative duration", func(r *Rule) { r.Duration = -time.Second }, false},
		{"empty sensor", func(r *Rule) { r.SensorID = " " }, false},
		{"empty topic", func(r *Rule) { r.Topic = "" }, false},
		{"nan threshold", func(r *Rule) { r.PrimaryThreshold = math.NaN() }, false},
		{"inf threshold", func(r *Rule) { r.PrimaryThreshold = math.Inf(1) }, false},
		{"simple with shunt", func(r *Rule) { r.Shunt = &Shunt{SensorID: "current", Threshold: 1} }, false},
		{"conditional without shunt", func(r *Rule) { r.Kind = KindConditional }, false},
		{"conditional with empty shunt sensor", func(r *Rule) {
			r.Kind = KindConditional
			r.Shunt = &Shunt{Threshold: 0.2}
		}, false},
		{"conditional with nan shunt threshold", func(r *Rule) {
			r.Kind = KindConditional
			r.Shunt = &Shunt{SensorID: "current", Threshold: math.NaN()}
		}, false},
		{"conditional", func(r *Rule) {
			r.Kind = KindConditional
			r.Shunt = &Shunt{SensorID: "current", Threshold: 0.2}
		}, true},
		{"unknown kind", func(r *Rule) { r.Kind = Kind(7) }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule := temperatureRule()
			tc.mutate(&rule)
			err := rule.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("simple")
	require.NoError(t, err)
	assert.Equal(t, KindSimple, k)

	k, err = ParseKind(" Conditional ")
	require.NoError(t, err)
	assert.Equal(t, KindConditional, k)

	_, err = ParseKind("threshold")
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, "simple", KindSimple.String())
	assert.Equal(t, "conditional", KindConditional.String())
}

func TestAlarmTopic(t *testing.T) {
	rule := temperatureRule()
	assert.Equal(t, "alarms/temperature/alarm", rule.AlarmTopic())

	rule.Topic = "alarms/temperature/"
	assert.Equal(t, "alarms/temperature/alarm", rule.AlarmTopic())
}

func TestPayloadMarshal(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	body, err := Payload{ID: 3, RuleID: 1, StartTime: &start, Status: OccurrenceActive}.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"rule_id":1,"start_time":"2024-05-01T12:00:00Z","end_time":null,"status":"ACTIVE"}`, string(body))

	end := start.Add(90 * time.Second)
	body, err = Payload{ID: 3, RuleID: 1, StartTime: &start, EndTime: &end, Status: OccurrenceCleared}.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"rule_id":1,"start_time":"2024-05-01T12:00:00Z","end_time":"2024-05-01T12:01:30Z","status":"CLEARED"}`, string(body))
}
