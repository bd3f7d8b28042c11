package iot

import (
	"math"
	"time"

	"liyu1981.xyz/sensor-alarm-service/pkg/common"
	"liyu1981.xyz/sensor-alarm-service/pkg/engine"
	"liyu1981.xyz/sensor-alarm-service/pkg/models"
)

// ToEngineRule converts a stored rule. Shunt fields are only read for
// conditional rules; a partial pair yields a rule that fails validation.
func ToEngineRule(m models.AlarmRule) (engine.Rule, error) {
	kind, err := engine.ParseKind(string(m.Type))
	if err != nil {
		return engine.Rule{}, err
	}

	rule := engine.Rule{
		ID:               m.ID,
		Name:             m.Name,
		SensorID:         m.SensorID,
		Kind:             kind,
		PrimaryThreshold: m.PrimaryThreshold,
		Duration:         time.Duration(math.Round(m.Duration * float64(time.Second))),
		Topic:            m.Topic,
	}

	if m.ShuntSensorID != nil || m.ShuntThreshold != nil {
		shunt := &engine.Shunt{}
		if m.ShuntSensorID != nil {
			shunt.SensorID = *m.ShuntSensorID
		}
		if m.ShuntThreshold != nil {
			shunt.Threshold = *m.ShuntThreshold
		} else {
			shunt.Threshold = math.NaN()
		}
		rule.Shunt = shunt
	}

	return rule, nil
}

func FromEngineRule(r engine.Rule) models.AlarmRule {
	m := models.AlarmRule{
		ID:               r.ID,
		Name:             r.Name,
		SensorID:         r.SensorID,
		Type:             models.RuleType(r.Kind.String()),
		PrimaryThreshold: r.PrimaryThreshold,
		Duration:         r.Duration.Seconds(),
		Topic:            r.Topic,
	}
	if r.Shunt != nil {
		m.ShuntSensorID = common.Ptr(r.Shunt.SensorID)
		m.ShuntThreshold = common.Ptr(r.Shunt.Threshold)
	}
	return m
}
