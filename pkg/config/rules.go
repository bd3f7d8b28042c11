package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
	"liyu1981.xyz/sensor-alarm-service/pkg/models"
)

// Seconds accepts either a number of seconds or a duration string ("2s", "1m30s").
type Seconds float64

func (s *Seconds) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	if v, err := strconv.ParseFloat(node.Value, 64); err == nil {
		*s = Seconds(v)
		return nil
	}
	d, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q", node.Line, node.Value)
	}
	*s = Seconds(d.Seconds())
	return nil
}

type RuleEntry struct {
	Name             string   `yaml:"name"`
	SensorID         string   `yaml:"sensor_id"`
	Type             string   `yaml:"type"`
	PrimaryThreshold float64  `yaml:"primary_threshold"`
	Duration         Seconds  `yaml:"duration"`
	ShuntSensorID    *string  `yaml:"shunt_sensor_id,omitempty"`
	ShuntThreshold   *float64 `yaml:"shunt_threshold,omitempty"`
	Topic            string   `yaml:"topic"`
}

type RuleFile struct {
	Rules []RuleEntry `yaml:"rules"`
}

// ParseRules decodes a rule file. Rules are not validated here; the
// registry rejects invalid ones when they are added.
func ParseRules(data []byte) ([]models.AlarmRule, error) {
	var file RuleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	rules := make([]models.AlarmRule, 0, len(file.Rules))
	for _, r := range file.Rules {
		rules = append(rules, models.AlarmRule{
			Name:             r.Name,
			SensorID:         r.SensorID,
			Type:             models.RuleType(r.Type),
			PrimaryThreshold: r.PrimaryThreshold,
			Duration:         float64(r.Duration),
			ShuntSensorID:    r.ShuntSensorID,
			ShuntThreshold:   r.ShuntThreshold,
			Topic:            r.Topic,
		})
	}
	return rules, nil
}

func LoadRuleFile(path string) ([]models.AlarmRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}
	return ParseRules(data)
}
