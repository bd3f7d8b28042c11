package engine

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Kind is the closed set of rule variants.
type Kind int

const (
	KindSimple Kind = iota
	KindConditional
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindConditional:
		return "conditional"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps the stored rule type back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple":
		return KindSimple, nil
	case "conditional":
		return KindConditional, nil
	default:
		return 0, fmt.Errorf("%w: unknown rule type %q", ErrValidation, s)
	}
}

// Shunt is the secondary condition of a conditional rule: the shunt sensor
// must be strictly above Threshold for the rule to stay armed.
type Shunt struct {
	SensorID  string
	Threshold float64
}

// Rule is an alarm definition. Rules are values and never change once registered.
type Rule struct {
	ID               uint
	Name             string
	SensorID         string
	Kind             Kind
	PrimaryThreshold float64
	Duration         time.Duration
	Shunt            *Shunt
	Topic            string
}

// AlarmTopic is the notification topic of the rule.
func (r Rule) AlarmTopic() string {
	return strings.TrimSuffix(r.Topic, "/") + "/alarm"
}

func (r Rule) Validate() error {
	if strings.TrimSpace(r.SensorID) == "" {
		return fmt.Errorf("%w: sensor_id is required", ErrValidation)
	}
	if strings.TrimSpace(r.Topic) == "" {
		return fmt.Errorf("%w: topic is required", ErrValidation)
	}
	if r.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrValidation)
	}
	if !isFinite(r.PrimaryThreshold) {
		return fmt.Errorf("%w: primary_threshold must be a finite number", ErrValidation)
	}

	switch r.Kind {
	case KindSimple:
		if r.Shunt != nil {
			return fmt.Errorf("%w: simple rule must not carry shunt fields", ErrValidation)
		}
	case KindConditional:
		if r.Shunt == nil || strings.TrimSpace(r.Shunt.SensorID) == "" {
			return fmt.Errorf("%w: conditional rule requires shunt_sensor_id and shunt_threshold", ErrValidation)
		}
		if !isFinite(r.Shunt.Threshold) {
			return fmt.Errorf("%w: shunt_threshold must be a finite number", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown rule kind %s", ErrValidation, r.Kind)
	}

	return nil
}

func (r Rule) clone() Rule {
	if r.Shunt != nil {
		shunt := *r.Shunt
		r.Shunt = &shunt
	}
	return r
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
