package models

import "time"

type RuleType string

const (
	RuleTypeSimple      RuleType = "simple"
	RuleTypeConditional RuleType = "conditional"
)

type OccurrenceStatus string

const (
	OccurrenceStatusActive  OccurrenceStatus = "ACTIVE"
	OccurrenceStatusCleared OccurrenceStatus = "CLEARED"
)

type AlarmRule struct {
	ID               uint     `gorm:"primaryKey" json:"id"`
	Name             string   `json:"name"`
	SensorID         string   `gorm:"index" json:"sensor_id"`
	Type             RuleType `gorm:"type:varchar(20);check:type IN ('simple','conditional')" json:"type"`
	PrimaryThreshold float64  `json:"primary_threshold"`
	// Duration is in seconds.
	Duration       float64  `json:"duration"`
	ShuntSensorID  *string  `json:"shunt_sensor_id"`
	ShuntThreshold *float64 `json:"shunt_threshold"`
	Topic          string   `json:"topic"`

	Occurrences []AlarmOccurrence `gorm:"foreignKey:RuleID;references:ID" json:"-"`
}

type AlarmOccurrence struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	RuleID    uint             `gorm:"index;not null" json:"rule_id"`
	StartTime time.Time        `json:"start_time"`
	EndTime   *time.Time       `json:"end_time"`
	Status    OccurrenceStatus `gorm:"type:varchar(10);index;check:status IN ('ACTIVE','CLEARED')" json:"status"`
}
