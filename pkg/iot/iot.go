package iot

//go:generate mockgen -destination=mocks/mock_iot.go -package=mocks liyu1981.xyz/sensor-alarm-service/pkg/iot IRule,IOccurrence,IReading

import (
	"context"
	"time"

	"liyu1981.xyz/sensor-alarm-service/pkg/db"
	"liyu1981.xyz/sensor-alarm-service/pkg/engine"
	"liyu1981.xyz/sensor-alarm-service/pkg/models"
)

type IRule interface {
	AddRule(ctx context.Context, input *models.AlarmRule) (uint, error)
	AddRules(ctx context.Context, inputs []models.AlarmRule) ([]uint, error)
	GetRules(ctx context.Context) ([]models.AlarmRule, error)
	LoadRules(ctx context.Context) (int, error)
}

type IOccurrence interface {
	engine.EventSink
	GetRuleOccurrences(ctx context.Context, ruleID uint) ([]models.AlarmOccurrence, error)
	CloseStaleOccurrences(ctx context.Context, at time.Time) (int64, error)
}

type IReading interface {
	PostReading(ctx context.Context, sensorID string, value float64) error
}

type IOT struct {
	Db         db.DB
	Engine     *engine.Engine
	Rule       IRule
	Occurrence IOccurrence
	Reading    IReading
}

type ServiceOpts struct {
	Engine     *engine.Engine
	Rule       IRule
	Occurrence IOccurrence
	Reading    IReading
}

func (i *IOT) WithServices(opts ServiceOpts) *IOT {
	if opts.Engine != nil {
		i.Engine = opts.Engine
	}
	if opts.Rule != nil {
		i.Rule = opts.Rule
	}
	if opts.Occurrence != nil {
		i.Occurrence = opts.Occurrence
	}
	if opts.Reading != nil {
		i.Reading = opts.Reading
	}
	return i
}

// NewIOT wires the default services around an engine whose sink is the
// occurrence table.
func NewIOT(conn db.DB, opts ...engine.Option) *IOT {
	i := &IOT{Db: conn}
	occurrence := i.GetIOccurrence()
	i.WithServices(ServiceOpts{
		Engine:     engine.New(occurrence, opts...),
		Rule:       i.GetIRule(),
		Occurrence: occurrence,
		Reading:    i.GetIReading(),
	})
	return i
}
