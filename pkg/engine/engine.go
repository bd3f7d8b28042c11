package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/sensor-alarm-service/pkg/common"
	"liyu1981.xyz/sensor-alarm-service/pkg/metrics"
)

// Clock provides time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Engine turns sensor readings into debounced alarm triggers and clears.
//
// One mutex covers the whole evaluation of a reading: cache write, rule
// lookup, shunt read, state read-modify-write and the sink call. Readings
// from a single producer are therefore applied in arrival order.
type Engine struct {
	mu        sync.Mutex
	registry  *Registry
	cache     *SensorCache
	states    *StateTable
	sink      EventSink
	publisher Publisher
	clock     Clock
}

type Option func(*Engine)

func WithRegistry(registry *Registry) Option {
	return func(e *Engine) {
		if registry != nil {
			e.registry = registry
		}
	}
}

func WithPublisher(publisher Publisher) Option {
	return func(e *Engine) {
		e.publisher = publisher
	}
}

func WithClock(clock Clock) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

func New(sink EventSink, opts ...Option) *Engine {
	e := &Engine{
		registry: NewRegistry(),
		cache:    NewSensorCache(),
		states:   NewStateTable(),
		sink:     sink,
		clock:    systemClock{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Registry() *Registry {
	return e.registry
}

func (e *Engine) Cache() *SensorCache {
	return e.cache
}

// State returns a snapshot of the rule's state machine, if it was ever evaluated.
func (e *Engine) State(ruleID uint) (State, bool) {
	return e.states.Get(ruleID)
}

// OnSensorUpdate applies one reading and advances every rule bound to sensorID.
// Errors of individual rules are joined; a failing rule does not stop the others.
func (e *Engine) OnSensorUpdate(ctx context.Context, sensorID string, value float64) error {
	if strings.TrimSpace(sensorID) == "" {
		metrics.IncReading(metrics.ResultRejected)
		return fmt.Errorf("%w: empty sensor id", ErrInvalidValue)
	}
	if !isFinite(value) {
		metrics.IncReading(metrics.ResultRejected)
		return fmt.Errorf("%w: %v for sensor %q", ErrInvalidValue, value, sensorID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.cache.Update(sensorID, value)

	var errs []error
	for _, rule := range e.registry.RulesForSensor(sensorID) {
		if err := e.evaluate(ctx, rule, value); err != nil {
			errs = append(errs, fmt.Errorf("rule %d: %w", rule.ID, err))
		}
	}

	if len(errs) > 0 {
		metrics.IncReading(metrics.ResultFailed)
		return errors.Join(errs...)
	}
	metrics.IncReading(metrics.ResultAccepted)
	return nil
}

func (e *Engine) exceeded(rule Rule, value float64) bool {
	exceeded := value > rule.PrimaryThreshold

	switch rule.Kind {
	case KindSimple:
	case KindConditional:
		shunt, ok := e.cache.Get(rule.Shunt.SensorID)
		if !ok || shunt <= rule.Shunt.Threshold {
			exceeded = false
		}
	default:
		panic(fmt.Sprintf("engine: unhandled rule kind %s", rule.Kind))
	}

	return exceeded
}

// evaluate must be called with e.mu held.
func (e *Engine) evaluate(ctx context.Context, rule Rule, value float64) error {
	logger := common.GetLoggerWith(
		common.LoggerNameAlarmEngine,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryEngineEvaluate),
		zap.Uint("rule_id", rule.ID),
	)

	now := e.clock.Now()
	current := e.states.load(rule.ID)
	next, transition := current.next(e.exceeded(rule, value), now, rule.Duration)
	next.LastValue = value

	switch transition {
	case TransitionNone:
		if next.Status != current.Status {
			logger.Debug("Alarm state changed",
				zap.Stringer("from", current.Status),
				zap.Stringer("to", next.Status),
				zap.Float64("value", value))
		}
		e.states.store(next)
		return nil

	case TransitionTrigger:
		occurrenceID, err := e.sink.RecordTrigger(ctx, rule.ID, next.ConditionStart)
		if err != nil {
			// the next sample retries the trigger
			next.Status = StatusPending
			e.states.store(next)
			metrics.IncSinkError(metrics.OpTrigger)
			logger.Error("Failed to record alarm trigger", zap.Error(err))
			return fmt.Errorf("%w: %w", ErrSinkTrigger, err)
		}

		next.OccurrenceID = occurrenceID
		e.states.store(next)
		metrics.IncAlarmEvent(metrics.OpTrigger)

		start := next.ConditionStart
		logger.Info("Alarm triggered",
			zap.Uint("occurrence_id", occurrenceID),
			zap.Time("start_time", start),
			zap.Float64("value", value))

		e.publish(ctx, logger, rule, Payload{
			ID:        occurrenceID,
			RuleID:    rule.ID,
			StartTime: &start,
			Status:    OccurrenceActive,
		})
		return nil

	case TransitionClear:
		occurrenceID := current.OccurrenceID
		next.OccurrenceID = 0
		e.states.store(next)

		if err := e.sink.RecordClear(ctx, rule.ID, now); err != nil {
			metrics.IncSinkError(metrics.OpClear)
			logger.Error("Failed to record alarm clear", zap.Uint("occurrence_id", occurrenceID), zap.Error(err))
			return fmt.Errorf("%w: %w", ErrSinkClear, err)
		}
		metrics.IncAlarmEvent(metrics.OpClear)

		start := current.ConditionStart
		logger.Info("Alarm cleared",
			zap.Uint("occurrence_id", occurrenceID),
			zap.Time("end_time", now),
			zap.Float64("value", value))

		e.publish(ctx, logger, rule, Payload{
			ID:        occurrenceID,
			RuleID:    rule.ID,
			StartTime: &start,
			EndTime:   &now,
			Status:    OccurrenceCleared,
		})
		return nil

	default:
		panic(fmt.Sprintf("engine: unhandled transition %s", transition))
	}
}

// publish is best effort: failures are logged and never undo a transition.
func (e *Engine) publish(ctx context.Context, logger *zap.Logger, rule Rule, payload Payload) {
	if e.publisher == nil {
		return
	}

	body, err := payload.Marshal()
	if err != nil {
		metrics.IncPublishError()
		logger.Error("Failed to encode alarm payload", zap.Error(err))
		return
	}

	topic := rule.AlarmTopic()
	if err := e.publisher.Publish(ctx, topic, body); err != nil {
		metrics.IncPublishError()
		logger.Warn("Failed to publish alarm", zap.String("topic", topic), zap.Error(err))
	}
}
