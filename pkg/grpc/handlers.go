package grpc

import (
	"context"
	"fmt"
	"time"

	z "github.com/Oudwins/zog"
	"golang.org/x/time/rate"
	"google.golang.org/protobuf/types/known/structpb"
	"liyu1981.xyz/sensor-alarm-service/pkg/common"
	"liyu1981.xyz/sensor-alarm-service/pkg/models"
)

func validateSensorID(sensorID *string) z.ZogIssueList {
	var sensorIdValidator = z.String().Min(1).Required()
	return sensorIdValidator.Validate(sensorID)
}

func statusResponse(success bool, message string, extra map[string]any) (*structpb.Struct, error) {
	fields := map[string]any{"success": success, "message": message}
	for k, v := range extra {
		fields[k] = v
	}
	return structpb.NewStruct(fields)
}

func failure(format string, args ...any) (*structpb.Struct, error) {
	return statusResponse(false, fmt.Sprintf(format, args...), nil)
}

func stringField(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

// numberField reports whether key holds a number.
func numberField(req *structpb.Struct, key string) (float64, bool) {
	v, ok := req.GetFields()[key]
	if !ok {
		return 0, false
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false
	}
	return n.NumberValue, true
}

func (s *AlarmServer) AddRule(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sensorID := stringField(req, "sensor_id")
	if err := validateSensorID(&sensorID); len(err) > 0 {
		return failure("validation error: %v", err)
	}

	threshold, ok := numberField(req, "primary_threshold")
	if !ok {
		return failure("validation error: primary_threshold must be a number")
	}

	rule := &models.AlarmRule{
		Name:             stringField(req, "name"),
		SensorID:         sensorID,
		Type:             models.RuleType(stringField(req, "type")),
		PrimaryThreshold: threshold,
		Topic:            stringField(req, "topic"),
	}
	if d, ok := numberField(req, "duration"); ok {
		rule.Duration = d
	}
	if shunt := stringField(req, "shunt_sensor_id"); shunt != "" {
		rule.ShuntSensorID = common.Ptr(shunt)
	}
	if t, ok := numberField(req, "shunt_threshold"); ok {
		rule.ShuntThreshold = common.Ptr(t)
	}

	id, err := s.Iot.Rule.AddRule(ctx, rule)
	if err != nil {
		return failure("%s", err.Error())
	}

	return statusResponse(true, "OK", map[string]any{"id": float64(id)})
}

func (s *AlarmServer) PostReading(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sensorID := stringField(req, "sensor_id")
	if err := validateSensorID(&sensorID); len(err) > 0 {
		return failure("validation error: %v", err)
	}

	value, ok := numberField(req, "value")
	if !ok {
		return failure("validation error: value must be a number")
	}

	if err := s.Iot.Reading.PostReading(ctx, sensorID, value); err != nil {
		return failure("%s", err.Error())
	}

	return statusResponse(true, "OK", nil)
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func (s *AlarmServer) GetOccurrences(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ruleID, ok := numberField(req, "rule_id")
	if !ok || ruleID < 1 || ruleID != float64(uint(ruleID)) {
		return failure("validation error: rule_id must be a positive integer")
	}

	occurrences, err := s.Iot.Occurrence.GetRuleOccurrences(ctx, uint(ruleID))
	if err != nil {
		return failure("%s", err.Error())
	}

	return statusResponse(true, "OK", map[string]any{
		"occurrences": common.Mapper(occurrences, func(o models.AlarmOccurrence) any {
			return map[string]any{
				"id":         float64(o.ID),
				"rule_id":    float64(o.RuleID),
				"start_time": formatTime(&o.StartTime),
				"end_time":   formatTime(o.EndTime),
				"status":     string(o.Status),
			}
		}),
	})
}

func (s *AlarmServer) PostLimiter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sensorID := stringField(req, "sensor_id")
	if err := validateSensorID(&sensorID); len(err) > 0 {
		return failure("validation error: %v", err)
	}

	sensorRate, ok := numberField(req, "rate")
	if !ok {
		return failure("validation error: rate must be a number")
	}

	burst, ok := numberField(req, "burst")
	if !ok {
		return failure("validation error: burst must be a number")
	}
	sensorBurst := int(burst)
	var burstValidator = z.Int().GTE(0)
	if err := burstValidator.Validate(&sensorBurst); len(err) > 0 {
		return failure("validation error: %v", err)
	}

	if s.RateLimiterStore == nil {
		return failure("RateLimiterStore is not used. No effect.")
	}

	s.RateLimiterStore.SetLimiter(sensorID, rate.Limit(sensorRate), sensorBurst)
	return statusResponse(true, "OK", nil)
}
