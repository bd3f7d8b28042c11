package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"liyu1981.xyz/sensor-alarm-service/pkg/common"
	"liyu1981.xyz/sensor-alarm-service/pkg/engine"
	"liyu1981.xyz/sensor-alarm-service/pkg/models"
)

type RuleRequest struct {
	Name             string   `json:"name"`
	SensorID         string   `json:"sensor_id"`
	Type             string   `json:"type"`
	PrimaryThreshold *float64 `json:"primary_threshold"`
	Duration         float64  `json:"duration"`
	ShuntSensorID    *string  `json:"shunt_sensor_id"`
	ShuntThreshold   *float64 `json:"shunt_threshold"`
	Topic            string   `json:"topic"`
}

var ruleRequestSchema = z.Struct(z.Shape{
	"SensorID": z.String().Trim().Required(),
	"Type":     z.String().Required().OneOf([]string{string(models.RuleTypeSimple), string(models.RuleTypeConditional)}),
	"Duration": z.Float64().GTE(0),
	"Topic":    z.String().Trim().Required(),
})

func (rs *RestfulServer) PostRule(c *gin.Context) {
	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := ruleRequestSchema.Validate(&req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errs})
		return
	}
	if req.PrimaryThreshold == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "primary_threshold is required"})
		return
	}

	id, err := rs.Iot.Rule.AddRule(c.Request.Context(), &models.AlarmRule{
		Name:             req.Name,
		SensorID:         req.SensorID,
		Type:             models.RuleType(req.Type),
		PrimaryThreshold: *req.PrimaryThreshold,
		Duration:         req.Duration,
		ShuntSensorID:    req.ShuntSensorID,
		ShuntThreshold:   req.ShuntThreshold,
		Topic:            req.Topic,
	})
	if err != nil {
		c.JSON(statusOf(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (rs *RestfulServer) GetRules(c *gin.Context) {
	rules, err := rs.Iot.Rule.GetRules(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rules == nil {
		rules = []models.AlarmRule{}
	}
	c.JSON(http.StatusOK, rules)
}

// ruleID parses :rule_id and checks the rule is registered, answering the
// request itself when it is not.
func (rs *RestfulServer) ruleID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("rule_id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return 0, false
	}
	if _, ok := rs.Iot.Engine.Registry().Get(uint(id)); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "rule not found"})
		return 0, false
	}
	return uint(id), true
}

func (rs *RestfulServer) GetOccurrences(c *gin.Context) {
	id, ok := rs.ruleID(c)
	if !ok {
		return
	}

	occurrences, err := rs.Iot.Occurrence.GetRuleOccurrences(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if occurrences == nil {
		occurrences = []models.AlarmOccurrence{}
	}
	c.JSON(http.StatusOK, occurrences)
}

func (rs *RestfulServer) GetRuleState(c *gin.Context) {
	id, ok := rs.ruleID(c)
	if !ok {
		return
	}

	state, found := rs.Iot.Engine.State(id)
	if !found {
		state = engine.State{RuleID: id, Status: engine.StatusInactive}
	}
	c.JSON(http.StatusOK, state)
}

type ReadingRequest struct {
	Value *float64 `json:"value"`
}

func (rs *RestfulServer) PostReading(c *gin.Context) {
	sensorID := c.Param("sensor_id")

	if !rs.CheckSensorLimiter(sensorID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req ReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Value == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
		return
	}

	if err := rs.Iot.Reading.PostReading(c.Request.Context(), sensorID, *req.Value); err != nil {
		status := statusOf(err)
		if status == http.StatusInternalServerError {
			common.GetLoggerWith(common.LoggerNameRestfulServer).
				Error("Reading failed", zap.String("sensor_id", sensorID), zap.Error(err))
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

type SensorValue struct {
	SensorID string  `json:"sensor_id"`
	Value    float64 `json:"value"`
}

func (rs *RestfulServer) GetSensors(c *gin.Context) {
	snapshot := rs.Iot.Engine.Cache().Snapshot()

	values := common.Mapper(common.SortedKeys(snapshot), func(id string) SensorValue {
		return SensorValue{SensorID: id, Value: snapshot[id]}
	})

	c.JSON(http.StatusOK, values)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	sensorID := c.Param("sensor_id")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(sensorID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) GetLimiters(c *gin.Context) {
	if rs.RateLimiterStore == nil {
		c.JSON(http.StatusOK, []any{})
		return
	}
	c.JSON(http.StatusOK, rs.RateLimiterStore.Limits())
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, engine.ErrValidation), errors.Is(err, engine.ErrInvalidValue):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrDuplicateRule):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
