package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"liyu1981.xyz/sensor-alarm-service/pkg/iot"
	"liyu1981.xyz/sensor-alarm-service/pkg/metrics"
)

type RestfulServer struct {
	Server           *gin.Engine
	Iot              *iot.IOT
	RateLimiterStore *iot.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(sensorID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(sensorID)
	}
}

func (rs *RestfulServer) CheckSensorLimiter(sensorID string) bool {
	limiter := rs.GetLimiter(sensorID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(sensorID string, sensorRate float64, sensorBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(sensorID, rate.Limit(sensorRate), sensorBurst)
}

func (rs *RestfulServer) Setup() {
	metrics.Init()

	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/metrics", gin.WrapH(metrics.Handler()))

	rules := rs.Server.Group("/rules")
	{
		rules.POST("", rs.PostRule)
		rules.GET("", rs.GetRules)
		rules.GET("/:rule_id/occurrences", rs.GetOccurrences)
		rules.GET("/:rule_id/state", rs.GetRuleState)
	}

	rs.Server.GET("/sensors", rs.GetSensors)
	rs.Server.GET("/sensors/limiters", rs.GetLimiters)

	sensors := rs.Server.Group("/sensors/:sensor_id")
	{
		sensors.POST("/readings", rs.PostReading)
		sensors.POST("/limiter", rs.PostLimiter)
	}
}
