package grpc

import (
	"golang.org/x/time/rate"

	"liyu1981.xyz/sensor-alarm-service/pkg/iot"
)

type AlarmServer struct {
	Iot              *iot.IOT
	RateLimiterStore *iot.RateLimiterStore
}

var _ AlarmServiceServer = (*AlarmServer)(nil)

func (s *AlarmServer) GetLimiter(sensorID string) *rate.Limiter {
	if s.RateLimiterStore == nil {
		return nil
	} else {
		return s.RateLimiterStore.GetLimiter(sensorID)
	}
}

func (s *AlarmServer) CheckSensorLimiter(sensorID string) bool {
	limiter := s.GetLimiter(sensorID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}
