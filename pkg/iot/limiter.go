package iot

import (
	"sync"

	"golang.org/x/time/rate"
	"liyu1981.xyz/sensor-alarm-service/pkg/common"
)

// SensorLimit is the configured token bucket of one sensor.
type SensorLimit struct {
	SensorID string  `json:"sensor_id"`
	Rate     float64 `json:"rate"`
	Burst    int     `json:"burst"`
}

// RateLimiterStore keeps one token bucket per sensor: sensor_id -> rate limiter.
// Readings from producers share the default bucket size until overridden.
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(sensorID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[sensorID]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[sensorID] = limiter
	}
	return limiter
}

func (s *RateLimiterStore) Allow(sensorID string) bool {
	return s.GetLimiter(sensorID).Allow()
}

func (s *RateLimiterStore) SetLimiter(sensorID string, sensorRate rate.Limit, sensorBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[sensorID] = rate.NewLimiter(sensorRate, sensorBurst)
}

// Limits lists every sensor that has a bucket, ordered by sensor id.
func (s *RateLimiterStore) Limits() []SensorLimit {
	s.mu.Lock()
	defer s.mu.Unlock()

	return common.Mapper(common.SortedKeys(s.limiters), func(id string) SensorLimit {
		l := s.limiters[id]
		return SensorLimit{SensorID: id, Rate: float64(l.Limit()), Burst: l.Burst()}
	})
}
