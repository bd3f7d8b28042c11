package engine

import "sync"

// SensorCache keeps the latest value reported by each sensor.
type SensorCache struct {
	mu     sync.RWMutex
	values map[string]float64
}

func NewSensorCache() *SensorCache {
	return &SensorCache{values: make(map[string]float64)}
}

func (c *SensorCache) Update(sensorID string, value float64) {
	c.mu.Lock()
	c.values[sensorID] = value
	c.mu.Unlock()
}

func (c *SensorCache) Get(sensorID string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.values[sensorID]
	return v, ok
}

func (c *SensorCache) Snapshot() map[string]float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]float64, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}
