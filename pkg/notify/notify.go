// Package notify delivers alarm payloads to external channels.
package notify

import (
	"errors"

	"liyu1981.xyz/sensor-alarm-service/pkg/engine"
)

var (
	ErrQueueFull = errors.New("notification queue is full")
	ErrClosed    = errors.New("publisher is closed")
)

var (
	_ engine.Publisher = (*MQTTPublisher)(nil)
	_ engine.Publisher = (*RedisPublisher)(nil)
	_ engine.Publisher = (*WebhookPublisher)(nil)
	_ engine.Publisher = (*MultiPublisher)(nil)
	_ engine.Publisher = (*AsyncPublisher)(nil)
	_ engine.Publisher = LogPublisher{}
)
