package notify

import (
	"context"
	"errors"

	"liyu1981.xyz/sensor-alarm-service/pkg/engine"
)

// MultiPublisher forwards a notification to every channel.
type MultiPublisher struct {
	publishers []engine.Publisher
}

func NewMultiPublisher(publishers ...engine.Publisher) *MultiPublisher {
	return &MultiPublisher{publishers: publishers}
}

// Publish tries every channel and joins their errors.
func (m *MultiPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, p := range m.publishers {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, topic, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiPublisher) Len() int {
	return len(m.publishers)
}
