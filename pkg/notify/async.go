package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/sensor-alarm-service/pkg/common"
	"liyu1981.xyz/sensor-alarm-service/pkg/engine"
	"liyu1981.xyz/sensor-alarm-service/pkg/metrics"
)

const DefaultQueueSize = 256

type message struct {
	topic   string
	payload []byte
}

// AsyncPublisher queues notifications for a single worker, so callers
// holding the engine lock never wait on the network. Order is FIFO.
type AsyncPublisher struct {
	next    engine.Publisher
	queue   chan message
	done    chan struct{}
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
}

type AsyncOption func(*AsyncPublisher)

// WithPublishTimeout bounds each delivery made by the worker.
func WithPublishTimeout(timeout time.Duration) AsyncOption {
	return func(p *AsyncPublisher) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

func NewAsyncPublisher(next engine.Publisher, size int, opts ...AsyncOption) *AsyncPublisher {
	if size <= 0 {
		size = DefaultQueueSize
	}
	p := &AsyncPublisher{
		next:    next,
		queue:   make(chan message, size),
		done:    make(chan struct{}),
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	go p.run()
	return p
}

// Publish enqueues without blocking.
func (p *AsyncPublisher) Publish(_ context.Context, topic string, payload []byte) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}

	msg := message{topic: topic, payload: append([]byte(nil), payload...)}
	select {
	case p.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *AsyncPublisher) run() {
	defer close(p.done)

	logger := common.GetLoggerWith(
		common.LoggerNameNotify,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryNotifyPublish),
	)

	for msg := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		err := p.next.Publish(ctx, msg.topic, msg.payload)
		cancel()

		if err != nil {
			metrics.IncPublishError()
			logger.Warn("Failed to deliver alarm notification", zap.String("topic", msg.topic), zap.Error(err))
			continue
		}
		logger.Debug("Delivered alarm notification", zap.String("topic", msg.topic))
	}
}

// Pending is the number of queued notifications.
func (p *AsyncPublisher) Pending() int {
	return len(p.queue)
}

// Close stops accepting notifications and waits for the queue to drain.
func (p *AsyncPublisher) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	<-p.done
}
