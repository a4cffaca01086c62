package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-registry/internal/service"
)

var (
	ErrQueueFull   = errors.New("change feed queue is full")
	ErrQueueClosed = errors.New("change feed queue is closed")
)

type queuedMessage struct {
	channel string
	payload []byte
}

// PublishQueue hands change-feed messages to a background goroutine so that
// callers never wait on the broker. Each delivery is bounded by timeout.
type PublishQueue struct {
	target  service.Publisher
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan queuedMessage
	done   chan struct{}
}

// StartPublishQueue starts the delivery goroutine. Close must be called to stop it.
func StartPublishQueue(target service.Publisher, size int, timeout time.Duration, logger *zap.Logger) *PublishQueue {
	if size <= 0 {
		size = 1
	}
	q := &PublishQueue{
		target:  target,
		timeout: timeout,
		logger:  logger,
		queue:   make(chan queuedMessage, size),
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

// Publish enqueues payload without blocking.
func (q *PublishQueue) Publish(_ context.Context, channel string, payload []byte) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.queue <- queuedMessage{channel: channel, payload: payload}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting messages and waits until the queued ones are delivered or timed out.
func (q *PublishQueue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.queue)
	}
	q.mu.Unlock()
	<-q.done
}

func (q *PublishQueue) run() {
	defer close(q.done)
	for msg := range q.queue {
		q.deliver(msg)
	}
}

func (q *PublishQueue) deliver(msg queuedMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	if err := q.target.Publish(ctx, msg.channel, msg.payload); err != nil {
		q.logger.Warn("change feed publish failed",
			zap.String("channel", msg.channel),
			zap.Error(err))
	}
}
