package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/employee-registry/internal/config"
	"github.com/spec-kit/employee-registry/internal/events"
	"github.com/spec-kit/employee-registry/internal/service"
)

// StartNotificationWorker subscribes the change-feed handlers to dispatcher.
// Events reach publisher through a PublishQueue; with a nil publisher they are
// only logged. The returned func drains and stops the queue.
func StartNotificationWorker(dispatcher events.Dispatcher, publisher service.Publisher, cfg config.RedisConfig, logger *zap.Logger) (stop func()) {
	stop = func() {}

	var target service.Publisher
	if publisher != nil {
		queue := StartPublishQueue(publisher, cfg.QueueSize, cfg.PublishTimeout(), logger)
		target = queue
		stop = queue.Close
		logger.Info("forwarding employee events", zap.String("channel", cfg.Channel))
	}

	service.NewNotificationService(dispatcher, target, cfg.Channel, logger).RegisterHandlers()
	return stop
}
