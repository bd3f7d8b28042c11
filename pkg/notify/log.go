package notify

import (
	"context"

	"go.uber.org/zap"
	"liyu1981.xyz/sensor-alarm-service/pkg/common"
)

// LogPublisher writes notifications to the log only.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, topic string, payload []byte) error {
	logger := common.GetLoggerWith(
		common.LoggerNameNotify,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryNotifyPublish),
	)
	logger.Info("Alarm notification", zap.String("topic", topic), zap.ByteString("payload", payload))
	return nil
}
