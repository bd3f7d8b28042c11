package iot

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"liyu1981.xyz/sensor-alarm-service/pkg/common"
)

func (i *IOT) postReading(ctx context.Context, sensorID string, value float64) error {
	logger := common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryIOTReading),
	)

	if i.Engine == nil {
		return fmt.Errorf("alarm engine not available")
	}

	logger.Debug("Received reading for sensor", zap.String("sensor_id", sensorID), zap.Float64("value", value))

	if err := i.Engine.OnSensorUpdate(ctx, sensorID, value); err != nil {
		logger.Warn("Reading evaluation failed", zap.String("sensor_id", sensorID), zap.Error(err))
		return err
	}

	return nil
}

type IReadingImpl struct {
	iot *IOT
}

func (ir *IReadingImpl) PostReading(ctx context.Context, sensorID string, value float64) error {
	return ir.iot.postReading(ctx, sensorID, value)
}

func (i *IOT) GetIReading() IReading {
	return &IReadingImpl{iot: i}
}
