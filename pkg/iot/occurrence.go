package iot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/sensor-alarm-service/pkg/common"
	"liyu1981.xyz/sensor-alarm-service/pkg/models"
)

var ErrNoOpenOccurrence = errors.New("no active occurrence for rule")

func (i *IOT) recordTrigger(ctx context.Context, ruleID uint, start time.Time) (uint, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryIOTOccurrence),
	)

	occurrence := models.AlarmOccurrence{
		RuleID:    ruleID,
		StartTime: start.UTC(),
		Status:    models.OccurrenceStatusActive,
	}

	if err := i.Db.Conn.WithContext(ctx).Create(&occurrence).Error; err != nil {
		return 0, err
	}

	logger.Info("Occurrence saved", zap.Reflect("occurrence", occurrence))

	return occurrence.ID, nil
}

func (i *IOT) recordClear(ctx context.Context, ruleID uint, end time.Time) error {
	logger := common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryIOTOccurrence),
	)

	result := i.Db.Conn.WithContext(ctx).
		Model(&models.AlarmOccurrence{}).
		Where("rule_id = ? AND status = ?", ruleID, models.OccurrenceStatusActive).
		Updates(map[string]any{
			"end_time": end.UTC(),
			"status":   models.OccurrenceStatusCleared,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w %d", ErrNoOpenOccurrence, ruleID)
	}

	logger.Info("Occurrence cleared", zap.Uint("rule_id", ruleID), zap.Time("end_time", end))

	return nil
}

func (i *IOT) getRuleOccurrences(ctx context.Context, ruleID uint) ([]models.AlarmOccurrence, error) {
	var occurrences []models.AlarmOccurrence
	err := i.Db.Conn.WithContext(ctx).
		Where("rule_id = ?", ruleID).
		Order("start_time desc, id desc").
		Find(&occurrences).Error
	return occurrences, err
}

// closeStaleOccurrences clears occurrences left open by a previous process;
// engine state always starts Inactive, so they can never be cleared otherwise.
func (i *IOT) closeStaleOccurrences(ctx context.Context, at time.Time) (int64, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryIOTOccurrence),
	)

	result := i.Db.Conn.WithContext(ctx).
		Model(&models.AlarmOccurrence{}).
		Where("status = ?", models.OccurrenceStatusActive).
		Updates(map[string]any{
			"end_time": at.UTC(),
			"status":   models.OccurrenceStatusCleared,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		logger.Warn("Closed stale occurrences", zap.Int64("count", result.RowsAffected))
	}

	return result.RowsAffected, nil
}

type IOccurrenceImpl struct {
	iot *IOT
}

func (io *IOccurrenceImpl) RecordTrigger(ctx context.Context, ruleID uint, start time.Time) (uint, error) {
	return io.iot.recordTrigger(ctx, ruleID, start)
}

func (io *IOccurrenceImpl) RecordClear(ctx context.Context, ruleID uint, end time.Time) error {
	return io.iot.recordClear(ctx, ruleID, end)
}

func (io *IOccurrenceImpl) GetRuleOccurrences(ctx context.Context, ruleID uint) ([]models.AlarmOccurrence, error) {
	return io.iot.getRuleOccurrences(ctx, ruleID)
}

func (io *IOccurrenceImpl) CloseStaleOccurrences(ctx context.Context, at time.Time) (int64, error) {
	return io.iot.closeStaleOccurrences(ctx, at)
}

func (i *IOT) GetIOccurrence() IOccurrence {
	return &IOccurrenceImpl{iot: i}
}
