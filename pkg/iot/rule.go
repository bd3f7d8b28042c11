package iot

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/sensor-alarm-service/pkg/common"
	"liyu1981.xyz/sensor-alarm-service/pkg/engine"
	"liyu1981.xyz/sensor-alarm-service/pkg/models"
)

func (i *IOT) addRule(ctx context.Context, input *models.AlarmRule) (uint, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryIOTRule),
	)

	if i.Engine == nil {
		return 0, fmt.Errorf("alarm engine not available")
	}

	rule, err := ToEngineRule(*input)
	if err != nil {
		return 0, err
	}
	rule.ID = 0
	if err := rule.Validate(); err != nil {
		logger.Warn("Rejected alarm rule", zap.Reflect("rule", input), zap.Error(err))
		return 0, err
	}

	record := FromEngineRule(rule)

	logger.Info("Received alarm rule", zap.Reflect("rule", record))

	// the row is rolled back if the registry refuses the rule
	err = i.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		rule.ID = record.ID
		_, err := i.Engine.Registry().Register(rule)
		return err
	})
	if err != nil {
		return 0, err
	}

	logger.Info("Registered alarm rule", zap.Reflect("rule", record))

	return record.ID, nil
}

// addRules stores every rule or none of them, then rebuilds the registry
// from the table.
func (i *IOT) addRules(ctx context.Context, inputs []models.AlarmRule) ([]uint, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryIOTRule),
	)

	if i.Engine == nil {
		return nil, fmt.Errorf("alarm engine not available")
	}

	records := make([]models.AlarmRule, 0, len(inputs))
	for n, input := range inputs {
		rule, err := ToEngineRule(input)
		if err == nil {
			rule.ID = 0
			err = rule.Validate()
		}
		if err != nil {
			logger.Warn("Rejected alarm rule batch", zap.Int("index", n), zap.Reflect("rule", input), zap.Error(err))
			return nil, fmt.Errorf("rule %d (%q): %w", n+1, input.Name, err)
		}
		records = append(records, FromEngineRule(rule))
	}

	err := i.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for n := range records {
			if err := tx.Create(&records[n]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := i.loadRules(ctx); err != nil {
		return nil, err
	}

	ids := common.Mapper(records, func(r models.AlarmRule) uint { return r.ID })
	logger.Info("Registered alarm rules", zap.Int("count", len(ids)))

	return ids, nil
}

func (i *IOT) getRules(ctx context.Context) ([]models.AlarmRule, error) {
	var rules []models.AlarmRule
	err := i.Db.Conn.WithContext(ctx).Order("id asc").Find(&rules).Error
	return rules, err
}

// loadRules rebuilds the registry index from the rule table.
func (i *IOT) loadRules(ctx context.Context) (int, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameIOTCore,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryIOTRule),
	)

	if i.Engine == nil {
		return 0, fmt.Errorf("alarm engine not available")
	}

	records, err := i.getRules(ctx)
	if err != nil {
		return 0, err
	}

	rules := make([]engine.Rule, 0, len(records))
	for _, record := range records {
		rule, err := ToEngineRule(record)
		if err != nil {
			return 0, fmt.Errorf("rule %d: %w", record.ID, err)
		}
		rules = append(rules, rule)
	}

	if err := i.Engine.Registry().Load(rules); err != nil {
		return 0, err
	}

	logger.Info("Loaded alarm rules", zap.Int("count", len(rules)))

	return len(rules), nil
}

type IRuleImpl struct {
	iot *IOT
}

func (ir *IRuleImpl) AddRule(ctx context.Context, input *models.AlarmRule) (uint, error) {
	return ir.iot.addRule(ctx, input)
}

func (ir *IRuleImpl) AddRules(ctx context.Context, inputs []models.AlarmRule) ([]uint, error) {
	return ir.iot.addRules(ctx, inputs)
}

func (ir *IRuleImpl) GetRules(ctx context.Context) ([]models.AlarmRule, error) {
	return ir.iot.getRules(ctx)
}

func (ir *IRuleImpl) LoadRules(ctx context.Context) (int, error) {
	return ir.iot.loadRules(ctx)
}

func (i *IOT) GetIRule() IRule {
	return &IRuleImpl{iot: i}
}
