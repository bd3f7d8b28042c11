package cmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/sensor-alarm-service/pkg/common"
	"liyu1981.xyz/sensor-alarm-service/pkg/config"
	"liyu1981.xyz/sensor-alarm-service/pkg/db"
	"liyu1981.xyz/sensor-alarm-service/pkg/engine"
	"liyu1981.xyz/sensor-alarm-service/pkg/iot"
	"liyu1981.xyz/sensor-alarm-service/pkg/notify"
)

// buildPublisher fans notifications out to every configured target behind
// one bounded queue. The log target is always present.
func buildPublisher(ctx context.Context, cfg *config.Config) (*notify.AsyncPublisher, func(), error) {
	logger := common.GetLogger()

	publishers := []engine.Publisher{notify.LogPublisher{}}
	closers := []func(){}

	if cfg.MQTT.Broker != "" {
		p, err := notify.NewMQTTPublisher(cfg.MQTT)
		if err != nil {
			return nil, nil, err
		}
		publishers = append(publishers, p)
		closers = append(closers, p.Close)
	}

	if cfg.Redis.Addr != "" {
		p := notify.NewRedisPublisher(notify.NewRedisClient(cfg.Redis))
		if err := p.Ping(ctx); err != nil {
			logger.Warn("Redis not reachable, notifications will be retried per alarm", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		publishers = append(publishers, p)
		closers = append(closers, func() { _ = p.Close() })
	}

	if cfg.WebhookURL != "" {
		publishers = append(publishers, notify.NewWebhookPublisher(cfg.WebhookURL, 0))
	}

	async := notify.NewAsyncPublisher(notify.NewMultiPublisher(publishers...), cfg.NotifyQueueSize)

	logger.Info("Notification targets configured", zap.Int("targets", len(publishers)))

	return async, func() {
		async.Close()
		for _, c := range closers {
			c()
		}
	}, nil
}

// openIOT connects the configured database and builds the alarm core on it.
func openIOT(cfg *config.Config, opts ...engine.Option) (*iot.IOT, error) {
	conn, err := db.Open(cfg.Dialector())
	if err != nil {
		return nil, err
	}
	return iot.NewIOT(*conn, opts...), nil
}

// prepare closes occurrences left open by a previous run, then loads the
// registry, seeding the rule table from rulesFile when it is empty.
func prepare(ctx context.Context, iotCore *iot.IOT, rulesFile string) error {
	logger := common.GetLogger()

	if _, err := iotCore.Occurrence.CloseStaleOccurrences(ctx, time.Now()); err != nil {
		return fmt.Errorf("close stale occurrences: %w", err)
	}

	n, err := iotCore.Rule.LoadRules(ctx)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	if n > 0 || rulesFile == "" {
		return nil
	}

	rules, err := config.LoadRuleFile(rulesFile)
	if err != nil {
		return err
	}
	if _, err := iotCore.Rule.AddRules(ctx, rules); err != nil {
		return fmt.Errorf("seed rules from %s: %w", rulesFile, err)
	}

	logger.Info("Seeded alarm rules", zap.String("file", rulesFile), zap.Int("count", len(rules)))
	return nil
}
