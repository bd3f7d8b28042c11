package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"liyu1981.xyz/sensor-alarm-service/pkg/config"
	"liyu1981.xyz/sensor-alarm-service/pkg/notify"
)

var (
	watchFilter string

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Print alarm notifications received from the MQTT broker.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return watch(ctx, cfg, func(line string) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			})
		},
	}
)

func watch(ctx context.Context, cfg *config.Config, emit func(string)) error {
	if cfg.MQTT.Broker == "" {
		return errors.New("MQTT_BROKER is not set")
	}

	cfg.MQTT.ClientID += "-watch"
	client, err := notify.NewMQTTPublisher(cfg.MQTT)
	if err != nil {
		return err
	}
	defer client.Close()

	return watchWith(ctx, client, watchFilter, emit)
}

type subscriber interface {
	Subscribe(filter string, handler notify.MessageHandler) error
}

func watchWith(ctx context.Context, s subscriber, filter string, emit func(string)) error {
	err := s.Subscribe(filter, func(topic string, payload []byte) {
		line, err := notify.FormatAlarm(topic, payload)
		if err != nil {
			line = fmt.Sprintf("%s: %s", topic, payload)
		}
		emit(line)
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	return nil
}

func init() {
	watchCmd.Flags().StringVarP(&watchFilter, "topic", "t", "alarms/#", "MQTT topic filter")
}
