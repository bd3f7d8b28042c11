package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"liyu1981.xyz/sensor-alarm-service/pkg/config"
	"liyu1981.xyz/sensor-alarm-service/pkg/engine"
	"liyu1981.xyz/sensor-alarm-service/pkg/feed"
	"liyu1981.xyz/sensor-alarm-service/pkg/iot"
)

var (
	replayDelay time.Duration
	replayDB    string

	replayCmd = &cobra.Command{
		Use:   "replay <file.csv>...",
		Short: "Feed recorded sensor CSV files through the alarm rules.",
		Long: `Replays CSV files of "source,timestamp,value" rows, one producer per
file, into the configured rules and prints the resulting occurrences.

Sources sensor1, sensor2 and sensor3 map to temperature, current and humidity.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if replayDB != "" {
				cfg.DBType = replayDB
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return replay(ctx, cfg, args, cmd.OutOrStdout())
		},
	}
)

func replay(ctx context.Context, cfg *config.Config, files []string, out io.Writer) error {
	publisher, closePublisher, err := buildPublisher(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePublisher()

	iotCore, err := openIOT(cfg, engine.WithPublisher(publisher))
	if err != nil {
		return err
	}
	if err := prepare(ctx, iotCore, cfg.RulesFile); err != nil {
		return err
	}

	replayer := &feed.Replayer{
		Target:  iotCore.Reading,
		Sources: feed.DefaultSources,
		Delay:   replayDelay,
	}
	stats, err := replayer.Run(ctx, files...)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "delivered=%d failed=%d skipped=%d\n", stats.Delivered, stats.Failed, stats.Skipped)
	return printOccurrences(ctx, iotCore, out)
}

func printOccurrences(ctx context.Context, iotCore *iot.IOT, out io.Writer) error {
	rules, err := iotCore.Rule.GetRules(ctx)
	if err != nil {
		return err
	}
	for _, rule := range rules {
		occurrences, err := iotCore.Occurrence.GetRuleOccurrences(ctx, rule.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "rule %d %q: %d occurrence(s)\n", rule.ID, rule.Name, len(occurrences))
		for _, o := range occurrences {
			end := "-"
			if o.EndTime != nil {
				end = o.EndTime.Format(time.RFC3339Nano)
			}
			fmt.Fprintf(out, "  %s %s .. %s\n", o.Status, o.StartTime.Format(time.RFC3339Nano), end)
		}
	}
	return nil
}

func init() {
	replayCmd.Flags().DurationVarP(&replayDelay, "delay", "d", 0, "pause between readings of one file")
	replayCmd.Flags().StringVar(&replayDB, "db-type", "", "override IOT_DB_TYPE (file, memory, postgres)")
}
