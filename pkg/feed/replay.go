package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"liyu1981.xyz/sensor-alarm-service/pkg/common"
)

// Target accepts readings; iot.IReading is the production target.
type Target interface {
	PostReading(ctx context.Context, sensorID string, value float64) error
}

type Stats struct {
	Delivered int64
	Failed    int64
	Skipped   int64
}

// Replayer feeds replay files into a Target, one producer goroutine per
// file. Readings of one file are delivered in file order.
type Replayer struct {
	Target  Target
	Sources map[string]string
	Delay   time.Duration
}

// Run replays files until they are exhausted or ctx is done. Per-reading
// failures are logged and counted; only unreadable files fail the run.
func (r *Replayer) Run(ctx context.Context, files ...string) (Stats, error) {
	var delivered, failed, skipped atomic.Int64

	parent := ctx
	g, ctx := errgroup.WithContext(ctx)
	for _, file := range files {
		g.Go(func() error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open feed %s: %w", file, err)
			}
			defer f.Close()

			s, err := r.replay(ctx, file, f)
			delivered.Add(s.Delivered)
			failed.Add(s.Failed)
			skipped.Add(s.Skipped)
			return err
		})
	}

	err := g.Wait()
	if parent.Err() != nil && errors.Is(err, parent.Err()) {
		err = nil
	}
	return Stats{Delivered: delivered.Load(), Failed: failed.Load(), Skipped: skipped.Load()}, err
}

func (r *Replayer) replay(ctx context.Context, name string, in io.Reader) (Stats, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFeed,
		zap.String(common.LoggerFieldIOTCategory, common.LoggerCategoryFeedReplay),
		zap.String("file", name),
	)

	var stats Stats
	reader := NewReader(in, r.Sources)
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			logger.Info("Replay finished",
				zap.Int64("delivered", stats.Delivered),
				zap.Int64("failed", stats.Failed),
				zap.Int64("skipped", stats.Skipped))
			return stats, nil
		}
		if err != nil {
			if isRecordError(err) {
				stats.Skipped++
				logger.Warn("Skipped feed record", zap.Error(err))
				continue
			}
			return stats, fmt.Errorf("read feed %s: %w", name, err)
		}

		if err := r.Target.PostReading(ctx, rec.SensorID, rec.Value); err != nil {
			stats.Failed++
			logger.Warn("Reading rejected",
				zap.Int("line", rec.Line),
				zap.String("sensor_id", rec.SensorID),
				zap.Float64("value", rec.Value),
				zap.Error(err))
		} else {
			stats.Delivered++
			logger.Debug("Processing reading",
				zap.String("source", rec.Source),
				zap.String("sensor_id", rec.SensorID),
				zap.Float64("value", rec.Value))
		}

		if r.Delay > 0 {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-time.After(r.Delay):
			}
		}
	}
}
