package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"liyu1981.xyz/sensor-alarm-service/pkg/common"
	"liyu1981.xyz/sensor-alarm-service/pkg/config"
	"liyu1981.xyz/sensor-alarm-service/pkg/engine"
	iotGrpc "liyu1981.xyz/sensor-alarm-service/pkg/grpc"
	iotHttp "liyu1981.xyz/sensor-alarm-service/pkg/http"
	"liyu1981.xyz/sensor-alarm-service/pkg/iot"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and, when configured, the gRPC API.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(ctx, cfg)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := common.GetLogger()

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

	if common.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	rs := &iotHttp.RestfulServer{
		Server:           gin.Default(),
		Iot:              iotCore,
		RateLimiterStore: iot.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
	}
	rs.Setup()
	httpServer := &http.Server{Addr: cfg.HTTPHostPort, Handler: rs.Server}

	// both listeners are bound before anything serves
	httpListener, err := net.Listen("tcp", cfg.HTTPHostPort)
	if err != nil {
		return err
	}

	var grpcServer *grpc.Server
	var grpcListener net.Listener
	if cfg.GRPCHostPort != "" {
		if grpcListener, err = net.Listen("tcp", cfg.GRPCHostPort); err != nil {
			_ = httpListener.Close()
			return err
		}

		alarmServer := iotGrpc.AlarmServer{
			Iot:              iotCore,
			RateLimiterStore: iot.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst),
		}
		interceptor := alarmServer.CreateRateLimitInterceptor([]string{
			iotGrpc.MethodAddRule,
			iotGrpc.MethodPostReading,
			iotGrpc.MethodGetOccurrences,
		})
		grpcServer = grpc.NewServer(grpc.UnaryInterceptor(interceptor))
		iotGrpc.RegisterAlarmServiceServer(grpcServer, &alarmServer)
	}

	g, ctx := errgroup.WithContext(ctx)

	logger.Info("Starting HTTP server",
		zap.String("addr", httpListener.Addr().String()),
		zap.Float64("default_rate", cfg.DefaultRate),
		zap.Int("default_burst", cfg.DefaultBurst))

	g.Go(func() error {
		if err := httpServer.Serve(httpListener); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if grpcServer != nil {
		logger.Info("Starting gRPC server", zap.String("addr", grpcListener.Addr().String()))

		g.Go(func() error {
			return grpcServer.Serve(grpcListener)
		})
		g.Go(func() error {
			<-ctx.Done()
			grpcServer.GracefulStop()
			return nil
		})
	}

	err = g.Wait()
	logger.Info("Servers stopped", zap.Error(err))
	return err
}
