package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	v1alpha1 "github.com/KirkDiggler/configurator-api/internal/handlers/configurator/v1alpha1"
	"github.com/KirkDiggler/configurator-api/internal/metrics"
	"github.com/KirkDiggler/configurator-api/internal/orchestrators/configurator"
	"github.com/KirkDiggler/configurator-api/internal/pkg/clock"
	"github.com/KirkDiggler/configurator-api/internal/pkg/idgen"
	"github.com/KirkDiggler/configurator-api/internal/redis"
	rulesrepo "github.com/KirkDiggler/configurator-api/internal/repositories/rules"
	selectionsession "github.com/KirkDiggler/configurator-api/internal/repositories/selection_session"
	"github.com/KirkDiggler/configurator-api/internal/services/rules"
)

var (
	grpcPort    int
	metricsPort int
	redisAddr   string
	rulesTTL    time.Duration
	sessionTTL  time.Duration
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the configurator gRPC server backed by Redis, with a Prometheus metrics endpoint.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 50051, "gRPC server port")
	serverCmd.Flags().IntVar(&metricsPort, "metrics-port", 9090, "Prometheus metrics port (0 disables)")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "Redis address")
	serverCmd.Flags().DurationVar(&rulesTTL, "rules-ttl", rules.DefaultTTL, "How long fetched rules stay cached")
	serverCmd.Flags().DurationVar(&sessionTTL, "session-ttl", selectionsession.DefaultTTL, "How long an idle configuration session lives")
}

func runServer(_ *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	redisClient, err := redis.NewClient(redisAddr, &redis.Options{DialTimeout: 5 * time.Second})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		_ = redisClient.Close()
	}()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := redis.Ping(pingCtx, redisClient); err != nil {
		return fmt.Errorf("failed to reach redis at %s: %w", redisAddr, err)
	}

	reg := metrics.NewRegistry()
	realClock := clock.New()

	rulesRepo, err := rulesrepo.NewRedis(&rulesrepo.RedisConfig{Client: redisClient})
	if err != nil {
		return fmt.Errorf("failed to create rules repository: %w", err)
	}
	rulesService, err := rules.New(&rules.Config{
		Repository: rulesRepo,
		Clock:      realClock,
		Metrics:    reg,
		TTL:        rulesTTL,
		RetryDelay: rules.DefaultRetryDelay,
	})
	if err != nil {
		return fmt.Errorf("failed to create rules service: %w", err)
	}

	sessionRepo, err := selectionsession.NewRedisRepository(&selectionsession.Config{
		Client: redisClient,
		Clock:  realClock,
	})
	if err != nil {
		return fmt.Errorf("failed to create session repository: %w", err)
	}

	configuratorService, err := configurator.NewOrchestrator(&configurator.Config{
		Rules:       rulesService,
		SessionRepo: sessionRepo,
		IDGenerator: idgen.NewUUID("sess"),
		SessionTTL:  sessionTTL,
		Metrics:     reg,
	})
	if err != nil {
		return fmt.Errorf("failed to create configurator service: %w", err)
	}

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		ConfiguratorService: configuratorService,
	})
	if err != nil {
		return fmt.Errorf("failed to create configurator handler: %w", err)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", grpcPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	v1alpha1.RegisterConfiguratorServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	var metricsServer *http.Server
	if metricsPort > 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", reg.Handler())
		metricsServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", metricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	errChan := make(chan error, 2)
	go func() {
		log.Printf("gRPC server starting on port %d...", grpcPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()
	if metricsServer != nil {
		go func() {
			log.Printf("metrics server starting on port %d...", metricsPort)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("failed to serve metrics: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Println("Shutting down gRPC server...")
		healthServer.Shutdown()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if metricsServer != nil {
			_ = metricsServer.Shutdown(shutdownCtx)
		}

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			log.Println("Graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			log.Println("Server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		srv.Stop()
		return err
	}
}

// logFunc routes gRPC request logs to slog. The middleware levels share
// slog's numeric values.
func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
