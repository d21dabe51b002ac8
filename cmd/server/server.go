package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-sheet/internal/clients/external"
	"github.com/KirkDiggler/rpg-sheet/internal/config"
	"github.com/KirkDiggler/rpg-sheet/internal/dice"
	"github.com/KirkDiggler/rpg-sheet/internal/handlers/api/v1alpha1"
	httpv1 "github.com/KirkDiggler/rpg-sheet/internal/handlers/http/v1"
	"github.com/KirkDiggler/rpg-sheet/internal/observability"
	rollsorchestrator "github.com/KirkDiggler/rpg-sheet/internal/orchestrators/rolls"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-sheet/internal/redis"
	"github.com/KirkDiggler/rpg-sheet/internal/repositories/character"
	rollhistory "github.com/KirkDiggler/rpg-sheet/internal/repositories/roll_history"
	rolllog "github.com/KirkDiggler/rpg-sheet/internal/repositories/roll_log"
	"github.com/KirkDiggler/rpg-sheet/internal/rolls"
)

const shutdownTimeout = 30 * time.Second

var configPath string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP and gRPC servers",
	Long:  `Start the roll API: HTTP with the live roll stream, and the gRPC dice service.`,
	RunE:  runServer,
}

func init() {
	registerServerFlags(serverCmd)
}

func registerServerFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to a YAML config file")
	flags.Int("http-port", 8080, "HTTP server port")
	flags.Int("port", 50051, "gRPC server port")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("roll-log", config.RollLogRedis, "shared roll log backend: memory or redis")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// flags only win when set explicitly
	bindings := map[string]string{
		"http.port":         "http-port",
		"grpc.port":         "port",
		"logging.level":     "log-level",
		"rolls.log_backend": "roll-log",
	}
	for key, name := range bindings {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			v.Set(key, f.Value.String())
		}
	}

	return config.LoadFromViper(v)
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	grpcLis, err := net.Listen("tcp", cfg.GRPC.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	errChan := make(chan error, 2)
	go func() {
		logger.Info("gRPC server starting", zap.String("addr", cfg.GRPC.Addr()))
		if err := a.grpcServer.Serve(grpcLis); err != nil {
			errChan <- fmt.Errorf("failed to serve gRPC: %w", err)
		}
	}()
	go func() {
		logger.Info("HTTP server starting", zap.String("addr", cfg.HTTP.Addr()))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal, gracefully stopping")
		a.shutdown(logger)
		return nil
	case err := <-errChan:
		a.shutdown(logger)
		return err
	}
}

type app struct {
	redis      redisclient.Client
	hub        *httpv1.Hub
	httpServer *http.Server
	grpcServer *grpc.Server
	health     *health.Server
}

func newApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	redisClient, err := redisclient.NewClient(cfg.Redis.Address, &redisclient.Options{
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
		UseTLS:   cfg.Redis.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	clk := clock.New()

	factory, err := rolls.NewFactory(&rolls.Config{
		Roller:      dice.NewRoller(),
		IDGenerator: idgen.NewUUID("roll"),
		Clock:       clk,
		Logger:      logger.Named("rolls"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create roll factory: %w", err)
	}

	historyRepo, err := rollhistory.NewRedisRepository(&rollhistory.Config{
		Client: redisClient,
		Clock:  clk,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create roll history repository: %w", err)
	}

	characterRepo, err := character.NewRedis(&character.RedisConfig{Client: redisClient})
	if err != nil {
		return nil, fmt.Errorf("failed to create character repository: %w", err)
	}

	rollLog, err := newRollLog(cfg.Rolls.LogBackend, redisClient)
	if err != nil {
		return nil, err
	}

	rulesClient, err := external.New(&external.Config{
		BaseURL:     cfg.Rules.BaseURL,
		HTTPTimeout: cfg.Rules.Timeout,
		CacheTTL:    cfg.Rules.CacheTTL,
		Logger:      logger.Named("rules"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create rules client: %w", err)
	}

	hub, err := httpv1.NewHub(&httpv1.HubConfig{
		Logger:         logger.Named("stream"),
		ClientBuffer:   cfg.Rolls.StreamBuffer,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create roll stream: %w", err)
	}

	eventBus := events.NewBus()
	hub.Subscribe(eventBus)

	rollService, err := rollsorchestrator.NewOrchestrator(&rollsorchestrator.Config{
		Factory:       factory,
		HistoryRepo:   historyRepo,
		RollLog:       rollLog,
		RulesClient:   rulesClient,
		CharacterRepo: characterRepo,
		EventBus:      eventBus,
		Logger:        logger.Named("orchestrator"),
		HistoryTTL:    cfg.Rolls.HistoryTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create roll orchestrator: %w", err)
	}

	httpHandler, err := httpv1.NewHandler(&httpv1.HandlerConfig{
		RollService: rollService,
		Hub:         hub,
		Logger:      logger.Named("http"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP handler: %w", err)
	}

	diceHandler, err := v1alpha1.NewDiceHandler(&v1alpha1.DiceHandlerConfig{
		RollService: rollService,
		Logger:      logger.Named("grpc"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create dice handler: %w", err)
	}

	interceptorLogger := observability.InterceptorLogger(logger.Named("grpc"))
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	apiv1alpha1.RegisterDiceServiceServer(srv, diceHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(apiv1alpha1.DiceService_ServiceDesc.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	return &app{
		redis: redisClient,
		hub:   hub,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Addr(),
			Handler:           httpHandler.Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		grpcServer: srv,
		health:     healthServer,
	}, nil
}

func newRollLog(backend string, client redisclient.Client) (rolllog.Repository, error) {
	switch backend {
	case config.RollLogMemory:
		return rolllog.NewMemoryRepository(), nil
	case config.RollLogRedis:
		repo, err := rolllog.NewRedisRepository(&rolllog.Config{Client: client})
		if err != nil {
			return nil, fmt.Errorf("failed to create roll log repository: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown roll log backend %q", backend)
	}
}

// shutdown stops both servers, forcing the gRPC server if it does not drain
// within shutdownTimeout
func (a *app) shutdown(logger *zap.Logger) {
	a.health.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Hijacked websocket connections are not tracked by Shutdown.
	a.hub.Close()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown did not complete", zap.Error(err))
	}

	stopped := make(chan struct{})
	go func() {
		a.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		logger.Warn("graceful shutdown timeout exceeded, forcing stop")
		a.grpcServer.Stop()
	case <-stopped:
		logger.Info("servers stopped gracefully")
	}
}

func (a *app) close() {
	_ = a.redis.Close()
}
