package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bdbl/loan-verification-api/api"
	"github.com/bdbl/loan-verification-api/api/routes"
	"github.com/bdbl/loan-verification-api/pkg/core"
	"github.com/bdbl/loan-verification-api/pkg/customer"
	"github.com/bdbl/loan-verification-api/pkg/handoff"
	"github.com/bdbl/loan-verification-api/pkg/ndi"
	"github.com/bdbl/loan-verification-api/pkg/otp"
	redisLocal "github.com/bdbl/loan-verification-api/pkg/redis"

	"github.com/gofiber/fiber/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := core.LoadEnv(); err != nil {
		log.Printf("env files not fully loaded: %v", err)
	}

	cfg, err := core.NewConfigFromEnv()
	if err != nil {
		log.Printf("config error: %v", err)
	}

	otelSvc, err := core.NewOtelService(ctx, &cfg)
	if err != nil {
		log.Printf("otel setup failed, continuing without exporters: %v", err)
		otelSvc = core.NewNoopOtelService()
	}

	logger := core.NewLoggerWithOtel(cfg, otelSvc)
	slog.SetDefault(logger)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		otelSvc.Shutdown(shutdownCtx, logger)
	}()

	app, cleanup, err := buildApp(AppOptions{
		Config: &cfg,
		Otel:   otelSvc,
		Logger: logger,
	})
	if err != nil {
		logger.Error("failed to build app", slog.Any("err", err))
		return
	}
	defer cleanup()

	addr := fmt.Sprintf(":%d", cfg.Port)
	if err := runServer(ctx, app, addr); err != nil {
		logger.Error("server error", slog.Any("err", err))
	}
}

type AppOptions struct {
	SkipAuth bool
	Config   *core.Config
	Otel     core.OtelService
	Logger   *slog.Logger
}

func buildApp(opts AppOptions) (*fiber.App, func(), error) {
	cfg := core.NewConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if opts.SkipAuth {
		cfg.SkipAuth = true
	}

	otelSvc := opts.Otel
	if otelSvc == nil {
		otelSvc = core.NewNoopOtelService()
	}

	logger := opts.Logger
	if logger == nil {
		logger = core.NewLogger(cfg)
	}

	rdb := redisLocal.NewClient(redisLocal.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)

	deps := routes.Deps{
		Sessions: ndi.NewRedisSessionStore(rdb, cfg.NDI.SessionTTL),
		Handoff:  handoff.NewRedisStore(rdb, cfg.Handoff.TTL, logger),
	}

	watcherCtx, stopWatcher := context.WithCancel(context.Background())

	if ndiSvc, err := ndi.New(&cfg.NDI, ndi.Options{Logger: logger}); err != nil {
		logger.Warn("ndi service not configured", slog.Any("err", err))
	} else {
		deps.NDI = ndiSvc
		deps.Watcher = ndi.NewWatcher(watcherCtx, ndiSvc, deps.Handoff, deps.Sessions, ndi.WatcherOptions{
			Logger:   logger,
			Interval: cfg.NDI.PollInterval,
		})
	}

	if custSvc, err := customer.New(&cfg.CBS, customer.Options{Logger: logger}); err != nil {
		logger.Warn("customer service not configured", slog.Any("err", err))
	} else {
		deps.Customers = custSvc
	}

	if otpSvc, err := otp.New(&cfg.OTP, otp.Options{Logger: logger}); err != nil {
		logger.Warn("otp service not configured", slog.Any("err", err))
	} else {
		deps.OTP = otpSvc
	}

	app, err := api.New(&api.Config{
		Otel:   otelSvc,
		Logger: logger,
		Redis:  rdb,
		Deps:   deps,
		Config: cfg,
	})
	if err != nil {
		stopWatcher()
		return nil, nil, err
	}

	cleanup := func() {
		if deps.Watcher != nil {
			deps.Watcher.Shutdown()
		}
		stopWatcher()
	}

	return app, cleanup, nil
}

func runServer(ctx context.Context, app *fiber.App, addr string) error {
	srvErr := make(chan error, 1)

	go func() {
		srvErr <- app.Listen(addr)
	}()

	select {
	case err := <-srvErr:
		return err
	case <-ctx.Done():
	}

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	return nil
}
