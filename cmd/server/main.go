package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"feedboard/internal/app"
	"feedboard/internal/config"
	hhttp "feedboard/internal/handler/http"
	"feedboard/internal/handler/http/middleware"
	"feedboard/internal/handler/http/relay"
	"feedboard/internal/observability/logging"
	pkgconfig "feedboard/internal/pkg/config"
	"feedboard/internal/usecase/aggregate"
)

func main() {
	// .env は任意（存在しなければ環境変数のみ）
	_ = godotenv.Load()

	cfg, warnings := config.Load(pkgconfig.NewConfigMetrics("feedboard", nil))
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(logger)
	for _, w := range warnings {
		logger.Warn("configuration fallback", slog.String("warning", w))
	}

	components, err := app.Build(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(logger, cfg, components, getVersion())
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

func runServer(logger *slog.Logger, cfg *config.AppConfig, c *app.Components, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	controller := aggregate.NewController(c.Aggregate, cfg.RefreshInterval, logger)

	handler := hhttp.NewRouter(hhttp.Deps{
		Logger:     logger,
		Version:    version,
		Snapshots:  c.Aggregate,
		Refresher:  controller,
		Readiness:  controller,
		Registry:   c.Registry,
		Retrier:    c.Aggregate,
		Background: controller,
		Relay: relay.Handler{
			Fetcher:     c.Direct,
			DenyPrivate: cfg.DenyPrivateIPs,
			Logger:      logger,
		},
		RelayRate: middleware.NewLimiter(cfg.RelayRateLimit),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// 単一フィード再試行は全戦略分の時間がかかる
		WriteTimeout: 4*cfg.FetchTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	controller.Start(ctx)

	go func() {
		logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("version", version),
			slog.Int("feeds", len(c.Registry.List())),
			slog.Any("strategies", c.Resolver.Strategies()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	// 実行中のリフレッシュを中断して待機
	cancel()
	controller.Stop()
	logger.Info("server stopped")
}
