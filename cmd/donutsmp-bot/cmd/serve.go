package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/donaldgifford/donutsmp-bot/api/openapi"
	"github.com/donaldgifford/donutsmp-bot/internal/api/handlers"
	"github.com/donaldgifford/donutsmp-bot/internal/api/middleware"
	"github.com/donaldgifford/donutsmp-bot/internal/auction"
	"github.com/donaldgifford/donutsmp-bot/internal/bot"
	"github.com/donaldgifford/donutsmp-bot/internal/config"
	"github.com/donaldgifford/donutsmp-bot/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot and the ops HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireTelegram(); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := newLogger(cfg)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Tracing, Version)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing shutdown failed", "err", err)
		}
	}()

	client := newDonutClient(cfg, log)
	agg := auction.NewAggregator(client,
		auction.WithMaxPages(cfg.Search.MaxPages),
		auction.WithLogger(log),
	)
	cache := auction.NewCache(
		auction.WithTTL(cfg.Search.CacheTTL),
		auction.WithPerChatLimit(cfg.Search.CachePerChat),
	)
	router := auction.NewRouter(cache, auction.NewRenderer(cfg.Search.PageSize), log)

	sweeper, err := auction.NewSweeper(cache, cfg.Search.SweepInterval, log)
	if err != nil {
		return fmt.Errorf("creating cache sweeper: %w", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	tg, err := bot.NewTelegram(cfg.Telegram.Token,
		bot.WithPollTimeout(cfg.Telegram.PollTimeout),
		bot.WithDebug(cfg.Telegram.Debug),
		bot.WithTelegramLogger(log),
	)
	if err != nil {
		return err
	}
	log.Info("authorized on telegram", "username", tg.Username())

	b := bot.New(client, agg, router, tg, bot.WithLogger(log))

	var e *echo.Echo
	if cfg.Server.IsEnabled() {
		e = newServer(&cfg.Server, log, b, agg)
		addr := cfg.Server.Addr()
		log.Info("starting server", "addr", addr)
		go func() {
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("server error", "err", err)
				stop()
			}
		}()
	}

	if err := b.Run(ctx, tg); err != nil {
		log.Error("bot stopped with error", "err", err)
	}

	if e != nil {
		log.Info("shutting down server")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(sctx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
	}

	log.Info("stopped")
	return nil
}

// newServer builds the ops HTTP server: probes, metrics, API docs and the
// JSON auction endpoints.
func newServer(
	cfg *config.ServerConfig,
	log *slog.Logger,
	checker handlers.ReadinessChecker,
	searcher handlers.Searcher,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Tracing(otel.GetTracerProvider()))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(checker)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	openapi.RegisterRoutes(e)

	humaCfg := huma.DefaultConfig("DonutSMP Bot API", Version)
	humaCfg.DocsPath = ""
	api := humaecho.New(e, humaCfg)
	handlers.RegisterAuctionRoutes(api, handlers.NewAuctionHandler(searcher))

	return e
}
