package main

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

	"github.com/mama165/sdk-go/logs"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/nikhilbhutani/silentcoach/internal/api"
	"github.com/nikhilbhutani/silentcoach/internal/coach"
	"github.com/nikhilbhutani/silentcoach/internal/config"
	"github.com/nikhilbhutani/silentcoach/internal/dispatch"
	"github.com/nikhilbhutani/silentcoach/internal/hint"
	"github.com/nikhilbhutani/silentcoach/internal/llm"
	"github.com/nikhilbhutani/silentcoach/internal/restart"
	"github.com/nikhilbhutani/silentcoach/internal/room"
)

const restartDelay = 500 * time.Millisecond

func main() {
	restartRequested, err := run()
	if err != nil {
		slog.Error("agent stopped", "error", err)
		os.Exit(1)
	}
	if restartRequested {
		slog.Info("restarting agent")
		if err := restart.Exec(); err != nil {
			slog.Error("restart failed", "error", err)
			os.Exit(1)
		}
	}
}

func run() (bool, error) {
	// 1. Configuration & Logger
	cfg, err := config.Load()
	if err != nil {
		return false, err
	}
	log := logs.GetLoggerFromString(cfg.LogLevel)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		return false, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 2. Hint pipeline
	gateway := llm.NewGateway(cfg.LLM)
	log.Info("llm providers configured", "providers", gateway.Providers(), "default", cfg.LLM.DefaultProvider, "model", cfg.LLM.ModelFor(cfg.LLM.DefaultProvider))
	generator := hint.NewGenerator(log, gateway, cfg.LLM)
	dispatcher := dispatch.NewDispatcher(log)

	// 3. Optional Redis relay
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, relay will retry on each hint", "error", err)
		}
		dispatcher.AddRelay(dispatch.NewRedisRelay(rdb, cfg.Redis.Channel))
	}

	// 4. Room + orchestration
	pattern, err := cfg.Coach.PartnerRegexp()
	if err != nil {
		return false, fmt.Errorf("partner pattern: %w", err)
	}
	provider := room.NewLiveKit(log, cfg.Room)
	if cfg.Room.HintChannel {
		dispatcher.AddRelay(room.NewHintChannel(provider))
	}
	session := coach.NewSession(pattern, cfg.Coach.MaxHistory, cfg.Coach.SilenceThreshold)
	orchestrator := coach.NewOrchestrator(log, session, generator, dispatcher, provider, cfg.Coach)

	// 5. HTTP surface
	trigger := restart.NewTrigger(log, restartDelay, cancel)
	router := api.NewRouter(api.Deps{
		Log:       log,
		Config:    cfg,
		Coach:     orchestrator,
		Hub:       dispatcher,
		Room:      provider,
		Redis:     rdb,
		Restarter: trigger,
	})
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting HTTP server", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := provider.Connect(gctx, orchestrator); err != nil {
			return err
		}
		<-gctx.Done()
		provider.Close()
		return nil
	})

	g.Go(func() error {
		return orchestrator.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server forced shutdown", "error", err)
		}
		orchestrator.Wait()
		return nil
	})

	if err := g.Wait(); err != nil {
		return false, err
	}
	log.Info("agent stopped")
	return trigger.Requested(), nil
}
