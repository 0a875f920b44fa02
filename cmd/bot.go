package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nextlevelbuilder/anonbot/internal/anonymize"
	"github.com/nextlevelbuilder/anonbot/internal/config"
	"github.com/nextlevelbuilder/anonbot/internal/queue"
	"github.com/nextlevelbuilder/anonbot/internal/telegram"
)

// runBot wires the full service together and blocks until SIGINT/SIGTERM.
func runBot() {
	// Setup structured logging
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	cfgPath := resolveConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	transport, err := telegram.NewTransport(cfg.Telegram)
	if err != nil {
		slog.Error("failed to create telegram transport", "error", err)
		os.Exit(1)
	}

	pending := queue.New(cfg.Anonymize.QueueTimeout())
	router := anonymize.NewRouter(transport)
	processor := anonymize.NewProcessor(pending, router, transport, anonymize.Options{
		Prefix:       cfg.Anonymize.Prefix,
		ErrorNotices: cfg.Anonymize.NoticesEnabled(),
		RateLimitRPM: cfg.Anonymize.RateLimitRPM,
	})
	channel := telegram.NewChannel(transport.Bot(), processor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pending.Start(ctx)
	if err := channel.Start(ctx); err != nil {
		slog.Error("failed to start telegram channel", "error", err)
		pending.Stop()
		os.Exit(1)
	}

	// Config hot reload: runtime knobs apply without a restart. Token and
	// proxy changes still need one.
	watcher, err := config.NewWatcher(cfgPath)
	if err != nil {
		slog.Warn("config watcher unavailable", "error", err)
	} else {
		watcher.OnChange(func(next *config.Config) {
			pending.SetTimeout(next.Anonymize.QueueTimeout())
			processor.SetOptions(anonymize.Options{
				Prefix:       next.Anonymize.Prefix,
				ErrorNotices: next.Anonymize.NoticesEnabled(),
				RateLimitRPM: next.Anonymize.RateLimitRPM,
			})
		})
		if err := watcher.Start(); err != nil {
			slog.Warn("config watcher start failed", "error", err)
		} else {
			defer watcher.Stop()
		}
	}

	slog.Info("anonbot running",
		"prefix", cfg.Anonymize.Prefix,
		"queue_timeout", cfg.Anonymize.QueueTimeout(),
		"error_notices", cfg.Anonymize.NoticesEnabled())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("shutting down", "signal", sig.String())

	// Stop order: update loop first so no new work arrives, then the queue
	// sweeper, then outstanding notice timers.
	if err := channel.Stop(context.Background()); err != nil {
		slog.Warn("telegram channel stop failed", "error", err)
	}
	pending.Stop()
	processor.Close()
}
