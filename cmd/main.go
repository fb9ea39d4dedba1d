package main

import (
	"context"
	"fmt"
	"huddle/internal/app/fanout"
	"huddle/internal/app/registry"
	"huddle/internal/app/server"
	"huddle/internal/app/server/handlers"
	"huddle/internal/app/server/ws"
	"huddle/internal/app/worker"
	"huddle/internal/config"
	"huddle/internal/core/contracts"
	"huddle/internal/core/services"
	"huddle/internal/platform/logger"
	"huddle/internal/platform/telemetry"
	"huddle/internal/plugins/postgres"
	redisPlugin "huddle/internal/plugins/redis"
	"huddle/pkg/logging"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.NewLogger(*cfg)
	if err := cfg.Validate(); err != nil {
		log.Error("main - config - invalid", logging.Err(err))
		os.Exit(1)
	}

	if err := run(ctx, log, cfg); err != nil {
		log.Error("main - run - stopped with error", logging.Err(err))
		os.Exit(1)
	}
	log.Info("main - run - stopped")
}

func run(ctx context.Context, log *slog.Logger, cfg *config.Config) error {
	otelShutdown, err := telemetry.InitTelemetry(ctx, *cfg)
	if err != nil {
		log.Warn("main - telemetry - disabled", logging.Err(err))
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(flushCtx); err != nil {
			log.Warn("main - telemetry - flush failed", logging.Err(err))
		}
	}()

	pdb, err := postgres.Open(ctx, *cfg.Postgres)
	if err != nil {
		return err
	}
	defer pdb.Close()
	log.Info("main - postgres - connected", "auto_migrate", cfg.Postgres.AutoMigrate)

	// Realtime core. Presence stays process local unless Redis is configured.
	hub := registry.NewRegistry()
	rooms := registry.NewRooms(log)
	tracker := registry.NewTracker()

	var store contracts.PresenceStore = registry.NopPresenceStore{Registry: hub}
	shared := cfg.Redis.URL != ""
	if shared {
		rdb, err := redisPlugin.Open(ctx, *cfg.Redis)
		if err != nil {
			return fmt.Errorf("presence store: %w", err)
		}
		defer rdb.Close()
		store = redisPlugin.NewRedisPresenceStore(rdb, cfg.Redis.PresenceTTL)
		log.Info("main - redis - connected", "presence_ttl", cfg.Redis.PresenceTTL)
	}
	presence := registry.NewPresence(log, rooms, store, cfg.Redis.PresenceTTL)
	hub.OnPresenceChange(presence.Announce)
	go func() { _ = presence.Run(ctx) }()
	publisher := fanout.NewFanout(log, rooms, hub)

	groupRepo := postgres.NewGroupRepo(pdb)
	msgRepo := postgres.NewMessageRepo(pdb)
	tokens := services.NewTokenService(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	groups := services.NewGroupService(log, groupRepo, msgRepo, publisher, postgres.NewTxManager(pdb))
	messages := services.NewMessageService(log, groupRepo, msgRepo, publisher)

	// Shared presence entries are refreshed three times per TTL by each
	// socket and swept once per TTL.
	var heartbeat time.Duration
	if shared {
		heartbeat = cfg.Redis.PresenceTTL / 3
		sweeper := worker.NewPresenceSweeper(log, presence, cfg.Redis.PresenceTTL)
		go func() { _ = sweeper.Run(ctx) }()
	}

	deps := ws.Deps{Registry: hub, Tracker: tracker, Rooms: rooms, Presence: presence}
	srv := server.NewServer(log, cfg.Service.Name, cfg.Service.Addr, tokens, cfg.Auth.Required, server.Handlers{
		Groups:   handlers.NewGroupHandler(groups),
		Messages: handlers.NewMessageHandler(messages),
		Presence: handlers.NewPresenceHandler(presence),
		WS:       handlers.NewWSHandler(log, deps, *cfg.Socket, heartbeat),
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
		log.Info("main - signal - shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Service.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
