package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/bingohall/internal/bingo"
	"github.com/playperu/bingohall/internal/config"
	"github.com/playperu/bingohall/internal/database"
	"github.com/playperu/bingohall/internal/events"
	"github.com/playperu/bingohall/internal/handler/health"
	"github.com/playperu/bingohall/internal/handler/live"
	"github.com/playperu/bingohall/internal/migrations"
	"github.com/playperu/bingohall/internal/server"
	"github.com/playperu/bingohall/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	checks := map[string]health.Checker{"sqlite": health.DB{DB: db}}

	// --- Events ---
	broker := events.NewBroker()
	notifiers := events.Fanout{broker}

	var mirror *events.Redis
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis")

		mirror = events.NewRedis(rdb, logger)
		notifiers = append(notifiers, mirror)
		checks["redis"] = health.Redis{Client: rdb}
	}

	// --- Hall ---
	hall := bingo.NewHall(store.NewSQLite(db),
		bingo.WithNotifier(notifiers),
		bingo.WithLogger(logger),
	)

	if cfg.SeedDemo {
		if err := server.SeedDemo(ctx, logger, hall); err != nil {
			return fmt.Errorf("seeding demo game: %w", err)
		}
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Options{
		Hall:           hall,
		Broker:         broker,
		AdminTokenHash: cfg.AdminTokenHash,
		CookieSecure:   cfg.CookieSecure,
	}, func(r chi.Router) {
		r.Mount("/healthz", health.NewHandler(logger, checks).Routes())
		r.Mount("/ws", live.NewHandler(logger, hall, broker).Routes())
	})

	if cfg.AdminTokenHash == "" {
		logger.Warn("ADMIN_TOKEN_HASH is empty, admin routes are open")
	}

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	g.Go(func() error {
		if cfg.DrawInterval > 0 {
			logger.Info("auto caller enabled", "interval", cfg.DrawInterval)
		}
		return bingo.NewCaller(hall, cfg.DrawInterval, logger).Run(gctx)
	})

	if mirror != nil {
		g.Go(func() error { return mirror.Run(gctx) })
	}

	return g.Wait()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}
