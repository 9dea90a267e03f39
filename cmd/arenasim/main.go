package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/elemental/internal/arena"
	"github.com/udisondev/elemental/internal/config"
	"github.com/udisondev/elemental/internal/db"
	"github.com/udisondev/elemental/internal/game/engine"
	"github.com/udisondev/elemental/internal/logger"
	"github.com/udisondev/elemental/internal/trace"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	env, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}
	provider, err := config.NewProvider(env)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := provider.Current()

	_, logCloser := logger.Setup(cfg.Logging)
	defer logCloser.Close()

	slog.Info("elemental arena starting", "config", provider.Path(), "log_level", cfg.Logging.Level)

	shutdownOtel, err := trace.SetupOtel(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		if err := shutdownOtel(sctx); err != nil {
			slog.Warn("flushing traces", "err", err)
		}
	}()

	var sinks []trace.Sink
	if cfg.Tracing.LogHits {
		sinks = append(sinks, trace.NewSlogSink(nil, slog.LevelDebug))
	}
	if cfg.Tracing.Endpoint != "" {
		sinks = append(sinks, trace.NewOtelSink(nil))
	}

	world := arena.NewWorld(cfg.Points.PerLevel, arena.Armor{
		PerLevel: cfg.Steam.Defense.EPFPerLevel,
		Cap:      cfg.Steam.Defense.EPFCap,
	})
	eng := engine.New(world, world, provider, engine.WithSink(trace.NewMulti(sinks...)))
	world.SetFilter(eng)
	for _, p := range arena.DefaultPools() {
		world.AddPool(p)
	}

	spawner := arena.NewSpawner(world, provider, eng)
	brawl := arena.NewBrawl(world, spawner, arena.DefaultRoster(), arena.DefaultBrawlConfig())

	runner := engine.NewRunner(eng, cfg.TicksPerSecond)
	runner.OnTick(brawl.Step)

	var autosaver *arena.Autosaver
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		if err := db.RunMigrations(ctx, database); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		every := int(math.Round(cfg.Database.AutosaveSeconds * float64(cfg.TicksPerSecond)))
		autosaver = arena.NewAutosaver(world, db.NewStatusRepository(database.Pool()), every)
		if _, err := autosaver.Preload(ctx, eng); err != nil {
			return fmt.Errorf("restoring statuses: %w", err)
		}
		runner.OnTick(autosaver.Hook)
	}
	arena.ForgetOnDeath(world, eng, autosaver)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting elemental engine", "tps", cfg.TicksPerSecond, "combatants", world.Count())
		if err := runner.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("elemental engine: %w", err)
		}
		return nil
	})

	if provider.Path() != "" {
		g.Go(func() error {
			if err := config.Watch(gctx, provider); err != nil {
				return fmt.Errorf("config watcher: %w", err)
			}
			return nil
		})
	}

	if autosaver != nil {
		g.Go(func() error {
			slog.Info("starting autosaver", "every_seconds", cfg.Database.AutosaveSeconds)
			if err := autosaver.Run(gctx); err != nil {
				return fmt.Errorf("autosaver: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("elemental arena stopped", "ticks", runner.Ticks(), "rounds", brawl.Rounds())
	return nil
}
