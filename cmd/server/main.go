package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/invokesim/invoke-server-go/internal/config"
	"github.com/invokesim/invoke-server-go/internal/game"
	"github.com/invokesim/invoke-server-go/internal/repository"
	"github.com/invokesim/invoke-server-go/internal/server"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting invoke server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Persistence is optional: without a database the server still hosts
	// matches, it just keeps no durable results.
	var matchRepo *repository.MatchRepository
	if cfg.Database.Enabled {
		db, dbErr := repository.NewDB(ctx, cfg.Database, logger)
		if dbErr != nil {
			logger.Fatal("failed to connect to database", zap.Error(dbErr))
		}
		defer db.Close()

		stats := db.Stats()
		logger.Info("database connection pool initialized",
			zap.Int32("total_conns", stats.TotalConns()),
			zap.Int32("idle_conns", stats.IdleConns()),
		)

		matchRepo = repository.NewMatchRepository(db)
		if migErr := matchRepo.Migrate(ctx); migErr != nil {
			logger.Fatal("failed to migrate database", zap.Error(migErr))
		}
	}

	var recorder *game.ReplayRecorder
	if cfg.Replay.Enabled {
		recorder = game.NewReplayRecorder(logger, cfg.Replay.Directory)
		logger.Info("replay recording enabled", zap.String("directory", cfg.Replay.Directory))
	}

	engine := game.NewInvokeEngine(logger, recorder)
	if matchRepo != nil {
		engine.SetMatchEndHook(func(o game.MatchOutcome) {
			res := repository.MatchResult{
				MatchID:    o.MatchID,
				Seed:       o.Seed,
				Winner:     int(o.Winner),
				Rounds:     o.Rounds,
				Steps:      o.Steps,
				FinishedAt: o.FinishedAt,
			}
			if saveErr := matchRepo.SaveResult(ctx, res); saveErr != nil {
				logger.Error("failed to persist match result",
					zap.String("match_id", o.MatchID),
					zap.Error(saveErr),
				)
			}
		})
	}
	srv := server.New(cfg.Server, engine, logger)

	go func() {
		if serveErr := srv.Start(); serveErr != nil {
			logger.Error("server error", zap.Error(serveErr))
		}
	}()

	logger.Info("invoke server initialized",
		zap.String("version", version),
		zap.String("address", cfg.Server.Address),
	)

	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	logger.Info("shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("invoke server stopped")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
