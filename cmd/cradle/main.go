package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/outsidenote/Cradle-card-game/internal/config"
	"github.com/outsidenote/Cradle-card-game/internal/game"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	seedFlag   = flag.Uint64("seed", 0, "shuffle seed; overrides game.seed when non-zero")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.Game.Seed = *seedFlag
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting cradle",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	session, err := newSession(os.Stdin, os.Stdout, game.EngineConfig{
		Seed:        cfg.Game.Seed,
		PlayerNames: cfg.Game.Names(),
		ReplayLimit: cfg.Game.ReplayLimit,
	}, logger)
	if err != nil {
		logger.Fatal("failed to start game", zap.Error(err))
	}

	if err := session.Run(); err != nil {
		logger.Error("session ended with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("session finished", zap.String("game_id", session.engine.GameID()))
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
