package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alexander-topilskii/Whisper-of-Horror/internal/config"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/content"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/rules"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/state"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/game/watchers"
	"github.com/alexander-topilskii/Whisper-of-Horror/internal/tui"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
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

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting Whisper of Horror",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.String("scenario", cfg.Game.ScenarioPath),
		zap.Int64("seed", seed),
	)

	rnd := state.NewRandom(seed)
	var ids state.IDGenerator = state.UUIDIDs{}
	if cfg.Game.IDs == "sequence" {
		ids = &state.SequenceIDs{}
	}

	initial, err := content.LoadState(cfg.Game.ScenarioPath, rnd, ids)
	if err != nil {
		logger.Error("failed to load scenario", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to load scenario: %v\n", err)
		os.Exit(1)
	}

	engine := game.NewGameEngine(initial,
		game.WithLogger(logger),
		game.WithRandom(rnd),
		game.WithIDGenerator(ids),
	)

	registry := rules.NewWatcherRegistry()
	stats := watchers.NewSessionStatsWatcher()
	registry.AddWatcher(stats)
	played := watchers.NewCardsPlayedThisTurnWatcher()
	registry.AddWatcher(played)
	registry.Attach(engine.Events())

	if err := tui.Run(engine, tui.Options{
		LogLines:    cfg.UI.LogLines,
		ShowSummary: cfg.UI.ShowSummary,
		Played:      played,
	}); err != nil {
		logger.Error("terminal client failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	summary := stats.Stats()
	logger.Info("session ended",
		zap.String("session_id", engine.SessionID()),
		zap.Int("turns", summary.TurnsStarted),
		zap.Int("events", summary.EventsOpened),
		zap.Int("cards_played", summary.CardsPlayed),
		zap.Int("cards_succeeded", summary.CardsSucceeded),
		zap.String("outcome", string(summary.Outcome)),
	)
}

// initLogger builds the zap logger. The terminal client owns stdout, so
// output goes to the configured file or nowhere.
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}

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
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{cfg.File}
	zapCfg.ErrorOutputPaths = []string{cfg.File}

	return zapCfg.Build()
}
