package logging

import (
	"fmt"

	"github.com/CaraTortu/SentimentAnalyser/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func build(logConfig zap.Config, level zapcore.Level) (*zap.Logger, error) {
	logConfig.Level = zap.NewAtomicLevelAt(level)

	logger, err := logConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// InitLogger initializes the service logger from configuration. Output
// goes to stderr, or to logging.file when set.
func InitLogger(cfg *config.Config) (*zap.Logger, error) {
	var logConfig zap.Config
	if cfg.GetString("logging.format") == "json" {
		logConfig = zap.NewProductionConfig()
	} else {
		logConfig = zap.NewDevelopmentConfig()
		logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logConfig.OutputPaths = []string{"stderr"}
	if path := cfg.GetString("logging.file"); path != "" {
		logConfig.OutputPaths = []string{path}
	}

	return build(logConfig, parseLevel(cfg.GetString("logging.level")))
}

// InitConsoleLogger initializes a console-friendly logger for the CLIs.
// Logs go to stderr so reports and scores on stdout stay parseable.
func InitConsoleLogger(verbose bool, jsonFormat bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	var logConfig zap.Config
	if jsonFormat {
		logConfig = zap.NewProductionConfig()
	} else {
		logConfig = zap.NewDevelopmentConfig()
		logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	logConfig.OutputPaths = []string{"stderr"}
	logConfig.DisableStacktrace = true

	return build(logConfig, level)
}
