package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CaraTortu/SentimentAnalyser/internal/adapters/triallog"
	"github.com/CaraTortu/SentimentAnalyser/internal/config"
	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"go.uber.org/zap"
)

// TrialLogFactory creates trial stores based on configuration
type TrialLogFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewTrialLogFactory creates a new trial log factory
func NewTrialLogFactory(cfg *config.Config, logger *zap.Logger) *TrialLogFactory {
	return &TrialLogFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateTrialStore creates a trial store based on the configuration
func (f *TrialLogFactory) CreateTrialStore() (core.TrialStore, error) {
	searchCfg := f.cfg.GetSearch()

	switch searchCfg.Store {
	case "memory":
		return triallog.NewMemoryStore(), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(searchCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return triallog.NewSQLiteStore(searchCfg.SQLitePath, f.logger)
	case "mysql":
		return triallog.NewMySQLStore(searchCfg.MySQLDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported trial store: %s", searchCfg.Store)
	}
}
