package factory

import (
	"context"
	"fmt"

	"github.com/CaraTortu/SentimentAnalyser/internal/adapters/sink"
	"github.com/CaraTortu/SentimentAnalyser/internal/config"
	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"go.uber.org/zap"
)

// SinkFactory creates graph sinks
type SinkFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSinkFactory creates a new sink factory
func NewSinkFactory(cfg *config.Config, logger *zap.Logger) *SinkFactory {
	return &SinkFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateGraphSink creates a graph sink based on the configuration
func (f *SinkFactory) CreateGraphSink(ctx context.Context) (core.GraphSink, error) {
	sinkType := f.cfg.GetString("sink.type")

	switch sinkType {
	case "memory":
		return sink.NewMemorySink(), nil
	case "neo4j":
		neo4jCfg := f.cfg.GetNeo4j()
		if neo4jCfg.URI == "" {
			return nil, fmt.Errorf("neo4j URI is required")
		}
		return sink.NewNeo4jSink(ctx, neo4jCfg.URI, neo4jCfg.Username, neo4jCfg.Password, f.logger)
	default:
		return nil, fmt.Errorf("unsupported sink type: %s", sinkType)
	}
}
