package factory

import (
	"fmt"

	"github.com/CaraTortu/SentimentAnalyser/internal/adapters/bedrock"
	"github.com/CaraTortu/SentimentAnalyser/internal/adapters/gemini"
	"github.com/CaraTortu/SentimentAnalyser/internal/adapters/openai"
	"github.com/CaraTortu/SentimentAnalyser/internal/adapters/vader"
	"github.com/CaraTortu/SentimentAnalyser/internal/config"
	"github.com/CaraTortu/SentimentAnalyser/internal/core"
	"go.uber.org/zap"
)

// LabelerFactory creates polarity analyzers
type LabelerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLabelerFactory creates a new labeler factory
func NewLabelerFactory(cfg *config.Config, logger *zap.Logger) *LabelerFactory {
	return &LabelerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateAnalyzer creates a polarity analyzer based on the configuration
func (f *LabelerFactory) CreateAnalyzer() (core.PolarityAnalyzer, error) {
	labelerCfg := f.cfg.GetLabeler()

	switch labelerCfg.Provider {
	case "vader":
		return vader.NewAnalyzer(), nil
	case "openai":
		openaiCfg := f.cfg.GetOpenAI()
		if openaiCfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key is required")
		}
		return openai.NewAnalyzer(
			openaiCfg.APIKey,
			openaiCfg.ModelName,
			openaiCfg.MaxTokens,
			openaiCfg.Temperature,
			openaiCfg.MaxBodySize,
			f.logger,
		), nil
	case "gemini":
		geminiCfg := f.cfg.GetGemini()
		if geminiCfg.APIKey == "" {
			return nil, fmt.Errorf("gemini API key is required")
		}
		return gemini.NewAnalyzer(
			geminiCfg.APIKey,
			geminiCfg.ModelName,
			geminiCfg.MaxTokens,
			geminiCfg.Temperature,
			geminiCfg.MaxBodySize,
			f.logger,
		)
	case "bedrock":
		bedrockCfg := f.cfg.GetBedrock()
		return bedrock.NewAnalyzer(
			bedrockCfg.Region,
			bedrockCfg.ModelID,
			bedrockCfg.MaxTokens,
			bedrockCfg.Temperature,
			bedrockCfg.MaxBodySize,
			f.logger,
		)
	default:
		return nil, fmt.Errorf("unsupported labeler provider: %s", labelerCfg.Provider)
	}
}
