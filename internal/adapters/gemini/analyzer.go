package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Analyzer is a PolarityAnalyzer backed by Google Gemini.
type Analyzer struct {
	client      *genai.Client
	model       *genai.GenerativeModel
	modelName   string
	maxBodySize int
	logger      *zap.Logger
}

type polarityResponse struct {
	Polarity   float64 `json:"polarity"`
	Confidence float64 `json:"confidence"`
}

const promptFormat = `You are a sentiment rating system. Rate the overall sentiment of the following text.
Respond with a JSON object containing:
- polarity: number between -1 and 1 (-1 strongly negative, 0 neutral, 1 strongly positive)
- confidence: number between 0 and 1 (how confident you are in the rating)

Text:
%s

Respond only with the JSON object and nothing else.`

// NewAnalyzer creates a new Gemini-backed analyzer
func NewAnalyzer(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	maxBodySize int,
	logger *zap.Logger,
) (*Analyzer, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &Analyzer{
		client:      client,
		model:       model,
		modelName:   modelName,
		maxBodySize: maxBodySize,
		logger:      logger,
	}, nil
}

// Close closes the underlying client
func (a *Analyzer) Close() error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

func (a *Analyzer) truncate(text string) string {
	if a.maxBodySize <= 0 || len(text) <= a.maxBodySize {
		return text
	}

	a.logger.Debug("Text truncated for rating",
		zap.Int("original_size", len(text)),
		zap.Int("max_size", a.maxBodySize))

	return text[:a.maxBodySize]
}

// Polarity rates the text's sentiment in [-1,1].
func (a *Analyzer) Polarity(ctx context.Context, text string) (float64, error) {
	prompt := fmt.Sprintf(promptFormat, a.truncate(text))

	resp, err := a.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return 0, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return 0, fmt.Errorf("empty response from Gemini")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])

	rating, err := parsePolarityJSON(responseText)
	if err != nil {
		return 0, err
	}

	if rating.Polarity < -1 {
		return -1, nil
	}
	if rating.Polarity > 1 {
		return 1, nil
	}
	return rating.Polarity, nil
}

func parsePolarityJSON(text string) (polarityResponse, error) {
	var rating polarityResponse
	if err := json.Unmarshal([]byte(text), &rating); err == nil {
		return rating, nil
	}

	start, end := -1, -1
	for i := 0; i < len(text); i++ {
		if text[i] == '{' {
			start = i
			break
		}
	}
	for i := len(text) - 1; i >= 0; i-- {
		if text[i] == '}' {
			end = i + 1
			break
		}
	}
	if start < 0 || end <= start {
		return polarityResponse{}, fmt.Errorf("no JSON object in model response")
	}

	if err := json.Unmarshal([]byte(text[start:end]), &rating); err != nil {
		return polarityResponse{}, fmt.Errorf("failed to parse model response as JSON: %w", err)
	}
	return rating, nil
}
