package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Analyzer is a PolarityAnalyzer backed by an OpenAI chat model. It asks
// for a compound polarity rating and parses the structured reply.
type Analyzer struct {
	client      *openai.Client
	modelName   string
	maxTokens   int
	temperature float32
	maxBodySize int
	logger      *zap.Logger
}

// polarityResponse is the structured reply expected from the model.
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

// NewAnalyzer creates a new OpenAI-backed analyzer
func NewAnalyzer(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	maxBodySize int,
	logger *zap.Logger,
) *Analyzer {
	return &Analyzer{
		client:      openai.NewClient(apiKey),
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		maxBodySize: maxBodySize,
		logger:      logger,
	}
}

// truncate limits the text sent to the model.
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

	req := openai.ChatCompletionRequest{
		Model: a.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a sentiment rating system. Respond only with JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	}
	req.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: "json"}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("empty response from OpenAI")
	}

	rating, err := parsePolarityJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return 0, err
	}
	return clamp(rating.Polarity), nil
}

// parsePolarityJSON decodes the reply, tolerating text around the JSON
// object.
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

func clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
