package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"
)

// Analyzer is a PolarityAnalyzer backed by Amazon Bedrock.
type Analyzer struct {
	client      *bedrockruntime.Client
	modelID     string
	maxTokens   int
	temperature float32
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

// NewAnalyzer creates a Bedrock-backed analyzer in the given region.
func NewAnalyzer(
	region string,
	modelID string,
	maxTokens int,
	temperature float32,
	maxBodySize int,
	logger *zap.Logger,
) (*Analyzer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &Analyzer{
		client:      bedrockruntime.NewFromConfig(awsCfg),
		modelID:     modelID,
		maxTokens:   maxTokens,
		temperature: temperature,
		maxBodySize: maxBodySize,
		logger:      logger,
	}, nil
}

func (a *Analyzer) isAnthropicModel() bool {
	return strings.HasPrefix(a.modelID, "anthropic.")
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

	var payload []byte
	var err error
	if a.isAnthropicModel() {
		payload, err = json.Marshal(map[string]interface{}{
			"prompt":               fmt.Sprintf("\n\nHuman: %s\n\nAssistant:", prompt),
			"max_tokens_to_sample": a.maxTokens,
			"temperature":          a.temperature,
		})
	} else {
		payload, err = json.Marshal(map[string]interface{}{
			"inputText": prompt,
			"textGenerationConfig": map[string]interface{}{
				"maxTokenCount": a.maxTokens,
				"temperature":   a.temperature,
			},
		})
	}
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	out, err := a.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(a.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        payload,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}

	responseText, err := a.extractText(out.Body)
	if err != nil {
		return 0, err
	}

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

// extractText pulls the generated text from the model-specific response
// shape.
func (a *Analyzer) extractText(body []byte) (string, error) {
	if a.isAnthropicModel() {
		var resp struct {
			Completion string `json:"completion"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return "", fmt.Errorf("failed to parse Bedrock response: %w", err)
		}
		return resp.Completion, nil
	}

	var resp struct {
		Results []struct {
			OutputText string `json:"outputText"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse Bedrock response: %w", err)
	}
	if len(resp.Results) == 0 {
		return "", fmt.Errorf("empty response from Bedrock")
	}
	return resp.Results[0].OutputText, nil
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
