// Package llm_client calls the OpenAI chat completions API to classify
// content for phishing risk.
package llm_client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"aishield/internal/models"
)

// ErrUpstream indicates the classifier call failed outright: transport
// error, non-200 status, or a response without a usable completion choice.
var ErrUpstream = errors.New("classifier request failed")

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-4o-mini"

	// Low temperature keeps verdicts near-deterministic for equal input.
	temperature = 0.1
)

// Client is a client for the OpenAI chat completions API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    float64        `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// rawVerdict is the JSON shape the classifier is instructed to produce.
type rawVerdict struct {
	Score           float64 `json:"score"`
	RiskLevel       string  `json:"riskLevel"`
	Explanation     string  `json:"explanation"`
	ConfidenceLevel string  `json:"confidenceLevel"`
}

// NewClient creates a new classifier client. Empty baseURL and model fall
// back to the OpenAI defaults.
func NewClient(baseURL, apiKey, model string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// Classify sends one synchronous classification request with the composed
// instructions as the system directive and the normalized content as the
// user message. A response with no usable choice fails with ErrUpstream;
// a choice whose content does not parse as a verdict degrades to a
// conservative medium-risk, low-confidence fallback instead of an error.
func (c *Client) Classify(ctx context.Context, instructions, content string) (models.Verdict, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: instructions},
			{Role: "user", Content: content},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		Temperature:    temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return models.Verdict{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return models.Verdict{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Verdict{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.Verdict{}, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, string(body))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.Verdict{}, fmt.Errorf("%w: failed to decode response: %v", ErrUpstream, err)
	}

	if len(result.Choices) == 0 {
		return models.Verdict{}, fmt.Errorf("%w: response contained no choices", ErrUpstream)
	}

	return c.parseVerdict(result.Choices[0].Message.Content), nil
}

// parseVerdict validates the completion content. Malformed output is
// bounded here: the caller always gets a verdict, never a parse error.
func (c *Client) parseVerdict(content string) models.Verdict {
	var raw rawVerdict
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		c.logger.Warn("Classifier returned unparseable content, using fallback verdict", zap.Error(err))
		return fallbackVerdict()
	}

	v := models.Verdict{
		Score:       int(raw.Score),
		RiskLevel:   models.RiskLevel(raw.RiskLevel),
		Explanation: raw.Explanation,
		Confidence:  models.ConfidenceLevel(raw.ConfidenceLevel),
	}
	if !v.RiskLevel.Valid() || !v.Confidence.Valid() || v.Explanation == "" {
		c.logger.Warn("Classifier verdict missing required fields, using fallback verdict",
			zap.String("risk_level", raw.RiskLevel),
			zap.String("confidence_level", raw.ConfidenceLevel))
		return fallbackVerdict()
	}

	return v
}

func fallbackVerdict() models.Verdict {
	return models.Verdict{
		Score:       50,
		RiskLevel:   models.RiskMedium,
		Explanation: "Unable to parse analysis result. The content may contain complex patterns that require manual review.",
		Confidence:  models.ConfidenceLow,
	}
}
