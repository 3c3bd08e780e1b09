// ABOUTME: Chat-completions client used for the analysis narrative and the chat proxy
// ABOUTME: Asks the model for a JSON narrative in Dutch and validates the reply shape

package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"kvk-insights-api/core/interfaces"
	"kvk-insights-api/infrastructure/sources/internal/upstream"
	"kvk-insights-api/pkg/config"
)

const (
	apiName        = "llm"
	defaultModel   = "gpt-4o-mini"
	defaultBaseURL = "https://api.openai.com/v1"
)

// ErrEmptyReply is returned when the model answers without usable content
var ErrEmptyReply = errors.New("llm: empty reply")

type chatRequest struct {
	Model          string                   `json:"model"`
	Messages       []interfaces.ChatMessage `json:"messages"`
	Temperature    float64                  `json:"temperature,omitempty"`
	MaxTokens      int                      `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat          `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Client is a thin wrapper around an OpenAI-compatible chat API
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	http        interfaces.HTTPClient
}

// Option configures a Client
type Option func(*Client)

// WithModel overrides the model name
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTemperature sets the sampling temperature
func WithTemperature(t float64) Option {
	return func(c *Client) { c.temperature = t }
}

// WithMaxTokens bounds the reply length
func WithMaxTokens(n int) Option {
	return func(c *Client) { c.maxTokens = n }
}

// NewClient constructs a client. An empty base URL uses the public endpoint.
func NewClient(cfg config.SourceConfig, httpClient interfaces.HTTPClient, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       defaultModel,
		temperature: 0.3,
		maxTokens:   900,
		http:        httpClient,
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete sends a conversation and returns the assistant's reply
func (c *Client) Complete(ctx context.Context, messages []interfaces.ChatMessage) (string, error) {
	return c.complete(ctx, chatRequest{Messages: messages})
}

// Generate writes the analysis narrative for a profile
func (c *Client) Generate(ctx context.Context, input interfaces.NarrativeInput) (*interfaces.Narrative, error) {
	prompt, err := buildPrompt(input)
	if err != nil {
		return nil, err
	}

	content, err := c.complete(ctx, chatRequest{
		Messages: []interfaces.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	return parseNarrative(content)
}

func (c *Client) complete(ctx context.Context, req chatRequest) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("llm: missing API key")
	}
	req.Model = c.model
	req.Temperature = c.temperature
	req.MaxTokens = c.maxTokens

	var resp chatResponse
	header := map[string]string{"Authorization": "Bearer " + c.apiKey}
	if err := upstream.PostJSON(ctx, c.http, apiName, c.baseURL+"/chat/completions", header, req, &resp); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyReply
	}
	return content, nil
}

// parseNarrative accepts the JSON object, optionally wrapped in a code fence
func parseNarrative(content string) (*interfaces.Narrative, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var n interfaces.Narrative
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &n); err != nil {
		return nil, fmt.Errorf("llm: narrative is not valid JSON: %w", err)
	}
	if strings.TrimSpace(n.Summary) == "" {
		return nil, ErrEmptyReply
	}
	return &n, nil
}
