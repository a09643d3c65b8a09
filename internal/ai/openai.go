package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"

	// DefaultOpenAIModel is used when no model name is configured.
	DefaultOpenAIModel = "gpt-4o-mini"
)

// OpenAIProvider implements LLMProvider over the chat completions REST API.
type OpenAIProvider struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// OpenAIOption customises an OpenAIProvider.
type OpenAIOption func(*OpenAIProvider)

// WithEndpoint points the provider at a compatible chat completions URL.
func WithEndpoint(url string) OpenAIOption {
	return func(p *OpenAIProvider) { p.endpoint = url }
}

// WithHTTPClient replaces the default client, which has a 60s timeout.
func WithHTTPClient(c *http.Client) OpenAIOption {
	return func(p *OpenAIProvider) { p.httpClient = c }
}

// NewOpenAIProvider returns a provider for modelName. Context cancellation is
// honoured per request via NewRequestWithContext.
func NewOpenAIProvider(apiKey, modelName string, opts ...OpenAIOption) (*OpenAIProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai: missing api key")
	}
	if modelName == "" {
		modelName = DefaultOpenAIModel
	}
	p := &OpenAIProvider{
		apiKey:     apiKey,
		model:      modelName,
		endpoint:   openAIEndpoint,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateText implements LLMProvider.
func (p *OpenAIProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(chatRequest{
		Model:          p.model,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		Temperature:    0.7,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("openai: read response: %w", err)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", fmt.Errorf("openai: unmarshal response (status %d): %w", resp.StatusCode, err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("openai: api error: %s", cr.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai: unexpected status %d", resp.StatusCode)
	}
	if len(cr.Choices) == 0 || strings.TrimSpace(cr.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}
	return cr.Choices[0].Message.Content, nil
}
