// ABOUTME: This file implements the OpenAI-compatible chat-completions driver
// ABOUTME: Model responses are surfaced as a tagged CompletionResult, never cast blindly
package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alt-project/newsforge/config"
	"github.com/alt-project/newsforge/domain"
)

// ResultKind tags the shape of a model response.
type ResultKind int

const (
	// TextResult means the first choice carried a usable text segment.
	TextResult ResultKind = iota
	// UnexpectedShape means the response decoded but carried no text.
	UnexpectedShape
)

// CompletionResult is the outcome of one model call. Callers must switch on
// Kind; Text is only meaningful for TextResult.
type CompletionResult struct {
	Kind   ResultKind
	Text   string
	Detail string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatPayload struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// LLMClient talks to an OpenAI-compatible chat-completions endpoint.
type LLMClient struct {
	apiKey     string
	baseURL    string
	model      string
	temp       float64
	maxTokens  int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewLLMClient creates a model client from the loaded configuration.
func NewLLMClient(cfg *config.Config, logger *slog.Logger) *LLMClient {
	return &LLMClient{
		apiKey:     cfg.LLM.APIKey,
		baseURL:    strings.TrimRight(cfg.LLM.BaseURL, "/"),
		model:      cfg.LLM.Model,
		temp:       cfg.LLM.Temperature,
		maxTokens:  cfg.LLM.MaxTokens,
		httpClient: &http.Client{Timeout: cfg.LLM.Timeout},
		logger:     logger,
	}
}

// Complete sends one system+user prompt pair and returns the tagged result.
// Transport failures and non-success statuses come back as errors; a decoded
// response with no text segment comes back as UnexpectedShape, not an error,
// so callers decide how to treat it.
func (c *LLMClient) Complete(ctx context.Context, system, user string) (CompletionResult, error) {
	if c.apiKey == "" {
		return CompletionResult{}, domain.ErrMissingAPIKey
	}

	payload := chatPayload{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temp,
		MaxTokens:   c.maxTokens,
		Stream:      false,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("marshaling chat payload: %w", err)
	}

	apiURL := c.baseURL + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return CompletionResult{}, fmt.Errorf("creating chat request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Debug("calling model endpoint", "api_url", apiURL, "model", c.model)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return CompletionResult{}, fmt.Errorf("reading model response: %w", err)
	}

	c.logger.Debug("model endpoint answered",
		"status", resp.StatusCode,
		"latency", time.Since(start),
		"bytes", len(body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return CompletionResult{}, fmt.Errorf("model request failed: status=%d body=%s", resp.StatusCode, truncateForLog(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return CompletionResult{
			Kind:   UnexpectedShape,
			Detail: fmt.Sprintf("response is not valid JSON: %v", err),
		}, nil
	}

	if parsed.Error != nil {
		return CompletionResult{}, fmt.Errorf("model error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}

	if len(parsed.Choices) == 0 {
		return CompletionResult{Kind: UnexpectedShape, Detail: "response has no choices"}, nil
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return CompletionResult{Kind: UnexpectedShape, Detail: "first choice has empty content"}, nil
	}

	return CompletionResult{Kind: TextResult, Text: text}, nil
}

func truncateForLog(body []byte) string {
	const limit = 512
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}
