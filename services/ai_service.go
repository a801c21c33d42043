package services

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

	"product-chatbot-backend/config"
)

// FallbackSentinel is returned by Complete when the AI service cannot
// be reached. The chatbot service checks for its prefix and substitutes
// a local product summary when one is available.
const FallbackSentinel = "Sorry — I couldn't reach the AI service right now. I can still give you a quick product summary if you want."

const sentinelPrefix = "Sorry — I couldn't reach the AI service"

// IsFallbackSentinel reports whether text is the unreachable-service reply.
func IsFallbackSentinel(text string) bool {
	return strings.HasPrefix(text, sentinelPrefix)
}

// AIService calls a Groq (OpenAI-compatible) chat completions endpoint.
type AIService struct {
	apiKey      string
	apiURL      string
	model       string
	maxTokens   int
	temperature float64
	maxRetries  int
	httpClient  *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		apiKey:      cfg.APIKey,
		apiURL:      cfg.APIURL,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		maxRetries:  cfg.MaxRetries,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt to the AI service and returns its reply.
// It never returns an error: after the configured retries are exhausted
// it returns FallbackSentinel so the caller can degrade gracefully.
func (s *AIService) Complete(ctx context.Context, prompt string) string {
	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		reply, err := s.generate(ctx, prompt)
		if err == nil {
			if reply == "" {
				return "Sorry — the AI returned an empty response."
			}
			return reply
		}
		lastErr = err
		if attempt == s.maxRetries {
			break
		}

		// Linearly increasing backoff between attempts.
		select {
		case <-ctx.Done():
			slog.Warn("ai request canceled", "attempt", attempt, "error", ctx.Err())
			return FallbackSentinel
		case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
		}
	}

	slog.Warn("ai service unreachable", "retries", s.maxRetries, "error", lastErr)
	return FallbackSentinel
}

func (s *AIService) generate(ctx context.Context, prompt string) (string, error) {
	payload := chatCompletionRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error: %s", string(body))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response generated")
	}
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
