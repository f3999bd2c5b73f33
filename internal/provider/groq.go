package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqClient talks to Groq's OpenAI-compatible chat completions endpoint.
type GroqClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewGroqClient creates a client. An empty baseURL selects the Groq default;
// timeout bounds every call including connection setup.
func NewGroqClient(baseURL, apiKey string, timeout time.Duration) *GroqClient {
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &GroqClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
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

// Complete implements Client.
func (g *GroqClient) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("groq: no API key configured")
	}

	payload := chatRequest{
		Model:       opts.Model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		TopP:        opts.TopP,
	}
	for _, m := range messages {
		payload.Messages = append(payload.Messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("groq: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("groq: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("groq: read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("groq: decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("groq: api error: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq: unexpected status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("groq: empty choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
