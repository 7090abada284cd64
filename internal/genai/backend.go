package genai

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

// Backend generates a completion for a prompt. Implementations wrap one
// upstream model.
type Backend interface {
	Name() string
	Generate(ctx context.Context, system, user string) (string, error)
}

// ChatConfig configures one chat-completion backend.
type ChatConfig struct {
	Name        string
	BaseURL     string // default https://openrouter.ai/api/v1
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// ChatBackend calls an OpenAI-compatible /chat/completions endpoint.
type ChatBackend struct {
	httpClient  *http.Client
	name        string
	baseURL     string
	apiKey      string
	model       string
	temperature float64
}

// NewChatBackend validates the config and builds a backend.
func NewChatBackend(cfg ChatConfig) (*ChatBackend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("backend %s: API key is required", cfg.Name)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("backend %s: model is required", cfg.Name)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Model
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.4
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChatBackend{
		httpClient:  &http.Client{Timeout: timeout},
		name:        cfg.Name,
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Name identifies the backend in logs and metrics.
func (b *ChatBackend) Name() string { return b.name }

// Generate sends one chat completion request and returns the trimmed reply.
func (b *ChatBackend) Generate(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: b.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: b.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)
	req.Header.Set("HTTP-Referer", "https://www.niet.co.in")
	req.Header.Set("X-Title", "NIET Answer Engine")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var cr chatResponse
	if resp.StatusCode != http.StatusOK {
		if err := json.Unmarshal(raw, &cr); err == nil && cr.Error != nil {
			return "", fmt.Errorf("chat API: %s (type: %s)", cr.Error.Message, cr.Error.Type)
		}
		return "", fmt.Errorf("chat API: status %d: %s", resp.StatusCode, string(raw))
	}
	if err := json.Unmarshal(raw, &cr); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("chat API: empty choices")
	}
	answer := strings.TrimSpace(cr.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("chat API: empty completion")
	}
	return answer, nil
}

var _ Backend = (*ChatBackend)(nil)
