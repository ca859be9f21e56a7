package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	GroqBaseURL   = "https://api.groq.com/openai/v1"
	OpenAIBaseURL = "https://api.openai.com/v1"
)

// ChatClient talks to any OpenAI-compatible /chat/completions endpoint.
type ChatClient struct {
	name        string
	apiKey      string
	model       string
	base        string
	maxTokens   int
	temperature float32
	http        *http.Client
}

type ChatOption func(*ChatClient)

func WithBaseURL(base string) ChatOption {
	return func(c *ChatClient) { c.base = base }
}

func WithHTTPClient(h *http.Client) ChatOption {
	return func(c *ChatClient) { c.http = h }
}

func WithMaxTokens(n int) ChatOption {
	return func(c *ChatClient) { c.maxTokens = n }
}

func WithTemperature(t float32) ChatOption {
	return func(c *ChatClient) { c.temperature = t }
}

func NewChatClient(name, base, apiKey, model string, timeout time.Duration, opts ...ChatOption) *ChatClient {
	c := &ChatClient{
		name:        name,
		apiKey:      apiKey,
		model:       model,
		base:        base,
		maxTokens:   4000,
		temperature: 0.7,
		http:        &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewGroqClient(apiKey, model string, timeout time.Duration, opts ...ChatOption) *ChatClient {
	return NewChatClient("groq", GroqBaseURL, apiKey, model, timeout, opts...)
}

func NewOpenAIClient(apiKey, model string, timeout time.Duration, opts ...ChatOption) *ChatClient {
	return NewChatClient("openai", OpenAIBaseURL, apiKey, model, timeout, opts...)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (c *ChatClient) Name() string { return c.name + ":" + c.model }

func (c *ChatClient) Generate(ctx context.Context, system, user string) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}
	if system == "" {
		req.Messages = req.Messages[1:]
	}

	b, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	r.Header.Set("Authorization", "Bearer "+c.apiKey)
	r.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(r)
	if err != nil {
		return "", fmt.Errorf("%s request: %w", c.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s response: %w", c.name, err)
	}

	var ch chatResponse
	decodeErr := json.Unmarshal(body, &ch)
	if resp.StatusCode >= 400 {
		if decodeErr == nil && ch.Error != nil {
			return "", fmt.Errorf("%s api error (status %d): %s", c.name, resp.StatusCode, ch.Error.Message)
		}
		return "", fmt.Errorf("%s api error (status %d)", c.name, resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode %s response: %w", c.name, decodeErr)
	}
	if ch.Error != nil {
		return "", fmt.Errorf("%s api error: %s", c.name, ch.Error.Message)
	}
	if len(ch.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices returned", c.name)
	}
	return ch.Choices[0].Message.Content, nil
}
