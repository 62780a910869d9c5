package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"wellbeing/internal/config"
)

const maxResponseBytes = 1 << 20

// Completer sends one prompt and returns the raw text content of the answer
type Completer interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}

// ChatClient calls an OpenAI-compatible chat completions endpoint
type ChatClient struct {
	config *config.AIConfig
	client *http.Client
}

// NewChatClient creates a client. Deadlines come from the caller's context,
// so httpClient should not carry its own Timeout. A nil httpClient uses a default one.
func NewChatClient(cfg *config.AIConfig, httpClient *http.Client) *ChatClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &ChatClient{config: cfg, client: httpClient}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Content *string `json:"content"`
}

// Complete performs a single call
func (c *ChatClient) Complete(ctx context.Context, p Prompt) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: p.System},
			{Role: "user", Content: p.User},
		},
		Temperature:    c.config.Temperature,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("report: encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.ChatCompletionsURL(), bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &TransportError{Err: err}
	}

	switch {
	case resp.StatusCode >= 500, resp.StatusCode == http.StatusRequestTimeout, resp.StatusCode == http.StatusTooManyRequests:
		return "", &TransportError{StatusCode: resp.StatusCode}
	case resp.StatusCode >= 400:
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: snippet(payload)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: snippet(payload)}
	}

	var envelope chatResponse
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return "", &MalformedResponseError{Reason: "envelope is not valid JSON", Err: err}
	}
	if len(envelope.Choices) > 0 && envelope.Choices[0].Message.Content != nil {
		return *envelope.Choices[0].Message.Content, nil
	}
	if envelope.Content != nil {
		return *envelope.Content, nil
	}
	return "", &MalformedResponseError{Reason: "envelope has no content"}
}

func snippet(b []byte) string {
	const max = 256
	if len(b) > max {
		return string(b[:max])
	}
	return string(b)
}
