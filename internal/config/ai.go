package config

import "time"

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "gpt-4o-mini"
	defaultTemperature = 0.2
	defaultTimeoutMS   = 15000
)

// AIConfig holds the LLM endpoint configuration used for report generation
type AIConfig struct {
	APIKey      string  `json:"-"` // Never serialize
	BaseURL     string  `json:"baseUrl"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	TimeoutMS   int     `json:"timeoutMs"`
}

// DefaultAIConfig returns the AI configuration with defaults and no credential
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		BaseURL:     defaultBaseURL,
		Model:       defaultModel,
		Temperature: defaultTemperature,
		TimeoutMS:   defaultTimeoutMS,
	}
}

// IsEnabled returns true if the AI API credential is configured
func (c *AIConfig) IsEnabled() bool {
	return c != nil && c.APIKey != ""
}

// Timeout returns the per-attempt timeout
func (c *AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// ChatCompletionsURL returns the full chat completions endpoint
func (c *AIConfig) ChatCompletionsURL() string {
	return c.BaseURL + "/chat/completions"
}
