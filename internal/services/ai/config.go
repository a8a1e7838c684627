// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string

	Timeout time.Duration

	// Titles longer than this are cut at a word boundary.
	MaxTitleLength int
	Temperature    float32
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.Model == "" {
		return fmt.Errorf("title model is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxTitleLength < 10 {
		return fmt.Errorf("max title length must be at least 10")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Model:          "gpt-4o-mini",
		Timeout:        20 * time.Second,
		MaxTitleLength: 60,
		Temperature:    0.3,
	}
}
