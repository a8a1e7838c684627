// File: internal/services/ai/fallback_provider.go
package ai

import (
	"context"
	"strings"
)

// PromptProvider derives a title from the prompt text itself.
type PromptProvider struct {
	MaxLength int
}

func (p *PromptProvider) GenerateTitle(ctx context.Context, prompt string) (string, error) {
	title := CleanTitle(prompt, p.MaxLength)
	if title == "" {
		return "", &AIError{Type: ErrTypeProvider, Operation: "title", Message: "empty prompt"}
	}
	if r := []rune(title); len(r) > 0 {
		title = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return title, nil
}

// FallbackProvider asks Primary first and falls back to Secondary.
type FallbackProvider struct {
	Primary   TitleProvider
	Secondary TitleProvider
	Logger    Logger
}

func (p *FallbackProvider) GenerateTitle(ctx context.Context, prompt string) (string, error) {
	if p.Primary != nil {
		title, err := p.Primary.GenerateTitle(ctx, prompt)
		if err == nil {
			return title, nil
		}
		if p.Logger != nil {
			p.Logger.Warn("title provider failed, using fallback", "error", err)
		}
	}
	return p.Secondary.GenerateTitle(ctx, prompt)
}

// NewTitleProvider uses OpenAI when a key is configured and the prompt
// text otherwise.
func NewTitleProvider(config *Config, logger Logger) TitleProvider {
	fallback := &PromptProvider{MaxLength: config.MaxTitleLength}
	if config.APIKey == "" {
		return fallback
	}
	primary, err := NewOpenAIProvider(config)
	if err != nil {
		if logger != nil {
			logger.Warn("OpenAI title provider disabled", "error", err)
		}
		return fallback
	}
	return &FallbackProvider{Primary: primary, Secondary: fallback, Logger: logger}
}
