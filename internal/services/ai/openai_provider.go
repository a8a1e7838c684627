// File: internal/services/ai/openai_provider.go
package ai

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const titleInstruction = "Write a short title (at most six words) for a conversation that starts with the user's message. " +
	"Reply with the title only, without quotes or trailing punctuation."

type OpenAIProvider struct {
	config *Config
	client *openai.Client
}

func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}
	llmConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		llmConfig.BaseURL = config.BaseURL
	}
	return &OpenAIProvider{
		config: config,
		client: openai.NewClientWithConfig(llmConfig),
	}, nil
}

func (p *OpenAIProvider) GenerateTitle(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: titleInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: p.config.Temperature,
		MaxTokens:   24,
	})
	if err != nil {
		return "", NewProviderError("title", "failed to create completion", err)
	}

	if len(resp.Choices) == 0 {
		return "", &AIError{Type: ErrTypeProvider, Operation: "title", Model: p.config.Model, Message: "empty completion response"}
	}
	title := CleanTitle(resp.Choices[0].Message.Content, p.config.MaxTitleLength)
	if title == "" {
		return "", &AIError{Type: ErrTypeProvider, Operation: "title", Model: p.config.Model, Message: "empty title"}
	}
	return title, nil
}

// CleanTitle strips quotes, collapses whitespace and cuts the title at a
// word boundary so it fits in max runes.
func CleanTitle(raw string, max int) string {
	title := strings.Join(strings.Fields(raw), " ")
	title = strings.Trim(title, "\"'`“”")
	title = strings.TrimRight(title, ".!?:;")
	title = strings.TrimSpace(title)

	runes := []rune(title)
	if max <= 0 || len(runes) <= max {
		return title
	}
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "…"
}
