// File: internal/services/ai/interface.go
package ai

import "context"

// TitleProvider names a conversation from its first prompt.
type TitleProvider interface {
	GenerateTitle(ctx context.Context, prompt string) (string, error)
}

// Logger is what the providers log through.
type Logger interface {
	Warn(msg string, keysAndValues ...interface{})
}
