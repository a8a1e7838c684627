// File: internal/services/chat/config.go
package chat

import (
	"fmt"
	"time"
)

type Config struct {
	// Title generation runs detached from the submit call.
	TitleTimeout     time.Duration
	TitleSettleDelay time.Duration
}

func (c *Config) Validate() error {
	if c.TitleTimeout <= 0 {
		return fmt.Errorf("title timeout must be positive")
	}
	if c.TitleSettleDelay < 0 {
		return fmt.Errorf("title settle delay cannot be negative")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		TitleTimeout:     30 * time.Second,
		TitleSettleDelay: 1500 * time.Millisecond,
	}
}
