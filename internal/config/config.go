// File: internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config is the client configuration.
type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	APIURL   string `env:"ALLE_API_URL" envDefault:"http://localhost:8080"`
	APIToken string `env:"ALLE_API_TOKEN"`
	// Plan is the raw plan string, e.g. "free" or "custom_chat_image".
	Plan    string `env:"ALLE_PLAN" envDefault:"free"`
	StateDB string `env:"ALLE_STATE_DB" envDefault:"alle-state.db"`

	RequestTimeout   time.Duration `env:"ALLE_REQUEST_TIMEOUT" envDefault:"60s"`
	TitleTimeout     time.Duration `env:"ALLE_TITLE_TIMEOUT" envDefault:"30s"`
	TitleSettleDelay time.Duration `env:"ALLE_TITLE_SETTLE_DELAY" envDefault:"1500ms"`
	MaxRetries       int           `env:"ALLE_MAX_RETRIES" envDefault:"3"`
}

// DevServerConfig configures the local platform API.
type DevServerConfig struct {
	Environment string `env:"ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	Port         string `env:"DEVSERVER_PORT" envDefault:"8080"`
	JWTSecretKey string `env:"JWT_SECRET_KEY"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	TitleModel    string `env:"TITLE_MODEL" envDefault:"gpt-4o-mini"`

	PromptLimit    int           `env:"DEVSERVER_PROMPT_LIMIT" envDefault:"20"`
	PromptWindow   time.Duration `env:"DEVSERVER_PROMPT_WINDOW" envDefault:"1h"`
	DisableCombine bool          `env:"DEVSERVER_DISABLE_COMBINE"`
	DisableCompare bool          `env:"DEVSERVER_DISABLE_COMPARE"`
}

func (c *Config) IsProduction() bool { return isProduction(c.Environment) }

func (c *DevServerConfig) IsProduction() bool { return isProduction(c.Environment) }

// Load reads the client configuration from the environment, after loading
// .env outside production.
func Load() (*Config, error) {
	loadDotEnv()
	return parse(env.Options{})
}

// LoadDevServer reads the dev server configuration.
func LoadDevServer() (*DevServerConfig, error) {
	loadDotEnv()
	return parseDevServer(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if cfg.RequestTimeout <= 0 || cfg.TitleTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be positive")
	}
	if cfg.MaxRetries < 1 {
		return nil, fmt.Errorf("ALLE_MAX_RETRIES must be at least 1")
	}

	// Validation for production environments
	if cfg.IsProduction() {
		missing := []string{}
		if cfg.APIToken == "" {
			missing = append(missing, "ALLE_API_TOKEN")
		}
		if !strings.HasPrefix(cfg.APIURL, "https://") {
			missing = append(missing, "ALLE_API_URL (https)")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("missing required production environment variables: %v", missing)
		}
	}
	return cfg, nil
}

func parseDevServer(opts env.Options) (*DevServerConfig, error) {
	cfg := &DevServerConfig{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if cfg.PromptLimit < 1 || cfg.PromptWindow <= 0 {
		return nil, fmt.Errorf("prompt limit and window must be positive")
	}

	if cfg.IsProduction() {
		missing := []string{}
		if cfg.JWTSecretKey == "" {
			missing = append(missing, "JWT_SECRET_KEY")
		}
		if cfg.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("missing required production environment variables: %v", missing)
		}
	}
	return cfg, nil
}

func loadDotEnv() {
	if !isProduction(os.Getenv("ENV")) {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}
}

func isProduction(env string) bool {
	return strings.ToLower(env) == "production"
}
