// File: cmd/devserver/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/auth"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/config"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/handlers"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/ratelimit"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/services"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/services/ai"
)

func main() {
	var (
		devUser  string
		devPlan  string
		tokenTTL time.Duration
	)

	cmd := &cobra.Command{
		Use:           "alle-devserver",
		Short:         "Local implementation of the Alle platform API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(devUser, devPlan, tokenTTL)
		},
	}
	cmd.Flags().StringVar(&devUser, "dev-user", "dev", "user the printed development token is issued to")
	cmd.Flags().StringVar(&devPlan, "dev-plan", "free", "plan claim of the development token, e.g. plus or custom_chat_image")
	cmd.Flags().DurationVar(&tokenTTL, "token-ttl", 24*time.Hour, "validity of the development token")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "alle-devserver:", err)
		os.Exit(1)
	}
}

func run(devUser, devPlan string, tokenTTL time.Duration) error {
	cfg, err := config.LoadDevServer()
	if err != nil {
		return err
	}
	logger := services.NewProductionLogger("alle-devserver", os.Stderr, services.ParseLevel(cfg.LogLevel), cfg.IsProduction())

	secret := []byte(cfg.JWTSecretKey)
	if len(secret) == 0 {
		secret = []byte(uuid.NewString())
		logger.Warn("JWT_SECRET_KEY not set, using a random secret for this run")
	}

	clk := clock.New()
	backend := handlers.NewBackend(nil, clk)

	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.OpenAIAPIKey
	aiConfig.BaseURL = cfg.OpenAIBaseURL
	aiConfig.Model = cfg.TitleModel
	titles := ai.NewTitleProvider(aiConfig, logger)

	promptLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.PromptConfig(cfg.PromptLimit, cfg.PromptWindow), clk)
	defer promptLimiter.Close()
	requestLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultRequestConfig(), clk)
	defer requestLimiter.Close()

	router := handlers.NewRouter(handlers.RouterConfig{
		JWTSecret:      secret,
		RequestLimiter: requestLimiter,
		Models:         handlers.NewModelHandler(backend),
		Projects:       handlers.NewProjectHandler(backend),
		Conversations: handlers.NewConversationHandler(backend, titles, promptLimiter, handlers.ConversationOptions{
			DisableCombine: cfg.DisableCombine,
			DisableCompare: cfg.DisableCompare,
		}, clk, logger),
		Logger: logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if !cfg.IsProduction() {
		token, err := auth.GenerateJWT(devUser, devPlan, secret, tokenTTL)
		if err != nil {
			return fmt.Errorf("issue development token: %w", err)
		}
		fmt.Printf("export ALLE_API_URL=http://localhost:%s\nexport ALLE_API_TOKEN=%s\n", cfg.Port, token)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "prompt_limit", cfg.PromptLimit, "prompt_window", cfg.PromptWindow.String())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server startup failed: %w", err)
	case <-stop:
	}

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
