package main

import (
	"context"
	"fmt"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/auth"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/client"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/config"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/repository"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/services"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/services/chat"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/store"
)

// app is everything a command needs, hydrated from the state database.
type app struct {
	cfg         *config.Config
	logger      services.Logger
	api         *client.Client
	stores      *store.Stores
	db          *gorm.DB
	repo        repository.SnapshotRepository
	entitlement domain.Entitlement

	scheduler     *services.RestrictionScheduler
	catalog       *services.CatalogService
	history       *services.HistoryService
	projects      *services.ProjectService
	modelStatus   *services.ModelStatusService
	conversations *services.ConversationService

	out *printer
}

func newApp(cmd *cobra.Command) (a *app, err error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if state, _ := cmd.Flags().GetString("state"); state != "" {
		cfg.StateDB = state
	}
	format, _ := cmd.Flags().GetString("output")
	out, err := newPrinter(cmd.OutOrStdout(), format)
	if err != nil {
		return nil, err
	}

	logger := services.NewProductionLogger("alle", os.Stderr, services.ParseLevel(cfg.LogLevel), cfg.IsProduction())

	clientCfg := client.DefaultConfig()
	clientCfg.BaseURL = cfg.APIURL
	clientCfg.Token = cfg.APIToken
	clientCfg.Timeout = cfg.RequestTimeout
	clientCfg.Retry.MaxAttempts = cfg.MaxRetries
	api, err := client.New(clientCfg, logger)
	if err != nil {
		return nil, err
	}

	db, err := repository.Open(cfg.StateDB)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = repository.Close(db)
		}
	}()
	repo := repository.NewSnapshotRepository(db)

	clk := clock.New()
	stores := store.New(clk)
	snap, err := repo.Load(cmd.Context())
	if err != nil {
		return nil, err
	}
	snap.Restore(stores)

	scheduler := services.NewRestrictionScheduler(stores.Restrictions, clk, logger)
	scheduler.ScheduleAll()

	chatCfg := chat.DefaultConfig()
	chatCfg.TitleTimeout = cfg.TitleTimeout
	chatCfg.TitleSettleDelay = cfg.TitleSettleDelay
	ui := newTerminalUI(cmd.ErrOrStderr())
	conversations, err := services.NewConversationService(chatCfg, api, stores, scheduler, ui, clk, logger)
	if err != nil {
		scheduler.Stop()
		return nil, err
	}

	return &app{
		cfg:           cfg,
		logger:        logger,
		api:           api,
		stores:        stores,
		db:            db,
		repo:          repo,
		entitlement:   domain.ParseEntitlement(planOf(cfg)),
		scheduler:     scheduler,
		catalog:       services.NewCatalogService(api, stores.Registry, logger),
		history:       services.NewHistoryService(api, stores, logger),
		projects:      services.NewProjectService(api, stores, logger),
		modelStatus:   services.NewModelStatusService(api, stores.Selection, logger),
		conversations: conversations,
		out:           out,
	}, nil
}

// planOf prefers the plan claim of the API token over ALLE_PLAN.
func planOf(cfg *config.Config) string {
	if claims, ok := auth.InspectToken(cfg.APIToken); ok && claims.Plan != "" {
		return claims.Plan
	}
	return cfg.Plan
}

// close waits for title updates, stops timers, persists the stores and
// releases the state database.
func (a *app) close(ctx context.Context) error {
	a.conversations.Wait()
	a.conversations.Close()
	a.scheduler.Stop()
	saveErr := a.repo.Save(ctx, repository.Capture(a.stores))
	closeErr := repository.Close(a.db)
	if saveErr != nil {
		return fmt.Errorf("save state: %w", saveErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close state: %w", closeErr)
	}
	return nil
}

// withApp runs fn against a hydrated app and saves the state afterwards,
// also when fn fails.
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		runErr := fn(cmd, args, a)
		if err := a.close(cmd.Context()); err != nil && runErr == nil {
			return err
		}
		return runErr
	}
}
