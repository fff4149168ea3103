package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bilal-bim/devbrain-ai/config"
	"github.com/bilal-bim/devbrain-ai/internal/agents"
	"github.com/bilal-bim/devbrain-ai/internal/api"
	"github.com/bilal-bim/devbrain-ai/internal/linear"
	"github.com/bilal-bim/devbrain-ai/internal/mvi"
	slackpkg "github.com/bilal-bim/devbrain-ai/internal/slack"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MVI HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if port != "" {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	log.Println("🚀 DevbrainAI API Starting...")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	client, model := agents.NewClientFromConfig(cfg)
	advisor := agents.NewAdvisor(client, model, cfg.HistoryTokens)
	if advisor.Configured() {
		log.Printf("✅ LLM provider: %s (%s)", advisor.ProviderName(), model)
	} else {
		log.Println("⚠️ No LLM API key set, using canned replies")
	}

	opts := api.Options{
		Generator: mvi.NewGenerator(repo),
		Advisor:   advisor,
		Lister:    repo,
		Origins:   cfg.FrontendOrigins,
		StoreName: cfg.SessionStore,
	}

	if hc, ok := repo.(interface{ Health(context.Context) error }); ok {
		opts.StoreCheck = hc.Health
	}

	if cfg.SlackToken != "" {
		slackClient, err := slackpkg.NewClient(ctx, cfg.SlackToken)
		if err != nil {
			log.Printf("⚠️ Slack disabled: %v", err)
		} else {
			opts.Notifier = slackpkg.NewNotifier(slackClient, cfg.SlackChannelID)
			log.Printf("✅ Slack notifications go to %s (bot %s)", cfg.SlackChannelID, slackClient.GetBotID())
		}
	}

	if cfg.LinearToken != "" {
		linearClient, err := linear.NewClient(cfg.LinearToken)
		if err != nil {
			log.Printf("⚠️ Linear disabled: %v", err)
		} else {
			opts.Linear = linearClient
			log.Println("✅ Linear sync enabled")
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.New(opts).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.LLMTimeout + 30*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Println("👋 Stopped")
	return nil
}
