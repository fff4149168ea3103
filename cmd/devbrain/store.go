package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/bilal-bim/devbrain-ai/config"
	"github.com/bilal-bim/devbrain-ai/internal/database"
	"github.com/bilal-bim/devbrain-ai/internal/models"
	"github.com/bilal-bim/devbrain-ai/internal/mvi"
	"github.com/bilal-bim/devbrain-ai/internal/session"
)

// store is a session backend with the listing support every backend here has
type store interface {
	mvi.SessionRepository
	mvi.SessionLister
}

// openStore connects the backend named by SESSION_STORE. The returned func
// releases it.
func openStore(ctx context.Context, cfg *config.Config) (store, func(), error) {
	switch cfg.SessionStore {
	case config.StorePostgres:
		db, err := database.NewDB(ctx, cfg.DatabaseURL, database.PoolOptions{MaxConns: int32(cfg.DBMaxConns)})
		if err != nil {
			return nil, nil, err
		}
		if err := db.CreateTables(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Println("✅ Postgres session store ready")
		return database.NewProjectRepository(db), db.Close, nil

	case config.StoreSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("failed to create %s: %w", dir, err)
			}
		}
		repo, err := database.NewSQLiteRepository(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("✅ SQLite session store ready at %s", cfg.SQLitePath)
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Printf("⚠️ Failed to close SQLite store: %v", err)
			}
		}, nil

	default:
		log.Println("✅ In-memory session store ready (sessions are lost on restart)")
		return session.NewMemoryStore(), func() {}, nil
	}
}

// runScripted drives a fresh session through every stage, answering each
// prompt with the next scripted answer (or "yes" once they run out).
func runScripted(ctx context.Context, gen *mvi.Generator, idea string, answers []string) (*models.Project, error) {
	start, err := gen.StartSession(ctx, "cli", idea)
	if err != nil {
		return nil, err
	}

	project := start.Project
	for i := 0; i < len(models.Stages) && project.Status != models.StatusComplete; i++ {
		answer := "yes"
		if i < len(answers) {
			answer = answers[i]
		}
		turn, err := gen.ProcessUserResponse(ctx, start.SessionID, answer)
		if err != nil {
			return nil, err
		}
		project = turn.Project
	}
	if project.Status != models.StatusComplete {
		return nil, fmt.Errorf("session %s stopped at %s", project.ID, project.CurrentStep)
	}
	return project, nil
}
