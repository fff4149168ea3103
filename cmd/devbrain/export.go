package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bilal-bim/devbrain-ai/config"
	"github.com/bilal-bim/devbrain-ai/internal/export"
	"github.com/bilal-bim/devbrain-ai/internal/models"
	"github.com/bilal-bim/devbrain-ai/internal/mvi"
	"github.com/bilal-bim/devbrain-ai/internal/session"
)

func exportCmd() *cobra.Command {
	var (
		idea      string
		sessionID string
		format    string
		output    string
		answers   []string
		zipped    bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export an MVI package for an AI coding tool",
		Long: `Export an MVI package in one of: mcp, cursor, github, replit, pdf.

Either load a stored session with --session (uses SESSION_STORE) or run a
scripted session for --idea, answering each stage with --answer values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !export.Supported(format) {
				return fmt.Errorf("%w: %s", export.ErrUnsupportedFormat, format)
			}

			project, err := loadProject(cmd.Context(), sessionID, idea, answers)
			if err != nil {
				return err
			}
			bundle, err := export.Export(project, format)
			if err != nil {
				return err
			}

			if zipped {
				return writeArchive(bundle, project.ID, output)
			}
			return writeFiles(bundle, output)
		},
	}

	cmd.Flags().StringVar(&idea, "idea", "", "Business idea to run through every stage")
	cmd.Flags().StringVar(&sessionID, "session", "", "Stored session ID to export")
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatMCP, "Export format")
	cmd.Flags().StringVarP(&output, "output", "o", ".", "Output directory")
	cmd.Flags().StringArrayVar(&answers, "answer", nil, "Scripted answer for the next stage (repeatable)")
	cmd.Flags().BoolVar(&zipped, "zip", false, "Write a single zip archive instead of loose files")
	cmd.MarkFlagsMutuallyExclusive("idea", "session")
	cmd.MarkFlagsOneRequired("idea", "session")

	return cmd
}

var errNoPersistentStore = errors.New("--session needs SESSION_STORE=postgres or sqlite; the memory store is empty in a new process")

// loadProject fetches a stored session, or builds one from an idea in memory
func loadProject(ctx context.Context, sessionID, idea string, answers []string) (*models.Project, error) {
	if sessionID == "" {
		if idea == "" {
			return nil, errors.New("either --idea or --session is required")
		}
		return runScripted(ctx, mvi.NewGenerator(session.NewMemoryStore()), idea, answers)
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return storedProject(ctx, cfg, sessionID)
}

func storedProject(ctx context.Context, cfg *config.Config, sessionID string) (*models.Project, error) {
	if cfg.SessionStore == config.StoreMemory {
		return nil, errNoPersistentStore
	}
	repo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closeStore()
	return mvi.NewGenerator(repo).Session(ctx, sessionID)
}

func writeFiles(bundle *export.Bundle, dir string) error {
	for _, f := range bundle.Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("%s %s\n", color.GreenString("✓"), path)
	}
	return nil
}

func writeArchive(bundle *export.Bundle, projectID, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("%s-%s", projectID, bundle.Format)
	path := filepath.Join(dir, name+".zip")

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Archive(bundle, name, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("%s %s\n", color.GreenString("✓"), path)
	return nil
}
