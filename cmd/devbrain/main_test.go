package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilal-bim/devbrain-ai/config"
	"github.com/bilal-bim/devbrain-ai/internal/models"
	"github.com/bilal-bim/devbrain-ai/internal/mvi"
	"github.com/bilal-bim/devbrain-ai/internal/session"
)

func TestRunScriptedCompletesSession(t *testing.T) {
	gen := mvi.NewGenerator(session.NewMemoryStore())

	project, err := runScripted(context.Background(), gen, "An app for freelancers to manage invoices", []string{"Designers"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusComplete, project.Status)
	assert.Equal(t, models.StageComplete, project.CurrentStep)
	require.NotNil(t, project.Context.MVIPackage)
	assert.Equal(t, "user", project.Context.ConversationHistory[1].Role)
	assert.Equal(t, "Designers", project.Context.ConversationHistory[1].Content)
}

func TestAnalyzeCommand(t *testing.T) {
	color.NoColor = true

	cmd := analyzeCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"An", "app", "for", "freelancers", "to", "manage", "invoices"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Industry:     freelance")
	assert.Contains(t, out.String(), "TAM:")
}

func TestExportCommandWritesFiles(t *testing.T) {
	dir := t.TempDir()

	cmd := exportCmd()
	cmd.SetArgs([]string{"--idea", "Booking app for yoga studios", "-f", "cursor", "-o", dir})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, ".cursorrules"))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.FileExists(t, filepath.Join(dir, "PROJECT_STRUCTURE.md"))
}

func TestExportCommandZip(t *testing.T) {
	dir := t.TempDir()

	cmd := exportCmd()
	cmd.SetArgs([]string{"--idea", "Budget tracker for students", "-f", "github", "-o", dir, "--zip"})
	require.NoError(t, cmd.Execute())

	matches, err := filepath.Glob(filepath.Join(dir, "mvi_*-github.zip"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestExportCommandRejectsUnknownFormat(t *testing.T) {
	cmd := exportCmd()
	cmd.SetArgs([]string{"--idea", "x", "-f", "docx"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	assert.Error(t, cmd.Execute())
}

func TestStoredProjectRejectsMemoryStore(t *testing.T) {
	cfg := &config.Config{SessionStore: config.StoreMemory}

	_, err := storedProject(context.Background(), cfg, "mvi_anything")
	assert.ErrorIs(t, err, errNoPersistentStore)
}

func TestStoredProjectFromSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		SessionStore: config.StoreSQLite,
		SQLitePath:   filepath.Join(t.TempDir(), "sessions", "devbrain.db"),
	}

	repo, closeStore, err := openStore(ctx, cfg)
	require.NoError(t, err)
	project, err := runScripted(ctx, mvi.NewGenerator(repo), "An app for freelancers to manage invoices", nil)
	require.NoError(t, err)
	closeStore()

	loaded, err := storedProject(ctx, cfg, project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusComplete, loaded.Status)

	_, err = storedProject(ctx, cfg, "mvi_missing")
	assert.ErrorIs(t, err, mvi.ErrSessionNotFound)
}
