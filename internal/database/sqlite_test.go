package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilal-bim/devbrain-ai/internal/models"
	"github.com/bilal-bim/devbrain-ai/internal/mvi"
)

func newTestSQLite(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "nested", "devbrain.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSQLiteRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLite(t)

	project := models.NewProject("mvi_1", "u1", "An app for freelancers")
	project.Context.Features = []models.Feature{{Name: "Invoicing", Priority: models.PriorityMustHave}}
	require.NoError(t, repo.Put(ctx, project))

	got, err := repo.Get(ctx, "mvi_1")
	require.NoError(t, err)
	assert.Equal(t, project.Idea, got.Idea)
	assert.Equal(t, project.Context.Features, got.Context.Features)
	assert.True(t, project.CreatedAt.Equal(got.CreatedAt))
}

func TestSQLiteRepositoryUpsert(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLite(t)

	project := models.NewProject("mvi_1", "u1", "idea")
	require.NoError(t, repo.Put(ctx, project))

	project.CurrentStep = models.StageUserPersonaDiscovery
	project.Status = models.StatusComplete
	require.NoError(t, repo.Put(ctx, project))

	got, err := repo.Get(ctx, "mvi_1")
	require.NoError(t, err)
	assert.Equal(t, models.StageUserPersonaDiscovery, got.CurrentStep)
	assert.Equal(t, models.StatusComplete, got.Status)
}

func TestSQLiteRepositoryNotFoundAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLite(t)

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, mvi.ErrSessionNotFound)

	require.NoError(t, repo.Put(ctx, models.NewProject("mvi_1", "u1", "idea")))
	require.NoError(t, repo.Delete(ctx, "mvi_1"))
	_, err = repo.Get(ctx, "mvi_1")
	assert.ErrorIs(t, err, mvi.ErrSessionNotFound)
}

func TestSQLiteRepositoryListByUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLite(t)

	older := models.NewProject("mvi_a", "u1", "first")
	newer := models.NewProject("mvi_b", "u1", "second")
	newer.UpdatedAt = older.UpdatedAt.Add(time.Second)
	for _, p := range []*models.Project{older, newer, models.NewProject("mvi_c", "u2", "x")} {
		require.NoError(t, repo.Put(ctx, p))
	}

	got, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "mvi_b", got[0].ID)
	assert.Equal(t, models.StageIdeaCapture, got[0].CurrentStep)
}

func TestSQLiteRepositoryHealth(t *testing.T) {
	repo := newTestSQLite(t)
	require.NoError(t, repo.Health(context.Background()))

	require.NoError(t, repo.Close())
	assert.Error(t, repo.Health(context.Background()))
}

func TestSQLiteRepositoryRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteRepository("  ")
	assert.Error(t, err)
}

func TestSQLiteBackedGenerator(t *testing.T) {
	ctx := context.Background()
	gen := mvi.NewGenerator(newTestSQLite(t))

	start, err := gen.StartSession(ctx, "u1", "An app for freelancers to manage invoices")
	require.NoError(t, err)

	turn, err := gen.ProcessUserResponse(ctx, start.SessionID, "Designers")
	require.NoError(t, err)
	assert.Equal(t, models.StageUserPersonaDiscovery, turn.Project.CurrentStep)

	stored, err := gen.Session(ctx, start.SessionID)
	require.NoError(t, err)
	assert.Len(t, stored.Context.ConversationHistory, 2)
}
