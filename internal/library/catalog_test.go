package library

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilal-bim/devbrain-ai/internal/models"
	"github.com/bilal-bim/devbrain-ai/internal/mvi"
)

type stubStore struct {
	projects map[string]*models.Project
	saves    int
}

func (s *stubStore) Session(_ context.Context, id string) (*models.Project, error) {
	p, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", mvi.ErrSessionNotFound, id)
	}
	return p, nil
}

func (s *stubStore) Save(_ context.Context, p *models.Project) error {
	s.projects[p.ID] = p
	s.saves++
	return nil
}

func TestFeatures(t *testing.T) {
	all := Features("")
	assert.Len(t, all, len(features))

	auth := Features("AUTH")
	require.Len(t, auth, 2)
	for _, f := range auth {
		assert.Equal(t, "auth", f.Category)
	}

	all[0].Tags[0] = "changed"
	assert.Equal(t, "auth", Features("")[0].Tags[0])
}

func TestPacksResolve(t *testing.T) {
	for _, id := range PackIDs() {
		pack, err := Pack(id)
		require.NoError(t, err, id)
		assert.NotEmpty(t, pack.Features, id)
	}

	_, err := Pack("nope")
	assert.ErrorIs(t, err, ErrUnknownPack)
}

func TestAddToProject(t *testing.T) {
	ctx := context.Background()
	store := &stubStore{projects: map[string]*models.Project{
		"mvi_1": models.NewProject("mvi_1", "u1", "idea"),
	}}

	project, err := AddToProject(ctx, store, "mvi_1", "invoicing")
	require.NoError(t, err)
	require.Len(t, project.Context.Features, 1)
	assert.Equal(t, "Invoice Generator", project.Context.Features[0].Name)
	assert.Equal(t, models.PriorityNiceToHave, project.Context.Features[0].Priority)

	_, err = AddToProject(ctx, store, "mvi_1", "invoicing")
	require.NoError(t, err)
	assert.Len(t, store.projects["mvi_1"].Context.Features, 1)
	assert.Equal(t, 1, store.saves)
}

func TestAddToProjectErrors(t *testing.T) {
	store := &stubStore{projects: map[string]*models.Project{}}

	_, err := AddToProject(context.Background(), store, "mvi_1", "missing")
	assert.ErrorIs(t, err, ErrUnknownFeature)

	_, err = AddToProject(context.Background(), store, "mvi_1", "invoicing")
	assert.ErrorIs(t, err, mvi.ErrSessionNotFound)
}
