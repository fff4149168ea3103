// Package session holds the in-process session store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bilal-bim/devbrain-ai/internal/models"
	"github.com/bilal-bim/devbrain-ai/internal/mvi"
)

// MemoryStore keeps projects as JSON snapshots in a map. Sessions live until
// deleted or the process exits; concurrent writes to one id are last-write-wins.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{projects: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Project, error) {
	s.mu.RLock()
	data, ok := s.projects[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", mvi.ErrSessionNotFound, id)
	}

	project := &models.Project{}
	if err := json.Unmarshal(data, project); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return project, nil
}

func (s *MemoryStore) Put(_ context.Context, project *models.Project) error {
	data, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", project.ID, err)
	}

	s.mu.Lock()
	s.projects[project.ID] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.projects, id)
	s.mu.Unlock()
	return nil
}

// ListByUser returns the summaries of a user's projects, newest first
func (s *MemoryStore) ListByUser(ctx context.Context, userID string) ([]models.Summary, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.projects))
	for id := range s.projects {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	var projects []*models.Project
	for _, id := range ids {
		project, err := s.Get(ctx, id)
		if errors.Is(err, mvi.ErrSessionNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if project.UserID == userID {
			projects = append(projects, project)
		}
	}

	sort.Slice(projects, func(i, j int) bool {
		if projects[i].UpdatedAt.Equal(projects[j].UpdatedAt) {
			return projects[i].ID > projects[j].ID
		}
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})

	summaries := make([]models.Summary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, p.Summary())
	}
	return summaries, nil
}

// Len returns the number of stored sessions
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}
