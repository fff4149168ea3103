package mvi

import (
	"context"
	"errors"

	"github.com/bilal-bim/devbrain-ai/internal/models"
)

// ErrSessionNotFound is returned for an unknown session id
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores projects by session id. Get returns
// ErrSessionNotFound (possibly wrapped) when the id is unknown, and
// implementations hand out copies so callers never share state.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*models.Project, error)
	Put(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id string) error
}

// SessionLister is implemented by stores that can list a user's sessions
type SessionLister interface {
	ListByUser(ctx context.Context, userID string) ([]models.Summary, error)
}
