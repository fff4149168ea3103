package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bilal-bim/devbrain-ai/internal/models"
	"github.com/bilal-bim/devbrain-ai/internal/mvi"
)

// ProjectRepository persists MVI sessions in Postgres
type ProjectRepository struct {
	db *DB
}

func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Health reports whether Postgres answers
func (r *ProjectRepository) Health(ctx context.Context) error {
	return r.db.Health(ctx)
}

// Get retrieves a project by its session ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT data FROM mvi_projects WHERE id = $1`

	var data []byte
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", mvi.ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project := &models.Project{}
	if err := json.Unmarshal(data, project); err != nil {
		return nil, fmt.Errorf("failed to decode project %s: %w", id, err)
	}
	return project, nil
}

// Put inserts or replaces a project
func (r *ProjectRepository) Put(ctx context.Context, project *models.Project) error {
	data, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to encode project %s: %w", project.ID, err)
	}

	query := `
		INSERT INTO mvi_projects (id, user_id, current_step, status, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			current_step = EXCLUDED.current_step,
			status = EXCLUDED.status,
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.Pool.Exec(ctx, query,
		project.ID,
		project.UserID,
		string(project.CurrentStep),
		project.Status,
		data,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}

	return nil
}

// Delete removes a project
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Pool.Exec(ctx, `DELETE FROM mvi_projects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// ListByUser returns the summaries of a user's projects, newest first
func (r *ProjectRepository) ListByUser(ctx context.Context, userID string) ([]models.Summary, error) {
	query := `
		SELECT id, status, current_step
		FROM mvi_projects
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	summaries := []models.Summary{}
	for rows.Next() {
		var s models.Summary
		var step string
		if err := rows.Scan(&s.ID, &s.Status, &step); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		s.CurrentStep = models.Stage(step)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
