package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bilal-bim/devbrain-ai/internal/models"
	"github.com/bilal-bim/devbrain-ai/internal/mvi"
)

// SQLiteRepository persists MVI sessions in a local SQLite file (WAL mode)
type SQLiteRepository struct {
	db   *sql.DB
	path string
}

// NewSQLiteRepository opens dbPath, creating the file and schema if needed
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, errors.New("sqlite db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	repo := &SQLiteRepository{db: db, path: dbPath}
	if err := repo.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return repo, nil
}

func (r *SQLiteRepository) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS mvi_projects (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL,
		current_step TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'analyzing',
		data         TEXT NOT NULL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_mvi_projects_user ON mvi_projects(user_id, updated_at);
	`
	_, err := r.db.Exec(schema)
	return err
}

// Health reports whether the database file is usable
func (r *SQLiteRepository) Health(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database
func (r *SQLiteRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM mvi_projects WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", mvi.ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	project := &models.Project{}
	if err := json.Unmarshal([]byte(data), project); err != nil {
		return nil, fmt.Errorf("decode project %s: %w", id, err)
	}
	return project, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, project *models.Project) error {
	data, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("encode project %s: %w", project.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO mvi_projects (id, user_id, current_step, status, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			current_step = excluded.current_step,
			status = excluded.status,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		project.ID,
		project.UserID,
		string(project.CurrentStep),
		project.Status,
		string(data),
		formatTime(project.CreatedAt),
		formatTime(project.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM mvi_projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// ListByUser returns the summaries of a user's projects, newest first
func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, status, current_step
		FROM mvi_projects
		WHERE user_id = ?
		ORDER BY updated_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	summaries := []models.Summary{}
	for rows.Next() {
		var s models.Summary
		var step string
		if err := rows.Scan(&s.ID, &s.Status, &step); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		s.CurrentStep = models.Stage(step)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Fixed-width so timestamps sort lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}
