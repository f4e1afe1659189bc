package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"omnislide/internal/domain"
	"omnislide/internal/domain/models"
	"omnislide/internal/domain/repositories"
)

// PostgresProjectRepository implements the ProjectRepository interface.
// The slide tree is stored as one JSONB column: decks are always read
// and written whole, so row-per-slide normalization buys nothing here.
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewProjectRepository creates a new PostgresProjectRepository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Upsert writes the full project, replacing any existing row.
func (r *PostgresProjectRepository) Upsert(ctx context.Context, project *models.Project) error {
	slides, err := json.Marshal(project.Slides)
	if err != nil {
		return fmt.Errorf("encode slides: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, title, topic, slides, status, thumbnail_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			slides = EXCLUDED.slides,
			status = EXCLUDED.status,
			thumbnail_url = EXCLUDED.thumbnail_url,
			updated_at = EXCLUDED.updated_at
	`, r.tables.Projects)

	_, err = r.pool.Exec(ctx, query,
		project.ID,
		project.UserID,
		project.Title,
		project.Topic,
		slides,
		project.Status,
		project.ThumbnailURL,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}

	return nil
}

// GetByID retrieves a project owned by userID.
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, topic, slides, status, thumbnail_url, created_at, updated_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Projects)

	project, err := scanProject(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("project %s not found", id)}
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return project, nil
}

// ListByUser retrieves all projects owned by userID, most recently
// updated first.
func (r *PostgresProjectRepository) ListByUser(ctx context.Context, userID string) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, topic, slides, status, thumbnail_url, created_at, updated_at
		FROM %s
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, r.tables.Projects)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}

// Delete removes a project owned by userID.
func (r *PostgresProjectRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Projects)

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("project %s not found", id)}
	}

	return nil
}

func scanProject(row pgx.Row) (*models.Project, error) {
	var project models.Project
	var slides []byte

	err := row.Scan(
		&project.ID,
		&project.UserID,
		&project.Title,
		&project.Topic,
		&slides,
		&project.Status,
		&project.ThumbnailURL,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(slides) > 0 {
		if err := json.Unmarshal(slides, &project.Slides); err != nil {
			return nil, fmt.Errorf("decode slides: %w", err)
		}
	}
	if project.Slides == nil {
		project.Slides = []models.Slide{}
	}

	return &project, nil
}
