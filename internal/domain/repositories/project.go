package repositories

import (
	"context"

	"omnislide/internal/domain/models"
)

// ProjectRepository persists whole decks. The in-memory store is the
// read path for the editor; this repository is the durability path,
// written behind store mutations.
type ProjectRepository interface {
	// Upsert writes the full project, slides included, replacing any
	// existing row with the same id.
	Upsert(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project owned by userID.
	// Returns domain.ErrNotFound if no such project exists.
	GetByID(ctx context.Context, id, userID string) (*models.Project, error)

	// ListByUser retrieves all projects owned by userID, most recently
	// updated first.
	ListByUser(ctx context.Context, userID string) ([]models.Project, error)

	// Delete removes a project owned by userID.
	// Returns domain.ErrNotFound if no such project exists.
	Delete(ctx context.Context, id, userID string) error
}
