package repositories

import (
	"context"

	"omnislide/internal/domain/models"
)

// ProfileRepository is the keyed get/set surface over the per-identity
// profile record, with merge-patch update semantics and an existence
// check. The core imposes no invariants beyond one profile per identity.
type ProfileRepository interface {
	// GetByUID retrieves the profile for an identity.
	// Returns (nil, nil) when no profile exists yet - absence is not an error.
	GetByUID(ctx context.Context, uid string) (*models.UserProfile, error)

	// Upsert creates or fully replaces the profile row.
	Upsert(ctx context.Context, profile *models.UserProfile) error

	// Exists reports whether a profile row exists for the identity.
	Exists(ctx context.Context, uid string) (bool, error)
}
