package services

import (
	"context"

	"omnislide/internal/domain/models"
)

// GenerationService turns a topic plus optional source context into an
// ordered slide deck. The operation is total: every internal failure
// (missing credential, request error, malformed payload) is absorbed
// into the deterministic mock deck, so callers get a uniform flow
// regardless of backend availability.
type GenerationService interface {
	GenerateSlides(ctx context.Context, topic, sourceContext string) []models.Slide
}

// AudioService synthesizes a two-host podcast summary of a deck.
// Unlike generation it propagates failure: returning fabricated audio
// would be misleading. domain.ErrAudioUnavailable signals the soft
// no-credential outcome without any network call.
type AudioService interface {
	GeneratePodcast(ctx context.Context, slides []models.Slide) ([]byte, error)
}

// ProfileService manages the per-identity profile record through the
// auth/persistence backend.
type ProfileService interface {
	// GetOrCreate returns the profile for the identity, bootstrapping
	// the default free-plan profile on first touch.
	GetOrCreate(ctx context.Context, uid, email, displayName string) (*models.UserProfile, error)

	// Update applies a merge-patch to the profile.
	Update(ctx context.Context, uid string, patch *models.ProfilePatch) (*models.UserProfile, error)

	// RecordPresentation increments the presentations usage counter.
	RecordPresentation(ctx context.Context, uid string) error
}
