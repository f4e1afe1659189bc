package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"omnislide/internal/config"
	"omnislide/internal/domain"
	"omnislide/internal/domain/models"
	"omnislide/internal/domain/repositories"
	"omnislide/internal/domain/services"
)

// profileService implements services.ProfileService over the keyed
// profile record owned by the auth/persistence backend.
type profileService struct {
	repo   repositories.ProfileRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewProfileService creates a new profile service
func NewProfileService(repo repositories.ProfileRepository, logger *slog.Logger) services.ProfileService {
	return &profileService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// GetOrCreate returns the identity's profile, bootstrapping the default
// free-plan profile on first touch. Mirrors the first-sign-in behavior
// of the client: the profile document appears the first time anything
// asks for it.
func (s *profileService) GetOrCreate(ctx context.Context, uid, email, displayName string) (*models.UserProfile, error) {
	profile, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	profile = models.NewDefaultProfile(uid, email, displayName, s.now())
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("profile created",
		"uid", uid,
		"plan", profile.Subscription.Plan,
	)
	return profile, nil
}

// Update applies a merge-patch to the profile.
func (s *profileService) Update(ctx context.Context, uid string, patch *models.ProfilePatch) (*models.UserProfile, error) {
	if err := validatePatch(patch); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	profile, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, &domain.NotFoundError{Message: "profile not found"}
	}

	patch.Apply(profile, s.now())
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "uid", uid)
	return profile, nil
}

// RecordPresentation increments the presentations usage counter. Absent
// profiles are tolerated as a no-op: usage tracking must never block
// deck creation.
func (s *profileService) RecordPresentation(ctx context.Context, uid string) error {
	profile, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return err
	}
	if profile == nil {
		return nil
	}

	profile.Usage.Presentations++
	profile.UpdatedAt = s.now()
	return s.repo.Upsert(ctx, profile)
}

func validatePatch(patch *models.ProfilePatch) error {
	if patch == nil {
		return fmt.Errorf("empty patch")
	}
	if patch.DisplayName != nil {
		if err := validation.Validate(*patch.DisplayName,
			validation.Required,
			validation.Length(1, config.MaxDisplayNameLength),
		); err != nil {
			return fmt.Errorf("displayName: %v", err)
		}
	}
	return nil
}
