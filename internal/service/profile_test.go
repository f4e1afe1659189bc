package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"omnislide/internal/domain"
	"omnislide/internal/domain/models"
)

type memProfileRepo struct {
	profiles map[string]*models.UserProfile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[string]*models.UserProfile)}
}

func (r *memProfileRepo) GetByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	p, ok := r.profiles[uid]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *memProfileRepo) Upsert(ctx context.Context, profile *models.UserProfile) error {
	copied := *profile
	r.profiles[profile.UID] = &copied
	return nil
}

func (r *memProfileRepo) Exists(ctx context.Context, uid string) (bool, error) {
	_, ok := r.profiles[uid]
	return ok, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGetOrCreateBootstrapsDefaultProfile(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewProfileService(repo, testLogger())

	profile, err := svc.GetOrCreate(context.Background(), "u1", "demo@example.com", "Demo")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if profile.Subscription.Plan != models.PlanFree {
		t.Errorf("plan = %q, want free", profile.Subscription.Plan)
	}
	if profile.Subscription.Status != models.SubscriptionActive {
		t.Errorf("status = %q, want active", profile.Subscription.Status)
	}
	if profile.Usage.Presentations != 0 {
		t.Errorf("presentations = %d, want 0", profile.Usage.Presentations)
	}

	// Second call returns the stored profile, not a fresh default.
	name := "Renamed"
	if _, err := svc.Update(context.Background(), "u1", &models.ProfilePatch{DisplayName: &name}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, err := svc.GetOrCreate(context.Background(), "u1", "demo@example.com", "Demo")
	if err != nil {
		t.Fatalf("GetOrCreate (second): %v", err)
	}
	if again.DisplayName != "Renamed" {
		t.Errorf("DisplayName = %q, second GetOrCreate did not return stored profile", again.DisplayName)
	}
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewProfileService(repo, testLogger())
	if _, err := svc.GetOrCreate(context.Background(), "u1", "demo@example.com", "Demo"); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	sub := models.Subscription{Plan: models.PlanPro, Status: models.SubscriptionTrialing}
	profile, err := svc.Update(context.Background(), "u1", &models.ProfilePatch{Subscription: &sub})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if profile.Subscription.Plan != models.PlanPro {
		t.Errorf("plan = %q, want pro", profile.Subscription.Plan)
	}
	if profile.DisplayName != "Demo" {
		t.Errorf("DisplayName = %q, unpatched field changed", profile.DisplayName)
	}
}

func TestUpdateMissingProfileIsNotFound(t *testing.T) {
	svc := NewProfileService(newMemProfileRepo(), testLogger())

	name := "x"
	_, err := svc.Update(context.Background(), "ghost", &models.ProfilePatch{DisplayName: &name})

	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestRecordPresentationIncrementsCounter(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewProfileService(repo, testLogger())
	if _, err := svc.GetOrCreate(context.Background(), "u1", "demo@example.com", "Demo"); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := svc.RecordPresentation(context.Background(), "u1"); err != nil {
			t.Fatalf("RecordPresentation: %v", err)
		}
	}
	// Absent profile is a tolerated no-op.
	if err := svc.RecordPresentation(context.Background(), "ghost"); err != nil {
		t.Fatalf("RecordPresentation(ghost): %v", err)
	}

	profile, _ := repo.GetByUID(context.Background(), "u1")
	if profile.Usage.Presentations != 3 {
		t.Errorf("presentations = %d, want 3", profile.Usage.Presentations)
	}
}
