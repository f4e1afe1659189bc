package store

import (
	"reflect"
	"testing"
	"time"

	"omnislide/internal/domain/models"
)

func fixedClock() func() time.Time {
	t := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func sampleProject(id, userID string) models.Project {
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return models.Project{
		ID:     id,
		UserID: userID,
		Title:  "Quarterly Review",
		Topic:  "Quarterly Review",
		Slides: []models.Slide{
			{
				ID:    id + "-s1",
				Title: "Opening",
				Blocks: []models.ContentBlock{
					{ID: id + "-s1-b1", Type: models.BlockTypeText, Content: "first point"},
					{ID: id + "-s1-b2", Type: models.BlockTypeText, Content: "second point"},
				},
				Notes:       "keep it short",
				ImagePrompt: "abstract gradient",
				Layout:      models.LayoutHero,
			},
			{
				ID:    id + "-s2",
				Title: "Numbers",
				Blocks: []models.ContentBlock{
					{ID: id + "-s2-b1", Type: models.BlockTypeText, Content: "revenue up"},
				},
				Notes:  "walk through the chart",
				Layout: models.LayoutSplit,
			},
		},
		CreatedAt: created,
		UpdatedAt: created,
		Status:    models.StatusReady,
	}
}

func TestAddProjectPrependsAndSetsCurrent(t *testing.T) {
	s := New(WithClock(fixedClock()))

	first := sampleProject("p1", "u1")
	second := sampleProject("p2", "u1")

	s.AddProject(first)
	s.AddProject(second)

	if got := s.CurrentProjectID(); got != "p2" {
		t.Errorf("CurrentProjectID = %q, want %q", got, "p2")
	}

	projects := s.Projects()
	if len(projects) != 2 {
		t.Fatalf("len(Projects) = %d, want 2", len(projects))
	}
	if projects[0].ID != "p2" || projects[1].ID != "p1" {
		t.Errorf("order = [%s, %s], want newest first", projects[0].ID, projects[1].ID)
	}

	got, ok := s.Project("p1")
	if !ok {
		t.Fatal("Project(p1) not found after AddProject")
	}
	if !reflect.DeepEqual(got, first) {
		t.Errorf("Project(p1) = %+v, want deep-equal to added project", got)
	}
}

func TestAddProjectCopiesInput(t *testing.T) {
	s := New(WithClock(fixedClock()))
	p := sampleProject("p1", "u1")
	s.AddProject(p)

	// Mutating the caller's copy must not leak into committed state.
	p.Slides[0].Blocks[0].Content = "tampered"
	p.Title = "tampered"

	got, _ := s.Project("p1")
	if got.Title != "Quarterly Review" {
		t.Errorf("Title = %q, committed state mutated through caller's slice", got.Title)
	}
	if got.Slides[0].Blocks[0].Content != "first point" {
		t.Errorf("block content = %q, committed state mutated through caller's slice", got.Slides[0].Blocks[0].Content)
	}
}

func TestReadsReturnDeepCopies(t *testing.T) {
	s := New(WithClock(fixedClock()))
	s.AddProject(sampleProject("p1", "u1"))

	snapshot, _ := s.Project("p1")
	snapshot.Slides[0].Title = "tampered"
	snapshot.Slides[0].Blocks[0].Content = "tampered"

	fresh, _ := s.Project("p1")
	if fresh.Slides[0].Title != "Opening" || fresh.Slides[0].Blocks[0].Content != "first point" {
		t.Error("mutating a read snapshot leaked into committed state")
	}
}

func TestUpdateProjectMergesFields(t *testing.T) {
	s := New(WithClock(fixedClock()))
	s.AddProject(sampleProject("p1", "u1"))

	title := "Renamed"
	status := models.StatusDraft
	s.UpdateProject("p1", models.ProjectPatch{Title: &title, Status: &status})

	got, _ := s.Project("p1")
	if got.Title != "Renamed" {
		t.Errorf("Title = %q, want Renamed", got.Title)
	}
	if got.Status != models.StatusDraft {
		t.Errorf("Status = %q, want draft", got.Status)
	}
	if got.Topic != "Quarterly Review" {
		t.Errorf("Topic = %q, unpatched field changed", got.Topic)
	}
	if !got.UpdatedAt.Equal(fixedClock()()) {
		t.Errorf("UpdatedAt = %v, want refreshed to clock time", got.UpdatedAt)
	}
}

func TestUpdateProjectUnmatchedIDIsNoOp(t *testing.T) {
	s := New(WithClock(fixedClock()))
	s.AddProject(sampleProject("p1", "u1"))
	before := s.Projects()

	title := "ghost"
	s.UpdateProject("missing", models.ProjectPatch{Title: &title})

	if after := s.Projects(); !reflect.DeepEqual(before, after) {
		t.Error("collection changed after patching a non-existent project id")
	}
}

func TestUpdateSlideMergesFields(t *testing.T) {
	s := New(WithClock(fixedClock()))
	s.AddProject(sampleProject("p1", "u1"))

	title := "New Opening"
	s.UpdateSlide("p1", "p1-s1", models.SlidePatch{Title: &title})
	notes := "slow down here"
	s.UpdateSlide("p1", "p1-s1", models.SlidePatch{Notes: &notes})

	got, _ := s.Project("p1")
	// Two sequential patches with disjoint fields must both hold.
	if got.Slides[0].Title != "New Opening" {
		t.Errorf("slide title = %q, first patch lost", got.Slides[0].Title)
	}
	if got.Slides[0].Notes != "slow down here" {
		t.Errorf("slide notes = %q, second patch lost", got.Slides[0].Notes)
	}
	if got.Slides[0].Layout != models.LayoutHero {
		t.Errorf("slide layout = %q, unpatched field changed", got.Slides[0].Layout)
	}
	if got.Slides[1].Title != "Numbers" {
		t.Error("sibling slide changed by slide patch")
	}
}

func TestUpdateSlideUnmatchedIDsAreNoOps(t *testing.T) {
	s := New(WithClock(fixedClock()))
	s.AddProject(sampleProject("p1", "u1"))
	before := s.Projects()

	title := "ghost"
	s.UpdateSlide("missing", "p1-s1", models.SlidePatch{Title: &title})
	s.UpdateSlide("p1", "missing", models.SlidePatch{Title: &title})

	if after := s.Projects(); !reflect.DeepEqual(before, after) {
		t.Error("collection changed after patching with unmatched ids")
	}
}

func TestUpdateBlockChangesOnlyContent(t *testing.T) {
	s := New(WithClock(fixedClock()))
	other := sampleProject("p2", "u1")
	s.AddProject(other)
	s.AddProject(sampleProject("p1", "u1"))

	s.UpdateBlock("p1", "p1-s1", "p1-s1-b1", "rewritten")

	got, _ := s.Project("p1")
	b := got.Slides[0].Blocks[0]
	if b.Content != "rewritten" {
		t.Errorf("block content = %q, want rewritten", b.Content)
	}
	if b.ID != "p1-s1-b1" || b.Type != models.BlockTypeText {
		t.Error("block id/type changed by content update")
	}
	if got.Slides[0].Blocks[1].Content != "second point" {
		t.Error("sibling block changed by content update")
	}
	if got.Slides[0].Title != "Opening" || got.Slides[0].Notes != "keep it short" || got.Slides[0].Layout != models.LayoutHero {
		t.Error("slide fields changed by block update")
	}

	untouched, _ := s.Project("p2")
	if !reflect.DeepEqual(untouched, other) {
		t.Error("other project changed by block update")
	}
}

func TestUpdateBlockUnmatchedChainIsNoOp(t *testing.T) {
	s := New(WithClock(fixedClock()))
	s.AddProject(sampleProject("p1", "u1"))
	before := s.Projects()

	s.UpdateBlock("p1", "p1-s1", "missing", "ghost")
	s.UpdateBlock("p1", "missing", "p1-s1-b1", "ghost")
	s.UpdateBlock("missing", "p1-s1", "p1-s1-b1", "ghost")

	if after := s.Projects(); !reflect.DeepEqual(before, after) {
		t.Error("collection changed after block update with unmatched ids")
	}
}

func TestReplaceProjectSwapsDeck(t *testing.T) {
	s := New(WithClock(fixedClock()))
	p := sampleProject("p1", "u1")
	p.Status = models.StatusGenerating
	p.Slides = nil
	s.AddProject(p)

	done := sampleProject("p1", "u1")
	done.Status = models.StatusReady
	s.ReplaceProject(done)

	got, _ := s.Project("p1")
	if got.Status != models.StatusReady {
		t.Errorf("status = %q, want ready", got.Status)
	}
	if len(got.Slides) != 2 {
		t.Errorf("len(slides) = %d, want 2", len(got.Slides))
	}
}

func TestRemoveProjectClearsCurrent(t *testing.T) {
	s := New(WithClock(fixedClock()))
	s.AddProject(sampleProject("p1", "u1"))
	s.AddProject(sampleProject("p2", "u1"))

	s.RemoveProject("p2")

	if _, ok := s.Project("p2"); ok {
		t.Error("removed project still present")
	}
	if got := s.CurrentProjectID(); got != "" {
		t.Errorf("CurrentProjectID = %q after removing current, want empty", got)
	}
	// Removing an unknown id is a no-op.
	s.RemoveProject("missing")
	if len(s.Projects()) != 1 {
		t.Error("collection changed after removing unknown id")
	}
}

func TestSetCurrentProjectDoesNotValidate(t *testing.T) {
	s := New(WithClock(fixedClock()))
	s.SetCurrentProject("anything")
	if got := s.CurrentProjectID(); got != "anything" {
		t.Errorf("CurrentProjectID = %q, want anything", got)
	}
}

func TestIngestAppendsOnlyMissing(t *testing.T) {
	s := New(WithClock(fixedClock()))
	s.AddProject(sampleProject("p1", "u1"))

	modified := sampleProject("p1", "u1")
	modified.Title = "stale copy"
	s.Ingest([]models.Project{modified, sampleProject("p2", "u1"), sampleProject("p3", "u2")})

	got, _ := s.Project("p1")
	if got.Title != "Quarterly Review" {
		t.Error("Ingest overwrote an existing project")
	}
	if len(s.Projects()) != 3 {
		t.Errorf("len(Projects) = %d, want 3", len(s.Projects()))
	}
	if s.CurrentProjectID() != "p1" {
		t.Error("Ingest changed the current project")
	}

	owned := s.ProjectsOwnedBy("u1")
	if len(owned) != 2 {
		t.Errorf("ProjectsOwnedBy(u1) = %d projects, want 2", len(owned))
	}
}
