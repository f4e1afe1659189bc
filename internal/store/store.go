// Package store holds the in-memory project collection behind the
// editor surface. It is an explicit, injected container rather than a
// process-wide singleton so tests and callers can hold isolated
// instances.
//
// Discipline: committed state is never mutated in place. Every write
// rebuilds the affected project and swaps the whole collection, so a
// reader holding a previously returned snapshot never observes a
// partially updated project, slide, or block. Reads hand out deep
// copies for the same reason in the other direction.
package store

import (
	"sync"
	"time"

	"omnislide/internal/domain/models"
)

// ProjectStore is the single mutable collection of projects.
// All operations are safe for concurrent use. Unmatched ids are silent
// no-ops, never errors: mutation is idempotent-safe against stale ids.
type ProjectStore struct {
	mu               sync.RWMutex
	projects         []models.Project
	currentProjectID string
	now              func() time.Time
}

// Option configures a ProjectStore.
type Option func(*ProjectStore)

// WithClock overrides the time source used for updatedAt refreshes.
func WithClock(now func() time.Time) Option {
	return func(s *ProjectStore) {
		s.now = now
	}
}

// New creates an empty project store.
func New(opts ...Option) *ProjectStore {
	s := &ProjectStore{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddProject prepends the project to the collection and makes it the
// current project. No id-collision check is performed; id uniqueness is
// the caller's contract (ids are minted fresh, never reused).
func (s *ProjectStore) AddProject(project models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Project, 0, len(s.projects)+1)
	next = append(next, models.CloneProject(project))
	next = append(next, s.projects...)

	s.projects = next
	s.currentProjectID = project.ID
}

// Ingest appends projects loaded from persistence that are not already
// present, leaving order of existing entries and the current project
// untouched. Used to hydrate the store from the durable backend.
func (s *ProjectStore) Ingest(projects []models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.projects))
	for i := range s.projects {
		seen[s.projects[i].ID] = struct{}{}
	}

	next := append([]models.Project(nil), s.projects...)
	for i := range projects {
		if _, ok := seen[projects[i].ID]; ok {
			continue
		}
		next = append(next, models.CloneProject(projects[i]))
	}
	s.projects = next
}

// UpdateProject merges the patch into the project matching id.
// No-op if no project matches. Refreshes updatedAt on a match.
func (s *ProjectStore) UpdateProject(id string, patch models.ProjectPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replace(func(p models.Project) (models.Project, bool) {
		if p.ID != id {
			return p, false
		}
		out := models.CloneProject(p)
		if patch.Title != nil {
			out.Title = *patch.Title
		}
		if patch.Status != nil {
			out.Status = *patch.Status
		}
		if patch.ThumbnailURL != nil {
			out.ThumbnailURL = patch.ThumbnailURL
		}
		out.UpdatedAt = s.now()
		return out, true
	})
}

// ReplaceProject swaps in a whole new version of the project matching
// its id, slides included. No-op if no project matches. Used when the
// generation pipeline delivers a finished deck.
func (s *ProjectStore) ReplaceProject(project models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replace(func(p models.Project) (models.Project, bool) {
		if p.ID != project.ID {
			return p, false
		}
		return models.CloneProject(project), true
	})
}

// UpdateSlide merges the patch into the matching slide within the
// matching project. No-op if either id is unmatched.
func (s *ProjectStore) UpdateSlide(projectID, slideID string, patch models.SlidePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replace(func(p models.Project) (models.Project, bool) {
		if p.ID != projectID {
			return p, false
		}
		matched := false
		out := models.CloneProject(p)
		for i := range out.Slides {
			if out.Slides[i].ID != slideID {
				continue
			}
			if patch.Title != nil {
				out.Slides[i].Title = *patch.Title
			}
			if patch.Notes != nil {
				out.Slides[i].Notes = *patch.Notes
			}
			if patch.ImagePrompt != nil {
				out.Slides[i].ImagePrompt = *patch.ImagePrompt
			}
			if patch.Layout != nil {
				out.Slides[i].Layout = *patch.Layout
			}
			matched = true
			break
		}
		if !matched {
			return p, false
		}
		out.UpdatedAt = s.now()
		return out, true
	})
}

// UpdateBlock replaces one block's content field only, leaving type,
// metadata and id untouched. No-op if any id in the chain is unmatched.
func (s *ProjectStore) UpdateBlock(projectID, slideID, blockID, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replace(func(p models.Project) (models.Project, bool) {
		if p.ID != projectID {
			return p, false
		}
		matched := false
		out := models.CloneProject(p)
		for i := range out.Slides {
			if out.Slides[i].ID != slideID {
				continue
			}
			for j := range out.Slides[i].Blocks {
				if out.Slides[i].Blocks[j].ID != blockID {
					continue
				}
				out.Slides[i].Blocks[j].Content = content
				matched = true
				break
			}
			break
		}
		if !matched {
			return p, false
		}
		out.UpdatedAt = s.now()
		return out, true
	})
}

// RemoveProject drops the project matching id from the collection.
// No-op if no project matches. Clears the current project if it was the
// one removed.
func (s *ProjectStore) RemoveProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Project, 0, len(s.projects))
	for i := range s.projects {
		if s.projects[i].ID == id {
			continue
		}
		next = append(next, s.projects[i])
	}
	s.projects = next
	if s.currentProjectID == id {
		s.currentProjectID = ""
	}
}

// SetCurrentProject records which project is active for navigation.
// Existence is deliberately not validated.
func (s *ProjectStore) SetCurrentProject(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentProjectID = id
}

// CurrentProjectID returns the active project id, or "" if none.
func (s *ProjectStore) CurrentProjectID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentProjectID
}

// Project returns a deep copy of the project matching id.
func (s *ProjectStore) Project(id string) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.projects {
		if s.projects[i].ID == id {
			return models.CloneProject(s.projects[i]), true
		}
	}
	return models.Project{}, false
}

// Projects returns a deep copy of the whole collection in order.
func (s *ProjectStore) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Project, len(s.projects))
	for i := range s.projects {
		out[i] = models.CloneProject(s.projects[i])
	}
	return out
}

// ProjectsOwnedBy returns a deep copy of the projects owned by userID,
// preserving collection order.
func (s *ProjectStore) ProjectsOwnedBy(userID string) []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Project, 0)
	for i := range s.projects {
		if s.projects[i].UserID != userID {
			continue
		}
		out = append(out, models.CloneProject(s.projects[i]))
	}
	return out
}

// replace rebuilds the collection through fn, which returns the
// (possibly new) project and whether it changed. The slice is only
// swapped when something changed, so untouched collections keep their
// identity. Callers must hold the write lock.
func (s *ProjectStore) replace(fn func(models.Project) (models.Project, bool)) {
	changed := false
	next := make([]models.Project, len(s.projects))
	for i := range s.projects {
		p, ok := fn(s.projects[i])
		next[i] = p
		if ok {
			changed = true
		}
	}
	if changed {
		s.projects = next
	}
}
