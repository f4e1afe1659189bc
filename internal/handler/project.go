package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"omnislide/internal/config"
	"omnislide/internal/domain"
	"omnislide/internal/domain/models"
	"omnislide/internal/domain/repositories"
	"omnislide/internal/domain/services"
	"omnislide/internal/httputil"
	"omnislide/internal/store"
)

// ProjectHandler handles project HTTP requests. The in-memory store is
// the read path; the repository is written behind store mutations so a
// persistence hiccup degrades durability, not the editing session.
type ProjectHandler struct {
	store     *store.ProjectStore
	repo      repositories.ProjectRepository
	generator services.GenerationService
	profiles  services.ProfileService
	logger    *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(
	projectStore *store.ProjectStore,
	repo repositories.ProjectRepository,
	generator services.GenerationService,
	profiles services.ProfileService,
	logger *slog.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		store:     projectStore,
		repo:      repo,
		generator: generator,
		profiles:  profiles,
		logger:    logger,
	}
}

// CreateProjectRequest is the body of POST /api/projects
type CreateProjectRequest struct {
	Topic   string `json:"topic"`
	Context string `json:"context"`
	Title   string `json:"title"`
}

// Validate implements request validation
func (r CreateProjectRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Topic, validation.Required, validation.Length(1, config.MaxTopicLength)),
		validation.Field(&r.Context, validation.Length(0, config.MaxContextLength)),
		validation.Field(&r.Title, validation.Length(0, config.MaxProjectTitleLength)),
	)
}

// ListProjects retrieves all projects owned by the user, hydrating the
// store from persistence first so a fresh process sees durable decks.
// GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	persisted, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Warn("project hydration failed, serving store only",
			"user_id", userID,
			"error", err,
		)
	} else {
		h.store.Ingest(persisted)
	}

	httputil.RespondJSON(w, http.StatusOK, h.store.ProjectsOwnedBy(userID))
}

// CreateProject creates a new project and runs the generation pipeline.
// The pipeline is total, so the project always lands in ready state.
// POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	title := req.Title
	if title == "" {
		title = req.Topic
	}

	now := time.Now()
	project := models.Project{
		ID:        models.NewProjectID(),
		UserID:    userID,
		Title:     title,
		Topic:     req.Topic,
		CreatedAt: now,
		UpdatedAt: now,
		Status:    models.StatusGenerating,
	}

	project.Slides = h.generator.GenerateSlides(r.Context(), req.Topic, req.Context)
	project.Status = models.StatusReady
	project.UpdatedAt = time.Now()

	h.store.AddProject(project)
	h.persist(r.Context(), &project)

	if err := h.profiles.RecordPresentation(r.Context(), userID); err != nil {
		h.logger.Warn("usage record failed",
			"user_id", userID,
			"error", err,
		)
	}

	httputil.RespondJSON(w, http.StatusCreated, project)
}

// GetProject retrieves a project by ID
// GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	project, ok := h.ownedProject(r.Context(), r.PathValue("id"), userID)
	if !ok {
		handleError(w, &domain.NotFoundError{Message: "project not found"})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// UpdateProject applies a partial update to a project
// PATCH /api/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if _, ok := h.ownedProject(r.Context(), id, userID); !ok {
		handleError(w, &domain.NotFoundError{Message: "project not found"})
		return
	}

	var patch models.ProjectPatch
	if err := httputil.ParseJSON(w, r, &patch); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateProjectPatch(&patch); err != nil {
		handleError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	h.store.UpdateProject(id, patch)

	updated, _ := h.store.Project(id)
	h.persist(r.Context(), &updated)

	httputil.RespondJSON(w, http.StatusOK, updated)
}

// DeleteProject deletes a project
// DELETE /api/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if _, ok := h.ownedProject(r.Context(), id, userID); !ok {
		handleError(w, &domain.NotFoundError{Message: "project not found"})
		return
	}

	h.store.RemoveProject(id)

	if err := h.repo.Delete(r.Context(), id, userID); err != nil && !isNotFound(err) {
		h.logger.Warn("project delete not persisted",
			"project_id", id,
			"error", err,
		)
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateSlide applies a partial update to one slide
// PATCH /api/projects/{id}/slides/{slideId}
func (h *ProjectHandler) UpdateSlide(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	projectID := r.PathValue("id")
	slideID := r.PathValue("slideId")

	project, ok := h.ownedProject(r.Context(), projectID, userID)
	if !ok {
		handleError(w, &domain.NotFoundError{Message: "project not found"})
		return
	}
	if !hasSlide(project, slideID) {
		handleError(w, &domain.NotFoundError{Message: "slide not found"})
		return
	}

	var patch models.SlidePatch
	if err := httputil.ParseJSON(w, r, &patch); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateSlidePatch(&patch); err != nil {
		handleError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	h.store.UpdateSlide(projectID, slideID, patch)

	updated, _ := h.store.Project(projectID)
	h.persist(r.Context(), &updated)

	httputil.RespondJSON(w, http.StatusOK, updated)
}

// UpdateBlockRequest is the body of the block content update
type UpdateBlockRequest struct {
	Content string `json:"content"`
}

// UpdateBlock replaces one block's content
// PATCH /api/projects/{id}/slides/{slideId}/blocks/{blockId}
func (h *ProjectHandler) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	projectID := r.PathValue("id")
	slideID := r.PathValue("slideId")
	blockID := r.PathValue("blockId")

	project, ok := h.ownedProject(r.Context(), projectID, userID)
	if !ok {
		handleError(w, &domain.NotFoundError{Message: "project not found"})
		return
	}
	if !hasBlock(project, slideID, blockID) {
		handleError(w, &domain.NotFoundError{Message: "block not found"})
		return
	}

	var req UpdateBlockRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.store.UpdateBlock(projectID, slideID, blockID, req.Content)

	updated, _ := h.store.Project(projectID)
	h.persist(r.Context(), &updated)

	httputil.RespondJSON(w, http.StatusOK, updated)
}

// ownedProject returns the project from the store, falling back to
// persistence on a miss (the store may not be hydrated for this user
// yet). Ownership mismatches read as absence so ids never leak.
func (h *ProjectHandler) ownedProject(ctx context.Context, id, userID string) (models.Project, bool) {
	project, ok := h.store.Project(id)
	if ok {
		if project.UserID != userID {
			return models.Project{}, false
		}
		return project, true
	}

	persisted, err := h.repo.GetByID(ctx, id, userID)
	if err != nil || persisted == nil {
		return models.Project{}, false
	}
	h.store.Ingest([]models.Project{*persisted})
	return models.CloneProject(*persisted), true
}

// persist writes the project through to the repository. Failures are
// logged, not surfaced: the store already holds the accepted state.
func (h *ProjectHandler) persist(ctx context.Context, project *models.Project) {
	if err := h.repo.Upsert(ctx, project); err != nil {
		h.logger.Warn("project not persisted",
			"project_id", project.ID,
			"error", err,
		)
	}
}

func validateProjectPatch(patch *models.ProjectPatch) error {
	if patch.Title != nil {
		if err := validation.Validate(*patch.Title,
			validation.Required,
			validation.Length(1, config.MaxProjectTitleLength),
		); err != nil {
			return fmt.Errorf("title: %v", err)
		}
	}
	if patch.Status != nil {
		if err := validation.Validate(string(*patch.Status),
			validation.In(
				string(models.StatusDraft),
				string(models.StatusGenerating),
				string(models.StatusReady),
			),
		); err != nil {
			return fmt.Errorf("status: %v", err)
		}
	}
	return nil
}

func validateSlidePatch(patch *models.SlidePatch) error {
	if patch.Title != nil {
		if err := validation.Validate(*patch.Title,
			validation.Required,
			validation.Length(1, config.MaxSlideTitleLength),
		); err != nil {
			return fmt.Errorf("title: %v", err)
		}
	}
	if patch.Layout != nil && !models.ValidLayout(string(*patch.Layout)) {
		return fmt.Errorf("layout: must be one of standard, split, hero")
	}
	return nil
}

func hasSlide(project models.Project, slideID string) bool {
	for i := range project.Slides {
		if project.Slides[i].ID == slideID {
			return true
		}
	}
	return false
}

func hasBlock(project models.Project, slideID, blockID string) bool {
	for i := range project.Slides {
		if project.Slides[i].ID != slideID {
			continue
		}
		for j := range project.Slides[i].Blocks {
			if project.Slides[i].Blocks[j].ID == blockID {
				return true
			}
		}
	}
	return false
}

func isNotFound(err error) bool {
	var nf *domain.NotFoundError
	return errors.As(err, &nf) || errors.Is(err, domain.ErrNotFound)
}
