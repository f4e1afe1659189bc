package handler

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"omnislide/internal/capabilities"
	"omnislide/internal/domain"
	"omnislide/internal/domain/repositories"
	"omnislide/internal/domain/services"
	"omnislide/internal/httputil"
	"omnislide/internal/store"
)

// AudioHandler handles podcast synthesis requests for a deck.
type AudioHandler struct {
	store    *store.ProjectStore
	repo     repositories.ProjectRepository
	audio    services.AudioService
	registry *capabilities.Registry
	logger   *slog.Logger
}

// NewAudioHandler creates a new audio handler
func NewAudioHandler(
	projectStore *store.ProjectStore,
	repo repositories.ProjectRepository,
	audio services.AudioService,
	registry *capabilities.Registry,
	logger *slog.Logger,
) *AudioHandler {
	return &AudioHandler{
		store:    projectStore,
		repo:     repo,
		audio:    audio,
		registry: registry,
		logger:   logger,
	}
}

// PodcastResponse carries the synthesized audio payload and the fixed
// output format so clients can play raw PCM without probing it.
type PodcastResponse struct {
	Audio      string `json:"audio"`
	MIMEType   string `json:"mimeType"`
	SampleRate int    `json:"sampleRate"`
	Channels   int    `json:"channels"`
}

// GeneratePodcast synthesizes a two-host audio summary of the deck.
// POST /api/projects/{id}/audio
func (h *AudioHandler) GeneratePodcast(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	project, ok := h.store.Project(r.PathValue("id"))
	if !ok || project.UserID != userID {
		persisted, err := h.repo.GetByID(r.Context(), r.PathValue("id"), userID)
		if err != nil || persisted == nil {
			handleError(w, &domain.NotFoundError{Message: "project not found"})
			return
		}
		project = *persisted
	}

	if len(project.Slides) == 0 {
		handleError(w, &domain.ValidationError{Message: "project has no slides to narrate"})
		return
	}

	data, err := h.audio.GeneratePodcast(r.Context(), project.Slides)
	if err != nil {
		handleError(w, err)
		return
	}

	format, err := h.registry.AudioFormat("gemini")
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, PodcastResponse{
		Audio:      base64.StdEncoding.EncodeToString(data),
		MIMEType:   format.MIMEType,
		SampleRate: format.SampleRateHz,
		Channels:   format.Channels,
	})
}
