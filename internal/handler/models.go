package handler

import (
	"log/slog"
	"net/http"

	"omnislide/internal/capabilities"
	"omnislide/internal/config"
	"omnislide/internal/httputil"
)

// ModelsHandler handles HTTP requests for model capabilities
type ModelsHandler struct {
	config   *config.Config
	logger   *slog.Logger
	registry *capabilities.Registry
}

// NewModelsHandler creates a new models handler
func NewModelsHandler(cfg *config.Config, logger *slog.Logger, registry *capabilities.Registry) *ModelsHandler {
	return &ModelsHandler{
		config:   cfg,
		logger:   logger,
		registry: registry,
	}
}

// ProviderResponse represents a provider with its models and voices
type ProviderResponse struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	Configured bool                     `json:"configured"`
	Generation []ModelResponse          `json:"generation"`
	Speech     []ModelResponse          `json:"speech"`
	Voices     []string                 `json:"voices"`
	Audio      capabilities.AudioFormat `json:"audio"`
}

// ModelResponse represents one model in the API response
type ModelResponse struct {
	ID              string `json:"id"`
	Default         bool   `json:"default"`
	MaxOutputTokens int    `json:"max_output_tokens"`
}

// GetCapabilities returns model capabilities for all configured providers
// GET /api/models/capabilities
func (h *ModelsHandler) GetCapabilities(w http.ResponseWriter, r *http.Request) {
	var providers []ProviderResponse

	if caps, err := h.registry.Provider("gemini"); err == nil {
		providers = append(providers, ProviderResponse{
			ID:         "gemini",
			Name:       "Google Gemini",
			Configured: h.config.GeminiAPIKey != "",
			Generation: convertModels(caps.Generation.Models),
			Speech:     convertModels(caps.Speech.Models),
			Voices:     caps.Speech.Voices,
			Audio:      caps.Speech.Audio,
		})
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"providers": providers,
	})
}

func convertModels(models []capabilities.ModelCapabilities) []ModelResponse {
	out := make([]ModelResponse, 0, len(models))
	for _, m := range models {
		out = append(out, ModelResponse{
			ID:              m.ID,
			Default:         m.Default,
			MaxOutputTokens: m.MaxOutputTokens,
		})
	}
	return out
}
