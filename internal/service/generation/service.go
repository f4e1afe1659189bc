package generation

import (
	"context"
	"fmt"
	"log/slog"

	"omnislide/internal/capabilities"
	"omnislide/internal/config"
	"omnislide/internal/domain/models"
	"omnislide/internal/domain/services"
)

// Fallback reasons logged when live generation is skipped or fails.
// Structured so operators can tell "by design" (no credential) from
// "degraded" (request or payload trouble).
const (
	FallbackNoCredentials = "no_credentials"
	FallbackRequestFailed = "request_failed"
	FallbackBadPayload    = "bad_payload"
	FallbackEmptyDeck     = "empty_deck"
)

// service implements services.GenerationService.
type service struct {
	provider services.DeckProvider // nil when no credential is configured
	model    string
	logger   *slog.Logger
}

// NewService creates the generation pipeline. provider may be nil, in
// which case every call returns the mock deck. The model id is pinned
// from the capability registry.
func NewService(
	provider services.DeckProvider,
	caps *capabilities.Registry,
	logger *slog.Logger,
) (services.GenerationService, error) {
	model, err := caps.DefaultGenerationModel("gemini")
	if err != nil {
		return nil, fmt.Errorf("resolve generation model: %w", err)
	}

	return &service{
		provider: provider,
		model:    model,
		logger:   logger,
	}, nil
}

// GenerateSlides is total: it never returns an error and never panics
// on upstream misbehavior. Any failure is logged with its reason and
// converted into the deterministic mock deck derived from the topic.
func (s *service) GenerateSlides(ctx context.Context, topic, sourceContext string) []models.Slide {
	if s.provider == nil {
		s.logger.Info("generation falling back to mock deck",
			"reason", FallbackNoCredentials,
			"topic", topic,
		)
		return MockSlides(topic)
	}

	req := &services.DeckRequest{
		Prompt: buildDeckPrompt(topic, sourceContext, config.GeneratedSlideCount),
		Model:  s.model,
	}

	outline, err := s.provider.GenerateDeck(ctx, req)
	if err != nil {
		s.logger.Error("generation falling back to mock deck",
			"reason", FallbackRequestFailed,
			"topic", topic,
			"model", s.model,
			"error", err,
		)
		return MockSlides(topic)
	}

	if len(outline) == 0 {
		s.logger.Error("generation falling back to mock deck",
			"reason", FallbackEmptyDeck,
			"topic", topic,
			"model", s.model,
		)
		return MockSlides(topic)
	}

	slides, err := transformOutline(outline)
	if err != nil {
		s.logger.Error("generation falling back to mock deck",
			"reason", FallbackBadPayload,
			"topic", topic,
			"model", s.model,
			"error", err,
		)
		return MockSlides(topic)
	}

	s.logger.Info("deck generated",
		"topic", topic,
		"model", s.model,
		"slides", len(slides),
	)
	return slides
}
