// Package audio synthesizes a two-host podcast summary of a deck via
// the text-to-speech endpoint. Audio is a secondary feature: unlike
// slide generation this pipeline surfaces its failures to the caller
// rather than degrading to fabricated output.
package audio

import (
	"context"
	"fmt"
	"log/slog"

	"omnislide/internal/capabilities"
	"omnislide/internal/domain"
	"omnislide/internal/domain/models"
	"omnislide/internal/domain/services"
)

// service implements services.AudioService.
type service struct {
	provider services.SpeechProvider // nil when no credential is configured
	model    string
	voice    string
	logger   *slog.Logger
}

// NewService creates the audio pipeline. provider may be nil, in which
// case every call reports domain.ErrAudioUnavailable without touching
// the network. Model and voice are pinned from the capability registry.
func NewService(
	provider services.SpeechProvider,
	caps *capabilities.Registry,
	voice string,
	logger *slog.Logger,
) (services.AudioService, error) {
	model, err := caps.DefaultSpeechModel("gemini")
	if err != nil {
		return nil, fmt.Errorf("resolve speech model: %w", err)
	}
	if voice == "" {
		voice = "Kore"
	}
	if !caps.HasVoice("gemini", voice) {
		return nil, fmt.Errorf("unknown voice %q", voice)
	}

	return &service{
		provider: provider,
		model:    model,
		voice:    voice,
		logger:   logger,
	}, nil
}

// GeneratePodcast returns the raw audio payload for a ~45 second
// two-host summary of the slides. Failures propagate; there is no
// retry and no partial-audio handling.
func (s *service) GeneratePodcast(ctx context.Context, slides []models.Slide) ([]byte, error) {
	if s.provider == nil {
		s.logger.Info("audio synthesis unavailable", "reason", "no_credentials")
		return nil, domain.ErrAudioUnavailable
	}

	prompt := buildPodcastPrompt(buildScriptContext(slides))

	data, err := s.provider.SynthesizeSpeech(ctx, &services.SpeechRequest{
		Script: prompt,
		Voice:  s.voice,
		Model:  s.model,
	})
	if err != nil {
		s.logger.Error("audio synthesis failed",
			"model", s.model,
			"voice", s.voice,
			"error", err,
		)
		return nil, &domain.UpstreamError{Message: fmt.Sprintf("audio synthesis failed: %v", err)}
	}

	if len(data) == 0 {
		return nil, &domain.UpstreamError{Message: "no audio data returned"}
	}

	s.logger.Info("podcast audio synthesized",
		"slides", len(slides),
		"bytes", len(data),
	)
	return data, nil
}
