// Package gemini implements the deck and speech provider ports over
// the Google Gen AI SDK. One provider instance serves both pipelines;
// it exists only when a GEMINI_API_KEY is configured.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"omnislide/internal/domain/services"
)

// Provider wraps a genai client. Implements services.DeckProvider and
// services.SpeechProvider.
type Provider struct {
	client *genai.Client
	logger *slog.Logger
}

// NewProvider creates a Gemini provider from an API key.
func NewProvider(ctx context.Context, apiKey string, logger *slog.Logger) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Provider{
		client: client,
		logger: logger,
	}, nil
}

// deckSchema is the strict output schema sent with every deck request.
// The service treats any response that does not parse against it as a
// pipeline failure.
func deckSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title": {Type: genai.TypeString},
				"points": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "List of bullet points for the slide body",
				},
				"notes":       {Type: genai.TypeString},
				"imagePrompt": {Type: genai.TypeString},
				"layout": {
					Type: genai.TypeString,
					Enum: []string{"standard", "split", "hero"},
				},
			},
			Required: []string{"title", "points", "notes", "imagePrompt", "layout"},
		},
	}
}

// GenerateDeck issues one structured-output request and parses the
// JSON array of outline slides.
func (p *Provider) GenerateDeck(ctx context.Context, req *services.DeckRequest) ([]services.OutlineSlide, error) {
	resp, err := p.client.Models.GenerateContent(ctx, req.Model,
		genai.Text(req.Prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   deckSchema(),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("no response from model")
	}

	var outline []services.OutlineSlide
	if err := json.Unmarshal([]byte(text), &outline); err != nil {
		return nil, fmt.Errorf("decode outline: %w", err)
	}

	p.logger.Debug("deck outline received",
		"model", req.Model,
		"slides", len(outline),
	)
	return outline, nil
}

// SynthesizeSpeech issues one audio-modality request with the given
// prebuilt voice and returns the raw audio payload. The SDK decodes
// the base64 transit encoding; callers get bytes.
func (p *Provider) SynthesizeSpeech(ctx context.Context, req *services.SpeechRequest) ([]byte, error) {
	resp, err := p.client.Models.GenerateContent(ctx, req.Model,
		genai.Text(req.Script),
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &genai.SpeechConfig{
				VoiceConfig: &genai.VoiceConfig{
					PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
						VoiceName: req.Voice,
					},
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("generate audio: %w", err)
	}

	data := firstInlineAudio(resp)
	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data returned")
	}

	p.logger.Debug("audio synthesized",
		"model", req.Model,
		"voice", req.Voice,
		"bytes", len(data),
	)
	return data, nil
}

// firstInlineAudio extracts the single inline audio payload from the
// first candidate, if present.
func firstInlineAudio(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return nil
	}
	for _, part := range content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data
		}
	}
	return nil
}
