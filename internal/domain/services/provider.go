package services

import "context"

// OutlineSlide is one slide as returned by the generative endpoint,
// before transformation into the internal model. Field names match the
// JSON schema sent with the request.
type OutlineSlide struct {
	Title       string   `json:"title"`
	Points      []string `json:"points"`
	Notes       string   `json:"notes"`
	ImagePrompt string   `json:"imagePrompt"`
	Layout      string   `json:"layout"`
}

// DeckRequest is a one-shot structured-output generation request. The
// prompt carries the persona instruction, source context, topic and
// requested slide count; the provider enforces the output schema on
// the wire.
type DeckRequest struct {
	Prompt string
	Model  string
}

// DeckProvider is the port to the generative-content endpoint. A nil
// provider means no credential is configured; callers treat that as the
// supported "unavailable" state rather than an error.
type DeckProvider interface {
	GenerateDeck(ctx context.Context, req *DeckRequest) ([]OutlineSlide, error)
}

// SpeechRequest is a one-shot text-to-speech request.
type SpeechRequest struct {
	Script string
	Voice  string
	Model  string
}

// SpeechProvider is the port to the audio-synthesis endpoint. The
// returned bytes are raw audio as delivered by the service (24 kHz mono
// PCM for the current models); base64 transit encoding is the SDK's
// concern, not the caller's.
type SpeechProvider interface {
	SynthesizeSpeech(ctx context.Context, req *SpeechRequest) ([]byte, error)
}
