package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"omnislide/internal/capabilities"
	"omnislide/internal/domain"
	"omnislide/internal/domain/models"
	"omnislide/internal/domain/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRegistry(t *testing.T) *capabilities.Registry {
	t.Helper()
	caps, err := capabilities.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return caps
}

type fakeSpeech struct {
	data    []byte
	err     error
	calls   int
	lastReq *services.SpeechRequest
}

func (f *fakeSpeech) SynthesizeSpeech(ctx context.Context, req *services.SpeechRequest) ([]byte, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func deck() []models.Slide {
	return []models.Slide{
		{
			ID:    "s1",
			Title: "Opening",
			Blocks: []models.ContentBlock{
				{ID: "b1", Type: models.BlockTypeText, Content: "first"},
				{ID: "b2", Type: models.BlockTypeText, Content: "second"},
			},
			Notes:  "intro notes",
			Layout: models.LayoutHero,
		},
		{
			ID:    "s2",
			Title: "Closing",
			Blocks: []models.ContentBlock{
				{ID: "b3", Type: models.BlockTypeText, Content: "wrap up"},
			},
			Notes:  "outro notes",
			Layout: models.LayoutStandard,
		},
	}
}

func newService(t *testing.T, provider services.SpeechProvider) services.AudioService {
	t.Helper()
	svc, err := NewService(provider, testRegistry(t), "", testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestGeneratePodcastUnavailableWithoutProvider(t *testing.T) {
	svc := newService(t, nil)

	_, err := svc.GeneratePodcast(context.Background(), nil)

	if !errors.Is(err, domain.ErrAudioUnavailable) {
		t.Fatalf("err = %v, want ErrAudioUnavailable", err)
	}
}

func TestGeneratePodcastBuildsScriptFromDeck(t *testing.T) {
	provider := &fakeSpeech{data: []byte{1, 2, 3}}
	svc := newService(t, provider)

	data, err := svc.GeneratePodcast(context.Background(), deck())
	if err != nil {
		t.Fatalf("GeneratePodcast: %v", err)
	}
	if len(data) != 3 {
		t.Errorf("len(data) = %d, want provider payload", len(data))
	}
	if provider.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.calls)
	}

	script := provider.lastReq.Script
	for _, want := range []string{
		"Slide: Opening",
		"Content: first second",
		"Notes: intro notes",
		"Slide: Closing",
		"Alex and Sam",
		"45 seconds",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}
	// Slides are separated by a blank line.
	if !strings.Contains(script, "Notes: intro notes\n\nSlide: Closing") {
		t.Error("slides not blank-line separated in script")
	}
	if provider.lastReq.Voice != "Kore" {
		t.Errorf("voice = %q, want default Kore", provider.lastReq.Voice)
	}
}

func TestGeneratePodcastPropagatesProviderError(t *testing.T) {
	provider := &fakeSpeech{err: fmt.Errorf("tts quota exceeded")}
	svc := newService(t, provider)

	_, err := svc.GeneratePodcast(context.Background(), deck())

	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("err = %v, want upstream error", err)
	}
	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatal("error is not an UpstreamError")
	}
	if !strings.Contains(upstream.Message, "tts quota exceeded") {
		t.Errorf("upstream message %q does not carry cause", upstream.Message)
	}
}

func TestGeneratePodcastFailsOnEmptyPayload(t *testing.T) {
	provider := &fakeSpeech{data: nil}
	svc := newService(t, provider)

	_, err := svc.GeneratePodcast(context.Background(), deck())

	if err == nil || !strings.Contains(err.Error(), "no audio data returned") {
		t.Fatalf("err = %v, want no-audio error", err)
	}
}

func TestNewServiceRejectsUnknownVoice(t *testing.T) {
	_, err := NewService(nil, testRegistry(t), "NotAVoice", testLogger())
	if err == nil {
		t.Fatal("expected error for unknown voice")
	}
}
