package capabilities

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the model and voice capabilities loaded from the
// embedded YAML files. Model ids used by the pipelines are pinned here
// rather than hardcoded at call sites.
type Registry struct {
	providers map[string]*ProviderCapabilities
	mu        sync.RWMutex
}

// NewRegistry creates a new capability registry and loads embedded YAML files
func NewRegistry() (*Registry, error) {
	r := &Registry{
		providers: make(map[string]*ProviderCapabilities),
	}

	if err := r.loadProviderFile("gemini"); err != nil {
		return nil, fmt.Errorf("failed to load gemini capabilities: %w", err)
	}

	return r, nil
}

// loadProviderFile loads a provider's capability YAML file
func (r *Registry) loadProviderFile(provider string) error {
	filename := fmt.Sprintf("config/%s.yaml", provider)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var providerCaps ProviderCapabilities
	if err := yaml.Unmarshal(data, &providerCaps); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	r.mu.Lock()
	r.providers[provider] = &providerCaps
	r.mu.Unlock()

	return nil
}

// Provider returns the full capability record for a provider.
func (r *Registry) Provider(name string) (*ProviderCapabilities, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	caps, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
	return caps, nil
}

// DefaultGenerationModel returns the id of the default structured-output
// model for the provider.
func (r *Registry) DefaultGenerationModel(provider string) (string, error) {
	caps, err := r.Provider(provider)
	if err != nil {
		return "", err
	}
	return defaultModelID(caps.Generation.Models, provider, "generation")
}

// DefaultSpeechModel returns the id of the default text-to-speech model
// for the provider.
func (r *Registry) DefaultSpeechModel(provider string) (string, error) {
	caps, err := r.Provider(provider)
	if err != nil {
		return "", err
	}
	return defaultModelID(caps.Speech.Models, provider, "speech")
}

// Voices returns the prebuilt voice names accepted by the provider's
// speech models, ordered as defined in the YAML.
func (r *Registry) Voices(provider string) ([]string, error) {
	caps, err := r.Provider(provider)
	if err != nil {
		return nil, err
	}
	return caps.Speech.Voices, nil
}

// HasVoice reports whether the provider offers the named prebuilt voice.
func (r *Registry) HasVoice(provider, voice string) bool {
	voices, err := r.Voices(provider)
	if err != nil {
		return false
	}
	for _, v := range voices {
		if v == voice {
			return true
		}
	}
	return false
}

// AudioFormat returns the fixed output format of the provider's speech
// models (24 kHz mono PCM for current Gemini TTS).
func (r *Registry) AudioFormat(provider string) (*AudioFormat, error) {
	caps, err := r.Provider(provider)
	if err != nil {
		return nil, err
	}
	return &caps.Speech.Audio, nil
}

func defaultModelID(models []ModelCapabilities, provider, kind string) (string, error) {
	for i := range models {
		if models[i].Default {
			return models[i].ID, nil
		}
	}
	if len(models) > 0 {
		return models[0].ID, nil
	}
	return "", fmt.Errorf("no %s models configured for provider %s", kind, provider)
}
