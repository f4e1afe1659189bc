package capabilities

// ModelCapabilities describes one generative model.
type ModelCapabilities struct {
	ID              string `yaml:"id" json:"id"`
	Default         bool   `yaml:"default" json:"default"`
	MaxOutputTokens int    `yaml:"max_output_tokens" json:"max_output_tokens"`
}

// AudioFormat describes the audio payload delivered by the speech models.
type AudioFormat struct {
	SampleRateHz int    `yaml:"sample_rate_hz" json:"sample_rate_hz"`
	Channels     int    `yaml:"channels" json:"channels"`
	Encoding     string `yaml:"encoding" json:"encoding"`
	MIMEType     string `yaml:"mime_type" json:"mime_type"`
}

// GenerationCapabilities groups the structured-output models.
type GenerationCapabilities struct {
	Models []ModelCapabilities `yaml:"models" json:"models"`
}

// SpeechCapabilities groups the text-to-speech models, the prebuilt
// voices they accept, and the fixed output format.
type SpeechCapabilities struct {
	Models []ModelCapabilities `yaml:"models" json:"models"`
	Voices []string            `yaml:"voices" json:"voices"`
	Audio  AudioFormat         `yaml:"audio" json:"audio"`
}

// ProviderCapabilities is the root of one provider's capability file.
type ProviderCapabilities struct {
	Provider   string                 `yaml:"provider" json:"provider"`
	Generation GenerationCapabilities `yaml:"generation" json:"generation"`
	Speech     SpeechCapabilities     `yaml:"speech" json:"speech"`
}
