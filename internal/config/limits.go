package config

const (
	// MaxProjectTitleLength is the maximum length for project titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (titles should be short and descriptive).
	MaxProjectTitleLength = 255

	// MaxTopicLength is the maximum length for a generation topic.
	// The topic is interpolated into the model prompt, so it is kept
	// short; long-form material belongs in the context field.
	MaxTopicLength = 500

	// MaxContextLength is the maximum length for the free-text source
	// context supplied with a generation request. Bounded so a single
	// request cannot blow past the model's input window.
	MaxContextLength = 50000

	// MaxSlideTitleLength is the maximum length for slide titles.
	MaxSlideTitleLength = 255

	// GeneratedSlideCount is the number of slides requested from the
	// live generation model (one per extracted theme).
	GeneratedSlideCount = 5

	// MaxPointsPerSlide caps how many content points are kept per slide.
	// The model is asked for 3-4 but that is advisory; anything beyond
	// this is clamped rather than trusted.
	MaxPointsPerSlide = 4

	// MaxDisplayNameLength is the maximum length for a profile display name.
	MaxDisplayNameLength = 100
)
