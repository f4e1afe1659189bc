package models

import (
	"time"

	"github.com/google/uuid"
)

// BlockType identifies the kind of content a block carries.
// Only text blocks are produced by the generation pipeline today; image
// and code blocks exist for editor-authored content.
type BlockType string

const (
	BlockTypeText  BlockType = "text"
	BlockTypeImage BlockType = "image"
	BlockTypeCode  BlockType = "code"
)

// SlideLayout controls presentation arrangement only. It has no
// behavioral effect anywhere in the backend.
type SlideLayout string

const (
	LayoutStandard SlideLayout = "standard"
	LayoutSplit    SlideLayout = "split"
	LayoutHero     SlideLayout = "hero"
)

// ValidLayout reports whether s is one of the enumerated layout tags.
func ValidLayout(s string) bool {
	switch SlideLayout(s) {
	case LayoutStandard, LayoutSplit, LayoutHero:
		return true
	}
	return false
}

// ProjectStatus tracks a project through deck generation. A project is
// "generating" for at most one in-flight pipeline call; because the
// generation pipeline is total, it always resolves to "ready".
type ProjectStatus string

const (
	StatusDraft      ProjectStatus = "draft"
	StatusGenerating ProjectStatus = "generating"
	StatusReady      ProjectStatus = "ready"
)

// ContentBlock is the atomic unit of slide content. The id is immutable
// after creation; metadata is opaque auxiliary data the core never
// interprets.
type ContentBlock struct {
	ID       string                 `json:"id"`
	Type     BlockType              `json:"type"`
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Slide is one scrollable unit of the presentation. Blocks are owned
// exclusively by the slide and their order is presentation order.
type Slide struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Blocks      []ContentBlock `json:"blocks"`
	Notes       string         `json:"notes"`
	ImagePrompt string         `json:"imagePrompt"`
	Layout      SlideLayout    `json:"layout"`
}

// Project is one user-authored deck. Topic is the immutable generation
// seed; Title is user-editable. Slides are owned exclusively by the
// project and their order is meaningful.
type Project struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId"`
	Title        string        `json:"title"`
	Topic        string        `json:"topic"`
	Slides       []Slide       `json:"slides"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	Status       ProjectStatus `json:"status"`
	ThumbnailURL *string       `json:"thumbnailUrl,omitempty"`
}

// NewProjectID mints a fresh project id. Ids are opaque, globally unique
// within their collection, and never reused.
func NewProjectID() string {
	return "project-" + uuid.NewString()
}

// NewSlideID mints a fresh slide id.
func NewSlideID() string {
	return "slide-" + uuid.NewString()
}

// NewBlockID mints a fresh block id.
func NewBlockID() string {
	return "block-" + uuid.NewString()
}

// ProjectPatch is a partial project update. Nil fields are left unchanged.
type ProjectPatch struct {
	Title        *string        `json:"title"`
	Status       *ProjectStatus `json:"status"`
	ThumbnailURL *string        `json:"thumbnailUrl"`
}

// SlidePatch is a partial slide update. Nil fields are left unchanged.
type SlidePatch struct {
	Title       *string      `json:"title"`
	Notes       *string      `json:"notes"`
	ImagePrompt *string      `json:"imagePrompt"`
	Layout      *SlideLayout `json:"layout"`
}

// CloneBlock returns a deep copy of a content block.
func CloneBlock(b ContentBlock) ContentBlock {
	out := b
	if b.Metadata != nil {
		out.Metadata = make(map[string]interface{}, len(b.Metadata))
		for k, v := range b.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// CloneSlide returns a deep copy of a slide, blocks included.
func CloneSlide(s Slide) Slide {
	out := s
	out.Blocks = make([]ContentBlock, len(s.Blocks))
	for i, b := range s.Blocks {
		out.Blocks[i] = CloneBlock(b)
	}
	return out
}

// CloneProject returns a deep copy of a project, slides included.
func CloneProject(p Project) Project {
	out := p
	out.Slides = make([]Slide, len(p.Slides))
	for i, s := range p.Slides {
		out.Slides[i] = CloneSlide(s)
	}
	if p.ThumbnailURL != nil {
		u := *p.ThumbnailURL
		out.ThumbnailURL = &u
	}
	return out
}
