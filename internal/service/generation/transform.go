package generation

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"omnislide/internal/config"
	"omnislide/internal/domain/models"
	"omnislide/internal/domain/services"
)

// transformOutline coerces the provider's outline into the internal
// slide model. Every point becomes a text content block, point order
// preserved; slide and block ids are minted fresh and never taken from
// the response. Any schema violation fails the whole outline - the
// caller falls back to the mock deck rather than shipping a partial one.
func transformOutline(outline []services.OutlineSlide) ([]models.Slide, error) {
	if len(outline) == 0 {
		return nil, fmt.Errorf("empty outline")
	}

	slides := make([]models.Slide, 0, len(outline))
	for i := range outline {
		if err := validateOutlineSlide(&outline[i]); err != nil {
			return nil, fmt.Errorf("slide %d: %w", i, err)
		}

		points := clampPoints(outline[i].Points)
		blocks := make([]models.ContentBlock, 0, len(points))
		for _, point := range points {
			blocks = append(blocks, models.ContentBlock{
				ID:      models.NewBlockID(),
				Type:    models.BlockTypeText,
				Content: point,
			})
		}

		slides = append(slides, models.Slide{
			ID:          models.NewSlideID(),
			Title:       strings.TrimSpace(outline[i].Title),
			Blocks:      blocks,
			Notes:       outline[i].Notes,
			ImagePrompt: outline[i].ImagePrompt,
			Layout:      models.SlideLayout(outline[i].Layout),
		})
	}

	return slides, nil
}

// validateOutlineSlide checks one outline slide against the requested
// schema: non-empty title, at least one usable point, enumerated layout.
func validateOutlineSlide(s *services.OutlineSlide) error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Title,
			validation.Required,
			validation.Length(1, config.MaxSlideTitleLength),
		),
		validation.Field(&s.Points,
			validation.Required,
			validation.By(validatePoints),
		),
		validation.Field(&s.Layout,
			validation.Required,
			validation.In(
				string(models.LayoutStandard),
				string(models.LayoutSplit),
				string(models.LayoutHero),
			),
		),
	)
}

func validatePoints(value interface{}) error {
	points, ok := value.([]string)
	if !ok {
		return fmt.Errorf("points must be a string list")
	}
	for _, p := range points {
		if strings.TrimSpace(p) != "" {
			return nil
		}
	}
	return fmt.Errorf("no usable points")
}

// clampPoints drops blank points and caps the count. The schema asks
// for 3-4 points per slide but that is advisory; the upstream count is
// validated and clamped, never trusted.
func clampPoints(points []string) []string {
	out := make([]string, 0, config.MaxPointsPerSlide)
	for _, p := range points {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, p)
		if len(out) == config.MaxPointsPerSlide {
			break
		}
	}
	return out
}
