package generation

import "omnislide/internal/domain/models"

// MockSlides produces the deterministic, credential-independent deck
// returned whenever live generation is unavailable or fails. The first
// slide's title equals the input topic exactly; everything else is
// fixed placeholder content. Layouts are hero, split, standard in that
// order. Ids are minted fresh on every call, so repeated fallbacks
// never reuse an id.
func MockSlides(topic string) []models.Slide {
	return []models.Slide{
		{
			ID:    models.NewSlideID(),
			Title: topic,
			Blocks: []models.ContentBlock{
				textBlock("Introduction au sujet"),
				textBlock("Vue d'ensemble des concepts clés"),
			},
			Notes:       "Notes d'introduction pour le présentateur",
			ImagePrompt: "Modern abstract 3D visualization with flowing gradients",
			Layout:      models.LayoutHero,
		},
		{
			ID:    models.NewSlideID(),
			Title: "Contexte et enjeux",
			Blocks: []models.ContentBlock{
				textBlock("Analyse du contexte actuel"),
				textBlock("Principaux défis identifiés"),
				textBlock("Opportunités à saisir"),
			},
			Notes:       "Expliquer le contexte et les enjeux stratégiques",
			ImagePrompt: "Clean geometric shapes representing challenges",
			Layout:      models.LayoutSplit,
		},
		{
			ID:    models.NewSlideID(),
			Title: "Conclusion",
			Blocks: []models.ContentBlock{
				textBlock("Résumé des points clés"),
				textBlock("Prochaines étapes"),
			},
			Notes:       "Conclure avec impact",
			ImagePrompt: "Inspiring future vision visualization",
			Layout:      models.LayoutStandard,
		},
	}
}

func textBlock(content string) models.ContentBlock {
	return models.ContentBlock{
		ID:      models.NewBlockID(),
		Type:    models.BlockTypeText,
		Content: content,
	}
}
