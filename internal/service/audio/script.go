package audio

import (
	"fmt"
	"strings"

	"omnislide/internal/domain/models"
)

// buildScriptContext flattens the deck into the narration source: per
// slide the title, the joined text-block contents, and the speaker
// notes, with a blank line between slides.
func buildScriptContext(slides []models.Slide) string {
	parts := make([]string, 0, len(slides))
	for _, s := range slides {
		contents := make([]string, 0, len(s.Blocks))
		for _, b := range s.Blocks {
			contents = append(contents, b.Content)
		}
		parts = append(parts, fmt.Sprintf("Slide: %s\nContent: %s\nNotes: %s",
			s.Title, strings.Join(contents, " "), s.Notes))
	}
	return strings.Join(parts, "\n\n")
}

// buildPodcastPrompt wraps the script context in the fixed two-host
// podcast instruction.
func buildPodcastPrompt(scriptContext string) string {
	return fmt.Sprintf(`Generate a short, lively, and dynamic podcast intro (approx 45 seconds) summarizing this presentation content.
Style: Two hosts (Alex and Sam) discussing the key takeaways excitedly. It should feel like a snippet from a real tech podcast.
Content to discuss:
%s`, scriptContext)
}
