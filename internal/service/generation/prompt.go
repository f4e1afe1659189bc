package generation

import "fmt"

// buildDeckPrompt assembles the one-shot generation prompt: persona
// instruction, raw source context, topic, requested slide count, and
// the content requirements the response schema enforces on the wire.
func buildDeckPrompt(topic, sourceContext string, slideCount int) string {
	return fmt.Sprintf(`Role: You are a world-class presentation designer and storyteller using the "Deep Context" method.

Input Context:
%s

Task: Create a structured presentation for the topic: %q.

Requirements:
1. Analyze the context and extract %d key themes/chapters.
2. For each theme, generate a slide.
3. Each slide must have a title, a list of 3-4 distinct content points (blocks), comprehensive speaker notes, and a HIGHLY DETAILED image generation prompt for Imagen 3.
4. The image prompt should describe a visual metaphor or a clean, modern, abstract 3D visualization suitable for a tech presentation.
5. Assign a layout type (standard, split, hero).`, sourceContext, topic, slideCount)
}
