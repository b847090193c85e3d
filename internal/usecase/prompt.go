package usecase

import (
	"fmt"
	"strings"

	"github.com/stylefinder/backend/internal/domain"
)

// Both prompts present the photo as ordinary department-store merchandise so the
// provider treats clothing worn by a person as catalog content.
const retailFraming = "You're conducting a professional retail catalog analysis. " +
	"This image shows standard clothing items available in department stores. " +
	"Focus exclusively on professional fashion analysis for a clothing retailer. "

const exactMatchPromptFormat = retailFraming +
	"ITEM DETAILS (always include this section in your response):\n%s\n\n" +
	"Please:\n" +
	"1. Identify and describe the clothing items objectively (colors, patterns, materials)\n" +
	"2. Categorize the overall style (business, casual, etc.)\n" +
	"3. End with a section headed exactly \"ITEM DETAILS:\" that lists the items above\n\n" +
	"This is for a professional retail catalog. Use formal, clinical language."

const similarItemsPromptFormat = retailFraming +
	"SIMILAR ITEMS (always include this section in your response):\n%s\n\n" +
	"Please:\n" +
	"1. Note these are similar but not exact items\n" +
	"2. Identify clothing elements objectively (colors, patterns, materials)\n" +
	"3. End with a section headed exactly \"SIMILAR ITEMS:\" that lists the items above\n\n" +
	"This is for a professional retail catalog. Use formal, clinical language."

// synthesizedHeading and synthesizedSentence open the fallback response
const (
	synthesizedHeading  = "# Fashion Analysis"
	synthesizedSentence = "This outfit features a collection of carefully coordinated pieces."
)

// RenderItems formats items as "- <name> ($<price>): <link>", one per line.
// An empty slice renders as an empty string.
func RenderItems(items []domain.CatalogItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %s ($%s): %s", item.Name, item.Price.String(), item.Link))
	}
	return strings.Join(lines, "\n")
}

// buildPrompt picks the exact-match or similar-items prompt
func buildPrompt(exact bool, itemsBlock string) string {
	if exact {
		return fmt.Sprintf(exactMatchPromptFormat, itemsBlock)
	}
	return fmt.Sprintf(similarItemsPromptFormat, itemsBlock)
}

// appendSection adds the header and item block after the model's prose
func appendSection(raw, header, itemsBlock string) string {
	return raw + "\n\n" + header + "\n" + itemsBlock
}

// synthesizeResponse builds the minimal answer used when the model output is unusable
func synthesizeResponse(header, itemsBlock string) string {
	return synthesizedHeading + "\n\n" + synthesizedSentence + "\n\n" + header + "\n" + itemsBlock
}
