package domain

import "github.com/shopspring/decimal"

// CatalogItem is a purchasable item related to the matched catalog image
type CatalogItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Link  string          `json:"link"`
}

// MatchResult is the closest catalog entry found by the similarity search
type MatchResult struct {
	MatchedItemID   string  `json:"itemId"`
	SimilarityScore float64 `json:"similarityScore"` // 0-1
}

// Section headers that must delimit the item list in every response
const (
	HeaderItemDetails  = "ITEM DETAILS:"
	HeaderSimilarItems = "SIMILAR ITEMS:"
)

// IsExactMatch reports whether a score counts as an exact match for the threshold.
// A score equal to the threshold is exact.
func IsExactMatch(similarityScore, threshold float64) bool {
	return similarityScore >= threshold
}

// SectionHeader returns the header the response must carry for the given match quality
func SectionHeader(exact bool) string {
	if exact {
		return HeaderItemDetails
	}
	return HeaderSimilarItems
}
