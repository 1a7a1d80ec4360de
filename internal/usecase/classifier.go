package usecase

import "strings"

// queryIntent is the coarse routing decision made before any scoring.
type queryIntent int

const (
	intentFreeText queryIntent = iota
	intentPromo
	intentContextual
	intentBrowse
)

// Intent vocabularies. Checks are substring checks against the lowered query,
// which is what lets multi-word keys like "tell me more" match.
var (
	promoKeywords = []string{"sale", "offers", "discounts", "deals", "promotion", "cheap", "save"}

	contextKeywords = []string{"ingredients", "description", "price", "cost", "details", "tell me more", "specs", "info"}

	browseKeywords = []string{"products", "catalog", "list", "show me", "what do you have", "collection", "offer"}
)

// classify routes a query. Precedence is fixed: promo beats contextual beats
// browse; a promotional query mentioning "price" is still promo. lastHandle
// gates the contextual arm — without remembered context there is nothing for
// a follow-up to resolve against.
func classify(query, lastHandle string) queryIntent {
	q := strings.ToLower(strings.TrimSpace(query))
	words := len(strings.Fields(q))

	if containsAny(q, promoKeywords) {
		return intentPromo
	}
	if lastHandle != "" && words < 6 && containsAny(q, contextKeywords) {
		return intentContextual
	}
	if (containsAny(q, browseKeywords) && words < 10) || q == "products" || q == "all products" {
		return intentBrowse
	}
	return intentFreeText
}

func containsAny(q string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}
