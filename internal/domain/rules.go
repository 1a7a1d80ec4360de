package domain

import (
	"regexp"
	"sort"
	"strings"
)

// Kit/bundle products are de-prioritized unless the shopper asks for one.
var kitKeywords = []string{"ritual", "kit", "set", "bundle", "combo", "pack", "trio", "duo"}

var sensitiveRe = regexp.MustCompile(`cure|treat|heal|medicine|doctor|prescription|eczema|psoriasis|acne|infection|inflammation|dermatitis|rosacea|cancer|disease|virus|pain`)

var offTopicRe = regexp.MustCompile(strings.Join([]string{
	// competitors / marketplaces
	`amazon`, `flipkart`, `myntra`, `nykaa`, `aliexpress`,
	`ebay`, `walmart`, `sephora`, `body shop`, `burt's bees`,
	`now foods`, `gnc`, `nature's bounty`,
	// business / corporate
	`revenue`, `stock price`, `market cap`, `profit`,
	`headquarters`, `ceo`, `founder`, `employees`,
	`companies that sell`, `other brands`, `competitors`,
	// general knowledge unrelated to the brand
	`who is`, `what is the capital`, `weather`, `news`,
}, "|"))

// StockStatus aggregates variant inventory into a shopper-facing label.
// A zero total with any "continue" variant still sells as made-to-order.
func StockStatus(variants []ProductVariant) string {
	total := 0
	canContinue := false
	for _, v := range variants {
		total += v.InventoryQty
		if v.InventoryPolicy == "continue" {
			canContinue = true
		}
	}
	switch {
	case total > 0:
		return "In Stock"
	case canContinue:
		return "Available (Made to order)"
	default:
		return "Out of Stock"
	}
}

// IsSensitiveQuery detects medical/safety wording that needs the cosmetic
// disclaimer in the reply.
func IsSensitiveQuery(query string) bool {
	return sensitiveRe.MatchString(strings.ToLower(query))
}

// IsOffTopicQuery detects competitor, corporate or general-knowledge questions
// the assistant must refuse.
func IsOffTopicQuery(query string) bool {
	return offTopicRe.MatchString(strings.ToLower(query))
}

// IsKitTitle reports whether a product title names a multi-item bundle.
func IsKitTitle(title string) bool {
	t := strings.ToLower(title)
	for _, k := range kitKeywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}

// HasKitIntent reports whether the query itself asks for a bundle.
func HasKitIntent(query string) bool {
	return IsKitTitle(query)
}

// SortForPrompt orders results before prompt assembly: kit-like products first
// when the query asks for one, individual items first otherwise. The sort is
// stable so incoming relevance order survives within each group.
func SortForPrompt(results []SearchResult, query string) []SearchResult {
	out := make([]SearchResult, len(results))
	copy(out, results)
	kitFirst := HasKitIntent(query)
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := IsKitTitle(out[i].Product.Title), IsKitTitle(out[j].Product.Title)
		if ki == kj {
			return false
		}
		if kitFirst {
			return ki
		}
		return kj
	})
	return out
}
