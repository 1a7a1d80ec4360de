package usecase

import (
	"regexp"
	"sort"
	"strings"

	"github.com/niharagg/brandchat/internal/domain"
)

// Filler words stripped before scoring. Closed set on purpose: this is a
// lexical engine, not a language model.
var stopWords = map[string]struct{}{
	"i": {}, "want": {}, "need": {}, "to": {}, "buy": {}, "get": {},
	"looking": {}, "for": {}, "show": {}, "me": {}, "the": {}, "a": {},
	"an": {}, "only": {}, "just": {}, "with": {}, "in": {},
	"products": {}, "product": {}, "is": {}, "are": {}, "there": {},
	"any": {}, "do": {}, "you": {}, "have": {},
}

// Concept words expand to the concrete product types they usually mean.
// Expansion is additive and the original tokens are kept.
var synonyms = map[string][]string{
	"hair":  {"shampoo", "conditioner", "mask", "oil", "scalp"},
	"face":  {"wash", "serum", "moisturizer", "sunscreen", "gel", "cream"},
	"skin":  {"wash", "serum", "moisturizer", "sunscreen", "body"},
	"clean": {"wash", "cleanser", "soap", "bar"},
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]`)

// normalizeText lowers and strips everything non-alphanumeric so that term
// matching is punctuation and whitespace insensitive.
func normalizeText(s string) string {
	return nonAlnumRe.ReplaceAllString(strings.ToLower(s), "")
}

// searchTokens tokenizes a query and drops stop words plus bare context-intent
// words ("ingredients" alone is a follow-up signal, not a product term).
func searchTokens(query string) []string {
	contextSet := make(map[string]struct{}, len(contextKeywords))
	for _, k := range contextKeywords {
		contextSet[k] = struct{}{}
	}
	var tokens []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		w = normalizeText(w)
		if w == "" {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, ctx := contextSet[w]; ctx {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// expandTerms widens tokens through the synonym table. The result keeps
// insertion order and is deduplicated, so scoring is deterministic; the score
// itself is order-insensitive anyway (a sum over set members).
func expandTerms(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	var terms []string
	add := func(t string) {
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			terms = append(terms, t)
		}
	}
	for _, t := range tokens {
		add(t)
	}
	for _, t := range tokens {
		for _, s := range synonyms[t] {
			add(s)
		}
	}
	return terms
}

// rankProducts scores each product by fuzzy-substring hits (title counts
// double what tags do), keeps positives and sorts by descending score.
// The sort is stable: ties keep catalog iteration order.
func rankProducts(products []domain.ProductContext, terms []string) []domain.ProductContext {
	type scored struct {
		product domain.ProductContext
		score   int
	}
	var candidates []scored
	for _, p := range products {
		normTitle := normalizeText(p.Title)
		normTags := normalizeText(strings.Join(p.Tags, " "))
		score := 0
		for _, term := range terms {
			if strings.Contains(normTitle, term) {
				score += 10
			}
			if strings.Contains(normTags, term) {
				score += 5
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{product: p, score: score})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	out := make([]domain.ProductContext, len(candidates))
	for i, c := range candidates {
		out[i] = c.product
	}
	return out
}
