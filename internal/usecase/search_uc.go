package usecase

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/niharagg/brandchat/internal/domain"
)

// SearchUC is the retrieval and ranking core: it turns a free-text query plus
// short conversational context into a small relevance-ordered set of products,
// each labeled with a match quality the prompt builder depends on.
type SearchUC struct {
	Catalog domain.CatalogStore

	// Result caps; zero values fall back to the defaults (4 direct, 5 fallback).
	DirectCap   int
	FallbackCap int
}

func (uc *SearchUC) directCap() int {
	if uc.DirectCap > 0 {
		return uc.DirectCap
	}
	return 4
}

func (uc *SearchUC) fallbackCap() int {
	if uc.FallbackCap > 0 {
		return uc.FallbackCap
	}
	return 5
}

// Search runs one retrieval call. It always returns a well-formed list
// (possibly empty) and never an error: catalog misses and stale context
// degrade to fallback results.
func (uc *SearchUC) Search(brandID, query, lastHandle string) []domain.SearchResult {
	rawQuery := strings.ToLower(strings.TrimSpace(query))

	switch classify(rawQuery, lastHandle) {
	case intentPromo:
		return uc.promo(brandID)
	case intentContextual:
		return uc.contextual(brandID, lastHandle)
	case intentBrowse:
		return label(uc.featured(brandID), domain.MatchCatalog)
	}

	tokens := searchTokens(rawQuery)
	if len(tokens) == 0 {
		// Nothing left to score; behave like a catalog browse.
		return label(uc.featured(brandID), domain.MatchCatalog)
	}

	ranked := rankProducts(uc.Catalog.Products(brandID), expandTerms(tokens))
	if len(ranked) == 0 {
		return label(uc.featured(brandID), domain.MatchFallback)
	}

	// Individual items outrank kits unless the shopper asked for a kit.
	// Stable, so the scoring order survives within each group.
	if !domain.HasKitIntent(rawQuery) {
		ranked = sortIndividualFirst(ranked)
	}
	if len(ranked) > uc.directCap() {
		ranked = ranked[:uc.directCap()]
	}
	return label(ranked, domain.MatchDirect)
}

// promo returns on-sale products, degrading to the featured set when the
// platform reports no discounts. Either way the label is direct.
func (uc *SearchUC) promo(brandID string) []domain.SearchResult {
	var onSale []domain.ProductContext
	for _, p := range uc.Catalog.Products(brandID) {
		if p.OnSale {
			onSale = append(onSale, p)
		}
		if len(onSale) == uc.fallbackCap() {
			break
		}
	}
	if len(onSale) == 0 {
		onSale = uc.featured(brandID)
	}
	return label(onSale, domain.MatchDirect)
}

// contextual resolves the remembered handle. A stale handle (delisted product)
// is a soft miss and falls through to the featured fallback.
func (uc *SearchUC) contextual(brandID, lastHandle string) []domain.SearchResult {
	if p, ok := uc.Catalog.ProductByHandle(brandID, lastHandle); ok {
		return []domain.SearchResult{{Product: p, Quality: domain.MatchDirect}}
	}
	log.Debug().Str("brand", brandID).Str("handle", lastHandle).Msg("stale session handle, using fallback")
	return label(uc.featured(brandID), domain.MatchFallback)
}

// featured is the default best-guess subset: the first few catalog entries in
// natural order, deduplicated by handle, non-kit items first.
func (uc *SearchUC) featured(brandID string) []domain.ProductContext {
	limit := uc.fallbackCap()
	head := uc.Catalog.Products(brandID)
	if len(head) > limit+2 {
		head = head[:limit+2]
	}

	var selected []domain.ProductContext
	seen := make(map[string]struct{}, len(head))
	pick := func(p domain.ProductContext) {
		if _, dup := seen[p.Handle]; dup || len(selected) >= limit {
			return
		}
		seen[p.Handle] = struct{}{}
		selected = append(selected, p)
	}
	for _, p := range head {
		if !domain.IsKitTitle(p.Title) {
			pick(p)
		}
	}
	for _, p := range head {
		pick(p)
	}
	return selected
}

func sortIndividualFirst(products []domain.ProductContext) []domain.ProductContext {
	var individual, kits []domain.ProductContext
	for _, p := range products {
		if domain.IsKitTitle(p.Title) {
			kits = append(kits, p)
		} else {
			individual = append(individual, p)
		}
	}
	return append(individual, kits...)
}

// label wraps shared catalog records into per-call result values. Quality is
// never written onto the catalog entry itself.
func label(products []domain.ProductContext, q domain.MatchQuality) []domain.SearchResult {
	results := make([]domain.SearchResult, len(products))
	for i, p := range products {
		results[i] = domain.SearchResult{Product: p, Quality: q}
	}
	return results
}
