package domain

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownBrand    = errors.New("unknown brand")
)

// MatchQuality says how confidently a result satisfies the query that produced
// it. It drives downstream prompt phrasing and is recomputed on every search.
type MatchQuality string

const (
	MatchDirect   MatchQuality = "direct"
	MatchCatalog  MatchQuality = "catalog"
	MatchFallback MatchQuality = "fallback"
)

// ProductVariant is one purchasable SKU of a product.
type ProductVariant struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Price           string `json:"price"`
	InventoryQty    int    `json:"inventory_qty"`
	InventoryPolicy string `json:"inventory_policy"` // "deny" or "continue"
	SKU             string `json:"sku"`
}

// ProductContext is one catalog product with all its variants folded in.
// Instances inside the catalog store are immutable after load; search paths
// hand out copies wrapped in SearchResult and never write back.
type ProductContext struct {
	Handle      string           `json:"handle"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Tags        []string         `json:"tags"`
	Vendor      string           `json:"vendor"`
	Variants    []ProductVariant `json:"variants"`
	URL         string           `json:"url"`
	PriceRange  string           `json:"price_range"`
	OnSale      bool             `json:"on_sale"`
}

// SearchResult is the per-call value a search returns. Quality lives here,
// not on the shared ProductContext, so concurrent requests cannot interfere.
type SearchResult struct {
	Product ProductContext `json:"product"`
	Quality MatchQuality   `json:"match_quality"`
}

// ShopInfo is best-effort store contact data surfaced to the prompt builder.
type ShopInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Domain   string `json:"domain"`
	Currency string `json:"currency"`
}
