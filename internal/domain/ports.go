package domain

import "context"

// CatalogStore is the read side of a brand's loaded catalog. Implementations
// must be safe for concurrent readers without locking: catalogs are immutable
// after load.
type CatalogStore interface {
	// Products returns the brand's catalog in natural (load) order.
	// Unknown or failed brands yield an empty slice, never an error.
	Products(brandID string) []ProductContext
	// ProductByHandle resolves a handle; ok is false on a miss.
	ProductByHandle(brandID, handle string) (ProductContext, bool)
	// ShopInfo returns best-effort contact details, zero value on failure.
	ShopInfo(brandID string) ShopInfo
	// HasBrand reports whether the brand is registered (even with an empty catalog).
	HasBrand(brandID string) bool
}

// CatalogSource loads one brand's catalog from its backing system
// (tabular export or platform API).
type CatalogSource interface {
	Load(ctx context.Context) ([]ProductContext, error)
	ShopDetails(ctx context.Context) (ShopInfo, error)
}

// SessionRepo stores live conversation sessions.
type SessionRepo interface {
	Create(brandID string) (*Session, error)
	Get(sessionID string) (*Session, error)
}

// ChatModel produces the assistant reply for a turn.
type ChatModel interface {
	Reply(ctx context.Context, in GenerationInput) (string, error)
}

// GenerationInput carries everything the prompt builder needs for one turn.
type GenerationInput struct {
	Query     string
	BrandName string
	ShopInfo  ShopInfo
	Products  []SearchResult
	History   []Message
}
