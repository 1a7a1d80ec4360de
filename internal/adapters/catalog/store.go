package catalog

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/niharagg/brandchat/internal/domain"
)

// BrandSource pairs a registered brand with the source its catalog loads from.
type BrandSource struct {
	ID     string
	Source domain.CatalogSource
}

type brandCatalog struct {
	products []domain.ProductContext
	byHandle map[string]int
	info     domain.ShopInfo
}

// Store is the in-memory multi-brand catalog. Each brand's product list is
// built once at construction and never mutated afterwards, so reads need no
// locking.
type Store struct {
	brands map[string]*brandCatalog
}

// NewStore bulk-loads every brand. A failing source leaves that brand
// registered with an empty catalog: searches degrade, the process does not.
func NewStore(ctx context.Context, sources []BrandSource) *Store {
	s := &Store{brands: make(map[string]*brandCatalog, len(sources))}
	for _, bs := range sources {
		bc := &brandCatalog{byHandle: map[string]int{}}
		s.brands[bs.ID] = bc

		products, err := bs.Source.Load(ctx)
		if err != nil {
			log.Warn().Err(err).Str("brand", bs.ID).Msg("catalog load failed, brand starts empty")
			continue
		}
		for _, p := range products {
			if _, dup := bc.byHandle[p.Handle]; dup {
				continue
			}
			bc.byHandle[p.Handle] = len(bc.products)
			bc.products = append(bc.products, p)
		}

		info, err := bs.Source.ShopDetails(ctx)
		if err != nil {
			log.Warn().Err(err).Str("brand", bs.ID).Msg("shop details unavailable")
		} else {
			bc.info = info
		}
		log.Info().Str("brand", bs.ID).Int("products", len(bc.products)).Msg("catalog loaded")
	}
	return s
}

func (s *Store) Products(brandID string) []domain.ProductContext {
	bc, ok := s.brands[brandID]
	if !ok {
		return nil
	}
	return bc.products
}

func (s *Store) ProductByHandle(brandID, handle string) (domain.ProductContext, bool) {
	bc, ok := s.brands[brandID]
	if !ok {
		return domain.ProductContext{}, false
	}
	i, ok := bc.byHandle[handle]
	if !ok {
		return domain.ProductContext{}, false
	}
	return bc.products[i], true
}

func (s *Store) ShopInfo(brandID string) domain.ShopInfo {
	bc, ok := s.brands[brandID]
	if !ok {
		return domain.ShopInfo{}
	}
	return bc.info
}

func (s *Store) HasBrand(brandID string) bool {
	_, ok := s.brands[brandID]
	return ok
}
