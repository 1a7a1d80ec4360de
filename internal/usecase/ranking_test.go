package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niharagg/brandchat/internal/domain"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "rosefacewash", normalizeText("Rose Face-Wash!"))
	assert.Equal(t, "skingentle", normalizeText("skin, gentle"))
	assert.Equal(t, "", normalizeText("  ¡¿!  "))
}

func TestSearchTokens(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"strips stop words", "i want to buy a shampoo", []string{"shampoo"}},
		{"strips context intent words", "ingredients of face wash", []string{"of", "face", "wash"}},
		{"all filler leaves nothing", "do you have any products", nil},
		{"keeps order", "gentle face wash", []string{"gentle", "face", "wash"}},
		{"strips punctuation", "vitamin-c serum?", []string{"vitaminc", "serum"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, searchTokens(tt.query))
		})
	}
}

func TestExpandTerms(t *testing.T) {
	terms := expandTerms([]string{"face", "wash"})

	// Originals first, then synonyms, no duplicates.
	require.GreaterOrEqual(t, len(terms), 2)
	assert.Equal(t, "face", terms[0])
	assert.Equal(t, "wash", terms[1])
	assert.Contains(t, terms, "serum")
	assert.Contains(t, terms, "moisturizer")

	seen := map[string]int{}
	for _, term := range terms {
		seen[term]++
	}
	for term, n := range seen {
		assert.Equal(t, 1, n, "duplicate term %q", term)
	}
}

func TestExpandTermsNoSynonyms(t *testing.T) {
	assert.Equal(t, []string{"shampoo"}, expandTerms([]string{"shampoo"}))
}

func catalogFixture() []domain.ProductContext {
	return []domain.ProductContext{
		{Handle: "rose-face-wash", Title: "Rose Face Wash", Tags: []string{"skin", "gentle"}},
		{Handle: "hydrating-ritual-kit", Title: "Hydrating Ritual Kit", Tags: []string{"bundle", "skin"}},
		{Handle: "plain-soap-bar", Title: "Plain Soap Bar", Tags: []string{"clean"}},
	}
}

func TestRankProductsScoresAndSorts(t *testing.T) {
	terms := expandTerms(searchTokens("face wash for skin"))
	ranked := rankProducts(catalogFixture(), terms)

	// Title hits outrank tag-only hits; no-hit products are dropped.
	require.Len(t, ranked, 2)
	assert.Equal(t, "rose-face-wash", ranked[0].Handle)
	assert.Equal(t, "hydrating-ritual-kit", ranked[1].Handle)
}

func TestRankProductsStableTies(t *testing.T) {
	products := []domain.ProductContext{
		{Handle: "wash-one", Title: "Daily Wash"},
		{Handle: "wash-two", Title: "Night Wash"},
	}
	ranked := rankProducts(products, []string{"wash"})

	require.Len(t, ranked, 2)
	assert.Equal(t, "wash-one", ranked[0].Handle, "ties keep catalog order")
	assert.Equal(t, "wash-two", ranked[1].Handle)
}

func TestRankProductsNoMatches(t *testing.T) {
	assert.Empty(t, rankProducts(catalogFixture(), []string{"telescope"}))
}
