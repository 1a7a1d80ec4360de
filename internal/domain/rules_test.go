package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name     string
		variants []ProductVariant
		want     string
	}{
		{
			"positive total",
			[]ProductVariant{{InventoryQty: 3, InventoryPolicy: "deny"}},
			"In Stock",
		},
		{
			"zero stock but continue policy",
			[]ProductVariant{{InventoryQty: 0, InventoryPolicy: "continue"}},
			"Available (Made to order)",
		},
		{
			"negative clamp via continue variant",
			[]ProductVariant{{InventoryQty: -2, InventoryPolicy: "deny"}, {InventoryQty: 1, InventoryPolicy: "continue"}},
			"Available (Made to order)",
		},
		{
			"sold out",
			[]ProductVariant{{InventoryQty: 0, InventoryPolicy: "deny"}},
			"Out of Stock",
		},
		{
			"no variants",
			nil,
			"Out of Stock",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StockStatus(tt.variants))
		})
	}
}

func TestIsSensitiveQuery(t *testing.T) {
	assert.True(t, IsSensitiveQuery("will this cure my eczema?"))
	assert.True(t, IsSensitiveQuery("Something for ACNE"))
	assert.False(t, IsSensitiveQuery("a gentle face wash"))
}

func TestIsOffTopicQuery(t *testing.T) {
	assert.True(t, IsOffTopicQuery("is this cheaper on Amazon?"))
	assert.True(t, IsOffTopicQuery("what is your revenue"))
	assert.True(t, IsOffTopicQuery("who is the ceo"))
	assert.False(t, IsOffTopicQuery("do you have sunscreen"))
}

func TestIsKitTitle(t *testing.T) {
	assert.True(t, IsKitTitle("Hydrating Ritual Kit"))
	assert.True(t, IsKitTitle("Morning Duo"))
	assert.False(t, IsKitTitle("Rose Face Wash"))
}

func TestSortForPrompt(t *testing.T) {
	results := []SearchResult{
		{Product: ProductContext{Handle: "kit-a", Title: "Glow Kit"}},
		{Product: ProductContext{Handle: "wash", Title: "Face Wash"}},
		{Product: ProductContext{Handle: "kit-b", Title: "Night Set"}},
		{Product: ProductContext{Handle: "serum", Title: "Face Serum"}},
	}

	plain := SortForPrompt(results, "something for my face")
	assert.Equal(t, "wash", plain[0].Product.Handle)
	assert.Equal(t, "serum", plain[1].Product.Handle)
	assert.Equal(t, "kit-a", plain[2].Product.Handle, "stable within groups")
	assert.Equal(t, "kit-b", plain[3].Product.Handle)

	kit := SortForPrompt(results, "show me a gift set")
	assert.Equal(t, "kit-a", kit[0].Product.Handle)
	assert.Equal(t, "kit-b", kit[1].Product.Handle)

	// Input order is untouched.
	assert.Equal(t, "kit-a", results[0].Product.Handle)
}
