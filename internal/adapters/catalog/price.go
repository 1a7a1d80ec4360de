package catalog

import "fmt"

// FormatPriceRange renders the display price: a single value, a "low - high"
// range, or "Not specified" when no price parsed. On-sale products carry the
// sale marker prefix the prompt builder looks for.
func FormatPriceRange(prices []float64, onSale bool) string {
	if len(prices) == 0 {
		return "Not specified"
	}
	min, max := prices[0], prices[0]
	for _, p := range prices[1:] {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	s := fmt.Sprintf("%d", int(min))
	if min != max {
		s = fmt.Sprintf("%d - %d", int(min), int(max))
	}
	if onSale {
		s = "🔥 ON SALE! " + s
	}
	return s
}
