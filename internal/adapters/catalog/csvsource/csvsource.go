// Package csvsource loads a brand catalog from a storefront tabular export
// (CSV or XLSX). Exports carry one row per variant; rows are folded by handle
// into single products.
package csvsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/niharagg/brandchat/internal/adapters/catalog"
	"github.com/niharagg/brandchat/internal/domain"
)

// Source reads one brand's export file.
type Source struct {
	brandID   string
	domain    string
	path      string
	descLimit int
}

func New(brandID, storeDomain, path string, descLimit int) *Source {
	return &Source{brandID: brandID, domain: storeDomain, path: path, descLimit: descLimit}
}

// Load parses the export. Individual malformed fields degrade to safe
// defaults; only an unreadable file fails the whole brand.
func (s *Source) Load(ctx context.Context) ([]domain.ProductContext, error) {
	rows, err := s.readRows()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("export %s: no data rows", s.path)
	}
	return s.buildProducts(rows[0], rows[1:]), nil
}

// ShopDetails for tabular brands is synthesized: exports carry no contact data.
func (s *Source) ShopDetails(ctx context.Context) (domain.ShopInfo, error) {
	name := s.brandID
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return domain.ShopInfo{
		Name:   name,
		Email:  "Not specified (CSV Mode)",
		Domain: s.domain,
	}, nil
}

func (s *Source) readRows() ([][]string, error) {
	if strings.EqualFold(filepath.Ext(s.path), ".xlsx") {
		return readXLSX(s.path)
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx %s: no sheets", path)
	}
	return f.GetRows(sheets[0])
}

// columnMap resolves the export's column layout. Shopify exports and generic
// spreadsheets name these differently, so each concern is sniffed against a
// preference list.
type columnMap struct {
	index     map[string]int
	inventory string
	price     string
	body      string
}

func sniffColumns(header []string) columnMap {
	cm := columnMap{index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		cm.index[h] = i
	}
	cm.inventory = firstPresent(cm.index, "Variant Inventory Qty", "Qty", "Stock")
	cm.price = firstPresent(cm.index, "Variant Price", "Price")
	cm.body = firstPresent(cm.index, "Body (HTML)", "Description")
	return cm
}

func firstPresent(index map[string]int, candidates ...string) string {
	for _, c := range candidates {
		if _, ok := index[c]; ok {
			return c
		}
	}
	return ""
}

func (cm columnMap) get(row []string, col string) string {
	i, ok := cm.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

var priceDigitsRe = regexp.MustCompile(`[^\d.]`)

func (s *Source) buildProducts(header []string, rows [][]string) []domain.ProductContext {
	cm := sniffColumns(header)

	var order []string
	grouped := map[string][][]string{}
	for _, row := range rows {
		handle := cm.get(row, "Handle")
		if handle == "" {
			continue
		}
		if _, seen := grouped[handle]; !seen {
			order = append(order, handle)
		}
		grouped[handle] = append(grouped[handle], row)
	}

	products := make([]domain.ProductContext, 0, len(order))
	for _, handle := range order {
		products = append(products, s.foldProduct(cm, handle, grouped[handle]))
	}
	log.Info().Str("brand", s.brandID).Str("file", s.path).Int("products", len(products)).Msg("tabular export parsed")
	return products
}

// foldProduct builds one product from all rows sharing a handle. Product-level
// fields come from the first row, each row contributes one variant.
func (s *Source) foldProduct(cm columnMap, handle string, rows [][]string) domain.ProductContext {
	base := rows[0]

	variants := make([]domain.ProductVariant, 0, len(rows))
	var prices []float64
	for _, row := range rows {
		rawPrice := cm.get(row, cm.price)
		if v := priceDigitsRe.ReplaceAllString(rawPrice, ""); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				prices = append(prices, f)
			}
		}
		variants = append(variants, domain.ProductVariant{
			ID:              cm.get(row, "Variant SKU"),
			Title:           cm.get(row, "Option1 Value"),
			Price:           rawPrice,
			InventoryQty:    parseQty(cm.get(row, cm.inventory)),
			InventoryPolicy: strings.ToLower(orDefault(cm.get(row, "Variant Inventory Policy"), "deny")),
			SKU:             cm.get(row, "Variant SKU"),
		})
	}

	var tags []string
	for _, t := range strings.Split(cm.get(base, "Tags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return domain.ProductContext{
		Handle:      handle,
		Title:       cm.get(base, "Title"),
		Description: catalog.StripHTML(cm.get(base, cm.body), s.descLimit),
		Tags:        tags,
		Vendor:      cm.get(base, "Vendor"),
		Variants:    variants,
		URL:         fmt.Sprintf("https://%s/products/%s", s.domain, handle),
		PriceRange:  catalog.FormatPriceRange(prices, false),
	}
}

// parseQty tolerates floats and junk. Unknown quantities default to 100, the
// export convention for "not tracked".
func parseQty(raw string) int {
	if raw == "" {
		return 100
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 100
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
