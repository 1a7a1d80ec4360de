// Package shopify is a minimal Admin REST client: enough to pull a full
// product catalog with pagination and the shop contact record.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/niharagg/brandchat/internal/adapters/catalog"
	"github.com/niharagg/brandchat/internal/domain"
)

const apiVersion = "2024-01"

type Client struct {
	domain     string
	baseURL    string // overridable in tests
	token      string
	descLimit  int
	httpClient *http.Client
}

func New(shopDomain, accessToken string, descLimit int) *Client {
	shopDomain = strings.ReplaceAll(strings.TrimPrefix(shopDomain, "https://"), "/", "")
	return &Client{
		domain:     shopDomain,
		baseURL:    fmt.Sprintf("https://%s/admin/api/%s", shopDomain, apiVersion),
		token:      accessToken,
		descLimit:  descLimit,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type apiVariant struct {
	ID                int64   `json:"id"`
	Title             *string `json:"title"`
	Price             *string `json:"price"`
	CompareAtPrice    *string `json:"compare_at_price"`
	SKU               *string `json:"sku"`
	InventoryQuantity int     `json:"inventory_quantity"`
	InventoryPolicy   string  `json:"inventory_policy"`
}

type apiProduct struct {
	ID       int64        `json:"id"`
	Handle   string       `json:"handle"`
	Title    string       `json:"title"`
	BodyHTML string       `json:"body_html"`
	Tags     string       `json:"tags"`
	Vendor   string       `json:"vendor"`
	Variants []apiVariant `json:"variants"`
}

// Load pulls every active product, following Link-header pagination.
func (c *Client) Load(ctx context.Context) ([]domain.ProductContext, error) {
	url := c.baseURL + "/products.json?limit=250&status=active"

	var products []domain.ProductContext
	for url != "" {
		body, next, err := c.getPage(ctx, url)
		if err != nil {
			return nil, err
		}
		var page struct {
			Products []apiProduct `json:"products"`
		}
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode products page: %w", err)
		}
		for _, item := range page.Products {
			products = append(products, c.mapProduct(item))
		}
		url = next
	}
	log.Info().Str("shop", c.domain).Int("products", len(products)).Msg("shopify sync complete")
	return products, nil
}

// ShopDetails fetches contact data from shop.json. Best effort: callers treat
// an error as "no info".
func (c *Client) ShopDetails(ctx context.Context) (domain.ShopInfo, error) {
	url := c.baseURL + "/shop.json"
	body, _, err := c.getPage(ctx, url)
	if err != nil {
		return domain.ShopInfo{}, err
	}
	var resp struct {
		Shop struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Phone    string `json:"phone"`
			Domain   string `json:"domain"`
			Currency string `json:"currency"`
		} `json:"shop"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.ShopInfo{}, fmt.Errorf("decode shop: %w", err)
	}
	return domain.ShopInfo{
		Name:     resp.Shop.Name,
		Email:    resp.Shop.Email,
		Phone:    resp.Shop.Phone,
		Domain:   resp.Shop.Domain,
		Currency: resp.Shop.Currency,
	}, nil
}

func (c *Client) getPage(ctx context.Context, url string) (body []byte, next string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("X-Shopify-Access-Token", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("shopify %s: status %d", url, resp.StatusCode)
	}
	return body, nextPageURL(resp.Header.Get("Link")), nil
}

// nextPageURL extracts the rel="next" target from a Link header, empty when
// on the last page.
func nextPageURL(linkHeader string) string {
	for _, link := range strings.Split(linkHeader, ",") {
		if !strings.Contains(link, `rel="next"`) {
			continue
		}
		target := strings.SplitN(link, ";", 2)[0]
		return strings.Trim(strings.TrimSpace(target), "<>")
	}
	return ""
}

func (c *Client) mapProduct(item apiProduct) domain.ProductContext {
	variants := make([]domain.ProductVariant, 0, len(item.Variants))
	var prices []float64
	onSale := false
	for _, v := range item.Variants {
		price := parseAPIPrice(v.Price)
		if compare := parseAPIPrice(v.CompareAtPrice); compare > price {
			onSale = true
		}
		prices = append(prices, price)
		variants = append(variants, domain.ProductVariant{
			ID:              strconv.FormatInt(v.ID, 10),
			Title:           deref(v.Title),
			Price:           strconv.Itoa(int(price)),
			InventoryQty:    v.InventoryQuantity,
			InventoryPolicy: orDeny(v.InventoryPolicy),
			SKU:             deref(v.SKU),
		})
	}

	var tags []string
	for _, t := range strings.Split(item.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	handle := item.Handle
	if handle == "" {
		handle = "unknown"
	}

	return domain.ProductContext{
		Handle:      handle,
		Title:       item.Title,
		Description: catalog.StripHTML(item.BodyHTML, c.descLimit),
		Tags:        tags,
		Vendor:      item.Vendor,
		Variants:    variants,
		URL:         fmt.Sprintf("https://%s/products/%s", c.domain, handle),
		PriceRange:  catalog.FormatPriceRange(prices, onSale),
		OnSale:      onSale,
	}
}

func parseAPIPrice(p *string) float64 {
	if p == nil {
		return 0
	}
	f, err := strconv.ParseFloat(*p, 64)
	if err != nil {
		return 0
	}
	return f
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDeny(policy string) string {
	if policy == "" {
		return "deny"
	}
	return policy
}
