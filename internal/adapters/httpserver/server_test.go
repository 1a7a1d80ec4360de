package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niharagg/brandchat/internal/adapters/session/memstore"
	"github.com/niharagg/brandchat/internal/domain"
	"github.com/niharagg/brandchat/internal/usecase"
)

type stubCatalog struct {
	products []domain.ProductContext
}

func (s *stubCatalog) Products(brandID string) []domain.ProductContext {
	if brandID != "miloe" {
		return nil
	}
	return s.products
}

func (s *stubCatalog) ProductByHandle(brandID, handle string) (domain.ProductContext, bool) {
	for _, p := range s.Products(brandID) {
		if p.Handle == handle {
			return p, true
		}
	}
	return domain.ProductContext{}, false
}

func (s *stubCatalog) ShopInfo(brandID string) domain.ShopInfo { return domain.ShopInfo{} }
func (s *stubCatalog) HasBrand(brandID string) bool            { return brandID == "miloe" }

type stubModel struct{}

func (stubModel) Reply(ctx context.Context, in domain.GenerationInput) (string, error) {
	return "Here is what I found.", nil
}

func newTestHandler() http.Handler {
	catalog := &stubCatalog{products: []domain.ProductContext{
		{Handle: "rose-face-wash", Title: "Rose Face Wash", Tags: []string{"skin"}},
		{Handle: "night-serum", Title: "Night Serum", Tags: []string{"skin"}},
	}}
	search := &usecase.SearchUC{Catalog: catalog}
	chat := &usecase.ChatUC{
		Catalog:  catalog,
		Sessions: memstore.New(time.Minute, time.Minute),
		Model:    stubModel{},
		Search:   search,
	}
	return New(chat, search)
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestStartSessionAndChat(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h, "/start_session", `{"brand_id":"miloe"}`)
	require.Equal(t, 200, rec.Code)
	var started map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &started))
	require.NotEmpty(t, started["session_id"])
	assert.Contains(t, started["message"], "Miloe")

	rec = postJSON(t, h, "/chat", `{"session_id":"`+started["session_id"]+`","message":"face wash for skin"}`)
	require.Equal(t, 200, rec.Code)
	var resp struct {
		Response        string                `json:"response"`
		RelatedProducts []domain.SearchResult `json:"related_products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Here is what I found.", resp.Response)
	require.NotEmpty(t, resp.RelatedProducts)
	assert.Equal(t, "rose-face-wash", resp.RelatedProducts[0].Product.Handle)
	assert.Equal(t, domain.MatchDirect, resp.RelatedProducts[0].Quality)
}

func TestStartSessionUnknownBrand(t *testing.T) {
	rec := postJSON(t, newTestHandler(), "/start_session", `{"brand_id":"nope"}`)
	assert.Equal(t, 400, rec.Code)
}

func TestStartSessionBadJSON(t *testing.T) {
	rec := postJSON(t, newTestHandler(), "/start_session", `{`)
	assert.Equal(t, 400, rec.Code)
}

func TestChatUnknownSession(t *testing.T) {
	rec := postJSON(t, newTestHandler(), "/chat", `{"session_id":"missing","message":"hi"}`)
	assert.Equal(t, 404, rec.Code)
}

func TestChatMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)
	assert.Equal(t, 405, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/search?brand_id=miloe&q=face+wash", nil)
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	var resp struct {
		Items []domain.SearchResult `json:"items"`
		Total int                   `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, len(resp.Items), resp.Total)
	require.NotEmpty(t, resp.Items)
	assert.Equal(t, "rose-face-wash", resp.Items[0].Product.Handle)
}

func TestSearchRequiresBrand(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/search?q=face+wash", nil)
	rec := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rec, req)
	assert.Equal(t, 400, rec.Code)
}

func TestCORSHeadersAndPreflight(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = postJSON(t, h, "/start_session", `{"brand_id":"miloe"}`)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
