package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/niharagg/brandchat/internal/domain"
	"github.com/niharagg/brandchat/internal/usecase"
)

type Server struct {
	mux    *http.ServeMux
	chat   *usecase.ChatUC
	search *usecase.SearchUC
}

func New(chat *usecase.ChatUC, search *usecase.SearchUC) http.Handler {
	s := &Server{mux: http.NewServeMux(), chat: chat, search: search}
	s.routes()
	return Chain(s.mux,
		CORS,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/start_session", s.handleStartSession)
	s.mux.HandleFunc("/chat", s.handleChat)
	s.mux.HandleFunc("/api/search", s.handleSearch)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]string{"status": "ok"})
}

type startSessionRequest struct {
	BrandID string `json:"brand_id"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, 400, map[string]string{"error": "invalid json"})
		return
	}
	sess, err := s.chat.StartSession(strings.TrimSpace(req.BrandID))
	if err != nil {
		if errors.Is(err, domain.ErrUnknownBrand) {
			writeJSON(w, 400, map[string]string{"error": "invalid brand id"})
			return
		}
		writeJSON(w, 500, map[string]string{"error": "session"})
		return
	}
	writeJSON(w, 200, map[string]string{
		"session_id": sess.ID,
		"message":    "Welcome to " + titleCase(req.BrandID) + " support!",
	})
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Response        string                `json:"response"`
	RelatedProducts []domain.SearchResult `json:"related_products"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, 400, map[string]string{"error": "invalid json"})
		return
	}
	reply, results, err := s.chat.Chat(r.Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			writeJSON(w, 404, map[string]string{"error": "session expired or invalid"})
			return
		}
		writeJSON(w, 500, map[string]string{"error": "chat"})
		return
	}
	if results == nil {
		results = []domain.SearchResult{}
	}
	writeJSON(w, 200, chatResponse{Response: reply, RelatedProducts: results})
}

// handleSearch exposes retrieval without a model call, mainly for the widget's
// product rail and for debugging relevance.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	q := r.URL.Query()
	brandID := q.Get("brand_id")
	if brandID == "" {
		writeJSON(w, 400, map[string]string{"error": "brand_id required"})
		return
	}
	results := s.search.Search(brandID, q.Get("q"), q.Get("last_handle"))
	if results == nil {
		results = []domain.SearchResult{}
	}
	writeJSON(w, 200, map[string]any{"items": results, "total": len(results)})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
