package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/niharagg/brandchat/internal/domain"
)

// ChatUC orchestrates one conversation turn: session lookup, retrieval,
// context stickiness and the model call.
type ChatUC struct {
	Catalog  domain.CatalogStore
	Sessions domain.SessionRepo
	Model    domain.ChatModel
	Search   *SearchUC
}

// StartSession opens a conversation bound to a registered brand.
func (uc *ChatUC) StartSession(brandID string) (*domain.Session, error) {
	if !uc.Catalog.HasBrand(brandID) {
		return nil, domain.ErrUnknownBrand
	}
	return uc.Sessions.Create(brandID)
}

// Chat runs a turn. Retrieval is synchronous and in-memory; only the model
// call can fail, and that degrades to a static apology inside the gateway, so
// the only error surfaced here is an unknown session.
func (uc *ChatUC) Chat(ctx context.Context, sessionID, message string) (string, []domain.SearchResult, error) {
	session, err := uc.Sessions.Get(sessionID)
	if err != nil {
		return "", nil, err
	}
	brandID := session.BrandID

	results := uc.Search.Search(brandID, message, session.LastProduct())

	// The conversation locks onto a product only on a confident hit; fallback
	// and catalog results never overwrite remembered context.
	if len(results) > 0 && results[0].Quality == domain.MatchDirect {
		session.SetLastProduct(results[0].Product.Handle)
	}

	reply, err := uc.Model.Reply(ctx, domain.GenerationInput{
		Query:     message,
		BrandName: brandTitle(brandID),
		ShopInfo:  uc.Catalog.ShopInfo(brandID),
		Products:  results,
		History:   session.History(),
	})
	if err != nil {
		// Reply already degrades internally; an error here means even the
		// apology path failed. Log and keep the turn alive.
		log.Error().Err(err).Str("session", sessionID).Msg("model reply failed")
		reply = "I apologize, but I am currently experiencing high traffic."
	}

	session.AddInteraction("user", message)
	session.AddInteraction("assistant", reply)

	return reply, results, nil
}

// RecordDirectHit lets external callers pin session context after their own
// retrieval pass. Unknown sessions are a soft no-op.
func (uc *ChatUC) RecordDirectHit(sessionID, handle string) {
	session, err := uc.Sessions.Get(sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			log.Warn().Err(err).Str("session", sessionID).Msg("record direct hit")
		}
		return
	}
	session.SetLastProduct(handle)
}

func brandTitle(brandID string) string {
	if brandID == "" {
		return brandID
	}
	return strings.ToUpper(brandID[:1]) + brandID[1:]
}
