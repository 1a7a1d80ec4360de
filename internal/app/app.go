package app

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/niharagg/brandchat/internal/adapters/catalog"
	"github.com/niharagg/brandchat/internal/adapters/catalog/csvsource"
	"github.com/niharagg/brandchat/internal/adapters/catalog/shopify"
	"github.com/niharagg/brandchat/internal/adapters/httpserver"
	"github.com/niharagg/brandchat/internal/adapters/llm/groq"
	"github.com/niharagg/brandchat/internal/adapters/session/memstore"
	"github.com/niharagg/brandchat/internal/config"
	"github.com/niharagg/brandchat/internal/usecase"
)

type App struct {
	Catalog  *catalog.Store
	Sessions *memstore.Store
	SearchUC *usecase.SearchUC
	ChatUC   *usecase.ChatUC
}

// NewApp wires adapters and use cases. Each brand gets the live API source
// when its credentials resolve and falls back to its tabular export otherwise;
// brands whose source fails still register, just empty.
func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	sources := make([]catalog.BrandSource, 0, len(cfg.Brands))
	for _, b := range cfg.Brands {
		token, shopDomain := b.Credentials()
		var src catalog.BrandSource
		if token != "" && shopDomain != "" {
			log.Info().Str("brand", b.ID).Str("shop", shopDomain).Msg("brand runs in live API mode")
			src = catalog.BrandSource{ID: b.ID, Source: shopify.New(shopDomain, token, cfg.Limits.APIDescription)}
		} else {
			log.Info().Str("brand", b.ID).Str("file", b.File).Msg("brand runs from tabular export")
			src = catalog.BrandSource{ID: b.ID, Source: csvsource.New(b.ID, b.Domain, b.File, cfg.Limits.TabularDescription)}
		}
		sources = append(sources, src)
	}

	store := catalog.NewStore(ctx, sources)
	sessions := memstore.New(cfg.Limits.SessionTTL(), cfg.Limits.SessionSweep())

	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		log.Warn().Msg("GROQ_API_KEY missing, chat replies will degrade to the apology message")
	}
	model := groq.New(apiKey, os.Getenv("GROQ_BASE_URL"), cfg.Limits.HistoryForPrompt)

	searchUC := &usecase.SearchUC{
		Catalog:     store,
		DirectCap:   cfg.Limits.DirectResults,
		FallbackCap: cfg.Limits.FallbackResults,
	}
	chatUC := &usecase.ChatUC{
		Catalog:  store,
		Sessions: sessions,
		Model:    model,
		Search:   searchUC,
	}

	return &App{
		Catalog:  store,
		Sessions: sessions,
		SearchUC: searchUC,
		ChatUC:   chatUC,
	}, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.ChatUC, a.SearchUC)
}
