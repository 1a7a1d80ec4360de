// Package groq generates assistant replies through Groq's OpenAI-compatible
// chat API. A fixed model cascade is tried in order; there is no retry or
// backoff beyond moving to the next model.
package groq

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/niharagg/brandchat/internal/domain"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

const apologyReply = "I apologize, but I am currently experiencing high traffic."

var defaultCascade = []string{
	"llama-3.3-70b-versatile",
	"deepseek-r1-distill-llama-70b",
	"llama-3.1-70b-versatile",
	"llama-3.1-8b-instant",
}

type Gateway struct {
	client       *openai.Client
	cascade      []string
	historyLimit int
}

// New builds a gateway against Groq. baseURL overrides the endpoint (tests,
// proxies); empty uses the real one.
func New(apiKey, baseURL string, historyLimit int) *Gateway {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	cfg.BaseURL = baseURL
	if historyLimit <= 0 {
		historyLimit = 4
	}
	return &Gateway{
		client:       openai.NewClientWithConfig(cfg),
		cascade:      defaultCascade,
		historyLimit: historyLimit,
	}
}

// Reply renders the brand-isolated prompt and walks the cascade. Every model
// failing degrades to a static apology rather than an error: a chat turn must
// always produce text.
func (g *Gateway) Reply(ctx context.Context, in domain.GenerationInput) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(in)},
	}
	history := in.History
	if len(history) > g.historyLimit {
		history = history[len(history)-g.historyLimit:]
	}
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: in.Query})

	var lastErr error
	for _, model := range g.cascade {
		resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       model,
			Messages:    messages,
			Temperature: 0,
			MaxTokens:   600,
		})
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("model %s: empty response", model)
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}

	log.Error().Err(lastErr).Str("brand", in.BrandName).Msg("all models in cascade failed")
	return apologyReply, nil
}

// buildSystemPrompt assembles the brand-isolated instruction block. Products
// arrive pre-ranked; here they are only re-grouped for kit preference before
// being rendered as the model's source of truth.
func buildSystemPrompt(in domain.GenerationInput) string {
	sorted := domain.SortForPrompt(in.Products, in.Query)

	var products strings.Builder
	if len(sorted) == 0 {
		products.WriteString("NO MATCHING PRODUCTS FOUND IN CATALOG.")
	} else {
		for _, r := range sorted {
			p := r.Product
			saleTag := ""
			if strings.Contains(p.PriceRange, "ON SALE") {
				saleTag = "🔥 ON SALE"
			}
			tags := p.Tags
			if len(tags) > 5 {
				tags = tags[:5]
			}
			details := p.Description
			if runes := []rune(details); len(runes) > 700 {
				details = string(runes[:700])
			}
			fmt.Fprintf(&products, `
---
PRODUCT: %s
URL: %s
PRICE: %s %s
STOCK: %s
TAGS: %s
DETAILS: %s
---
`, p.Title, p.URL, p.PriceRange, saleTag, domain.StockStatus(p.Variants), strings.Join(tags, ", "), details)
		}
	}

	offTopic := ""
	if domain.IsOffTopicQuery(in.Query) {
		offTopic = fmt.Sprintf(`
🚨 ALERT: The user is asking about competitors, general companies, or business metrics (revenue, other brands).
ACTION: REFUSE to answer. State clearly: "I am the AI assistant for %s only. I cannot provide information about other companies or platforms."
DO NOT list other companies.
`, in.BrandName)
	}

	sensitive := ""
	if domain.IsSensitiveQuery(in.Query) {
		sensitive = "\n⚕️ SAFETY: The user mentioned a medical condition. Lead with the cosmetic disclaimer before any recommendation.\n"
	}

	contact := ""
	if in.ShopInfo.Email != "" {
		contact = fmt.Sprintf("\nSTORE CONTACT: %s (%s)\n", in.ShopInfo.Email, in.ShopInfo.Domain)
	}

	return fmt.Sprintf(`You are the official Product Support Assistant exclusively for the brand '%[1]s'.
You are NOT a general knowledge assistant. You do not know about Amazon, AliExpress, or other brands.

🔴 NEGATIVE CONSTRAINTS (NEVER VIOLATE):
1. BRAND ISOLATION: Do NOT mention any other brand, company, or marketplace (e.g., Amazon, AliExpress, Nivea). If asked, say you only know '%[1]s'.
2. NO GENERAL KNOWLEDGE: Do not answer questions about geography, math, revenue, or history. Only answer about '%[1]s' products.
3. NO HALLUCINATION: If the 'PRODUCT DATA' section below is empty or doesn't contain the answer, say "I don't have that information." Do NOT make it up.
4. STRICT LINKS: Use format: [View Product](URL). Never raw URLs.

🟢 CONVERSATION RULES:
1. HELP FIRST: Identify what the user wants regarding *our* products.
2. MEDICAL SAFETY: If user mentions medical conditions, state: "This is a cosmetic product, not intended to treat medical conditions."
3. GUIDE THE USER: If no product matches, ask about their specific skin/hair concern.

🔵 CONTEXT INSTRUCTIONS:
%[2]s%[5]s
- IF 'PRODUCT DATA' IS EMPTY:
  - Politely say: "I couldn't find a product matching that description in our catalog."
  - Ask: "Could you tell me more about what you're looking for?"

- IF 'PRODUCT DATA' HAS ITEMS:
  - Use the data to answer the user's question.
  - If the user asks for a list, recommend the top items enthusiastically.
%[3]s
PRODUCT DATA (Source of Truth):
%[4]s`, in.BrandName, offTopic, contact, products.String(), sensitive)
}
