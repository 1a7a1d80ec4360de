package catalog

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blankLinesRe = regexp.MustCompile(`\n\s*\n`)

// StripHTML extracts visible text from product description markup and
// truncates it to limit runes. Unparseable input degrades to the raw string,
// truncated; descriptions never abort ingestion.
func StripHTML(raw string, limit int) string {
	if raw == "" {
		return ""
	}
	text := raw
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw)); err == nil {
		doc.Find("br").Each(func(_ int, sel *goquery.Selection) {
			sel.ReplaceWithHtml("\n")
		})
		doc.Find("p, div, li, h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
			sel.AppendHtml("\n")
		})
		text = doc.Text()
	}
	text = strings.TrimSpace(blankLinesRe.ReplaceAllString(text, "\n"))
	if limit > 0 {
		if runes := []rune(text); len(runes) > limit {
			text = string(runes[:limit])
		}
	}
	return text
}
