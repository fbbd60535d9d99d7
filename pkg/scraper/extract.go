package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// contentSelectors are tried in order; the first non-empty match wins.
var contentSelectors = []string{
	"main", "article", ".content", ".post", ".entry", ".main-content",
	".page-content", ".article-content", ".post-content", ".entry-content",
	"#content", "#main", "#article", ".container", ".wrapper",
}

const (
	maxContentLength     = 2000
	maxDescriptionLength = 200
)

func extractTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractDescription tries meta description, og:description and
// twitter:description, then falls back to a meaningful paragraph
// (50-300 chars), then a truncated first paragraph.
func extractDescription(doc *goquery.Document) string {
	metaSelectors := []string{
		`meta[name="description"]`,
		`meta[property="og:description"]`,
		`meta[name="twitter:description"]`,
	}
	for _, sel := range metaSelectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if trimmed := strings.TrimSpace(content); trimmed != "" {
				return trimmed
			}
		}
	}

	var meaningful string
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if len(text) > 50 && len(text) < 300 {
			meaningful = text
			return false
		}
		return true
	})
	if meaningful != "" {
		return meaningful
	}

	first := strings.TrimSpace(doc.Find("p").First().Text())
	return truncate(first, maxDescriptionLength)
}

// extractContent strips non-content elements, walks the selector list and
// falls back to the body, truncated with an ellipsis marker.
func extractContent(doc *goquery.Document) string {
	doc.Find("script, style, nav, header, footer, aside").Remove()

	for _, sel := range contentSelectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text != "" {
			return truncate(text, maxContentLength)
		}
	}

	body := strings.TrimSpace(doc.Find("body").Text())
	return truncate(body, maxContentLength)
}

func extractDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
