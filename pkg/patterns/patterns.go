// Package patterns holds the compiled matchers shared by every scrape path.
// All matchers are compiled once at init and are safe for concurrent use.
package patterns

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	emailRe = regexp.MustCompile(
		`\b[A-Za-z0-9](?:[A-Za-z0-9._%-]*[A-Za-z0-9])?@[A-Za-z0-9](?:[A-Za-z0-9.-]*[A-Za-z0-9])?\.[A-Za-z]{2,}\b`)

	// North-American-style numbers: optional country code 1, optional
	// parentheses around the area code, -, . or space separators.
	phoneRe = regexp.MustCompile(
		`\b(?:\(?\+?1[-.)\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`)

	websiteRe = regexp.MustCompile(
		`https?://[\w\-]+(?:\.[\w\-]+)+(?:[\w\-.,@?^=%&:/~+#]*[\w\-@?^=%&/~+#])?`)

	socialRe = regexp.MustCompile(
		`(?:https?://)?(?:www\.)?(?:instagram\.com|twitter\.com|x\.com|facebook\.com|linkedin\.com|youtube\.com|github\.com|medium\.com|reddit\.com|pinterest\.com|tiktok\.com|snapchat\.com)/[\w\-./]+`)

	numericDomainRe = regexp.MustCompile(`@\d+\.\d+`)
)

// contactMarkers are scanned in order; the first hit wins.
var contactMarkers = []string{
	"contact:", "email:", "reach me:", "dm me:", "message me:",
	"get in touch:", "business:", "collab:", "collaboration:",
}

var locationMarkers = []string{
	"\U0001F4CD", "\U0001F30D", "based in", "located in", "from",
}

// ExtractEmails returns the deduplicated, lowercased email addresses found
// in text, with asset-filename false positives removed.
func ExtractEmails(text string) []string {
	seen := make(map[string]struct{})
	for _, match := range emailRe.FindAllString(text, -1) {
		email := strings.ToLower(match)
		if isFalsePositiveEmail(email) {
			continue
		}
		seen[email] = struct{}{}
	}
	return sortedKeys(seen)
}

// isFalsePositiveEmail rejects image/script artifacts that parse as
// addresses. Without this filter every record picks up tokens like
// "icon@2x.png" and "bundle@8.1.min.js".
func isFalsePositiveEmail(email string) bool {
	return strings.Contains(email, "@2x") ||
		strings.Contains(email, "@3x") ||
		strings.Contains(email, "fallback") ||
		strings.Contains(email, ".min.") ||
		strings.HasSuffix(email, ".js") ||
		strings.HasSuffix(email, ".css") ||
		numericDomainRe.MatchString(email)
}

// ExtractPhoneNumbers returns the deduplicated phone numbers found in text.
// Matches are returned verbatim, not normalized.
func ExtractPhoneNumbers(text string) []string {
	seen := make(map[string]struct{})
	for _, match := range phoneRe.FindAllString(text, -1) {
		seen[strings.TrimSpace(match)] = struct{}{}
	}
	return sortedKeys(seen)
}

// ExtractWebsite returns the first http(s) URL found in text, or "".
func ExtractWebsite(text string) string {
	return websiteRe.FindString(text)
}

// ExtractSocialLinks returns the union of href values pointing at known
// social domains and plain-text social URLs in the document body.
func ExtractSocialLinks(doc *goquery.Document) []string {
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if socialRe.MatchString(href) {
			seen[href] = struct{}{}
		}
	})

	for _, match := range socialRe.FindAllString(doc.Text(), -1) {
		seen[match] = struct{}{}
	}
	return sortedKeys(seen)
}

// ExtractSocialLinksFromText matches social URLs in free text, catching
// mentions not wrapped in anchor tags.
func ExtractSocialLinksFromText(text string) []string {
	seen := make(map[string]struct{})
	for _, match := range socialRe.FindAllString(text, -1) {
		seen[match] = struct{}{}
	}
	return sortedKeys(seen)
}

// ExtractContactCue scans for contact keywords and returns the rest of the
// first matching line, or "".
func ExtractContactCue(text string) string {
	return extractAfterMarker(text, contactMarkers)
}

// ExtractLocationCue scans for location markers (pin and globe glyphs,
// "based in", "located in", "from") and returns the rest of the first
// matching line, or "".
func ExtractLocationCue(text string) string {
	return extractAfterMarker(text, locationMarkers)
}

func extractAfterMarker(text string, markers []string) string {
	if text == "" {
		return ""
	}
	lower := strings.ToLower(text)
	for _, marker := range markers {
		idx := strings.Index(lower, marker)
		if idx == -1 {
			continue
		}
		rest := text[idx+len(marker):]
		if line := strings.TrimSpace(firstLine(rest)); line != "" {
			return line
		}
	}
	return ""
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
