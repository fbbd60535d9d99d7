package scraper

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactscraper/pkg/config"
	"contactscraper/pkg/fetcher"
	"contactscraper/pkg/models"
	"contactscraper/pkg/ratelimit"
)

const samplePage = `<html>
<head>
	<title>Acme Corp</title>
	<meta name="description" content="We build things.">
</head>
<body>
	<main>
		<p>Contact us at info@acme.com or call 555-123-4567.</p>
		<a href="https://linkedin.com/company/acme">LinkedIn</a>
	</main>
</body>
</html>`

func mustParse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func newTestScraper(t *testing.T) *Scraper {
	t.Helper()
	cfg := &config.WebConfig{
		UserAgent:   "test-agent",
		Timeout:     2 * time.Second,
		Concurrency: 4,
	}
	f := fetcher.New(cfg, ratelimit.None{}, nil)
	return New(f, cfg, nil)
}

func newMockSite(t *testing.T, failPaths map[string]bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failPaths[r.URL.Path] {
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		w.Write([]byte(samplePage))
	}))
}

func TestScrapeWebExtractsFields(t *testing.T) {
	server := newMockSite(t, nil)
	defer server.Close()

	result := newTestScraper(t).ScrapeWeb(WebRequest{
		SearchTopic: "acme",
		URLs:        []string{server.URL + "/one"},
		MaxResults:  5,
	})

	require.Equal(t, models.BatchCompleted, result.Status)
	require.Len(t, result.Records, 1)

	record := result.Records[0]
	assert.Equal(t, models.StatusSuccess, record.Status)
	assert.Equal(t, "Acme Corp", record.Title)
	assert.Equal(t, "We build things.", record.Description)
	assert.Equal(t, []string{"info@acme.com"}, record.Emails)
	assert.Equal(t, []string{"555-123-4567"}, record.PhoneNumbers)
	assert.Contains(t, record.SocialLinks, "https://linkedin.com/company/acme")
	assert.Contains(t, record.Content, "Contact us")
	assert.Equal(t, "127.0.0.1", record.Domain)

	require.NotNil(t, result.Statistics)
	assert.Equal(t, 1, result.Statistics["totalEmails"])
	assert.InDelta(t, 100.0, result.Statistics["contactRate"].(float64), 0.001)
}

func TestScrapeWebPartialFailureIsolation(t *testing.T) {
	server := newMockSite(t, map[string]bool{"/fail1": true, "/fail2": true})
	defer server.Close()

	urls := []string{
		server.URL + "/ok1",
		server.URL + "/fail1",
		server.URL + "/ok2",
		server.URL + "/fail2",
		server.URL + "/ok3",
	}

	result := newTestScraper(t).ScrapeWeb(WebRequest{URLs: urls, MaxResults: 5})

	assert.Equal(t, models.BatchCompleted, result.Status)
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 3, result.Successful)
	assert.Equal(t, 2, result.Failed)
	assert.Len(t, result.Records, 5)

	for _, record := range result.Records {
		if record.Status == models.StatusError {
			assert.NotEmpty(t, record.ErrorMessage)
		}
	}
}

func TestScrapeWebAllFetchesFail(t *testing.T) {
	urls := []string{
		"http://127.0.0.1:1/a",
		"http://127.0.0.1:1/b",
		"http://127.0.0.1:1/c",
	}

	result := newTestScraper(t).ScrapeWeb(WebRequest{
		SearchTopic: "x",
		URLs:        urls,
		MaxResults:  3,
	})

	assert.Equal(t, models.BatchCompleted, result.Status)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 0, result.Successful)
	assert.Equal(t, 3, result.Failed)
	for _, record := range result.Records {
		assert.Equal(t, models.StatusError, record.Status)
		assert.NotEmpty(t, record.ErrorMessage)
	}
}

func TestScrapeWebTruncatesToMaxResults(t *testing.T) {
	server := newMockSite(t, nil)
	defer server.Close()

	var urls []string
	for i := 0; i < 10; i++ {
		urls = append(urls, fmt.Sprintf("%s/page%d", server.URL, i))
	}

	result := newTestScraper(t).ScrapeWeb(WebRequest{URLs: urls, MaxResults: 4})

	assert.Equal(t, 4, result.Total)
	assert.Len(t, result.Records, 4)
}

func TestScrapeWebAppliesFieldSelection(t *testing.T) {
	server := newMockSite(t, nil)
	defer server.Close()

	result := newTestScraper(t).ScrapeWeb(WebRequest{
		URLs:   []string{server.URL},
		Fields: models.NewFieldSet("emails", "title"),
	})

	require.Len(t, result.Records, 1)
	record := result.Records[0]
	assert.NotEmpty(t, record.Title)
	assert.NotEmpty(t, record.Emails)
	assert.Empty(t, record.Description)
	assert.Empty(t, record.Content)
	assert.Nil(t, record.PhoneNumbers)
	assert.Nil(t, record.SocialLinks)
}

func TestScrapeWebRecordsResponseTime(t *testing.T) {
	server := newMockSite(t, nil)
	defer server.Close()

	result := newTestScraper(t).ScrapeWeb(WebRequest{URLs: []string{server.URL}})

	require.Len(t, result.Records, 1)
	assert.GreaterOrEqual(t, result.Records[0].ResponseTimeMs, int64(0))
	assert.GreaterOrEqual(t, result.ProcessingTimeMs, int64(0))
}

func TestExtractDescriptionPriority(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "meta description wins",
			html: `<html><head>
				<meta name="description" content="meta desc">
				<meta property="og:description" content="og desc">
			</head><body><p>` + strings.Repeat("x", 100) + `</p></body></html>`,
			want: "meta desc",
		},
		{
			name: "og description when meta missing",
			html: `<html><head><meta property="og:description" content="og desc"></head><body></body></html>`,
			want: "og desc",
		},
		{
			name: "twitter description third",
			html: `<html><head><meta name="twitter:description" content="tw desc"></head><body></body></html>`,
			want: "tw desc",
		},
		{
			name: "meaningful paragraph fallback",
			html: `<html><body><p>short</p><p>` + strings.Repeat("a", 80) + `</p></body></html>`,
			want: strings.Repeat("a", 80),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.html)
			assert.Equal(t, tt.want, extractDescription(doc))
		})
	}
}

func TestExtractDescriptionTruncatesFirstParagraph(t *testing.T) {
	long := strings.Repeat("b", 350)
	doc := mustParse(t, "<html><body><p>"+long+"</p></body></html>")

	got := extractDescription(doc)
	assert.Len(t, got, 203) // 200 chars plus ellipsis
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestExtractContentPrefersStructuralSelectors(t *testing.T) {
	html := `<html><body>
		<nav>navigation junk</nav>
		<article>the article body</article>
		<footer>footer junk</footer>
	</body></html>`
	doc := mustParse(t, html)

	got := extractContent(doc)
	assert.Equal(t, "the article body", got)
}

func TestExtractContentFallsBackToBody(t *testing.T) {
	doc := mustParse(t, `<html><body><div>plain body text</div></body></html>`)
	assert.Contains(t, extractContent(doc), "plain body text")
}

func TestExtractContentTruncates(t *testing.T) {
	long := strings.Repeat("c", 2500)
	doc := mustParse(t, "<html><body><main>"+long+"</main></body></html>")

	got := extractContent(doc)
	assert.Len(t, got, 2003)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestExtractDomain(t *testing.T) {
	assert.Equal(t, "www.example.com", extractDomain("https://www.example.com/path?q=1"))
	assert.Equal(t, "", extractDomain("://bad"))
}
