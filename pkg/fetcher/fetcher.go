// Package fetcher retrieves and parses documents over HTTP.
package fetcher

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"contactscraper/pkg/config"
	errs "contactscraper/pkg/errors"
	"contactscraper/pkg/logger"
	"contactscraper/pkg/ratelimit"
	"contactscraper/pkg/retry"
)

// Document is a fetched, parsed page.
type Document struct {
	*goquery.Document
	URL          string
	StatusCode   int
	ResponseTime time.Duration
}

// FetchError is the typed failure returned when a URL cannot be fetched
// or parsed. Cause is human-readable and safe to surface in a record.
type FetchError struct {
	URL   string
	Cause string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher wraps an HTTP client with the scrape path's fetch policy:
// redirects followed, non-2xx and non-HTML tolerated, no body cap, a
// blocking pre-request delay, and bounded retries on transient failures.
type Fetcher struct {
	client    *http.Client
	userAgent string
	limiter   ratelimit.Limiter
	retryCfg  *retry.Config
	logger    logger.Logger
}

// New creates a Fetcher from the web scrape configuration.
func New(cfg *config.WebConfig, limiter ratelimit.Limiter, log logger.Logger) *Fetcher {
	if log == nil {
		log = logger.GetLogger()
	}
	if limiter == nil {
		limiter = ratelimit.NewFixedDelay(cfg.RateLimitDelay)
	}

	maxAttempts := cfg.MaxRetries + 1
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		userAgent: cfg.UserAgent,
		limiter:   limiter,
		retryCfg: &retry.Config{
			MaxAttempts: maxAttempts,
			Backoff:     &retry.ConstantBackoff{Delay: time.Second},
			RetryIf:     retry.DefaultRetryIf,
			Logger:      log,
		},
		logger: log,
	}
}

// Fetch retrieves url and parses the response body. The limiter blocks
// before every attempt. Any HTTP status is accepted; the body is parsed
// regardless of content type. On failure the returned error is a *FetchError.
func (f *Fetcher) Fetch(url string) (*Document, error) {
	var doc *Document

	err := retry.Do(func() error {
		var attemptErr error
		doc, attemptErr = f.fetchOnce(url)
		return attemptErr
	}, f.retryCfg)

	if err != nil {
		f.logger.WarnWithFields("fetch failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return nil, &FetchError{URL: url, Cause: causeOf(err), Err: err}
	}
	return doc, nil
}

func (f *Fetcher) fetchOnce(url string) (*Document, error) {
	f.limiter.Wait()

	start := time.Now()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Newf(errs.ErrorTypeParsing, "invalid URL: %v", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, errs.Newf(errs.ErrorTypeTimeout, "request timed out: %v", err)
		}
		return nil, errs.Newf(errs.ErrorTypeNetwork, "connection error: %v", err)
	}
	defer resp.Body.Close()

	// Non-2xx responses still carry a usable body; parse rather than fail.
	parsed, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errs.Newf(errs.ErrorTypeParsing, "failed to parse body: %v", err)
	}

	elapsed := time.Since(start)
	f.logger.DebugWithFields("document fetched", map[string]interface{}{
		"url":         url,
		"status_code": resp.StatusCode,
		"duration":    elapsed,
	})

	return &Document{
		Document:     parsed,
		URL:          url,
		StatusCode:   resp.StatusCode,
		ResponseTime: elapsed,
	}, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "Client.Timeout")
}

func causeOf(err error) string {
	var typed *errs.Error
	if errors.As(err, &typed) {
		return typed.Message
	}
	return err.Error()
}
