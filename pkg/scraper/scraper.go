// Package scraper drives the HTTP scrape path: a bounded worker pool
// fanning out over candidate URLs, running the pattern library over each
// fetched document.
package scraper

import (
	"fmt"
	"time"

	"contactscraper/pkg/config"
	"contactscraper/pkg/fetcher"
	"contactscraper/pkg/logger"
	"contactscraper/pkg/models"
	"contactscraper/pkg/patterns"
	"contactscraper/pkg/stats"
)

// DocumentFetcher is the fetch capability the orchestrator depends on.
type DocumentFetcher interface {
	Fetch(url string) (*fetcher.Document, error)
}

// WebRequest describes one web scrape operation.
type WebRequest struct {
	SearchTopic string
	URLs        []string
	MaxResults  int
	Fields      models.FieldSet
	Concurrency int
}

// Scraper orchestrates concurrent page scraping.
type Scraper struct {
	fetcher DocumentFetcher
	cfg     *config.WebConfig
	logger  logger.Logger
}

// New creates a Scraper using the given fetcher.
func New(f DocumentFetcher, cfg *config.WebConfig, log logger.Logger) *Scraper {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Scraper{fetcher: f, cfg: cfg, logger: log}
}

// ScrapeWeb scrapes up to MaxResults of the supplied URLs concurrently.
// Individual fetch failures become error records and never abort the
// batch; only an unexpected internal failure yields a batch-level error.
func (s *Scraper) ScrapeWeb(req WebRequest) (result *models.BatchResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorWithFields("web scrape failed", map[string]interface{}{
				"topic": req.SearchTopic,
				"panic": fmt.Sprint(r),
			})
			result = &models.BatchResult{
				SearchTopic:      req.SearchTopic,
				Records:          []models.Record{},
				ProcessingTimeMs: time.Since(start).Milliseconds(),
				Status:           models.BatchError,
				Message:          fmt.Sprintf("Scraping failed: %v", r),
			}
		}
	}()

	fields := req.Fields
	if fields.IsEmpty() {
		fields = models.DefaultWebFields()
	}

	urls := req.URLs
	if req.MaxResults > 0 && len(urls) > req.MaxResults {
		urls = urls[:req.MaxResults]
	}

	concurrency := req.Concurrency
	if concurrency <= 0 {
		concurrency = s.cfg.Concurrency
	}

	s.logger.InfoWithFields("starting web scrape", map[string]interface{}{
		"topic":       req.SearchTopic,
		"url_count":   len(urls),
		"concurrency": concurrency,
	})

	pool := newWorkerPool(concurrency, s.scrapeURL, s.logger)
	records := pool.run(urls)

	batch := &models.BatchResult{
		SearchTopic:      req.SearchTopic,
		Total:            len(urls),
		Records:          records,
		Statistics:       stats.Summarize(records).Map(),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Status:           models.BatchCompleted,
		Message:          "Scraping completed successfully",
	}
	batch.FilterRecords(fields)
	batch.Tally()

	s.logger.InfoWithFields("web scrape completed", map[string]interface{}{
		"topic":      req.SearchTopic,
		"successful": batch.Successful,
		"failed":     batch.Failed,
	})
	return batch
}

// scrapeURL fetches one URL and derives every extractable field. A fetch
// failure produces an error record with the failure cause.
func (s *Scraper) scrapeURL(url string) models.Record {
	start := time.Now()

	doc, err := s.fetcher.Fetch(url)
	if err != nil {
		return models.Record{
			URL:            url,
			Status:         models.StatusError,
			ErrorMessage:   fmt.Sprintf("Connection error: %v", err),
			ResponseTimeMs: time.Since(start).Milliseconds(),
		}
	}

	text := doc.Text()
	record := models.Record{
		URL:            url,
		Status:         models.StatusSuccess,
		ResponseTimeMs: doc.ResponseTime.Milliseconds(),
		Title:          extractTitle(doc.Document),
		Description:    extractDescription(doc.Document),
		Emails:         patterns.ExtractEmails(text),
		PhoneNumbers:   patterns.ExtractPhoneNumbers(text),
		SocialLinks:    patterns.ExtractSocialLinks(doc.Document),
		Domain:         extractDomain(url),
	}
	// Last: content extraction strips script/style/nav nodes from the
	// document, so it must run after the other matchers.
	record.Content = extractContent(doc.Document)
	return record
}
