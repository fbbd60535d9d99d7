package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"contactscraper/pkg/discovery"
	"contactscraper/pkg/export"
	"contactscraper/pkg/fetcher"
	"contactscraper/pkg/logger"
	"contactscraper/pkg/models"
	"contactscraper/pkg/ratelimit"
	"contactscraper/pkg/scraper"
)

var (
	webTopic       string
	webURLs        []string
	webURLFile     string
	webMaxResults  int
	webFields      []string
	webConcurrency int
	webRateLimit   int
	webCSV         bool
	webOutput      string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Scrape contact information from web pages",
	Long: `Scrape a list of web pages concurrently and extract titles,
descriptions, emails, phone numbers, social links and page content.

URLs come from repeated --url flags, from a --url-file with one URL per
line, or both. Pages that fail to load become error entries in the
output; the run itself still completes.`,
	Example: `  # Scrape two pages
  contactscraper web --url https://example.com --url https://example.org

  # Scrape a URL list with a topic label, CSV output
  contactscraper web --topic "bakeries" --url-file urls.txt --csv -o results.csv

  # Only emails and phone numbers, at most 20 pages
  contactscraper web --url-file urls.txt --fields emails,phone --max-results 20`,
	RunE: runWeb,
}

func init() {
	rootCmd.AddCommand(webCmd)

	webCmd.Flags().StringVar(&webTopic, "topic", "", "search topic label for the result set")
	webCmd.Flags().StringArrayVar(&webURLs, "url", nil, "target URL (repeatable)")
	webCmd.Flags().StringVar(&webURLFile, "url-file", "", "file with one target URL per line")
	webCmd.Flags().IntVar(&webMaxResults, "max-results", 0, "maximum number of pages to scrape (0 = all)")
	webCmd.Flags().StringSliceVar(&webFields, "fields", nil, "fields to include in the output")
	webCmd.Flags().IntVar(&webConcurrency, "concurrency", 0, "concurrent fetches (0 = config default)")
	webCmd.Flags().IntVar(&webRateLimit, "rate-limit", 0, "requests per minute (0 = fixed delay from config)")
	webCmd.Flags().BoolVar(&webCSV, "csv", false, "write CSV instead of JSON")
	webCmd.Flags().StringVarP(&webOutput, "output", "o", "", "output file (default: stdout)")
}

func runWeb(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	urls, err := gatherURLs()
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no target URLs: use --url or --url-file")
	}

	if webRateLimit > 0 {
		cfg.Web.RequestsPerMinute = webRateLimit
	}

	log := logger.GetLogger()
	limiter := ratelimit.PerMinute(cfg.Web.RequestsPerMinute, cfg.Web.RateLimitDelay)
	f := fetcher.New(&cfg.Web, limiter, log)

	fields := models.NewFieldSet(webFields...)
	result := scraper.New(f, &cfg.Web, log).ScrapeWeb(scraper.WebRequest{
		SearchTopic: webTopic,
		URLs:        urls,
		MaxResults:  webMaxResults,
		Fields:      fields,
		Concurrency: webConcurrency,
	})

	return writeResult(result, fields, webCSV, webOutput)
}

func gatherURLs() ([]string, error) {
	urls := append([]string(nil), webURLs...)
	if webURLFile != "" {
		fromFile, err := discovery.NewFileProvider(webURLFile).Discover(webTopic, 0)
		if err != nil {
			return nil, err
		}
		urls = append(urls, fromFile...)
	}
	return urls, nil
}

// writeResult renders a batch result to the chosen destination and
// format. The CSV path honors the same field selection as JSON.
func writeResult(result *models.BatchResult, fields models.FieldSet, asCSV bool, path string) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if asCSV {
		return export.WriteCSV(out, result.Records, fields)
	}
	return export.WriteJSON(out, result)
}
