// Package collector walks a scrollable list of profile entries, dedupes
// them by identity, and turns each into a contact record.
package collector

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"contactscraper/pkg/logger"
	"contactscraper/pkg/models"
	"contactscraper/pkg/patterns"
)

// stableIterationsRequired is how many consecutive scrolls must yield no
// new identities before the list is considered exhausted.
const stableIterationsRequired = 3

// VisibleEntry is one entry currently rendered in the list.
type VisibleEntry struct {
	Href        string
	DisplayName string
	Bio         string
}

// EntrySource feeds the collector from a paginated or scrollable list.
type EntrySource interface {
	// ScrollForward advances the list so more entries become visible.
	ScrollForward() error
	// ListVisibleEntries returns every entry currently rendered.
	ListVisibleEntries() ([]VisibleEntry, error)
}

// Collector accumulates unique profile records from an EntrySource.
type Collector struct {
	source   EntrySource
	maxItems int
	logger   logger.Logger
}

// New creates a Collector that stops after maxItems unique entries.
func New(source EntrySource, maxItems int, log logger.Logger) *Collector {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Collector{source: source, maxItems: maxItems, logger: log}
}

// Collect scrolls until the item cap is reached or the visible set stays
// stable for three consecutive iterations. Entries seen in earlier
// iterations are never reprocessed; an entry that fails to convert
// becomes an error record and collection continues.
func (c *Collector) Collect() ([]models.Record, error) {
	start := time.Now()
	seen := make(map[string]struct{})
	var records []models.Record
	stable := 0

	for stable < stableIterationsRequired && len(records) < c.maxItems {
		entries, err := c.source.ListVisibleEntries()
		if err != nil {
			return records, fmt.Errorf("listing visible entries: %w", err)
		}

		newThisRound := 0
		for _, entry := range entries {
			if len(records) >= c.maxItems {
				break
			}
			identity := IdentityFromHref(entry.Href)
			if identity == "" {
				continue
			}
			if _, dup := seen[identity]; dup {
				continue
			}
			seen[identity] = struct{}{}
			newThisRound++
			records = append(records, c.buildRecord(identity, entry, start))
		}

		if newThisRound == 0 {
			stable++
		} else {
			stable = 0
		}

		c.logger.DebugWithFields("collector iteration", map[string]interface{}{
			"collected": len(records),
			"new":       newThisRound,
			"stable":    stable,
		})

		if len(records) >= c.maxItems || stable >= stableIterationsRequired {
			break
		}
		if err := c.source.ScrollForward(); err != nil {
			return records, fmt.Errorf("scrolling list: %w", err)
		}
	}

	return records, nil
}

// buildRecord derives contact fields from the entry's bio text. Panics
// inside derivation are contained as per-entry error records. Both
// branches stamp the time elapsed since collection began.
func (c *Collector) buildRecord(identity string, entry VisibleEntry, start time.Time) (record models.Record) {
	defer func() {
		if r := recover(); r != nil {
			record = models.Record{
				Username:       identity,
				Status:         models.StatusError,
				ErrorMessage:   fmt.Sprintf("Failed to process entry: %v", r),
				ResponseTimeMs: time.Since(start).Milliseconds(),
			}
		}
	}()

	name := strings.TrimSpace(entry.DisplayName)
	if name == "" {
		name = identity
	}

	record = models.Record{
		Username:     identity,
		Status:       models.StatusSuccess,
		FullName:     name,
		Bio:          strings.TrimSpace(entry.Bio),
		Emails:       patterns.ExtractEmails(entry.Bio),
		PhoneNumbers: patterns.ExtractPhoneNumbers(entry.Bio),
		SocialLinks:  patterns.ExtractSocialLinksFromText(entry.Bio),
		Website:      patterns.ExtractWebsite(entry.Bio),
		Contact:      patterns.ExtractContactCue(entry.Bio),
		Location:     patterns.ExtractLocationCue(entry.Bio),
		ProfileURL:   "https://www.instagram.com/" + identity + "/",
	}
	record.ResponseTimeMs = time.Since(start).Milliseconds()
	return record
}

// IdentityFromHref extracts the profile handle from an entry link: the
// first path segment, with query and fragment stripped. Post and reel
// links yield no identity.
func IdentityFromHref(href string) string {
	if href == "" {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return ""
	}
	segment := path
	if idx := strings.IndexByte(path, '/'); idx >= 0 {
		segment = path[:idx]
	}
	switch segment {
	case "p", "reel", "explore", "accounts":
		return ""
	}
	return segment
}
