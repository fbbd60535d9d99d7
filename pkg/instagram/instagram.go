package instagram

import (
	"fmt"
	"time"

	"contactscraper/pkg/collector"
	"contactscraper/pkg/config"
	"contactscraper/pkg/logger"
	"contactscraper/pkg/models"
	"contactscraper/pkg/stats"
)

// BrowserSession is the session capability the orchestrator drives.
// *Session implements it against a live browser.
type BrowserSession interface {
	Login(username, password string) error
	NavigateToProfile(handle string) error
	FollowerEntries(handle string) (collector.EntrySource, error)
	FollowingEntries(handle string) (collector.EntrySource, error)
	CloseDialog() error
	Close()
}

// Request describes one profile scrape operation.
type Request struct {
	Username string
	Password string

	TargetHandle string

	ScrapeFollowers bool
	ScrapeFollowing bool
	MaxFollowers    int
	MaxFollowing    int

	Fields models.FieldSet
}

// Scraper runs browser sessions against target profiles.
type Scraper struct {
	cfg        *config.InstagramConfig
	logger     logger.Logger
	newSession func() (BrowserSession, error)
}

// New creates a Scraper that launches real browser sessions.
func New(cfg *config.InstagramConfig, log logger.Logger) *Scraper {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Scraper{
		cfg:    cfg,
		logger: log,
		newSession: func() (BrowserSession, error) {
			return NewSession(cfg, log)
		},
	}
}

// NewWithSessionFactory creates a Scraper with a custom session factory.
func NewWithSessionFactory(cfg *config.InstagramConfig, log logger.Logger, factory func() (BrowserSession, error)) *Scraper {
	s := New(cfg, log)
	s.newSession = factory
	return s
}

// ScrapeInstagram logs in, walks the target's follower and following
// lists, and aggregates contact statistics over everything collected.
// A login or navigation failure is fatal to the whole batch; a failure
// mid-list keeps the records collected so far but marks the batch as
// errored. The browser is released on every path.
func (s *Scraper) ScrapeInstagram(req Request) *models.BatchResult {
	start := time.Now()

	if req.Fields.IsEmpty() {
		req.Fields = models.DefaultProfileFields()
	}

	result := &models.BatchResult{
		TargetHandle: req.TargetHandle,
		Records:      []models.Record{},
		Status:       models.BatchCompleted,
		Message:      "Scraping completed successfully",
	}

	session, err := s.newSession()
	if err != nil {
		return s.batchError(result, start, fmt.Sprintf("Failed to start browser session: %v", err))
	}
	defer session.Close()

	if err := session.Login(req.Username, req.Password); err != nil {
		return s.batchError(result, start, fmt.Sprintf("Login failed: %v", err))
	}

	if err := session.NavigateToProfile(req.TargetHandle); err != nil {
		return s.batchError(result, start, fmt.Sprintf("Failed to open profile: %v", err))
	}

	if req.ScrapeFollowers {
		records, err := s.collectList(session, req.TargetHandle, "followers", req.MaxFollowers, session.FollowerEntries)
		result.Records = append(result.Records, records...)
		result.FollowersScraped = len(records)
		if err != nil {
			return s.partialError(result, start, fmt.Sprintf("Follower collection failed: %v", err), req.Fields)
		}
	}

	if req.ScrapeFollowing {
		records, err := s.collectList(session, req.TargetHandle, "following", req.MaxFollowing, session.FollowingEntries)
		result.Records = append(result.Records, records...)
		result.FollowingScraped = len(records)
		if err != nil {
			return s.partialError(result, start, fmt.Sprintf("Following collection failed: %v", err), req.Fields)
		}
	}

	s.finish(result, start, req.Fields)
	s.logger.InfoWithFields("profile scrape completed", map[string]interface{}{
		"target":     req.TargetHandle,
		"followers":  result.FollowersScraped,
		"following":  result.FollowingScraped,
		"successful": result.Successful,
	})
	return result
}

// collectList opens one list dialog, drains it through the collector and
// closes the dialog so the next list can be opened.
func (s *Scraper) collectList(session BrowserSession, handle, kind string, maxItems int, open func(string) (collector.EntrySource, error)) ([]models.Record, error) {
	if maxItems <= 0 {
		switch kind {
		case "followers":
			maxItems = s.cfg.MaxFollowers
		default:
			maxItems = s.cfg.MaxFollowing
		}
	}

	s.logger.InfoWithFields("collecting list", map[string]interface{}{
		"target": handle,
		"list":   kind,
		"max":    maxItems,
	})

	source, err := open(handle)
	if err != nil {
		return nil, err
	}

	records, err := collector.New(source, maxItems, s.logger).Collect()
	if err != nil {
		return records, err
	}

	if err := session.CloseDialog(); err != nil {
		return records, err
	}
	return records, nil
}

func (s *Scraper) finish(result *models.BatchResult, start time.Time, fields models.FieldSet) {
	result.Total = len(result.Records)
	result.Statistics = stats.Summarize(result.Records).Map()
	result.FilterRecords(fields)
	result.Tally()
	result.ProcessingTimeMs = time.Since(start).Milliseconds()
}

func (s *Scraper) batchError(result *models.BatchResult, start time.Time, message string) *models.BatchResult {
	s.logger.ErrorWithFields("profile scrape failed", map[string]interface{}{
		"target":  result.TargetHandle,
		"message": message,
	})
	result.Status = models.BatchError
	result.Message = message
	result.ProcessingTimeMs = time.Since(start).Milliseconds()
	return result
}

// partialError keeps what was collected before the failure but marks the
// batch as errored.
func (s *Scraper) partialError(result *models.BatchResult, start time.Time, message string, fields models.FieldSet) *models.BatchResult {
	s.finish(result, start, fields)
	result.Status = models.BatchError
	result.Message = message
	return result
}
