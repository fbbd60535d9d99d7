// Package instagram drives the browser-based profile scrape path.
package instagram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"contactscraper/pkg/collector"
	"contactscraper/pkg/config"
	"contactscraper/pkg/logger"
)

// State is the session lifecycle position.
type State int

const (
	StateInit State = iota
	StateLoggingIn
	StateLoggedIn
	StateNavigating
	StateOnProfile
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateLoggingIn:
		return "logging_in"
	case StateLoggedIn:
		return "logged_in"
	case StateNavigating:
		return "navigating"
	case StateOnProfile:
		return "on_profile"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

const (
	loginURL        = "https://www.instagram.com/accounts/login/"
	loginPathMarker = "/accounts/login/"
	missingPageText = "Sorry, this page isn't available"

	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
)

// Session is a live browser session. Once a step fails the session enters
// the failed state and every later call reports the original reason;
// Close always releases the browser regardless of state.
type Session struct {
	cfg    *config.InstagramConfig
	logger logger.Logger

	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc

	state      State
	failReason string
}

// NewSession launches a browser and returns a session in the init state.
func NewSession(cfg *config.InstagramConfig, log logger.Logger) (*Session, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx)

	// Starting the browser eagerly surfaces launch failures here instead
	// of inside the first navigation.
	if err := chromedp.Run(ctx); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	return &Session{
		cfg:         cfg,
		logger:      log,
		ctx:         ctx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
		state:       StateInit,
	}, nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Close releases the browser. Safe to call in any state, including after
// a failure.
func (s *Session) Close() {
	if s.cancelCtx != nil {
		s.cancelCtx()
	}
	if s.cancelAlloc != nil {
		s.cancelAlloc()
	}
}

// fail moves the session into the absorbing failed state.
func (s *Session) fail(reason string) error {
	s.state = StateFailed
	s.failReason = reason
	s.logger.ErrorWithFields("session failed", map[string]interface{}{
		"reason": reason,
	})
	return fmt.Errorf("session failed: %s", reason)
}

func (s *Session) checkFailed() error {
	if s.state == StateFailed {
		return fmt.Errorf("session failed: %s", s.failReason)
	}
	return nil
}

// Login authenticates the session. On success the session is logged in;
// on any failure it moves to the failed state.
func (s *Session) Login(username, password string) error {
	if err := s.checkFailed(); err != nil {
		return err
	}
	s.state = StateLoggingIn
	s.logger.InfoWithFields("logging in", map[string]interface{}{
		"username": username,
	})

	timeout := s.cfg.LoginTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	var currentURL string
	err := chromedp.Run(ctx, chromedp.Tasks{
		chromedp.Navigate(loginURL),
		chromedp.WaitVisible(`input[name="username"]`, chromedp.ByQuery),
		chromedp.SendKeys(`input[name="username"]`, username, chromedp.ByQuery),
		chromedp.SendKeys(`input[name="password"]`, password, chromedp.ByQuery),
		chromedp.Click(`button[type="submit"]`, chromedp.ByQuery),
		chromedp.Sleep(5 * time.Second),
		chromedp.Location(&currentURL),
	})
	if err != nil {
		return s.fail(fmt.Sprintf("login navigation error: %v", err))
	}

	// Still sitting on the login page means the credentials were rejected.
	if strings.Contains(currentURL, loginPathMarker) {
		return s.fail("login rejected: still on login page")
	}

	s.dismissDialogs()
	s.state = StateLoggedIn
	return nil
}

// dismissDialogs clears the post-login "Not Now" prompts. Best effort:
// absence of a prompt is not an error.
func (s *Session) dismissDialogs() {
	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()

	const script = `(() => {
		const buttons = document.querySelectorAll('button');
		for (const b of buttons) {
			if (b.textContent.trim() === 'Not Now') { b.click(); return true; }
		}
		return false;
	})()`

	var clicked bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &clicked)); err != nil {
		s.logger.DebugWithFields("dialog dismissal skipped", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// NavigateToProfile opens the target profile page. A missing profile or a
// navigation error moves the session to the failed state.
func (s *Session) NavigateToProfile(handle string) error {
	if err := s.checkFailed(); err != nil {
		return err
	}
	s.state = StateNavigating

	profileURL := "https://www.instagram.com/" + handle + "/"
	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()

	var bodyText string
	err := chromedp.Run(ctx, chromedp.Tasks{
		chromedp.Navigate(profileURL),
		chromedp.Sleep(3 * time.Second),
		chromedp.Text("body", &bodyText, chromedp.ByQuery),
	})
	if err != nil {
		return s.fail(fmt.Sprintf("profile navigation error: %v", err))
	}
	if strings.Contains(bodyText, missingPageText) {
		return s.fail(fmt.Sprintf("profile %q not found", handle))
	}

	s.state = StateOnProfile
	return nil
}

// FollowerEntries opens the followers dialog and returns a source over it.
func (s *Session) FollowerEntries(handle string) (collector.EntrySource, error) {
	return s.openDialog(handle, "followers")
}

// FollowingEntries opens the following dialog and returns a source over it.
func (s *Session) FollowingEntries(handle string) (collector.EntrySource, error) {
	return s.openDialog(handle, "following")
}

func (s *Session) openDialog(handle, kind string) (collector.EntrySource, error) {
	if err := s.checkFailed(); err != nil {
		return nil, err
	}
	if s.state != StateOnProfile {
		return nil, fmt.Errorf("cannot open %s dialog in state %s", kind, s.state)
	}

	linkSel := fmt.Sprintf(`a[href="/%s/%s/"]`, handle, kind)
	ctx, cancel := context.WithTimeout(s.ctx, 20*time.Second)
	defer cancel()

	err := chromedp.Run(ctx, chromedp.Tasks{
		chromedp.Click(linkSel, chromedp.ByQuery),
		chromedp.WaitVisible(`div[role="dialog"]`, chromedp.ByQuery),
		chromedp.Sleep(2 * time.Second),
	})
	if err != nil {
		return nil, s.fail(fmt.Sprintf("opening %s dialog: %v", kind, err))
	}

	scrollDelay := s.cfg.ScrollDelay
	if scrollDelay <= 0 {
		scrollDelay = 2 * time.Second
	}
	return &dialogSource{ctx: s.ctx, scrollDelay: scrollDelay}, nil
}

// CloseDialog dismisses the open list dialog so another can be opened.
func (s *Session) CloseDialog() error {
	if err := s.checkFailed(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(s.ctx, 10*time.Second)
	defer cancel()

	const script = `(() => {
		const dialog = document.querySelector('div[role="dialog"]');
		if (!dialog) return true;
		const close = dialog.querySelector('svg[aria-label="Close"]');
		if (close) { close.closest('button, div[role="button"]').click(); return true; }
		return false;
	})()`

	var closed bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &closed)); err != nil {
		return s.fail(fmt.Sprintf("closing dialog: %v", err))
	}
	s.state = StateOnProfile
	return nil
}
