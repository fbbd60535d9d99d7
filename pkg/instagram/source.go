package instagram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"contactscraper/pkg/collector"
)

// scrollDialogScript advances the open list dialog by one viewport.
const scrollDialogScript = `(() => {
	const dialog = document.querySelector('div[role="dialog"]');
	if (!dialog) return false;
	const candidates = dialog.querySelectorAll('div');
	for (const el of candidates) {
		if (el.scrollHeight > el.clientHeight && el.clientHeight > 100) {
			el.scrollTop += el.offsetHeight;
			return true;
		}
	}
	return false;
})()`

// listEntriesScript reads every profile row currently rendered in the
// dialog: the link target plus the row's leaf span texts in document
// order. Mapping texts onto name and bio happens in entryFromRow.
const listEntriesScript = `(() => {
	const dialog = document.querySelector('div[role="dialog"]');
	if (!dialog) return [];
	const out = [];
	for (const a of dialog.querySelectorAll('a[href^="/"]')) {
		const href = a.getAttribute('href') || '';
		const row = a.closest('div[role="button"], li, div');
		const texts = [];
		if (row) {
			for (const s of row.querySelectorAll('span')) {
				if (s.querySelector('span')) continue;
				const t = s.textContent.trim();
				if (t.length > 0) texts.push(t);
			}
		}
		out.push({href: href, texts: texts});
	}
	return out;
})()`

type rawRow struct {
	Href  string   `json:"href"`
	Texts []string `json:"texts"`
}

// entryFromRow maps a dialog row's span texts onto an entry. The first
// span repeats the handle, the second carries the display name, and
// everything after that is bio text.
func entryFromRow(row rawRow) collector.VisibleEntry {
	entry := collector.VisibleEntry{Href: row.Href}
	if len(row.Texts) > 1 {
		entry.DisplayName = row.Texts[1]
	}
	if len(row.Texts) > 2 {
		entry.Bio = strings.Join(row.Texts[2:], "\n")
	}
	return entry
}

// dialogSource feeds the collector from the open list dialog.
type dialogSource struct {
	ctx         context.Context
	scrollDelay time.Duration
}

func (d *dialogSource) ScrollForward() error {
	var scrolled bool
	err := chromedp.Run(d.ctx,
		chromedp.Evaluate(scrollDialogScript, &scrolled),
		chromedp.Sleep(d.scrollDelay),
	)
	if err != nil {
		return fmt.Errorf("scrolling dialog: %w", err)
	}
	if !scrolled {
		return fmt.Errorf("scrolling dialog: no scrollable container")
	}
	return nil
}

func (d *dialogSource) ListVisibleEntries() ([]collector.VisibleEntry, error) {
	var rows []rawRow
	if err := chromedp.Run(d.ctx, chromedp.Evaluate(listEntriesScript, &rows)); err != nil {
		return nil, fmt.Errorf("reading dialog entries: %w", err)
	}

	entries := make([]collector.VisibleEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, entryFromRow(row))
	}
	return entries, nil
}
