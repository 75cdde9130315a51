// Package rod provides a Chrome-based implementation of menulens.Fetcher.
// Store pages render their catalog client-side, so a plain HTTP GET returns
// an empty shell; this fetcher drives a headless browser, scrolls to trigger
// lazy-loaded images, and waits for the structured menu data to appear
// before returning the snapshot.
package rod

import (
	"context"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"menulens"
)

// DefaultFetchTimeout bounds one page render end to end.
const DefaultFetchTimeout = 30 * time.Second

// DefaultScrollPasses is the number of incremental scroll steps used to
// trigger viewport-based lazy loading.
const DefaultScrollPasses = 5

// menuMarkers are substrings whose presence indicates the page has finished
// hydrating its catalog data.
var menuMarkers = []string{`"@type":"Restaurant"`, `"hasMenu"`}

const (
	scrollInterval = 500 * time.Millisecond
	markerInterval = 250 * time.Millisecond
)

// Ensure Fetcher implements menulens.Fetcher at compile time.
var _ menulens.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from store URLs using Chrome browser
// automation. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	timeout      time.Duration
	scrollPasses int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page render timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithScrollPasses sets the number of incremental scroll steps per page.
// Defaults to DefaultScrollPasses if not specified.
func WithScrollPasses(n int) Option {
	return func(f *Fetcher) {
		f.scrollPasses = n
	}
}

// NewFetcher creates a new Fetcher backed by a managed headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		scrollPasses: DefaultScrollPasses,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL, scrolls the page to force lazy content to
// render, waits for the menu data markers, and returns the final HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if err := f.scrollThrough(ctx, page); err != nil {
		return "", err
	}

	html, err := f.waitForMenu(ctx, page)
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// scrollThrough steps down the page in increments so that viewport-triggered
// image loaders fire, then jumps to the bottom.
func (f *Fetcher) scrollThrough(ctx context.Context, page *rod.Page) error {
	for i := 1; i <= f.scrollPasses; i++ {
		script := `(i, n) => window.scrollTo(0, document.body.scrollHeight * i / n)`
		if _, err := page.Eval(script, i, f.scrollPasses); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(scrollInterval):
		}
	}
	_, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	return err
}

// waitForMenu polls the page HTML until the structured menu markers appear
// or the context deadline passes. The last observed HTML is returned either
// way; a page without menu data is still a usable snapshot for diagnostics.
func (f *Fetcher) waitForMenu(ctx context.Context, page *rod.Page) (string, error) {
	var html string
	for {
		var err error
		html, err = page.HTML()
		if err != nil {
			return "", err
		}
		if hasMenuMarkers(html) {
			return html, nil
		}

		select {
		case <-ctx.Done():
			return html, nil
		case <-time.After(markerInterval):
		}
	}
}

func hasMenuMarkers(html string) bool {
	for _, m := range menuMarkers {
		if !strings.Contains(html, m) {
			return false
		}
	}
	return true
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
