package menulens

import "context"

// Fetcher retrieves rendered HTML snapshots from store URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content, including lazy-loaded sections.
type Fetcher interface {
	// Fetch navigates to the URL, waits for the page's menu data to render,
	// and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
