package extract

import (
	"context"
	"log/slog"
	"net/url"

	"golang.org/x/sync/errgroup"
	"menulens"
)

// StoreResult is the outcome of fetching and extracting one store URL.
type StoreResult struct {
	URL    string
	Result *menulens.ExtractResult
	Err    error
}

// Processor fetches and extracts multiple store pages concurrently. Each
// snapshot runs through its own pipeline invocation with zero shared state;
// only the fetch side is rate limited.
type Processor struct {
	Fetcher   menulens.Fetcher
	Extractor menulens.Extractor

	// Limiter throttles fetches per host. Nil disables rate limiting.
	Limiter *HostLimiter

	// Concurrency bounds the number of in-flight stores. Defaults to 3.
	Concurrency int

	// Logger receives per-store progress. Nil discards it.
	Logger *slog.Logger
}

// Process runs every URL through fetch and extract, returning one result per
// URL in input order. Individual store failures are reported in their result
// slot; Process itself only fails when the context is canceled.
func (p *Processor) Process(ctx context.Context, urls []string) ([]StoreResult, error) {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}

	results := make([]StoreResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, u := range urls {
		g.Go(func() error {
			results[i] = p.processStore(gctx, u)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Processor) processStore(ctx context.Context, storeURL string) StoreResult {
	res := StoreResult{URL: storeURL}

	if p.Limiter != nil {
		if err := p.Limiter.Wait(ctx, hostOf(storeURL)); err != nil {
			res.Err = err
			return res
		}
	}

	html, err := p.Fetcher.Fetch(ctx, storeURL)
	if err != nil {
		res.Err = err
		p.logger().Warn("store fetch failed", "url", storeURL, "err", err)
		return res
	}

	res.Result, res.Err = p.Extractor.Extract(html)
	if res.Err != nil {
		p.logger().Warn("store extract failed", "url", storeURL, "err", res.Err)
		return res
	}

	p.logger().Info("store processed", "url", storeURL, "records", len(res.Result.Records))
	return res
}

func (p *Processor) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Host
}
