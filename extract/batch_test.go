package extract_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"menulens"
	"menulens/extract"
	"menulens/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Process(t *testing.T) {
	t.Parallel()

	t.Run("returns one result per URL in input order", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html>" + url + "</html>", nil
			},
		}
		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*menulens.ExtractResult, error) {
				return &menulens.ExtractResult{
					Records: []menulens.Record{{Name: html}},
				}, nil
			},
		}

		p := &extract.Processor{Fetcher: fetcher, Extractor: extractor, Concurrency: 2}
		results, err := p.Process(context.Background(), []string{
			"https://a.example.com/store/1",
			"https://b.example.com/store/2",
		})

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "https://a.example.com/store/1", results[0].URL)
		assert.Equal(t, "https://b.example.com/store/2", results[1].URL)
		require.NoError(t, results[0].Err)
		assert.Equal(t, "<html>https://a.example.com/store/1</html>", results[0].Result.Records[0].Name)
	})

	t.Run("a failing store does not fail the batch", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://x.example.com/bad" {
					return "", errors.New("blocked")
				}
				return "<html></html>", nil
			},
		}
		extractor := &mock.Extractor{
			ExtractFn: func(string) (*menulens.ExtractResult, error) {
				return &menulens.ExtractResult{}, nil
			},
		}

		p := &extract.Processor{Fetcher: fetcher, Extractor: extractor}
		results, err := p.Process(context.Background(), []string{
			"https://x.example.com/bad",
			"https://x.example.com/good",
		})

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Error(t, results[0].Err)
		assert.NoError(t, results[1].Err)
	})

	t.Run("extraction errors are reported per store", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html></html>", nil
			},
		}
		extractor := &mock.Extractor{
			ExtractFn: func(string) (*menulens.ExtractResult, error) {
				return nil, menulens.Errorf(menulens.ENOTFOUND, "structured menu data not found in snapshot")
			},
		}

		p := &extract.Processor{Fetcher: fetcher, Extractor: extractor}
		results, err := p.Process(context.Background(), []string{"https://x.example.com/store"})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, menulens.ENOTFOUND, menulens.ErrorCode(results[0].Err))
		assert.Nil(t, results[0].Result)
	})

	t.Run("respects the concurrency limit", func(t *testing.T) {
		t.Parallel()

		var inFlight, peak atomic.Int64

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				n := inFlight.Add(1)
				if p := peak.Load(); n > p {
					peak.CompareAndSwap(p, n)
				}
				defer inFlight.Add(-1)
				return "<html></html>", nil
			},
		}
		extractor := &mock.Extractor{
			ExtractFn: func(string) (*menulens.ExtractResult, error) {
				return &menulens.ExtractResult{}, nil
			},
		}

		p := &extract.Processor{Fetcher: fetcher, Extractor: extractor, Concurrency: 1}
		_, err := p.Process(context.Background(), []string{
			"https://x.example.com/1",
			"https://x.example.com/2",
			"https://x.example.com/3",
		})

		require.NoError(t, err)
		assert.LessOrEqual(t, peak.Load(), int64(1))
	})

	t.Run("canceled context aborts the batch", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, _ string) (string, error) {
				return "", ctx.Err()
			},
		}
		extractor := &mock.Extractor{
			ExtractFn: func(string) (*menulens.ExtractResult, error) {
				return &menulens.ExtractResult{}, nil
			},
		}

		p := &extract.Processor{
			Fetcher:   fetcher,
			Extractor: extractor,
			Limiter:   extract.NewHostLimiter(100),
		}
		_, err := p.Process(ctx, []string{"https://x.example.com/1"})

		assert.Error(t, err)
	})
}
