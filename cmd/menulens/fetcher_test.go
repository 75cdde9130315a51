package main

import (
	"context"
	"path/filepath"
	"testing"

	"menulens"
	"menulens/fs"
	"menulens/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFetcher(t *testing.T) {
	t.Parallel()

	t.Run("loads snapshot files from disk", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "store.html")
		require.NoError(t, fs.SaveSnapshot(path, "<html>saved</html>"))

		f := &sourceFetcher{}
		html, err := f.Fetch(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "<html>saved</html>", html)
	})

	t.Run("delegates URLs to the network fetcher", func(t *testing.T) {
		t.Parallel()

		f := &sourceFetcher{network: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html>" + url + "</html>", nil
			},
		}}

		html, err := f.Fetch(context.Background(), "https://example.com/store")
		require.NoError(t, err)
		assert.Equal(t, "<html>https://example.com/store</html>", html)
	})

	t.Run("fails for URLs without a network fetcher", func(t *testing.T) {
		t.Parallel()

		f := &sourceFetcher{}
		_, err := f.Fetch(context.Background(), "https://example.com/store")
		assert.Equal(t, menulens.EINVALID, menulens.ErrorCode(err))
	})
}

func TestSavingFetcher(t *testing.T) {
	t.Parallel()

	t.Run("saves fetched pages", func(t *testing.T) {
		t.Parallel()

		store := fs.NewSnapshotStore(t.TempDir())
		f := &savingFetcher{
			next: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "<html>fetched</html>", nil
				},
			},
			store: store,
		}

		_, err := f.Fetch(context.Background(), "https://example.com/store")
		require.NoError(t, err)

		saved, err := store.Load("https://example.com/store")
		require.NoError(t, err)
		assert.Equal(t, "<html>fetched</html>", saved)
	})

	t.Run("does not resave snapshot sources", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "store.html")
		require.NoError(t, fs.SaveSnapshot(path, "<html></html>"))

		store := fs.NewSnapshotStore(filepath.Join(dir, "out"))
		f := &savingFetcher{
			next:  &sourceFetcher{},
			store: store,
		}

		_, err := f.Fetch(context.Background(), path)
		require.NoError(t, err)

		_, err = store.Load(path)
		assert.Equal(t, menulens.ENOTFOUND, menulens.ErrorCode(err))
	})
}
