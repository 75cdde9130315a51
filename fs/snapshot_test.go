package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"menulens"
	"menulens/fs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLToSnapshotPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "store url",
			url:  "https://example.com/store/corner-cafe",
			want: "example-com-store-corner-cafe.html",
		},
		{
			name: "root url",
			url:  "https://example.com/",
			want: "example-com.html",
		},
		{
			name: "empty url",
			url:  "",
			want: "snapshot.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := fs.URLToSnapshotPath(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveLoadSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "pages", "store.html")
		require.NoError(t, fs.SaveSnapshot(path, "<html>menu</html>"))

		got, err := fs.LoadSnapshot(path)
		require.NoError(t, err)
		assert.Equal(t, "<html>menu</html>", got)
	})

	t.Run("no temp file left behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "store.html")
		require.NoError(t, fs.SaveSnapshot(path, "<html></html>"))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "store.html", entries[0].Name())
	})

	t.Run("missing snapshot returns not found", func(t *testing.T) {
		t.Parallel()

		_, err := fs.LoadSnapshot(filepath.Join(t.TempDir(), "missing.html"))
		assert.Equal(t, menulens.ENOTFOUND, menulens.ErrorCode(err))
	})
}

func TestSnapshotStore(t *testing.T) {
	t.Parallel()

	store := fs.NewSnapshotStore(t.TempDir())

	path, err := store.Save("https://example.com/store/corner-cafe", "<html>snap</html>")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path) || path != "")

	got, err := store.Load("https://example.com/store/corner-cafe")
	require.NoError(t, err)
	assert.Equal(t, "<html>snap</html>", got)
}

func TestIsSnapshotPath(t *testing.T) {
	t.Parallel()

	assert.True(t, fs.IsSnapshotPath("pages/store.html"))
	assert.False(t, fs.IsSnapshotPath("https://example.com/store/x"))
	assert.False(t, fs.IsSnapshotPath("http://example.com/store/x"))
}
