// Package fs provides file-based storage for page snapshots.
package fs

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"menulens"
)

// URLToSnapshotPath converts a store URL to a relative snapshot file name.
// Example: https://example.com/store/corner-cafe → example-com-store-corner-cafe.html
func URLToSnapshotPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	slug := menulens.Slugify(u.Host + " " + u.Path)
	if slug == "" {
		slug = "snapshot"
	}
	return slug + ".html", nil
}

// SaveSnapshot writes html to path, creating parent directories as needed.
// The write goes through a temporary file and a rename so a crash never
// leaves a truncated snapshot behind.
func SaveSnapshot(path, html string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(html), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadSnapshot reads a previously saved snapshot.
func LoadSnapshot(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", menulens.Errorf(menulens.ENOTFOUND, "snapshot not found: %s", path)
		}
		return "", err
	}
	return string(data), nil
}

// SnapshotStore saves snapshots for multiple stores under one directory,
// naming each file after its store URL.
type SnapshotStore struct {
	baseDir string
}

// NewSnapshotStore creates a new SnapshotStore rooted at baseDir.
func NewSnapshotStore(baseDir string) *SnapshotStore {
	return &SnapshotStore{baseDir: baseDir}
}

// Save writes the snapshot for storeURL and returns the path it was saved to.
func (s *SnapshotStore) Save(storeURL, html string) (string, error) {
	rel, err := URLToSnapshotPath(storeURL)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.baseDir, rel)
	if err := SaveSnapshot(path, html); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads the snapshot for storeURL.
func (s *SnapshotStore) Load(storeURL string) (string, error) {
	rel, err := URLToSnapshotPath(storeURL)
	if err != nil {
		return "", err
	}
	return LoadSnapshot(filepath.Join(s.baseDir, rel))
}

// IsSnapshotPath reports whether arg looks like a local snapshot file rather
// than a URL.
func IsSnapshotPath(arg string) bool {
	return !strings.HasPrefix(arg, "http://") && !strings.HasPrefix(arg, "https://")
}
