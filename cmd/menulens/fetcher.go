package main

import (
	"context"

	"menulens"
	"menulens/fs"
)

// sourceFetcher serves snapshot files from disk and delegates URLs to the
// network fetcher.
type sourceFetcher struct {
	network menulens.Fetcher
}

var _ menulens.Fetcher = (*sourceFetcher)(nil)

func (f *sourceFetcher) Fetch(ctx context.Context, source string) (string, error) {
	if fs.IsSnapshotPath(source) {
		return fs.LoadSnapshot(source)
	}
	if f.network == nil {
		return "", menulens.Errorf(menulens.EINVALID, "no network fetcher configured for %s", source)
	}
	return f.network.Fetch(ctx, source)
}

func (f *sourceFetcher) Close() error {
	return nil
}

// savingFetcher saves every fetched page to a snapshot store. Sources that
// already are snapshot files pass through unsaved.
type savingFetcher struct {
	next  menulens.Fetcher
	store *fs.SnapshotStore
}

var _ menulens.Fetcher = (*savingFetcher)(nil)

func (f *savingFetcher) Fetch(ctx context.Context, source string) (string, error) {
	html, err := f.next.Fetch(ctx, source)
	if err != nil {
		return "", err
	}
	if !fs.IsSnapshotPath(source) {
		if _, err := f.store.Save(source, html); err != nil {
			return "", err
		}
	}
	return html, nil
}

func (f *savingFetcher) Close() error {
	return f.next.Close()
}
