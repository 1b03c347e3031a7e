package main

import (
	"context"
	"errors"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/crawl"
)

var _ symdex.Fetcher = (*SourceFetcher)(nil)

// SourceFetcher routes each fetch to Remote for http(s) URLs and to Local
// for paths, so one loader serves hosted sites and local HTML output.
type SourceFetcher struct {
	Remote symdex.Fetcher
	Local  symdex.Fetcher
}

// Fetch returns the content at url from the matching fetcher.
func (f *SourceFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if crawl.IsRemote(url) {
		return f.Remote.Fetch(ctx, url)
	}
	return f.Local.Fetch(ctx, url)
}

// Close closes both fetchers.
func (f *SourceFetcher) Close() error {
	return errors.Join(f.Remote.Close(), f.Local.Close())
}
