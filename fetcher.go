package symdex

import "context"

// Fetcher retrieves the content stored at a location.
// Implementations exist for HTTP URLs and local files.
type Fetcher interface {
	// Fetch returns the content at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases resources.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// Source loads the search index of a documentation site.
type Source interface {
	// Load reads every table of the index found at base, which is a
	// site URL or a local HTML output directory.
	Load(ctx context.Context, base string) (*Catalog, error)
}
