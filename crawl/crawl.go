// Package crawl loads the search index of a generated documentation site.
// It coordinates manifest discovery, concurrent fetching of the per-letter
// index files, decoding, and merging into a catalog.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/doxygen"
	"golang.org/x/sync/errgroup"
)

// SearchDir is the directory of a site that holds its search index.
const SearchDir = "search"

// DefaultConcurrency is the number of index files fetched at once.
const DefaultConcurrency = 4

var _ symdex.Source = (*Loader)(nil)

// Loader reads a search index from a documentation site.
type Loader struct {
	Fetcher     symdex.Fetcher
	RateLimiter symdex.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration

	// Logger, if set, receives retry notices.
	Logger LogFunc
}

// Result holds the outcome of a load operation.
type Result struct {
	Catalog *symdex.Catalog
	Files   int
	Bytes   int
}

// ProgressEvent reports progress during a load operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting load progress.
type ProgressFunc func(event ProgressEvent)

// job is one index file to fetch.
type job struct {
	section int
	file    int
	url     string
}

// fileResult is the outcome of fetching and decoding one job.
type fileResult struct {
	job
	table *symdex.Table
	size  int
	err   error
}

// Load reads every section of the index found at base.
func (l *Loader) Load(ctx context.Context, base string) (*symdex.Catalog, error) {
	result, err := l.LoadWithProgress(ctx, base, nil)
	if err != nil {
		return nil, err
	}
	return result.Catalog, nil
}

// LoadWithProgress is like Load but reports progress and returns load
// statistics. Any file that cannot be fetched or decoded fails the load.
func (l *Loader) LoadWithProgress(ctx context.Context, base string, progress ProgressFunc) (*Result, error) {
	manifestURL, err := SearchURL(base, doxygen.ManifestFile)
	if err != nil {
		return nil, err
	}
	domain := hostOf(manifestURL)

	data, err := FetchWithRetryDelays(ctx, manifestURL, l.fetchFunc(domain), l.Logger, l.retryDelays())
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}
	manifest, err := doxygen.DecodeManifest(strings.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	var jobs []job
	files := make([][]*symdex.Table, len(manifest.Sections))
	for i, s := range manifest.Sections {
		names := s.Files()
		files[i] = make([]*symdex.Table, len(names))
		for j, name := range names {
			u, err := SearchURL(base, name)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, job{section: i, file: j, url: u})
		}
	}

	concurrency := l.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(jobs)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan fileResult)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, j := range jobs {
			g.Go(func() error {
				t, n, err := l.loadFile(gctx, domain, j.url)
				resultCh <- fileResult{job: j, table: t, size: n, err: err}
				return err
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Progress is reported from this goroutine only.
	var completed int
	var firstErr error
	totalBytes := len(data)
	for r := range resultCh {
		if r.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", r.url, r.err)
			}
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: completed,
					Total:     total,
					URL:       r.url,
					Error:     r.err,
				})
			}
			continue
		}
		files[r.section][r.file] = r.table
		totalBytes += r.size
		completed++
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: completed,
				Total:     total,
				URL:       r.url,
			})
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	tables := make([]*symdex.Table, 0, len(manifest.Sections))
	for i, s := range manifest.Sections {
		tables = append(tables, doxygen.Merge(s.Name, s.Label, files[i]))
	}
	catalog := symdex.NewCatalog(tables...)
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &Result{
		Catalog: catalog,
		Files:   total + 1,
		Bytes:   totalBytes,
	}, nil
}

// loadFile fetches and decodes a single index file.
func (l *Loader) loadFile(ctx context.Context, domain, u string) (*symdex.Table, int, error) {
	data, err := FetchWithRetryDelays(ctx, u, l.fetchFunc(domain), l.Logger, l.retryDelays())
	if err != nil {
		return nil, 0, err
	}
	t, err := doxygen.Decode(strings.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	return t, len(data), nil
}

// fetchFunc returns a fetch that waits on the host limiter before every
// attempt, retries included.
func (l *Loader) fetchFunc(domain string) FetchFunc {
	return func(ctx context.Context, u string) (string, error) {
		if err := l.wait(ctx, domain); err != nil {
			return "", err
		}
		return l.Fetcher.Fetch(ctx, u)
	}
}

func (l *Loader) wait(ctx context.Context, domain string) error {
	if l.RateLimiter == nil || domain == "" {
		return nil
	}
	return l.RateLimiter.Wait(ctx, domain)
}

func (l *Loader) retryDelays() []time.Duration {
	if l.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return l.RetryDelays
}

// IsRemote reports whether base is an http or https URL.
func IsRemote(base string) bool {
	u, err := url.Parse(base)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// SearchURL returns the location of a search index file for the site at
// base. A base that already names the search directory is used as is.
func SearchURL(base, name string) (string, error) {
	if base == "" {
		return "", symdex.Errorf(symdex.EINVALID, "source required")
	}
	if !IsRemote(base) {
		dir := filepath.Clean(base)
		if filepath.Base(dir) != SearchDir {
			dir = filepath.Join(dir, SearchDir)
		}
		return filepath.Join(dir, name), nil
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", symdex.Errorf(symdex.EINVALID, "invalid source URL: %s", base)
	}
	p := strings.TrimSuffix(u.Path, "/")
	if strings.HasSuffix(p, ".html") {
		p = path.Dir(p)
	}
	if path.Base(p) != SearchDir {
		p = path.Join("/", p, SearchDir)
	}
	u.Path = path.Join(p, name)
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// PageURL resolves a reference path, written relative to the search
// directory, against the site at base.
func PageURL(base, ref string) (string, error) {
	searchURL, err := SearchURL(base, doxygen.ManifestFile)
	if err != nil {
		return "", err
	}
	if !IsRemote(base) {
		return filepath.Join(filepath.Dir(searchURL), filepath.FromSlash(ref)), nil
	}
	u, err := url.Parse(searchURL)
	if err != nil {
		return "", err
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", symdex.Errorf(symdex.EINVALID, "invalid reference path: %s", ref)
	}
	return u.ResolveReference(r).String(), nil
}

func hostOf(rawURL string) string {
	if !IsRemote(rawURL) {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
