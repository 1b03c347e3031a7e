// Package fs provides file-based implementations of the symdex services:
// reading a site from a local HTML output directory, writing regenerated
// search directories, and writing member documentation as Markdown.
package fs

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/symdex"
)

// MaxFileSize bounds the size of a file read by Fetcher.
const MaxFileSize = 64 << 20

// Ensure Fetcher implements symdex.Fetcher at compile time.
var _ symdex.Fetcher = (*Fetcher)(nil)

// Fetcher reads files from the local filesystem. Relative locations are
// resolved against Root when it is set.
type Fetcher struct {
	Root string
}

// NewFetcher returns a Fetcher that resolves relative paths against root.
func NewFetcher(root string) *Fetcher {
	return &Fetcher{Root: root}
}

// Fetch returns the content of the file at location, which is a path or a
// file:// URL. Missing files return ENOTFOUND.
func (f *Fetcher) Fetch(ctx context.Context, location string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := f.resolve(location)
	if err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", symdex.Errorf(symdex.ENOTFOUND, "file not found: %s", path)
	} else if err != nil {
		return "", err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", symdex.Errorf(symdex.EINVALID, "%s is a directory", path)
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxFileSize {
		return "", symdex.Errorf(symdex.EINVALID, "%s exceeds %d bytes", path, MaxFileSize)
	}
	return string(data), nil
}

func (f *Fetcher) resolve(location string) (string, error) {
	if location == "" {
		return "", symdex.Errorf(symdex.EINVALID, "file path required")
	}
	if strings.HasPrefix(location, "file://") {
		u, err := url.Parse(location)
		if err != nil {
			return "", symdex.Errorf(symdex.EINVALID, "invalid file URL: %s", location)
		}
		location = filepath.FromSlash(u.Path)
	}
	if f.Root != "" && !filepath.IsAbs(location) {
		location = filepath.Join(f.Root, location)
	}
	return filepath.Clean(location), nil
}

// Close releases resources. Reading files holds none between calls.
func (f *Fetcher) Close() error {
	return nil
}
