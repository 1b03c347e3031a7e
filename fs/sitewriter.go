package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/symdex"
)

// Ensure SiteWriter implements symdex.SiteStore at compile time.
var _ symdex.SiteStore = (*SiteWriter)(nil)

// SiteWriter implements symdex.SiteStore with atomic update semantics.
// Files are saved to a temporary directory, then moved atomically on Commit.
type SiteWriter struct {
	baseDir string
	name    string
}

// NewSiteWriter creates a SiteWriter for the search directory of the site
// rooted at baseDir. Files are saved to baseDir/search.tmp and moved to
// baseDir/search on Commit.
func NewSiteWriter(baseDir string) *SiteWriter {
	return &SiteWriter{
		baseDir: baseDir,
		name:    "search",
	}
}

func (s *SiteWriter) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

// Dir returns the directory files are published to.
func (s *SiteWriter) Dir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes one file into the temporary directory.
func (s *SiteWriter) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return symdex.Errorf(symdex.EINVALID, "invalid file name %q: path traversal", name)
	}

	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.tempDir(), name), data, 0644)
}

// Commit replaces the published directory with the saved files.
func (s *SiteWriter) Commit() error {
	if _, err := os.Stat(s.tempDir()); err != nil {
		return err
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(s.Dir()); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.Dir())
}

// Abort discards the saved files.
func (s *SiteWriter) Abort() error {
	return os.RemoveAll(s.tempDir())
}
