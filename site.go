package symdex

import "context"

// SiteStore stores the files of a regenerated search directory.
// Files become visible only after Commit.
type SiteStore interface {
	// Save stores one file of the search directory under name.
	Save(ctx context.Context, name string, data []byte) error

	// Commit publishes every saved file, replacing any previous directory.
	Commit() error

	// Abort discards every saved file.
	Abort() error
}
