package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/symdex"
)

// Ensure LoggingSource implements symdex.Source.
var _ symdex.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with debug logging.
type LoggingSource struct {
	next   symdex.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next symdex.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Load delegates to the wrapped source and logs the size of the result.
func (s *LoggingSource) Load(ctx context.Context, base string) (catalog *symdex.Catalog, err error) {
	defer func(begin time.Time) {
		var sections, entries int
		if catalog != nil {
			sections = len(catalog.Tables)
			for _, t := range catalog.Tables {
				entries += len(t.Entries)
			}
		}
		s.logger.Debug("load index",
			"source", base,
			"sections", sections,
			"entries", entries,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx, base)
}
