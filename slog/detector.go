package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/symdex"
)

// Ensure LoggingDetector implements symdex.GeneratorDetector.
var _ symdex.GeneratorDetector = (*LoggingDetector)(nil)

// LoggingDetector wraps a GeneratorDetector with debug logging.
type LoggingDetector struct {
	next   symdex.GeneratorDetector
	logger *slog.Logger
}

// NewLoggingDetector creates a new LoggingDetector.
func NewLoggingDetector(next symdex.GeneratorDetector, logger *slog.Logger) *LoggingDetector {
	return &LoggingDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector and logs the generator found.
func (d *LoggingDetector) Detect(html string) symdex.Generator {
	begin := time.Now()
	g := d.next.Detect(html)
	name := g.Name
	if name == "" {
		name = "(unknown)"
	}
	d.logger.Debug("generator detection",
		"generator", name,
		"version", g.Version,
		"duration", time.Since(begin),
	)
	return g
}
