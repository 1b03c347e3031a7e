package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/symdex"
)

// Ensure LoggingTableService implements symdex.TableService.
var _ symdex.TableService = (*LoggingTableService)(nil)

// LoggingTableService wraps a TableService with debug logging.
type LoggingTableService struct {
	next   symdex.TableService
	logger *slog.Logger
}

// NewLoggingTableService creates a new LoggingTableService.
func NewLoggingTableService(next symdex.TableService, logger *slog.Logger) *LoggingTableService {
	return &LoggingTableService{next: next, logger: logger}
}

// ReplaceTables delegates to the wrapped service and logs the operation.
func (s *LoggingTableService) ReplaceTables(ctx context.Context, indexID string, tables []*symdex.Table) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("replace tables",
			"index", indexID,
			"count", len(tables),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReplaceTables(ctx, indexID, tables)
}

// FindTables delegates to the wrapped service and logs the operation.
func (s *LoggingTableService) FindTables(ctx context.Context, indexID string) (tables []*symdex.Table, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find tables",
			"index", indexID,
			"count", len(tables),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindTables(ctx, indexID)
}
