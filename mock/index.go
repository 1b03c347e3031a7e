package mock

import (
	"context"

	"github.com/fwojciec/symdex"
)

var _ symdex.IndexService = (*IndexService)(nil)

// IndexService is a mock implementation of symdex.IndexService.
type IndexService struct {
	CreateIndexFn   func(ctx context.Context, index *symdex.Index) error
	FindIndexByIDFn func(ctx context.Context, id string) (*symdex.Index, error)
	FindIndexesFn   func(ctx context.Context, filter symdex.IndexFilter) ([]*symdex.Index, error)
	UpdateIndexFn   func(ctx context.Context, id string, upd symdex.IndexUpdate) (*symdex.Index, error)
	DeleteIndexFn   func(ctx context.Context, id string) error
}

func (s *IndexService) CreateIndex(ctx context.Context, index *symdex.Index) error {
	return s.CreateIndexFn(ctx, index)
}

func (s *IndexService) FindIndexByID(ctx context.Context, id string) (*symdex.Index, error) {
	return s.FindIndexByIDFn(ctx, id)
}

func (s *IndexService) FindIndexes(ctx context.Context, filter symdex.IndexFilter) ([]*symdex.Index, error) {
	return s.FindIndexesFn(ctx, filter)
}

func (s *IndexService) UpdateIndex(ctx context.Context, id string, upd symdex.IndexUpdate) (*symdex.Index, error) {
	return s.UpdateIndexFn(ctx, id, upd)
}

func (s *IndexService) DeleteIndex(ctx context.Context, id string) error {
	return s.DeleteIndexFn(ctx, id)
}

var _ symdex.TableService = (*TableService)(nil)

// TableService is a mock implementation of symdex.TableService.
type TableService struct {
	ReplaceTablesFn func(ctx context.Context, indexID string, tables []*symdex.Table) error
	FindTablesFn    func(ctx context.Context, indexID string) ([]*symdex.Table, error)
}

func (s *TableService) ReplaceTables(ctx context.Context, indexID string, tables []*symdex.Table) error {
	return s.ReplaceTablesFn(ctx, indexID, tables)
}

func (s *TableService) FindTables(ctx context.Context, indexID string) ([]*symdex.Table, error) {
	return s.FindTablesFn(ctx, indexID)
}
