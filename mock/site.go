package mock

import (
	"context"

	"github.com/fwojciec/symdex"
)

var _ symdex.SiteStore = (*SiteStore)(nil)

// SiteStore is a mock implementation of symdex.SiteStore.
type SiteStore struct {
	SaveFn   func(ctx context.Context, name string, data []byte) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *SiteStore) Save(ctx context.Context, name string, data []byte) error {
	return s.SaveFn(ctx, name, data)
}

func (s *SiteStore) Commit() error {
	return s.CommitFn()
}

func (s *SiteStore) Abort() error {
	return s.AbortFn()
}
