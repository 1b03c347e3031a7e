package symdex

import (
	"context"
	"time"
)

// Index represents a documentation site whose search index has been loaded.
type Index struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SourceURL   string    `json:"sourceUrl"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the index contains invalid fields.
func (i *Index) Validate() error {
	if i.Name == "" {
		return Errorf(EINVALID, "index name required")
	}
	if i.SourceURL == "" {
		return Errorf(EINVALID, "index source URL required")
	}
	return nil
}

// IndexService represents a service for managing indexes.
type IndexService interface {
	// CreateIndex creates a new index.
	// Returns ECONFLICT if an index with the same name exists.
	CreateIndex(ctx context.Context, index *Index) error

	// FindIndexByID retrieves an index by ID.
	// Returns ENOTFOUND if index does not exist.
	FindIndexByID(ctx context.Context, id string) (*Index, error)

	// FindIndexes retrieves indexes matching the filter.
	FindIndexes(ctx context.Context, filter IndexFilter) ([]*Index, error)

	// UpdateIndex updates an existing index.
	// Returns ENOTFOUND if index does not exist.
	UpdateIndex(ctx context.Context, id string, upd IndexUpdate) (*Index, error)

	// DeleteIndex permanently removes an index and all of its tables.
	// Returns ENOTFOUND if index does not exist.
	DeleteIndex(ctx context.Context, id string) error
}

// IndexFilter represents a filter for FindIndexes.
type IndexFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// IndexUpdate represents fields that can be updated on an index.
type IndexUpdate struct {
	Name        *string `json:"name"`
	SourceURL   *string `json:"sourceUrl"`
	ContentHash *string `json:"contentHash"`
}

// TableService stores the lookup tables of an index.
type TableService interface {
	// ReplaceTables atomically replaces every table of the index.
	// Returns ENOTFOUND if the index does not exist.
	ReplaceTables(ctx context.Context, indexID string, tables []*Table) error

	// FindTables returns the tables of the index in stored order.
	FindTables(ctx context.Context, indexID string) ([]*Table, error)
}
