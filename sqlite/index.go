package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/symdex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ symdex.IndexService = (*IndexService)(nil)

// IndexService implements symdex.IndexService using SQLite.
type IndexService struct {
	db *DB
}

// NewIndexService creates a new IndexService.
func NewIndexService(db *DB) *IndexService {
	return &IndexService{db: db}
}

// CreateIndex creates a new index.
func (s *IndexService) CreateIndex(ctx context.Context, index *symdex.Index) error {
	if err := index.Validate(); err != nil {
		return err
	}
	if err := s.checkNameAvailable(ctx, index.Name, ""); err != nil {
		return err
	}

	index.ID = uuid.New().String()
	now := time.Now().UTC()
	index.CreatedAt = now
	index.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO indexes (id, name, source_url, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, index.ID, index.Name, index.SourceURL, index.ContentHash,
		index.CreatedAt.Format(time.RFC3339), index.UpdatedAt.Format(time.RFC3339))

	return err
}

// checkNameAvailable returns ECONFLICT if another index uses name.
func (s *IndexService) checkNameAvailable(ctx context.Context, name, exceptID string) error {
	var id string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM indexes WHERE name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if id == exceptID {
		return nil
	}
	return symdex.Errorf(symdex.ECONFLICT, "index %q already exists", name)
}

// FindIndexByID retrieves an index by ID.
func (s *IndexService) FindIndexByID(ctx context.Context, id string) (*symdex.Index, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, source_url, content_hash, created_at, updated_at
		FROM indexes
		WHERE id = ?
	`, id)

	index, err := scanIndex(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, symdex.Errorf(symdex.ENOTFOUND, "index not found")
	}
	if err != nil {
		return nil, err
	}
	return index, nil
}

// FindIndexes retrieves indexes matching the filter, ordered by name.
func (s *IndexService) FindIndexes(ctx context.Context, filter symdex.IndexFilter) ([]*symdex.Index, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, source_url, content_hash, created_at, updated_at FROM indexes WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indexes []*symdex.Index
	for rows.Next() {
		index, err := scanIndex(rows)
		if err != nil {
			return nil, err
		}
		indexes = append(indexes, index)
	}

	return indexes, rows.Err()
}

// UpdateIndex updates an existing index.
func (s *IndexService) UpdateIndex(ctx context.Context, id string, upd symdex.IndexUpdate) (*symdex.Index, error) {
	// First check if index exists
	index, err := s.FindIndexByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Apply updates
	if upd.Name != nil {
		index.Name = *upd.Name
	}
	if upd.SourceURL != nil {
		index.SourceURL = *upd.SourceURL
	}
	if upd.ContentHash != nil {
		index.ContentHash = *upd.ContentHash
	}

	// Validate before persisting
	if err := index.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkNameAvailable(ctx, index.Name, id); err != nil {
		return nil, err
	}

	index.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE indexes
		SET name = ?, source_url = ?, content_hash = ?, updated_at = ?
		WHERE id = ?
	`, index.Name, index.SourceURL, index.ContentHash,
		index.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return index, nil
}

// DeleteIndex permanently removes an index and its tables.
func (s *IndexService) DeleteIndex(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM indexes WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return symdex.Errorf(symdex.ENOTFOUND, "index not found")
	}

	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanIndex(row scanner) (*symdex.Index, error) {
	var index symdex.Index
	var createdAt, updatedAt string

	if err := row.Scan(&index.ID, &index.Name, &index.SourceURL, &index.ContentHash,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if index.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if index.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &index, nil
}
