package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/symdex"
)

// Compile-time interface verification.
var _ symdex.TableService = (*TableService)(nil)

// TableService implements symdex.TableService using SQLite.
type TableService struct {
	db *DB
}

// NewTableService creates a new TableService.
func NewTableService(db *DB) *TableService {
	return &TableService{db: db}
}

// HashTables computes the content hash of a set of tables using xxhash.
// Equal tables in equal order always hash equally.
func HashTables(tables []*symdex.Table) string {
	h := xxhash.New()
	field := func(s string) {
		_, _ = h.WriteString(strconv.Itoa(len(s)))
		_, _ = h.WriteString(":")
		_, _ = h.WriteString(s)
	}
	for _, t := range tables {
		field("table")
		field(t.Section)
		field(t.Label)
		for _, e := range t.Entries {
			field("entry")
			field(e.Name)
			for _, r := range e.References {
				field(r.URL)
				field(strconv.FormatBool(r.Local))
				field(r.Scope)
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum64())
}

// ReplaceTables atomically replaces every table of the index.
func (s *TableService) ReplaceTables(ctx context.Context, indexID string, tables []*symdex.Table) error {
	for _, t := range tables {
		if err := t.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM indexes WHERE id = ?", indexID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return symdex.Errorf(symdex.ENOTFOUND, "index not found")
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM sections WHERE index_id = ?", indexID); err != nil {
		return err
	}

	insertEntry, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (section_id, search_id, name, search_key, position)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer insertEntry.Close()

	insertRef, err := tx.PrepareContext(ctx, `
		INSERT INTO refs (entry_id, url, local, scope, position)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer insertRef.Close()

	for i, t := range tables {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO sections (index_id, name, label, position)
			VALUES (?, ?, ?, ?)
		`, indexID, t.Section, t.Label, i)
		if err != nil {
			return fmt.Errorf("insert section %s: %w", t.Section, err)
		}
		sectionID, err := result.LastInsertId()
		if err != nil {
			return err
		}

		for j, e := range t.Entries {
			result, err := insertEntry.ExecContext(ctx, sectionID, e.ID, e.Name, e.Key(), j)
			if err != nil {
				return fmt.Errorf("insert entry %s: %w", e.Name, err)
			}
			entryID, err := result.LastInsertId()
			if err != nil {
				return err
			}

			for k, r := range e.References {
				local := 0
				if r.Local {
					local = 1
				}
				if _, err := insertRef.ExecContext(ctx, entryID, r.URL, local, r.Scope, k); err != nil {
					return fmt.Errorf("insert reference %s: %w", r.URL, err)
				}
			}
		}
	}

	return tx.Commit()
}

// FindTables returns the tables of the index in stored order.
func (s *TableService) FindTables(ctx context.Context, indexID string) ([]*symdex.Table, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, label
		FROM sections
		WHERE index_id = ?
		ORDER BY position
	`, indexID)
	if err != nil {
		return nil, err
	}

	var tables []*symdex.Table
	bySection := make(map[int64]*symdex.Table)
	for rows.Next() {
		var id int64
		t := &symdex.Table{}
		if err := rows.Scan(&id, &t.Section, &t.Label); err != nil {
			rows.Close()
			return nil, err
		}
		tables = append(tables, t)
		bySection[id] = t
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(tables) == 0 {
		return tables, nil
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT s.id, e.id, e.search_id, e.name, r.url, r.local, r.scope
		FROM sections s
		JOIN entries e ON e.section_id = s.id
		JOIN refs r ON r.entry_id = e.id
		WHERE s.index_id = ?
		ORDER BY s.position, e.position, r.position
	`, indexID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var current *symdex.Entry
	var currentID int64 = -1
	for rows.Next() {
		var sectionID, entryID int64
		var searchID, name, url, scope string
		var local int
		if err := rows.Scan(&sectionID, &entryID, &searchID, &name, &url, &local, &scope); err != nil {
			return nil, err
		}

		if entryID != currentID {
			current = &symdex.Entry{ID: searchID, Name: name}
			currentID = entryID
			t := bySection[sectionID]
			t.Entries = append(t.Entries, current)
		}
		current.References = append(current.References, symdex.NewReference(name, url, local != 0, scope))
	}

	return tables, rows.Err()
}
