package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotFound is returned by Get for a name with no saved statement.
var ErrNotFound = errors.New("statement not found")

// Statement is a rendered statement saved under a name.
type Statement struct {
	ID       string // UUIDv7, assigned on first save
	Name     string
	Entity   string // local name of the selected entity
	Text     string
	Subquery bool
	Seq      int64 // logical insertion order
	Revision int   // bumped each time the name is saved again
}

// Save upserts st by name. A new name gets a fresh ID and the next
// sequence number; saving an existing name replaces its text and keeps
// ID and Seq. Returns the stored row.
//
// An ID is drawn from the generator on every save, including updates.
func (s *Store) Save(ctx context.Context, st Statement) (Statement, error) {
	if st.Name == "" {
		return Statement{}, fmt.Errorf("save statement: name is required")
	}
	if st.Text == "" {
		return Statement{}, fmt.Errorf("save statement %s: text is required", st.Name)
	}

	id, err := s.ids.Generate()
	if err != nil {
		return Statement{}, fmt.Errorf("save statement %s: %w", st.Name, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO statements (id, name, entity, text, subquery)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			entity = excluded.entity,
			text = excluded.text,
			subquery = excluded.subquery,
			revision = statements.revision + 1
	`, id, st.Name, st.Entity, st.Text, st.Subquery)
	if err != nil {
		return Statement{}, fmt.Errorf("save statement %s: %w", st.Name, err)
	}

	saved, err := s.Get(ctx, st.Name)
	if err != nil {
		return Statement{}, err
	}
	slog.Debug("statement saved",
		"name", saved.Name,
		"entity", saved.Entity,
		"revision", saved.Revision,
	)
	return saved, nil
}

// Get returns the statement saved under name, or ErrNotFound.
func (s *Store) Get(ctx context.Context, name string) (Statement, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, entity, text, subquery, seq, revision
		FROM statements
		WHERE name = ?
	`, name)

	st, err := scanStatement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Statement{}, fmt.Errorf("get statement %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return Statement{}, fmt.Errorf("get statement %s: %w", name, err)
	}
	return st, nil
}

// List returns every saved statement ordered by seq.
//
// Returns an empty slice (not nil) if the catalog is empty.
func (s *Store) List(ctx context.Context) ([]Statement, error) {
	return s.list(ctx, `
		SELECT id, name, entity, text, subquery, seq, revision
		FROM statements
		ORDER BY seq ASC
	`)
}

// ListEntity returns the statements selecting from entity, ordered by seq.
func (s *Store) ListEntity(ctx context.Context, entity string) ([]Statement, error) {
	return s.list(ctx, `
		SELECT id, name, entity, text, subquery, seq, revision
		FROM statements
		WHERE entity = ?
		ORDER BY seq ASC
	`, entity)
}

// Delete removes the statement saved under name. Deleting a missing name
// returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM statements WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete statement %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete statement %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete statement %s: %w", name, ErrNotFound)
	}
	slog.Debug("statement deleted", "name", name)
	return nil
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Statement, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query statements: %w", err)
	}
	defer rows.Close()

	statements := []Statement{}
	for rows.Next() {
		st, err := scanStatement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan statement: %w", err)
		}
		statements = append(statements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate statements: %w", err)
	}
	return statements, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStatement(row scanner) (Statement, error) {
	var st Statement
	err := row.Scan(&st.ID, &st.Name, &st.Entity, &st.Text, &st.Subquery, &st.Seq, &st.Revision)
	return st, err
}
