package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pets-mvc/internal/domain/pets"
)

// Collection guarda cada documento como JSON en una tabla (id, name, doc, created_at).
// name tiene UNIQUE, así la unicidad la garantiza la base.
type Collection[T pets.Document] struct {
	db    *sql.DB
	d     Dialect
	table string
}

// NewCollection: table viene de una constante del código, nunca del request.
func NewCollection[T pets.Document](db *sql.DB, d Dialect, table string) *Collection[T] {
	return &Collection[T]{db: db, d: d, table: table}
}

func (c *Collection[T]) EnsureSchema(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL UNIQUE,
			doc        %s NOT NULL,
			created_at %s NOT NULL
		)
	`, c.table, c.d.DocType, c.d.TSType))
	if err != nil {
		return fmt.Errorf("%s: ensure schema: %w", c.table, err)
	}
	return nil
}

func (c *Collection[T]) Create(ctx context.Context, doc T) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", c.table, err)
	}

	_, err = c.db.ExecContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (id, name, doc, created_at) VALUES (%s, %s, %s, %s)`,
		c.table, c.ph(1), c.ph(2), c.ph(3), c.ph(4),
	), doc.DocID(), doc.DocName(), string(payload), doc.DocCreated())
	if err != nil {
		if c.d.isUnique(err) {
			return fmt.Errorf("%s: %w: %q", c.table, pets.ErrDuplicateName, doc.DocName())
		}
		return fmt.Errorf("%s: insert: %w", c.table, err)
	}
	return nil
}

func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	rows, err := c.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT doc FROM %s ORDER BY created_at ASC`, c.table,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: select: %w", c.table, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", c.table, err)
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (c *Collection[T]) FindByName(ctx context.Context, name string) (T, error) {
	var doc T
	name = strings.TrimSpace(name)
	if name == "" {
		return doc, pets.ErrNotFound
	}

	var raw []byte
	err := c.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT doc FROM %s WHERE name = %s`, c.table, c.ph(1),
	), name).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return doc, pets.ErrNotFound
		}
		return doc, fmt.Errorf("%s: select: %w", c.table, err)
	}

	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("%s: decode: %w", c.table, err)
	}
	return doc, nil
}

func (c *Collection[T]) Update(ctx context.Context, doc T) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", c.table, err)
	}

	res, err := c.db.ExecContext(ctx, fmt.Sprintf(
		`UPDATE %s SET name = %s, doc = %s WHERE id = %s`,
		c.table, c.ph(1), c.ph(2), c.ph(3),
	), doc.DocName(), string(payload), doc.DocID())
	if err != nil {
		if c.d.isUnique(err) {
			return fmt.Errorf("%s: %w: %q", c.table, pets.ErrDuplicateName, doc.DocName())
		}
		return fmt.Errorf("%s: update: %w", c.table, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (c *Collection[T]) ph(n int) string { return c.d.placeholder(n) }
