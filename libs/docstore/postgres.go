package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/md-rashed-zaman/fuelstation/libs/db"
)

// Postgres collections live in a table shaped as
//
//	id text primary key, doc jsonb not null,
//	created_at timestamptz default now(), updated_at timestamptz default now()
//
// Field equality filters use jsonb containment so they can be served by a GIN index.
type postgresCollection[T any] struct {
	pool  *db.Pool
	table string
}

func NewPostgres[T any](pool *db.Pool, schema Schema) (Collection[T], error) {
	if err := schema.validate(); err != nil {
		return nil, err
	}
	return &postgresCollection[T]{pool: pool, table: schema.Name}, nil
}

func (c *postgresCollection[T]) Insert(ctx context.Context, id string, doc T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", c.table, err)
	}
	_, err = c.pool.Exec(ctx, `INSERT INTO `+c.table+` (id, doc) VALUES ($1, $2::jsonb)`, id, raw)
	return mapPostgresError(err)
}

func (c *postgresCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var raw []byte
	err := c.pool.QueryRow(ctx, `SELECT doc FROM `+c.table+` WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		var zero T
		return zero, mapPostgresError(err)
	}
	return decode[T](raw)
}

func (c *postgresCollection[T]) Find(ctx context.Context, filter Filter) ([]T, error) {
	if filter == nil {
		filter = Filter{}
	}
	match, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("encode %s filter: %w", c.table, err)
	}
	rows, err := c.pool.Query(ctx, `
		SELECT doc FROM `+c.table+`
		WHERE doc @> $1::jsonb
		ORDER BY created_at, id
	`, match)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		doc, err := decode[T](raw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (c *postgresCollection[T]) Update(ctx context.Context, id string, patch Patch) (T, error) {
	if len(patch) == 0 {
		return c.Get(ctx, id)
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("encode %s patch: %w", c.table, err)
	}
	var updated []byte
	err = c.pool.QueryRow(ctx, `
		UPDATE `+c.table+`
		SET doc = doc || $2::jsonb, updated_at = now()
		WHERE id = $1
		RETURNING doc
	`, id, raw).Scan(&updated)
	if err != nil {
		var zero T
		return zero, mapPostgresError(err)
	}
	return decode[T](updated)
}

func (c *postgresCollection[T]) Delete(ctx context.Context, id string) (T, error) {
	var raw []byte
	err := c.pool.QueryRow(ctx, `DELETE FROM `+c.table+` WHERE id = $1 RETURNING doc`, id).Scan(&raw)
	if err != nil {
		var zero T
		return zero, mapPostgresError(err)
	}
	return decode[T](raw)
}

func mapPostgresError(err error) error {
	switch {
	case err == nil:
		return nil
	case db.IsNotFound(err):
		return ErrNotFound
	case db.IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return err
	}
}

func decode[T any](raw []byte) (T, error) {
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}
