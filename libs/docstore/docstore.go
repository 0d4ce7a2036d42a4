// Package docstore stores JSON documents in named collections addressed by id.
// The same Collection contract is served by Postgres (JSONB rows), MongoDB and
// an in-memory implementation used by tests and local runs.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrNotFound = errors.New("document not found")
	ErrConflict = errors.New("document conflicts with an existing one")
)

// Filter matches documents whose top-level fields equal the given values.
// An empty filter matches every document.
type Filter map[string]any

// Patch lists top-level fields to overwrite. A nil value stores null.
type Patch map[string]any

// Collection documents are serialized with their json (Postgres, memory) or
// bson (Mongo) tags; the two must agree on field names and the id field must
// map to "id" / "_id" respectively.
type Collection[T any] interface {
	Insert(ctx context.Context, id string, doc T) error
	Get(ctx context.Context, id string) (T, error)
	Find(ctx context.Context, filter Filter) ([]T, error)
	Update(ctx context.Context, id string, patch Patch) (T, error)
	Delete(ctx context.Context, id string) (T, error)
}

// Index declares fields whose combined values must be unique.
type Index struct {
	Name   string
	Fields []string
}

// Schema describes a collection. Postgres relies on migrations for the table and
// its unique indexes; Mongo and memory create Unique from the schema.
type Schema struct {
	Name   string
	Unique []Index
}

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func (s Schema) validate() error {
	if !namePattern.MatchString(s.Name) {
		return fmt.Errorf("docstore: invalid collection name %q", s.Name)
	}
	for _, idx := range s.Unique {
		if len(idx.Fields) == 0 {
			return fmt.Errorf("docstore: index %q on %s has no fields", idx.Name, s.Name)
		}
	}
	return nil
}
