package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type memoryCollection[T any] struct {
	mu     sync.RWMutex
	schema Schema
	order  []string
	docs   map[string]map[string]json.RawMessage
}

// NewMemory returns a process-local collection. Documents are kept as their
// JSON encoding so reads never alias caller memory.
func NewMemory[T any](schema Schema) (Collection[T], error) {
	if err := schema.validate(); err != nil {
		return nil, err
	}
	return &memoryCollection[T]{schema: schema, docs: map[string]map[string]json.RawMessage{}}, nil
}

func (c *memoryCollection[T]) Insert(_ context.Context, id string, doc T) error {
	fields, err := toFields(doc)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.docs[id]; exists {
		return fmt.Errorf("%w: id %s", ErrConflict, id)
	}
	if err := c.checkUnique(id, fields); err != nil {
		return err
	}
	c.docs[id] = fields
	c.order = append(c.order, id)
	return nil
}

func (c *memoryCollection[T]) Get(_ context.Context, id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fields, ok := c.docs[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return fromFields[T](fields)
}

func (c *memoryCollection[T]) Find(_ context.Context, filter Filter) ([]T, error) {
	want, err := toRaw(filter)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []T{}
	for _, id := range c.order {
		fields := c.docs[id]
		if !matches(fields, want) {
			continue
		}
		doc, err := fromFields[T](fields)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (c *memoryCollection[T]) Update(_ context.Context, id string, patch Patch) (T, error) {
	var zero T
	set, err := toRaw(patch)
	if err != nil {
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	current, ok := c.docs[id]
	if !ok {
		return zero, ErrNotFound
	}
	next := make(map[string]json.RawMessage, len(current)+len(set))
	for k, v := range current {
		next[k] = v
	}
	for k, v := range set {
		next[k] = v
	}
	if err := c.checkUnique(id, next); err != nil {
		return zero, err
	}
	c.docs[id] = next
	return fromFields[T](next)
}

func (c *memoryCollection[T]) Delete(_ context.Context, id string) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()
	fields, ok := c.docs[id]
	if !ok {
		return zero, ErrNotFound
	}
	delete(c.docs, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return fromFields[T](fields)
}

// checkUnique must be called with the write lock held.
func (c *memoryCollection[T]) checkUnique(id string, fields map[string]json.RawMessage) error {
	for _, idx := range c.schema.Unique {
		want := map[string]json.RawMessage{}
		for _, f := range idx.Fields {
			want[f] = fields[f]
		}
		for otherID, other := range c.docs {
			if otherID == id {
				continue
			}
			if matches(other, want) {
				return fmt.Errorf("%w: unique index %s", ErrConflict, idx.Name)
			}
		}
	}
	return nil
}

func matches(fields map[string]json.RawMessage, want map[string]json.RawMessage) bool {
	for k, v := range want {
		got, ok := fields[k]
		if !ok {
			got = json.RawMessage("null")
		}
		if v == nil {
			v = json.RawMessage("null")
		}
		if !bytes.Equal(compact(got), compact(v)) {
			return false
		}
	}
	return true
}

func compact(raw json.RawMessage) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}

func toFields(doc any) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("document must encode as a JSON object: %w", err)
	}
	return fields, nil
}

func toRaw[M ~map[string]any](m M) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode field %s: %w", k, err)
		}
		out[k] = raw
	}
	return out, nil
}

func fromFields[T any](fields map[string]json.RawMessage) (T, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](raw)
}
