package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/jobkeeper/internal/client/repositories/kv"
)

// Record is anything stored in a collection.
type Record interface {
	GetID() string
}

// Collection is a JSON array of T stored under one key. Every call decodes
// the whole array; writes replace it in a single Set. Read-modify-write
// operations are not safe for concurrent callers.
type Collection[T Record] struct {
	store kv.Store
	key   string
}

func NewCollection[T Record](store kv.Store, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

func (c *Collection[T]) Key() string { return c.key }

// GetAll returns an empty slice when the key is absent.
func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, err
	}

	items := []T{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.key, err)
	}
	return items, nil
}

func (c *Collection[T]) SaveAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	return c.store.Set(ctx, c.key, raw)
}

func (c *Collection[T]) Add(ctx context.Context, item T) error {
	items, err := c.GetAll(ctx)
	if err != nil {
		return err
	}
	return c.SaveAll(ctx, append(items, item))
}

// Update replaces the item with the same id. A missing id is a silent no-op
// and nothing is written.
func (c *Collection[T]) Update(ctx context.Context, item T) error {
	items, err := c.GetAll(ctx)
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].GetID() == item.GetID() {
			items[i] = item
			return c.SaveAll(ctx, items)
		}
	}
	return nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.DeleteWhere(ctx, func(item T) bool { return item.GetID() == id })
}

// DeleteWhere removes every item matching pred and writes the rest back.
func (c *Collection[T]) DeleteWhere(ctx context.Context, pred func(T) bool) error {
	items, err := c.GetAll(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if !pred(item) {
			kept = append(kept, item)
		}
	}
	return c.SaveAll(ctx, kept)
}
