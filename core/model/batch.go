package model

import (
	"sort"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Attrs is an unordered attribute mapping.
type Attrs = map[string]any

// Batch is an ordered attribute mapping. Set processes a batch in insertion
// order, which is also the order of the per-attribute change events.
type Batch struct {
	entries *linkedhashmap.Map
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{entries: linkedhashmap.New()}
}

// BatchOf orders attrs by key.
func BatchOf(attrs Attrs) *Batch {
	b := NewBatch()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.entries.Put(k, attrs[k])
	}
	return b
}

func (b *Batch) init() {
	if b.entries == nil {
		b.entries = linkedhashmap.New()
	}
}

// Put appends key, or replaces its value in place when already present.
func (b *Batch) Put(key string, value any) *Batch {
	b.init()
	b.entries.Put(key, value)
	return b
}

// Get returns the value stored under key.
func (b *Batch) Get(key string) (any, bool) {
	if b == nil || b.entries == nil {
		return nil, false
	}
	return b.entries.Get(key)
}

// Remove drops key.
func (b *Batch) Remove(key string) {
	if b == nil || b.entries == nil {
		return
	}
	b.entries.Remove(key)
}

// Len returns the number of entries.
func (b *Batch) Len() int {
	if b == nil || b.entries == nil {
		return 0
	}
	return b.entries.Size()
}

// Keys returns the keys in order.
func (b *Batch) Keys() []string {
	keys := make([]string, 0, b.Len())
	b.Each(func(key string, _ any) {
		keys = append(keys, key)
	})
	return keys
}

// Each visits the entries in order.
func (b *Batch) Each(fn func(key string, value any)) {
	if b == nil || b.entries == nil {
		return
	}
	it := b.entries.Iterator()
	for it.Next() {
		fn(it.Key().(string), it.Value())
	}
}

// Attrs copies the batch into an unordered mapping.
func (b *Batch) Attrs() Attrs {
	out := make(Attrs, b.Len())
	b.Each(func(key string, value any) {
		out[key] = value
	})
	return out
}

// Clone returns an independent copy with the same order.
func (b *Batch) Clone() *Batch {
	out := NewBatch()
	b.Each(func(key string, value any) {
		out.entries.Put(key, value)
	})
	return out
}

// MarshalJSON encodes the batch as an object, keeping key order.
func (b *Batch) MarshalJSON() ([]byte, error) {
	b.init()
	return b.entries.ToJSON()
}
