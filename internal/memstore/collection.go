// Package memstore implements the in-memory tier: ordered, mutex-guarded
// record collections seeded with deterministic sample content. It backs the
// storage facade whenever the durable store is unavailable.
package memstore

import "sync"

// Collection is a concurrency-safe set of records keyed by ID. Iteration
// follows insertion order; replacing a record keeps its original position.
type Collection[T any] struct {
	mu    sync.RWMutex
	byID  map[string]T
	order []string
}

// NewCollection returns an empty collection.
func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{byID: make(map[string]T)}
}

// Put inserts or replaces the record under id.
func (c *Collection[T]) Put(id string, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[id]; !ok {
		c.order = append(c.order, id)
	}
	c.byID[id] = v
}

// Get returns the record under id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.byID[id]
	return v, ok
}

// Update applies fn to the record under id while holding the write lock.
// Reports whether the record existed.
func (c *Collection[T]) Update(id string, fn func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.byID[id]
	if !ok {
		return false
	}
	c.byID[id] = fn(v)
	return true
}

// Delete removes the record under id and reports whether it existed.
func (c *Collection[T]) Delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns every record in insertion order.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Filter returns the records matching pred, in insertion order.
func (c *Collection[T]) Filter(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for _, id := range c.order {
		if v := c.byID[id]; pred(v) {
			out = append(out, v)
		}
	}
	return out
}

// Find returns the first record matching pred, in insertion order.
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, id := range c.order {
		if v := c.byID[id]; pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// CountFunc counts the records matching pred.
func (c *Collection[T]) CountFunc(pred func(T) bool) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var n int64
	for _, id := range c.order {
		if pred(c.byID[id]) {
			n++
		}
	}
	return n
}

// DeleteFunc removes every record matching pred and reports how many went.
func (c *Collection[T]) DeleteFunc(pred func(T) bool) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	kept := c.order[:0]
	for _, id := range c.order {
		if pred(c.byID[id]) {
			delete(c.byID, id)
			n++
			continue
		}
		kept = append(kept, id)
	}
	c.order = kept
	return n
}

// Len reports the number of records.
func (c *Collection[T]) Len() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.order))
}

// Clear removes every record.
func (c *Collection[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID = make(map[string]T)
	c.order = nil
}
