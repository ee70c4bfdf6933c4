package mockapi

import (
	"sort"
	"sync"
)

// collection is a goroutine-safe in-memory table keyed by int64 ID.
type collection[T any] struct {
	mu     sync.RWMutex
	items  map[int64]T
	nextID int64
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[int64]T), nextID: 1}
}

// insert allocates an ID and stores the entity built by build.
func (c *collection[T]) insert(build func(id int64) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	v := build(id)
	c.items[id] = v
	return v
}

func (c *collection[T]) get(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[id]
	return v, ok
}

// update applies fn to the stored entity and stores the result.
func (c *collection[T]) update(id int64, fn func(*T)) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.items[id]
	if !ok {
		return v, false
	}
	fn(&v)
	c.items[id] = v
	return v, true
}

func (c *collection[T]) remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	return true
}

// list returns the entities accepted by keep, ordered by ID.
func (c *collection[T]) list(keep func(T) bool) []T {
	c.mu.RLock()
	ids := make([]int64, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		v := c.items[id]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	c.mu.RUnlock()
	return out
}

func (c *collection[T]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
