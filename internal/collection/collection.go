package collection

import "sort"

// Entity is what a Collection can hold: something with an integer identity
// that may have been created on this side of the wire.
type Entity[T any] interface {
	EntityID() int
	Local() bool
	WithLocalID(id int) T
}

// Collection is the in-memory, id-keyed list behind a view. Order is the
// fetch order until an add, which re-sorts by id ascending.
//
// The zero value is an empty collection.
type Collection[T Entity[T]] struct {
	items []T
}

func New[T Entity[T]](items []T) *Collection[T] {
	c := &Collection[T]{}
	c.Replace(items)
	return c
}

// Replace swaps the whole collection for a fetch result.
func (c *Collection[T]) Replace(items []T) {
	c.items = append([]T(nil), items...)
}

// Items returns a copy; callers may not mutate the collection through it.
func (c *Collection[T]) Items() []T {
	return append([]T(nil), c.items...)
}

func (c *Collection[T]) Len() int { return len(c.items) }

func (c *Collection[T]) Find(id int) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// MaxID returns the largest id in the collection, or 0 when empty.
func (c *Collection[T]) MaxID() int {
	m := 0
	for _, it := range c.items {
		if id := it.EntityID(); id > m {
			m = id
		}
	}
	return m
}

// NextID is the id a locally created entity will get.
func (c *Collection[T]) NextID() int { return c.MaxID() + 1 }

// AddLocal appends it under a synthesized id, tags it local and re-sorts the
// collection by id. It returns the stored entity.
func (c *Collection[T]) AddLocal(it T) T {
	stored := it.WithLocalID(c.NextID())
	c.items = append(c.items, stored)
	c.sortByID()
	return stored
}

func (c *Collection[T]) sortByID() {
	sort.SliceStable(c.items, func(i, j int) bool {
		return c.items[i].EntityID() < c.items[j].EntityID()
	})
}

// Update replaces the entity with the given id by fn's result. It reports
// false when no such entity exists.
func (c *Collection[T]) Update(id int, fn func(T) T) (T, bool) {
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	c.items[i] = fn(c.items[i])
	return c.items[i], true
}

// Remove drops the entity with the given id. It reports whether one was removed.
func (c *Collection[T]) Remove(id int) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return true
}

func (c *Collection[T]) index(id int) int {
	for i, it := range c.items {
		if it.EntityID() == id {
			return i
		}
	}
	return -1
}
