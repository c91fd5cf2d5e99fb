package library

import "github.com/samber/lo"

// index is a map that remembers insertion order.
type index[K comparable, V any] struct {
	keys  []K
	items map[K]V
}

func newIndex[K comparable, V any]() *index[K, V] {
	return &index[K, V]{items: make(map[K]V)}
}

func (ix *index[K, V]) get(k K) (V, bool) {
	v, ok := ix.items[k]
	return v, ok
}

func (ix *index[K, V]) has(k K) bool {
	_, ok := ix.items[k]
	return ok
}

// set inserts or replaces. Replacing keeps the original position.
func (ix *index[K, V]) set(k K, v V) {
	if !ix.has(k) {
		ix.keys = append(ix.keys, k)
	}
	ix.items[k] = v
}

func (ix *index[K, V]) delete(k K) {
	if !ix.has(k) {
		return
	}
	delete(ix.items, k)
	ix.keys = lo.Without(ix.keys, k)
}

func (ix *index[K, V]) len() int {
	return len(ix.keys)
}

func (ix *index[K, V]) orderedKeys() []K {
	return append([]K(nil), ix.keys...)
}

func (ix *index[K, V]) values() []V {
	return lo.Map(ix.keys, func(k K, _ int) V {
		return ix.items[k]
	})
}
