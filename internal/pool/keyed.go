package pool

import (
	"fmt"
	"sort"
)

// Keyed holds one Pool per key, for example one pool per prefab type.
// Pools are created lazily on first use.
type Keyed[K comparable, T comparable] struct {
	newFn func(K) T
	opts  Options
	pools map[K]*Pool[T]
}

// NewKeyed creates an empty set of pools. newFn constructs an instance of the
// given key's type.
func NewKeyed[K comparable, T comparable](newFn func(K) T, opts Options) *Keyed[K, T] {
	return &Keyed[K, T]{
		newFn: newFn,
		opts:  opts,
		pools: make(map[K]*Pool[T]),
	}
}

// Pool returns the pool for key, creating it if needed.
func (k *Keyed[K, T]) Pool(key K) *Pool[T] {
	p, ok := k.pools[key]
	if !ok {
		p = New(func() T { return k.newFn(key) }, k.opts)
		k.pools[key] = p
	}
	return p
}

// Prewarm fills the pool of key with n instances.
func (k *Keyed[K, T]) Prewarm(key K, n int) error {
	if err := k.Pool(key).Prewarm(n); err != nil {
		return fmt.Errorf("pool: prewarm %v: %w", key, err)
	}
	return nil
}

// Acquire takes an instance from the pool of key.
func (k *Keyed[K, T]) Acquire(key K) (T, error) {
	return k.Pool(key).Acquire()
}

// Release returns an instance to the pool of key. An instance released under
// a key whose pool did not create it reports ErrForeign.
func (k *Keyed[K, T]) Release(key K, item T) error {
	p, ok := k.pools[key]
	if !ok {
		return ErrForeign
	}
	return p.Release(item)
}

// ReleaseAll releases every active instance of every pool.
func (k *Keyed[K, T]) ReleaseAll() {
	for _, p := range k.pools {
		p.ReleaseAll()
	}
}

// Keys returns the keys that have a pool. Order is unspecified unless less
// is given.
func (k *Keyed[K, T]) Keys(less func(a, b K) bool) []K {
	keys := make([]K, 0, len(k.pools))
	for key := range k.pools {
		keys = append(keys, key)
	}
	if less != nil {
		sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
	}
	return keys
}

// Stats returns the occupancy of the pool of key.
func (k *Keyed[K, T]) Stats(key K) Stats {
	p, ok := k.pools[key]
	if !ok {
		return Stats{}
	}
	return p.Stats()
}

// Total sums the occupancy of all pools.
func (k *Keyed[K, T]) Total() Stats {
	var s Stats
	for _, p := range k.pools {
		ps := p.Stats()
		s.Created += ps.Created
		s.Active += ps.Active
		s.Pooled += ps.Pooled
	}
	return s
}

// Teardown destroys every pool.
func (k *Keyed[K, T]) Teardown(destroy func(T)) {
	for key, p := range k.pools {
		p.Teardown(destroy)
		delete(k.pools, key)
	}
}
