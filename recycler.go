package mem

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

const (
	// DefaultRecycleSizes is the number of distinct buffer sizes a Recycler
	// keeps when NewRecycler is given maxSizes <= 0.
	DefaultRecycleSizes = 64

	// maxPerSize caps how many buffers of one size are kept.
	maxPerSize = 8
)

type bucket[T any] struct {
	bufs [][]T
}

// Recycler keeps deallocated buffers and hands them out again to Allocate
// calls asking for the same slot count. Sizes are evicted least recently used
// first; evicted buffers are released to the wrapped allocator.
type Recycler[T any] struct {
	mu     sync.Mutex
	a      Allocator[T]
	cache  *lru.Cache
	hits   int
	misses int
}

// NewRecycler wraps a (Heap when nil). maxSizes bounds the number of
// distinct slot counts cached; <= 0 selects DefaultRecycleSizes.
func NewRecycler[T any](a Allocator[T], maxSizes int) (*Recycler[T], error) {
	if maxSizes <= 0 {
		maxSizes = DefaultRecycleSizes
	}
	r := &Recycler[T]{a: Or(a)}
	cache, err := lru.NewWithEvict(maxSizes, func(key, value interface{}) {
		n := key.(int)
		for _, buf := range value.(*bucket[T]).bufs {
			r.a.Deallocate(buf, n)
		}
	})
	if err != nil {
		return nil, err
	}
	r.cache = cache
	return r, nil
}

func (r *Recycler[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.cache.Get(n); ok {
		b := v.(*bucket[T])
		last := len(b.bufs) - 1
		buf := b.bufs[last]
		b.bufs[last] = nil
		b.bufs = b.bufs[:last]
		if len(b.bufs) == 0 {
			r.cache.Remove(n)
		}
		r.hits++
		return buf, nil
	}
	r.misses++
	return r.a.Allocate(n)
}

// Deallocate parks buf for reuse. Its slots must already be destroyed.
func (r *Recycler[T]) Deallocate(buf []T, n int) {
	if len(buf) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(buf)
	if v, ok := r.cache.Get(n); ok {
		b := v.(*bucket[T])
		if len(b.bufs) >= maxPerSize {
			r.a.Deallocate(buf, n)
			return
		}
		b.bufs = append(b.bufs, buf)
		return
	}
	r.cache.Add(n, &bucket[T]{bufs: [][]T{buf}})
}

func (r *Recycler[T]) Construct(slot *T, v T) { r.a.Construct(slot, v) }

func (r *Recycler[T]) Destroy(slot *T) { r.a.Destroy(slot) }

// Hits returns how many allocations were served from the cache.
func (r *Recycler[T]) Hits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits
}

// Misses returns how many allocations went to the wrapped allocator.
func (r *Recycler[T]) Misses() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.misses
}

// Cached returns the number of distinct slot counts currently held.
func (r *Recycler[T]) Cached() int {
	return r.cache.Len()
}

// Purge releases every cached buffer to the wrapped allocator.
func (r *Recycler[T]) Purge() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Purge()
}
