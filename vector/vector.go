// Package vector implements a contiguous growable array whose storage is
// obtained, filled and released entirely through a mem.Allocator.
//
// Growth follows a fixed policy so allocation counts are reproducible: the
// capacity chosen for a required size s is max(cap+cap/2, s) once the current
// capacity exceeds 2, and max(cap+1, s) before that. Relocation is always two
// passes: every live element is constructed into the new buffer, then every
// old element is destroyed, then the old buffer is deallocated.
package vector

import (
	"iter"

	"github.com/pavanmanishd/mem"
)

// Vector is a contiguous dynamic array. The zero value is not usable; call New.
// A Vector is not safe for concurrent use.
type Vector[T any] struct {
	alloc mem.Allocator[T]
	items []T // len(items) is the capacity
	size  int
}

// New returns an empty vector drawing storage from a (mem.Heap when nil).
// No memory is allocated until the first element arrives.
func New[T any](a mem.Allocator[T]) *Vector[T] {
	return &Vector[T]{alloc: mem.Or(a)}
}

// Of returns a vector holding vs with capacity exactly len(vs).
func Of[T any](a mem.Allocator[T], vs ...T) (*Vector[T], error) {
	v := New(a)
	if err := v.Reserve(len(vs)); err != nil {
		return nil, err
	}
	for _, x := range vs {
		v.alloc.Construct(&v.items[v.size], x)
		v.size++
	}
	return v, nil
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int { return v.size }

// Cap returns the number of allocated slots.
func (v *Vector[T]) Cap() int { return len(v.items) }

// Empty reports whether the vector holds no elements.
func (v *Vector[T]) Empty() bool { return v.size == 0 }

// Allocator returns the allocator backing the vector.
func (v *Vector[T]) Allocator() mem.Allocator[T] { return v.alloc }

// PushBack appends x. When the vector is full the buffer grows first; if that
// allocation fails the vector is left unchanged and the error is returned.
func (v *Vector[T]) PushBack(x T) error {
	return v.emplace(func(slot *T) { v.alloc.Construct(slot, x) })
}

// EmplaceBack appends the value returned by ctor, which is called only once
// the destination slot exists.
func (v *Vector[T]) EmplaceBack(ctor func() T) error {
	return v.emplace(func(slot *T) { v.alloc.Construct(slot, ctor()) })
}

func (v *Vector[T]) emplace(build func(slot *T)) error {
	if v.size < len(v.items) {
		build(&v.items[v.size])
		v.size++
		return nil
	}

	items, err := v.alloc.Allocate(v.calculateCapacity(v.size + 1))
	if err != nil {
		return err
	}
	// The new element goes straight into the new buffer, ahead of the
	// relocation of the existing ones.
	build(&items[v.size])
	v.relocate(items)
	v.size++
	return nil
}

// PopBack removes and returns the last element.
func (v *Vector[T]) PopBack() (T, error) {
	if v.size == 0 {
		var zero T
		return zero, mem.Empty("vector: PopBack")
	}
	v.size--
	x := v.items[v.size]
	v.alloc.Destroy(&v.items[v.size])
	return x, nil
}

// Reserve grows the capacity to exactly n when n exceeds it. Size and
// contents are unchanged.
func (v *Vector[T]) Reserve(n int) error {
	if n <= len(v.items) {
		return nil
	}
	return v.setCapacity(n)
}

// Resize changes the number of elements to n. Shrinking destroys the
// trailing elements; growing applies the growth policy to n and constructs
// zero values. It panics if n is negative.
func (v *Vector[T]) Resize(n int) error {
	if n < 0 {
		panic("vector: negative Resize")
	}
	switch {
	case n < v.size:
		v.destroyRange(n, v.size)
	case n > v.size:
		if err := v.setCapacity(v.calculateCapacity(n)); err != nil {
			return err
		}
		var zero T
		for i := v.size; i < n; i++ {
			v.alloc.Construct(&v.items[i], zero)
		}
	}
	v.size = n
	return nil
}

// ShrinkToFit reduces the capacity to exactly Len, releasing the buffer
// altogether when the vector is empty.
func (v *Vector[T]) ShrinkToFit() error {
	return v.setCapacity(v.size)
}

// Clear destroys every element. The capacity is kept.
func (v *Vector[T]) Clear() {
	v.destroyRange(0, v.size)
	v.size = 0
}

// Release destroys every element and returns the buffer to the allocator.
// The vector stays usable.
func (v *Vector[T]) Release() {
	v.Clear()
	if v.items != nil {
		v.alloc.Deallocate(v.items, len(v.items))
		v.items = nil
	}
}

// Index returns element i without a bounds check against Len. The caller
// guarantees 0 <= i < Len; an index past Len but below Cap reads a
// destroyed slot.
func (v *Vector[T]) Index(i int) T { return v.items[i] }

// Ref returns a pointer to element i without a bounds check against Len.
// The pointer is invalidated by any operation that reallocates.
func (v *Vector[T]) Ref(i int) *T { return &v.items[i] }

// Set overwrites element i without a bounds check against Len.
func (v *Vector[T]) Set(i int, x T) { v.items[i] = x }

// At returns element i, or an error wrapping mem.ErrOutOfRange.
func (v *Vector[T]) At(i int) (T, error) {
	if i < 0 || i >= v.size {
		var zero T
		return zero, mem.OutOfRange(i, v.size)
	}
	return v.items[i], nil
}

// SetAt overwrites element i, or returns an error wrapping mem.ErrOutOfRange.
func (v *Vector[T]) SetAt(i int, x T) error {
	if i < 0 || i >= v.size {
		return mem.OutOfRange(i, v.size)
	}
	v.items[i] = x
	return nil
}

// Front returns the first element, or an error wrapping mem.ErrEmpty.
func (v *Vector[T]) Front() (T, error) {
	if v.size == 0 {
		var zero T
		return zero, mem.Empty("vector: Front")
	}
	return v.items[0], nil
}

// Back returns the last element, or an error wrapping mem.ErrEmpty.
func (v *Vector[T]) Back() (T, error) {
	if v.size == 0 {
		var zero T
		return zero, mem.Empty("vector: Back")
	}
	return v.items[v.size-1], nil
}

// Slice returns the live elements. The slice aliases the vector's buffer and
// is invalidated by any operation that reallocates.
func (v *Vector[T]) Slice() []T {
	return v.items[:v.size:v.size]
}

// All yields index/value pairs front to back.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, v.items[i]) {
				return
			}
		}
	}
}

// Backward yields index/value pairs back to front.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.size - 1; i >= 0; i-- {
			if !yield(i, v.items[i]) {
				return
			}
		}
	}
}

// calculateCapacity returns the capacity needed to hold size elements.
func (v *Vector[T]) calculateCapacity(size int) int {
	capacity := len(v.items)
	if capacity >= size {
		return capacity
	}
	if capacity > 2 {
		return max(capacity+capacity/2, size)
	}
	return max(capacity+1, size)
}

// setCapacity reallocates to exactly capacity slots. Elements past the new
// capacity are destroyed.
func (v *Vector[T]) setCapacity(capacity int) error {
	if capacity == len(v.items) {
		return nil
	}
	if capacity == 0 {
		v.Release()
		return nil
	}

	items, err := v.alloc.Allocate(capacity)
	if err != nil {
		return err
	}
	if capacity < v.size {
		v.destroyRange(capacity, v.size)
		v.size = capacity
	}
	v.relocate(items)
	return nil
}

// relocate moves the live elements into dst, destroys them in the old buffer,
// frees the old buffer and installs dst.
func (v *Vector[T]) relocate(dst []T) {
	if v.items != nil {
		for i := 0; i < v.size; i++ {
			v.alloc.Construct(&dst[i], v.items[i])
		}
		for i := 0; i < v.size; i++ {
			v.alloc.Destroy(&v.items[i])
		}
		v.alloc.Deallocate(v.items, len(v.items))
	}
	v.items = dst
}

func (v *Vector[T]) destroyRange(from, to int) {
	for i := from; i < to; i++ {
		v.alloc.Destroy(&v.items[i])
	}
}
