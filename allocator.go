package mem

import (
	"reflect"
	"unsafe"
)

// Allocator is the capability containers obtain storage through.
//
// Allocate returns n zeroed slots (len == n) or an error; Allocate(0) returns
// nil, nil. Deallocate releases a buffer previously returned by Allocate with
// the same n. Construct places v into a slot and Destroy ends the lifetime of
// the element held by a slot, leaving it zeroed.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Deallocate(buf []T, n int)
	Construct(slot *T, v T)
	Destroy(slot *T)
}

// Placement provides Construct and Destroy for allocators whose storage is
// ordinary addressable memory. Embed it to satisfy the element half of
// Allocator.
type Placement[T any] struct{}

// Construct stores v into slot.
func (Placement[T]) Construct(slot *T, v T) { *slot = v }

// Destroy zeroes slot so the collector can reclaim anything it referenced.
func (Placement[T]) Destroy(slot *T) {
	var zero T
	*slot = zero
}

type heapAllocator[T any] struct {
	Placement[T]
}

// Heap returns an allocator backed by the Go runtime. Deallocate is a no-op
// and the collector reclaims released buffers.
func Heap[T any]() Allocator[T] {
	return heapAllocator[T]{}
}

func (heapAllocator[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	return make([]T, n), nil
}

func (heapAllocator[T]) Deallocate([]T, int) {}

// Or returns a, or Heap when a is nil.
func Or[T any](a Allocator[T]) Allocator[T] {
	if a == nil {
		return Heap[T]()
	}
	return a
}

// Cloner is implemented by element types that need a deep copy when the
// container holding them is copied.
type Cloner[T any] interface {
	Clone() T
}

// Copy returns v.Clone() when T implements Cloner, v otherwise.
func Copy[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

// SizeOf returns the size in bytes of one T slot.
func SizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// HasPointers reports whether values of t can reference Go heap memory.
func HasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Slice,
		reflect.String, reflect.Chan, reflect.Func, reflect.Interface:
		return true
	case reflect.Array:
		return t.Len() > 0 && HasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if HasPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
