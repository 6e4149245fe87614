package mem

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// ByteSource hands out raw bytes. Both Arena and SafeArena implement it.
type ByteSource interface {
	AllocBytes(n int) []byte
}

type arenaAllocator[T any] struct {
	Placement[T]
	src ByteSource
}

// ArenaOf returns an allocator that carves typed slots out of src.
// Deallocate is a no-op: the memory is reclaimed in bulk by Reset or Release
// on the arena. Several allocators of different element types may share one
// arena.
func ArenaOf[T any](src ByteSource) Allocator[T] {
	return arenaAllocator[T]{src: src}
}

// Allocate returns n zeroed slots backed by arena memory.
func (a arenaAllocator[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	elemSize := SizeOf[T]()
	if elemSize == 0 {
		return make([]T, n), nil
	}
	if n > math.MaxInt/elemSize {
		return nil, errors.Wrapf(ErrExhausted, "arena: %d slots of %d bytes", n, elemSize)
	}
	b := a.src.AllocBytes(elemSize * n)
	// Reset hands out old bytes again.
	clear(b)
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n), nil
}

func (arenaAllocator[T]) Deallocate([]T, int) {}
