package mem

import (
	"math"
	"reflect"
	"unsafe"

	"github.com/pkg/errors"
	"modernc.org/memory"
)

// Manual allocates element slots outside the Go heap. Deallocate returns the
// memory immediately. Element types must not hold Go pointers because the
// collector never scans this memory. Not goroutine-safe; wrap in Locked to
// share.
type Manual[T any] struct {
	Placement[T]
	m    memory.Allocator
	size int
}

// NewManual returns an off-heap allocator for T, or ErrPointerElem when T can
// reference Go heap memory.
func NewManual[T any]() (*Manual[T], error) {
	if t := reflect.TypeFor[T](); HasPointers(t) {
		return nil, errors.Wrapf(ErrPointerElem, "manual allocator: %s", t)
	}
	return &Manual[T]{size: SizeOf[T]()}, nil
}

// Allocate returns n zeroed slots.
func (m *Manual[T]) Allocate(n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	if m.size == 0 {
		return make([]T, n), nil
	}
	if n > math.MaxInt/m.size {
		return nil, errors.Wrapf(ErrExhausted, "manual allocator: %d slots of %d bytes", n, m.size)
	}
	b, err := m.m.Calloc(n * m.size)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n), nil
}

// Deallocate frees buf. It panics when the memory was not obtained from m.
func (m *Manual[T]) Deallocate(buf []T, n int) {
	if len(buf) == 0 || m.size == 0 {
		return
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(buf))), n*m.size)
	if err := m.m.Free(b); err != nil {
		panic(errors.Wrap(err, "manual allocator: free"))
	}
}

// Close releases every block still held by the allocator.
func (m *Manual[T]) Close() error {
	return m.m.Close()
}
