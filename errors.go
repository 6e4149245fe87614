package mem

import "github.com/pkg/errors"

var (
	// ErrOutOfRange indicates a checked accessor was used outside [0, size).
	ErrOutOfRange = errors.New("mem: index out of range")

	// ErrEmpty indicates Front, Back or PopBack on an empty container.
	ErrEmpty = errors.New("mem: empty container")

	// ErrExhausted indicates the allocator refused to hand out more slots.
	ErrExhausted = errors.New("mem: allocator exhausted")

	// ErrPointerElem indicates an off-heap allocator was asked for an element
	// type that holds Go pointers.
	ErrPointerElem = errors.New("mem: element type holds Go pointers")
)

// OutOfRange returns ErrOutOfRange annotated with the offending index.
func OutOfRange(index, size int) error {
	return errors.Wrapf(ErrOutOfRange, "index %d, size %d", index, size)
}

// Empty returns ErrEmpty annotated with the operation that hit it.
func Empty(op string) error {
	return errors.Wrapf(ErrEmpty, "%s", op)
}
