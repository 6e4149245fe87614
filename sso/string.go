// Package sso implements a character string with small-buffer optimization.
//
// A String keeps up to InlineWidth-1 characters plus a zero terminator in a
// fixed array inside the value. Longer strings live in a buffer obtained from
// a mem.Allocator whose capacity is size+1 rounded up to a multiple of
// CapacityStep. The representation is never stored separately: a string is
// inline exactly when size+1 <= InlineWidth, and every mutation re-evaluates
// that rule.
package sso

import (
	"iter"
	"slices"
	"unicode/utf16"
	"unsafe"

	"github.com/pavanmanishd/mem"
)

const (
	// InlineWidth is the number of character slots stored inside the value,
	// terminator included.
	InlineWidth = 16

	// CapacityStep is the granularity of heap buffer capacities.
	CapacityStep = 16
)

// Char is the set of character types a String can hold.
type Char interface {
	~byte | ~uint16 | ~rune
}

// String is a small-buffer-optimized character string. The zero value is not
// usable; call New. A String is not safe for concurrent use.
type String[C Char] struct {
	alloc  mem.Allocator[C]
	inline [InlineWidth]C
	heap   []C // len(heap) is the capacity
	size   int
}

// New returns an empty string drawing heap buffers from a (mem.Heap when nil).
func New[C Char](a mem.Allocator[C]) *String[C] {
	return &String[C]{alloc: mem.Or(a)}
}

// From returns a string holding a copy of chars.
func From[C Char](a mem.Allocator[C], chars []C) (*String[C], error) {
	s := New(a)
	if err := s.Assign(chars); err != nil {
		return nil, err
	}
	return s, nil
}

// FromCString returns a string holding chars up to, not including, the first
// zero character.
func FromCString[C Char](a mem.Allocator[C], chars []C) (*String[C], error) {
	if i := slices.Index(chars, 0); i >= 0 {
		chars = chars[:i]
	}
	return From(a, chars)
}

// FromString returns a byte string holding the bytes of str.
func FromString(a mem.Allocator[byte], str string) (*String[byte], error) {
	return From(a, []byte(str))
}

// FromStringUTF16 returns a UTF-16 string holding str re-encoded.
func FromStringUTF16(a mem.Allocator[uint16], str string) (*String[uint16], error) {
	return From(a, utf16.Encode([]rune(str)))
}

func fitsInline(n int) bool { return n+1 <= InlineWidth }

// capacityFor rounds n+1 up to the next multiple of CapacityStep.
func capacityFor(n int) int {
	need := n + 1
	if r := need % CapacityStep; r != 0 {
		need += CapacityStep - r
	}
	return need
}

// Len returns the number of characters.
func (s *String[C]) Len() int { return s.size }

// Size is an alias of Len.
func (s *String[C]) Size() int { return s.size }

// Cap returns the capacity of the heap buffer, zero when there is none. A
// buffer kept by Clear or Reserve is reported even while the characters are
// inline.
func (s *String[C]) Cap() int { return len(s.heap) }

// IsInline reports whether the characters are stored inside the value.
func (s *String[C]) IsInline() bool { return fitsInline(s.size) }

// Chars returns the characters. The slice aliases the string's storage and is
// invalidated by the next mutation.
func (s *String[C]) Chars() []C {
	if s.IsInline() {
		return s.inline[:s.size:s.size]
	}
	return s.heap[:s.size:s.size]
}

// CStr returns the characters followed by the zero terminator.
func (s *String[C]) CStr() []C {
	if s.IsInline() {
		return s.inline[: s.size+1 : s.size+1]
	}
	return s.heap[: s.size+1 : s.size+1]
}

// At returns character i, or an error wrapping mem.ErrOutOfRange when i is
// not in [0, Len).
func (s *String[C]) At(i int) (C, error) {
	if i < 0 || i >= s.size {
		return 0, mem.OutOfRange(i, s.size)
	}
	return s.Chars()[i], nil
}

// Set overwrites character i, or returns an error wrapping mem.ErrOutOfRange.
func (s *String[C]) Set(i int, c C) error {
	if i < 0 || i >= s.size {
		return mem.OutOfRange(i, s.size)
	}
	s.Chars()[i] = c
	return nil
}

// All yields index/character pairs in order.
func (s *String[C]) All() iter.Seq2[int, C] {
	return func(yield func(int, C) bool) {
		for i, c := range s.Chars() {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Equal reports whether both strings hold the same characters.
func (s *String[C]) Equal(o *String[C]) bool {
	return slices.Equal(s.Chars(), o.Chars())
}

// String decodes the characters: bytes as UTF-8, 16-bit characters as UTF-16
// and 32-bit characters as code points.
func (s *String[C]) String() string {
	chars := s.Chars()
	if len(chars) == 0 {
		return ""
	}
	p := unsafe.Pointer(unsafe.SliceData(chars))
	switch unsafe.Sizeof(chars[0]) {
	case 1:
		return string(unsafe.Slice((*byte)(p), len(chars)))
	case 2:
		return string(utf16.Decode(unsafe.Slice((*uint16)(p), len(chars))))
	default:
		return string(unsafe.Slice((*rune)(p), len(chars)))
	}
}

// Assign replaces the contents with chars. A heap buffer large enough is
// reused; on allocation failure s is unchanged.
func (s *String[C]) Assign(chars []C) error {
	if s.overlaps(chars) {
		chars = slices.Clone(chars)
	}
	if err := s.reshape(len(chars), 0); err != nil {
		return err
	}
	s.fill(0, chars)
	return nil
}

// AssignString replaces the contents with copies of o's characters.
func (s *String[C]) AssignString(o *String[C]) error {
	if o == s {
		return nil
	}
	return s.Assign(o.Chars())
}

// Append adds chars at the end. On allocation failure s is unchanged.
func (s *String[C]) Append(chars []C) error {
	if s.overlaps(chars) {
		chars = slices.Clone(chars)
	}
	old := s.size
	if err := s.reshape(old+len(chars), old); err != nil {
		return err
	}
	s.fill(old, chars)
	return nil
}

// Concat returns a new string holding s followed by o. Neither operand
// changes.
func (s *String[C]) Concat(o *String[C]) (*String[C], error) {
	return s.ConcatChars(o.Chars())
}

// ConcatChars returns a new string holding s followed by chars.
func (s *String[C]) ConcatChars(chars []C) (*String[C], error) {
	r := New(s.alloc)
	if err := r.reshape(s.size+len(chars), 0); err != nil {
		return nil, err
	}
	r.fill(0, s.Chars())
	r.fill(s.size, chars)
	return r, nil
}

// Clone returns a copy of s using the same allocator.
func (s *String[C]) Clone() (*String[C], error) {
	return From(s.alloc, s.Chars())
}

// CopyFrom replaces the contents of s with a copy of src's characters,
// keeping s's allocator. On failure s is unchanged.
func (s *String[C]) CopyFrom(src *String[C]) error {
	return s.AssignString(src)
}

// Move returns a string that takes over s's characters and heap buffer
// without touching the allocator. Inline characters are copied directly. s
// is left empty.
func (s *String[C]) Move() *String[C] {
	m := &String[C]{alloc: s.alloc}
	m.take(s)
	return m
}

// MoveFrom releases s's storage and takes over src's characters, heap buffer
// and allocator, leaving src empty. Moving a string into itself does nothing.
func (s *String[C]) MoveFrom(src *String[C]) {
	if src == s {
		return
	}
	s.Release()
	s.alloc = src.alloc
	s.take(src)
}

func (s *String[C]) take(src *String[C]) {
	s.inline = src.inline
	s.heap = src.heap
	s.size = src.size
	clear(src.inline[:])
	src.heap = nil
	src.size = 0
}

// Truncate shortens the string to n characters. It does nothing when n >= Len
// and panics when n is negative.
func (s *String[C]) Truncate(n int) {
	if n < 0 {
		panic("sso: negative Truncate")
	}
	if n >= s.size {
		return
	}
	// Shrinking never allocates: the result is inline or fits the current
	// heap buffer.
	_ = s.reshape(n, n)
}

// Reserve makes sure a string of n characters fits without another
// allocation. It never changes the contents. A buffer reserved while the
// characters are inline is kept until a mutation leaves the string inline.
func (s *String[C]) Reserve(n int) error {
	if fitsInline(n) || n+1 <= len(s.heap) {
		return nil
	}
	buf, err := s.alloc.Allocate(capacityFor(n))
	if err != nil {
		return err
	}
	s.rehome(buf)
	return nil
}

// ShrinkToFit releases spare heap capacity: an inline string drops its heap
// buffer, a heap string moves to the smallest buffer that fits.
func (s *String[C]) ShrinkToFit() error {
	if s.IsInline() {
		s.releaseHeap(true)
		return nil
	}
	want := capacityFor(s.size)
	if want >= len(s.heap) {
		return nil
	}
	buf, err := s.alloc.Allocate(want)
	if err != nil {
		return err
	}
	s.rehome(buf)
	return nil
}

// Clear destroys every character and sets the length to zero. A heap buffer
// is kept as spare capacity until the next mutation re-evaluates the
// representation.
func (s *String[C]) Clear() {
	if s.IsInline() {
		clear(s.inline[:])
	} else {
		for i := 0; i < s.size; i++ {
			s.alloc.Destroy(&s.heap[i])
		}
	}
	s.size = 0
}

// Release returns any heap buffer to the allocator and empties the string.
func (s *String[C]) Release() {
	s.releaseHeap(s.IsInline())
	clear(s.inline[:])
	s.size = 0
}

// reshape sets the length to n keeping the first keep characters. Slots from
// keep on are zero afterwards. New storage is acquired before the old one is
// released, so a failed allocation leaves s untouched.
func (s *String[C]) reshape(n, keep int) error {
	wasInline := s.IsInline()
	old := s.Chars()

	switch {
	case fitsInline(n):
		if !wasInline {
			copy(s.inline[:keep], old[:keep])
		}
		clear(s.inline[keep:])
		s.releaseHeap(wasInline)

	case n+1 <= len(s.heap):
		if wasInline {
			for i := 0; i < keep; i++ {
				s.alloc.Construct(&s.heap[i], old[i])
			}
			clear(s.inline[:])
		} else {
			for i := keep; i < s.size; i++ {
				s.alloc.Destroy(&s.heap[i])
			}
		}

	default:
		buf, err := s.alloc.Allocate(capacityFor(n))
		if err != nil {
			return err
		}
		for i := 0; i < keep; i++ {
			s.alloc.Construct(&buf[i], old[i])
		}
		s.releaseHeap(wasInline)
		if wasInline {
			clear(s.inline[:])
		}
		s.heap = buf
	}

	s.size = n
	return nil
}

// rehome moves heap characters into buf and makes it the heap buffer. Inline
// characters stay where they are.
func (s *String[C]) rehome(buf []C) {
	inline := s.IsInline()
	if !inline {
		for i := 0; i < s.size; i++ {
			s.alloc.Construct(&buf[i], s.heap[i])
		}
	}
	s.releaseHeap(inline)
	s.heap = buf
}

// releaseHeap frees the heap buffer, destroying its characters first unless
// they were inline.
func (s *String[C]) releaseHeap(inline bool) {
	if s.heap == nil {
		return
	}
	if !inline {
		for i := 0; i < s.size; i++ {
			s.alloc.Destroy(&s.heap[i])
		}
	}
	s.alloc.Deallocate(s.heap, len(s.heap))
	s.heap = nil
}

func (s *String[C]) fill(at int, chars []C) {
	if s.IsInline() {
		copy(s.inline[at:], chars)
		return
	}
	for i, c := range chars {
		s.alloc.Construct(&s.heap[at+i], c)
	}
}

func (s *String[C]) overlaps(chars []C) bool {
	if len(chars) == 0 {
		return false
	}
	p := uintptr(unsafe.Pointer(unsafe.SliceData(chars)))
	return within(p, s.inline[:]) || within(p, s.heap)
}

func within[C Char](p uintptr, buf []C) bool {
	if len(buf) == 0 {
		return false
	}
	lo := uintptr(unsafe.Pointer(&buf[0]))
	hi := lo + uintptr(len(buf))*unsafe.Sizeof(buf[0])
	return p >= lo && p < hi
}
