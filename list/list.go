// Package list implements a doubly-linked list whose nodes are allocated,
// constructed, destroyed and freed one at a time through a mem.Allocator.
//
// Positions are *Element values; nil is the end position, one past the last
// element. Erasing a node invalidates only pointers to that node.
package list

import (
	"iter"
	"slices"
	"unsafe"

	"github.com/pavanmanishd/mem"
)

// Element is one node of a List.
type Element[T any] struct {
	Value T

	prev, next *Element[T]
}

// Next returns the following element, or nil at the end.
func (e *Element[T]) Next() *Element[T] { return e.next }

// Prev returns the preceding element, or nil at the front.
func (e *Element[T]) Prev() *Element[T] { return e.prev }

// List is a doubly-linked list. The zero value is not usable; call New.
// A List is not safe for concurrent use.
type List[T any] struct {
	alloc mem.Allocator[Element[T]]
	head  *Element[T]
	tail  *Element[T]
	size  int
}

// New returns an empty list drawing nodes from a (mem.Heap when nil).
func New[T any](a mem.Allocator[Element[T]]) *List[T] {
	return &List[T]{alloc: mem.Or(a)}
}

// Of returns a list holding vs in order.
func Of[T any](a mem.Allocator[Element[T]], vs ...T) (*List[T], error) {
	l := New(a)
	if _, err := l.InsertSlice(nil, vs); err != nil {
		return nil, err
	}
	return l, nil
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return l.size }

// Empty reports whether the list holds no elements.
func (l *List[T]) Empty() bool { return l.size == 0 }

// First returns the first element, or nil when the list is empty.
func (l *List[T]) First() *Element[T] { return l.head }

// Last returns the last element, or nil when the list is empty.
func (l *List[T]) Last() *Element[T] { return l.tail }

// Front returns the first value, or an error wrapping mem.ErrEmpty.
func (l *List[T]) Front() (T, error) {
	if l.size == 0 {
		var zero T
		return zero, mem.Empty("list: Front")
	}
	return l.head.Value, nil
}

// Back returns the last value, or an error wrapping mem.ErrEmpty.
func (l *List[T]) Back() (T, error) {
	if l.size == 0 {
		var zero T
		return zero, mem.Empty("list: Back")
	}
	return l.tail.Value, nil
}

// PushBack appends v. On allocation failure the list is unchanged.
func (l *List[T]) PushBack(v T) error {
	_, err := l.Insert(nil, v)
	return err
}

// EmplaceBack appends the value returned by ctor, which is called only once
// the node has been allocated.
func (l *List[T]) EmplaceBack(ctor func() T) error {
	node, err := l.allocNode()
	if err != nil {
		return err
	}
	l.alloc.Construct(node, Element[T]{Value: ctor()})
	l.link(node, nil)
	return nil
}

// PushFront prepends v.
func (l *List[T]) PushFront(v T) error {
	_, err := l.Insert(l.head, v)
	return err
}

// Insert places v before pos and returns its element. A nil pos appends.
func (l *List[T]) Insert(pos *Element[T], v T) (*Element[T], error) {
	node, err := l.allocNode()
	if err != nil {
		return nil, err
	}
	l.alloc.Construct(node, Element[T]{Value: v})
	l.link(node, pos)
	return node, nil
}

// InsertN places count copies of v before pos and returns the first of
// them, or pos when count <= 0. If an allocation fails, the copies already
// inserted by this call are erased and the error is returned.
func (l *List[T]) InsertN(pos *Element[T], count int, v T) (*Element[T], error) {
	return l.InsertSeq(pos, func(yield func(T) bool) {
		for i := 0; i < count; i++ {
			if !yield(v) {
				return
			}
		}
	})
}

// InsertSlice places vs before pos, keeping their order. See InsertSeq.
func (l *List[T]) InsertSlice(pos *Element[T], vs []T) (*Element[T], error) {
	return l.InsertSeq(pos, slices.Values(vs))
}

// InsertSeq places every value of seq before pos, keeping their order, and
// returns the first inserted element, or pos when seq is empty. If an
// allocation fails, the elements already inserted by this call are erased and
// the error is returned.
func (l *List[T]) InsertSeq(pos *Element[T], seq iter.Seq[T]) (*Element[T], error) {
	var first *Element[T]
	var err error
	for v := range seq {
		var e *Element[T]
		if e, err = l.Insert(pos, v); err != nil {
			break
		}
		if first == nil {
			first = e
		}
	}
	if err != nil {
		for e := first; e != nil && e != pos; {
			e = l.Erase(e)
		}
		return nil, err
	}
	if first == nil {
		return pos, nil
	}
	return first, nil
}

// Erase unlinks e, destroys and frees its node and returns the element that
// followed it. e must belong to l.
func (l *List[T]) Erase(e *Element[T]) *Element[T] {
	next := e.next
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	l.size--
	l.alloc.Destroy(e)
	l.alloc.Deallocate(unsafe.Slice(e, 1), 1)
	return next
}

// RemoveFunc erases every element whose value satisfies match in a single
// front-to-back pass and returns how many were erased.
func (l *List[T]) RemoveFunc(match func(T) bool) int {
	n := 0
	for e := l.head; e != nil; {
		if match(e.Value) {
			e = l.Erase(e)
			n++
			continue
		}
		e = e.next
	}
	return n
}

// Remove erases every element of l equal to v and returns how many were
// erased.
func Remove[T comparable](l *List[T], v T) int {
	return l.RemoveFunc(func(x T) bool { return x == v })
}

// Clear erases every element.
func (l *List[T]) Clear() {
	for e := l.head; e != nil; {
		e = l.Erase(e)
	}
}

// Release erases every element. It exists for symmetry with the other
// containers; a list holds no storage beyond its nodes.
func (l *List[T]) Release() { l.Clear() }

// All yields the values front to back.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for e := l.head; e != nil; e = e.next {
			if !yield(e.Value) {
				return
			}
		}
	}
}

// Backward yields the values back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for e := l.tail; e != nil; e = e.prev {
			if !yield(e.Value) {
				return
			}
		}
	}
}

func (l *List[T]) allocNode() (*Element[T], error) {
	buf, err := l.alloc.Allocate(1)
	if err != nil {
		return nil, err
	}
	return &buf[0], nil
}

// link places a constructed node before pos, or at the back when pos is nil.
func (l *List[T]) link(node, pos *Element[T]) {
	if pos == nil {
		node.prev, node.next = l.tail, nil
		if l.tail != nil {
			l.tail.next = node
		} else {
			l.head = node
		}
		l.tail = node
	} else {
		node.prev, node.next = pos.prev, pos
		if pos.prev != nil {
			pos.prev.next = node
		} else {
			l.head = node
		}
		pos.prev = node
	}
	l.size++
}
