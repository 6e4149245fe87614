package list

import "github.com/pavanmanishd/mem"

// Clone returns an independent copy built by appending a copy of every value.
// Values implementing mem.Cloner are deep copied.
func (l *List[T]) Clone() (*List[T], error) {
	c := New(l.alloc)
	for e := l.head; e != nil; e = e.next {
		if err := c.PushBack(mem.Copy(e.Value)); err != nil {
			c.Clear()
			return nil, err
		}
	}
	return c, nil
}

// CopyFrom replaces the contents with copies of src's values. On allocation
// failure l is unchanged.
func (l *List[T]) CopyFrom(src *List[T]) error {
	if src == l {
		return nil
	}
	tmp := New(l.alloc)
	for e := src.head; e != nil; e = e.next {
		if err := tmp.PushBack(mem.Copy(e.Value)); err != nil {
			tmp.Clear()
			return err
		}
	}
	l.Clear()
	l.head, l.tail, l.size = tmp.head, tmp.tail, tmp.size
	return nil
}

// Move transfers every node to a new list and leaves l empty. No allocator
// calls are made.
func (l *List[T]) Move() *List[T] {
	m := &List[T]{alloc: l.alloc, head: l.head, tail: l.tail, size: l.size}
	l.head, l.tail, l.size = nil, nil, 0
	return m
}

// MoveFrom erases l's nodes and takes over src's nodes together with the
// allocator that owns them. src is left empty.
func (l *List[T]) MoveFrom(src *List[T]) {
	if src == l {
		return
	}
	l.Clear()
	l.alloc, l.head, l.tail, l.size = src.alloc, src.head, src.tail, src.size
	src.head, src.tail, src.size = nil, nil, 0
}
