package vector

import "github.com/pavanmanishd/mem"

// Clone returns an independent copy with the same capacity. Elements
// implementing mem.Cloner are deep copied.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	c := &Vector[T]{alloc: v.alloc}
	if len(v.items) == 0 {
		return c, nil
	}
	items, err := c.alloc.Allocate(len(v.items))
	if err != nil {
		return nil, err
	}
	for i := 0; i < v.size; i++ {
		c.alloc.Construct(&items[i], mem.Copy(v.items[i]))
	}
	c.items, c.size = items, v.size
	return c, nil
}

// CopyFrom replaces the contents with copies of src's elements and takes
// src's capacity. On allocation failure v is unchanged.
func (v *Vector[T]) CopyFrom(src *Vector[T]) error {
	if src == v {
		return nil
	}
	switch n := len(src.items); {
	case n == len(v.items):
		v.Clear()
	case n == 0:
		v.Release()
	default:
		items, err := v.alloc.Allocate(n)
		if err != nil {
			return err
		}
		v.Release()
		v.items = items
	}
	for i := 0; i < src.size; i++ {
		v.alloc.Construct(&v.items[i], mem.Copy(src.items[i]))
	}
	v.size = src.size
	return nil
}

// Move transfers the buffer to a new vector and leaves v empty with no
// storage. No allocator calls are made.
func (v *Vector[T]) Move() *Vector[T] {
	m := &Vector[T]{alloc: v.alloc, items: v.items, size: v.size}
	v.items, v.size = nil, 0
	return m
}

// MoveFrom releases v's storage and takes over src's buffer together with
// the allocator that owns it. src is left empty.
func (v *Vector[T]) MoveFrom(src *Vector[T]) {
	if src == v {
		return
	}
	v.Release()
	v.alloc, v.items, v.size = src.alloc, src.items, src.size
	src.items, src.size = nil, 0
}
