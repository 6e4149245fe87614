package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/mem"
)

// TestPushBack_Growth verifies the capacity sequence and the allocator calls
// made while pushing ten elements.
func TestPushBack_Growth(t *testing.T) {
	spy := mem.NewSpy[int](nil)
	v := New[int](spy)

	var caps []int
	for i := 0; i < 10; i++ {
		require.NoError(t, v.PushBack(i))
		assert.Equal(t, i+1, v.Len())
		caps = append(caps, v.Cap())
	}

	assert.Equal(t, []int{1, 2, 3, 4, 6, 6, 9, 9, 9, 13}, caps)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, v.Slice())

	st := spy.Stats()
	assert.Equal(t, 7, st.Allocations)
	assert.Equal(t, 6, st.Deallocations)
	assert.Equal(t, 35, st.Constructs)
	assert.Equal(t, 25, st.Destroys)
	assert.Equal(t, 13, st.LiveSlots)
}

// TestPushBack_RelocationOrder verifies the new element is built first and
// relocation runs as a construct pass followed by a destroy pass.
func TestPushBack_RelocationOrder(t *testing.T) {
	spy := mem.NewSpy[int](nil)
	v, err := Of[int](spy, 1, 2)
	require.NoError(t, err)

	spy.Trace(true)
	require.NoError(t, v.PushBack(3))

	assert.Equal(t, []mem.Event{
		{Op: mem.OpAllocate, Slots: 3},
		{Op: mem.OpConstruct, Slots: 1},
		{Op: mem.OpConstruct, Slots: 1},
		{Op: mem.OpConstruct, Slots: 1},
		{Op: mem.OpDestroy, Slots: 1},
		{Op: mem.OpDestroy, Slots: 1},
		{Op: mem.OpDeallocate, Slots: 2},
	}, spy.Events())
}

func TestCalculateCapacity(t *testing.T) {
	tests := []struct {
		capacity int
		size     int
		want     int
	}{
		{0, 1, 1},
		{0, 5, 5},
		{1, 2, 2},
		{2, 3, 3},
		{3, 4, 4},
		{4, 5, 6},
		{4, 20, 20},
		{9, 10, 13},
		{8, 8, 8},
	}
	for _, tt := range tests {
		v := &Vector[int]{items: make([]int, tt.capacity)}
		assert.Equal(t, tt.want, v.calculateCapacity(tt.size), "capacity %d, size %d", tt.capacity, tt.size)
	}
}

// TestPushBack_AllocationFailure verifies a refused allocation leaves the
// vector untouched.
func TestPushBack_AllocationFailure(t *testing.T) {
	spy := mem.NewSpy[int](nil)
	v, err := Of[int](spy, 1, 2)
	require.NoError(t, err)

	before := spy.Stats()
	spy.FailAfter(0)

	err = v.PushBack(3)
	require.ErrorIs(t, err, mem.ErrExhausted)
	assert.Equal(t, []int{1, 2}, v.Slice())
	assert.Equal(t, 2, v.Cap())

	after := spy.Stats()
	assert.Equal(t, before.Constructs, after.Constructs)
	assert.Equal(t, before.Destroys, after.Destroys)
	assert.Equal(t, before.Deallocations, after.Deallocations)
}

func TestEmplaceBack(t *testing.T) {
	spy := mem.NewSpy[string](nil)
	v := New[string](spy)

	require.NoError(t, v.EmplaceBack(func() string { return "a" }))
	require.NoError(t, v.EmplaceBack(func() string { return "b" }))
	assert.Equal(t, []string{"a", "b"}, v.Slice())

	spy.FailAfter(0)
	called := false
	err := v.EmplaceBack(func() string {
		called = true
		return "c"
	})
	assert.ErrorIs(t, err, mem.ErrExhausted)
	assert.False(t, called, "ctor runs only once the slot exists")
	assert.Equal(t, 2, v.Len())
}

func TestPopBack(t *testing.T) {
	spy := mem.NewSpy[int](nil)
	v, err := Of[int](spy, 1, 2, 3)
	require.NoError(t, err)

	x, err := v.PopBack()
	require.NoError(t, err)
	assert.Equal(t, 3, x)
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, 3, v.Cap())
	assert.Equal(t, 1, spy.Stats().Destroys)

	_, _ = v.PopBack()
	_, _ = v.PopBack()
	_, err = v.PopBack()
	assert.ErrorIs(t, err, mem.ErrEmpty)
}

func TestReserve(t *testing.T) {
	spy := mem.NewSpy[int](nil)
	v, err := Of[int](spy, 1, 2)
	require.NoError(t, err)

	require.NoError(t, v.Reserve(10))
	assert.Equal(t, 10, v.Cap())
	assert.Equal(t, []int{1, 2}, v.Slice())

	allocs := spy.Stats().Allocations
	require.NoError(t, v.Reserve(5))
	assert.Equal(t, 10, v.Cap())
	assert.Equal(t, allocs, spy.Stats().Allocations, "Reserve below capacity is a no-op")
}

// TestResize_ThenShrinkToFit covers growing from empty, shrinking and
// trimming the capacity.
func TestResize_ThenShrinkToFit(t *testing.T) {
	v := New[int](nil)

	require.NoError(t, v.Resize(5))
	assert.Equal(t, 5, v.Len())
	assert.Equal(t, []int{0, 0, 0, 0, 0}, v.Slice())

	for i := range 5 {
		v.Set(i, i+10)
	}

	require.NoError(t, v.Resize(2))
	assert.Equal(t, []int{10, 11}, v.Slice())
	assert.Equal(t, 5, v.Cap())

	require.NoError(t, v.ShrinkToFit())
	assert.Equal(t, 2, v.Cap())
	assert.Equal(t, []int{10, 11}, v.Slice())
}

func TestResize_UsesGrowthPolicy(t *testing.T) {
	v, err := Of[int](nil, 1, 2, 3, 4)
	require.NoError(t, err)

	require.NoError(t, v.Resize(5))
	assert.Equal(t, 6, v.Cap())
	assert.Equal(t, []int{1, 2, 3, 4, 0}, v.Slice())
}

func TestResize_Negative(t *testing.T) {
	v := New[int](nil)
	assert.Panics(t, func() { _ = v.Resize(-1) })
}

func TestResize_FailureKeepsState(t *testing.T) {
	spy := mem.NewSpy[int](nil)
	v, err := Of[int](spy, 1)
	require.NoError(t, err)

	spy.FailAfter(0)
	require.ErrorIs(t, v.Resize(4), mem.ErrExhausted)
	assert.Equal(t, []int{1}, v.Slice())
	assert.Equal(t, 1, v.Cap())
}

func TestShrinkToFit_Empty(t *testing.T) {
	spy := mem.NewSpy[int](nil)
	v, err := Of[int](spy, 1, 2, 3)
	require.NoError(t, err)

	v.Clear()
	assert.Equal(t, 3, v.Cap(), "Clear keeps the capacity")
	assert.Equal(t, 3, spy.Stats().Destroys)

	require.NoError(t, v.ShrinkToFit())
	assert.Equal(t, 0, v.Cap())
	assert.Nil(t, v.items)
	assert.Equal(t, 1, spy.Stats().Deallocations)
	assert.Equal(t, 0, spy.Stats().LiveSlots)
}

func TestRelease(t *testing.T) {
	spy := mem.NewSpy[int](nil)
	v, err := Of[int](spy, 1, 2, 3)
	require.NoError(t, err)

	v.Release()
	assert.True(t, v.Empty())
	assert.Equal(t, 0, v.Cap())
	assert.Equal(t, 0, spy.Stats().LiveSlots)

	require.NoError(t, v.PushBack(4), "vector stays usable")
	assert.Equal(t, []int{4}, v.Slice())
}

func TestCheckedAccess(t *testing.T) {
	v, err := Of[string](nil, "a", "b", "c")
	require.NoError(t, err)

	x, err := v.At(2)
	require.NoError(t, err)
	assert.Equal(t, "c", x)

	for _, i := range []int{-1, 3, 100} {
		_, err := v.At(i)
		assert.ErrorIs(t, err, mem.ErrOutOfRange, "At(%d)", i)
		assert.ErrorIs(t, v.SetAt(i, "z"), mem.ErrOutOfRange, "SetAt(%d)", i)
	}

	require.NoError(t, v.SetAt(0, "z"))
	assert.Equal(t, "z", v.Index(0))
	*v.Ref(1) = "y"
	assert.Equal(t, []string{"z", "y", "c"}, v.Slice())
}

func TestUncheckedAccessPastCapacityPanics(t *testing.T) {
	v, err := Of[int](nil, 1, 2)
	require.NoError(t, err)
	assert.Panics(t, func() { _ = v.Index(v.Cap()) })
}

func TestFrontBack(t *testing.T) {
	v := New[int](nil)

	_, err := v.Front()
	assert.ErrorIs(t, err, mem.ErrEmpty)
	_, err = v.Back()
	assert.ErrorIs(t, err, mem.ErrEmpty)

	require.NoError(t, v.PushBack(1))
	require.NoError(t, v.PushBack(2))

	front, err := v.Front()
	require.NoError(t, err)
	back, err := v.Back()
	require.NoError(t, err)
	assert.Equal(t, 1, front)
	assert.Equal(t, 2, back)
}

func TestIteration(t *testing.T) {
	v, err := Of[int](nil, 10, 20, 30)
	require.NoError(t, err)

	var fwd, idx []int
	for i, x := range v.All() {
		idx = append(idx, i)
		fwd = append(fwd, x)
	}
	assert.Equal(t, []int{0, 1, 2}, idx)
	assert.Equal(t, []int{10, 20, 30}, fwd)

	var back []int
	for _, x := range v.Backward() {
		back = append(back, x)
	}
	assert.Equal(t, []int{30, 20, 10}, back)

	var first []int
	for _, x := range v.All() {
		first = append(first, x)
		break
	}
	assert.Equal(t, []int{10}, first)
}

func TestArenaStorage(t *testing.T) {
	a := mem.NewArena(256)
	v := New(mem.ArenaOf[int64](a))

	for i := range 100 {
		require.NoError(t, v.PushBack(int64(i)))
	}
	assert.Equal(t, 100, v.Len())
	assert.Equal(t, int64(99), v.Index(99))
	assert.Greater(t, a.SizeInUse(), 100*8)
}

func TestManualStorage(t *testing.T) {
	m, err := mem.NewManual[int32]()
	require.NoError(t, err)
	defer m.Close()

	v := New[int32](m)
	for i := range 50 {
		require.NoError(t, v.PushBack(int32(i)))
	}
	require.NoError(t, v.ShrinkToFit())
	assert.Equal(t, 50, v.Cap())
	assert.Equal(t, int32(49), v.Index(49))
	v.Release()
}
