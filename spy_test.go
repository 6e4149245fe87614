package mem

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSpy_Counts verifies every capability call is counted and slot
// accounting follows allocate/deallocate.
func TestSpy_Counts(t *testing.T) {
	spy := NewSpy[int](nil)

	buf, err := spy.Allocate(4)
	require.NoError(t, err)
	require.Len(t, buf, 4)

	spy.Construct(&buf[0], 7)
	spy.Construct(&buf[1], 8)
	assert.Equal(t, 7, buf[0])

	spy.Destroy(&buf[0])
	assert.Equal(t, 0, buf[0], "Destroy should zero the slot")

	other, err := spy.Allocate(2)
	require.NoError(t, err)
	spy.Deallocate(buf, 4)

	st := spy.Stats()
	assert.Equal(t, 2, st.Allocations)
	assert.Equal(t, 1, st.Deallocations)
	assert.Equal(t, 2, st.Constructs)
	assert.Equal(t, 1, st.Destroys)
	assert.Equal(t, 2, st.LiveSlots)
	assert.Equal(t, 6, st.PeakSlots)

	spy.Deallocate(other, 2)
	assert.Equal(t, 0, spy.Stats().LiveSlots)
}

// TestSpy_Trace verifies events are only recorded while tracing.
func TestSpy_Trace(t *testing.T) {
	spy := NewSpy[int](nil)

	buf, _ := spy.Allocate(1)
	assert.Empty(t, spy.Events(), "no events before Trace(true)")

	spy.Trace(true)
	spy.Construct(&buf[0], 1)
	spy.Destroy(&buf[0])
	spy.Deallocate(buf, 1)

	assert.Equal(t, []Event{
		{Op: OpConstruct, Slots: 1},
		{Op: OpDestroy, Slots: 1},
		{Op: OpDeallocate, Slots: 1},
	}, spy.Events())

	spy.Trace(false)
	_, _ = spy.Allocate(1)
	assert.Empty(t, spy.Events())
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Event{Op: OpAllocate, Slots: 4}, "allocate(4)"},
		{Event{Op: OpDeallocate, Slots: 4}, "deallocate(4)"},
		{Event{Op: OpConstruct, Slots: 1}, "construct"},
		{Event{Op: OpDestroy, Slots: 1}, "destroy"},
		{Event{Op: OpAllocate, Slots: 9, Failed: true}, "allocate(9) failed"},
		{Event{Op: Op(42)}, "op(42)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.event.String())
	}
}

// TestSpy_FailAfter verifies failure injection after a number of successes.
func TestSpy_FailAfter(t *testing.T) {
	spy := NewSpy[int](nil)
	spy.FailAfter(2)

	_, err := spy.Allocate(1)
	require.NoError(t, err)
	_, err = spy.Allocate(1)
	require.NoError(t, err)

	_, err = spy.Allocate(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExhausted))
	assert.Contains(t, err.Error(), "allocate 1 slots")

	st := spy.Stats()
	assert.Equal(t, 2, st.Allocations)
	assert.Equal(t, 1, st.Failures)
	assert.Equal(t, 2, st.LiveSlots, "a refused allocation does not count as live")

	spy.FailAfter(-1)
	_, err = spy.Allocate(1)
	assert.NoError(t, err)
}

// TestSpy_SetLimit verifies allocations are refused past the live slot limit.
func TestSpy_SetLimit(t *testing.T) {
	spy := NewSpy[byte](nil)
	spy.SetLimit(10)

	buf, err := spy.Allocate(8)
	require.NoError(t, err)

	_, err = spy.Allocate(3)
	assert.ErrorIs(t, err, ErrExhausted)

	spy.Deallocate(buf, 8)
	_, err = spy.Allocate(3)
	assert.NoError(t, err, "freeing slots makes room again")

	spy.SetLimit(0)
	_, err = spy.Allocate(100)
	assert.NoError(t, err)
}

// TestSpy_Reset verifies counters restart while live slots are kept.
func TestSpy_Reset(t *testing.T) {
	spy := NewSpy[int](nil)
	spy.Trace(true)

	_, _ = spy.Allocate(3)
	buf, _ := spy.Allocate(5)
	spy.Deallocate(buf, 5)

	spy.Reset()
	st := spy.Stats()
	assert.Equal(t, Stats{LiveSlots: 3, PeakSlots: 3}, st)
	assert.Empty(t, spy.Events())
}

// TestSpy_PropagatesInnerError verifies errors from the wrapped allocator are
// returned as they are.
func TestSpy_PropagatesInnerError(t *testing.T) {
	inner := NewSpy[int](nil)
	inner.FailAfter(0)
	outer := NewSpy[int](inner)

	_, err := outer.Allocate(2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 1, outer.Stats().Failures)
	assert.Equal(t, 0, outer.Stats().LiveSlots)
}
