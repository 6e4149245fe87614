package mem

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// Op identifies one allocator capability call.
type Op uint8

const (
	OpAllocate Op = iota + 1
	OpDeallocate
	OpConstruct
	OpDestroy
)

func (o Op) String() string {
	switch o {
	case OpAllocate:
		return "allocate"
	case OpDeallocate:
		return "deallocate"
	case OpConstruct:
		return "construct"
	case OpDestroy:
		return "destroy"
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Event is one recorded allocator call. Slots is the buffer length for
// allocate and deallocate and 1 for construct and destroy.
type Event struct {
	Op     Op
	Slots  int
	Failed bool
}

func (e Event) String() string {
	switch {
	case e.Failed:
		return fmt.Sprintf("%s(%d) failed", e.Op, e.Slots)
	case e.Op == OpAllocate || e.Op == OpDeallocate:
		return fmt.Sprintf("%s(%d)", e.Op, e.Slots)
	}
	return e.Op.String()
}

// Stats is a snapshot of the calls a Spy has seen.
type Stats struct {
	Allocations   int // successful Allocate calls
	Deallocations int
	Constructs    int
	Destroys      int
	Failures      int // refused Allocate calls
	LiveSlots     int // allocated and not yet deallocated
	PeakSlots     int
}

// Spy wraps an allocator and records every call made through it. It can also
// refuse allocations to simulate exhaustion. A Spy is safe to share.
type Spy[T any] struct {
	mu        sync.Mutex
	a         Allocator[T]
	stats     Stats
	trace     bool
	events    []Event
	failAfter int
	limit     int
}

// NewSpy wraps a. A nil a wraps Heap.
func NewSpy[T any](a Allocator[T]) *Spy[T] {
	return &Spy[T]{a: Or(a), failAfter: -1}
}

// Trace turns event recording on or off. Turning it on discards old events.
func (s *Spy[T]) Trace(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace = on
	s.events = nil
}

// Events returns a copy of the recorded events.
func (s *Spy[T]) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

// FailAfter lets n more allocations succeed and refuses the rest with
// ErrExhausted. A negative n removes the restriction.
func (s *Spy[T]) FailAfter(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAfter = n
}

// SetLimit refuses any allocation that would take the live slot count above
// slots. Zero removes the limit.
func (s *Spy[T]) SetLimit(slots int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limit = slots
}

// Stats returns a snapshot of the counters.
func (s *Spy[T]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Reset zeroes the counters and events but keeps live slot accounting and
// the failure settings.
func (s *Spy[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = Stats{LiveSlots: s.stats.LiveSlots, PeakSlots: s.stats.LiveSlots}
	s.events = nil
}

func (s *Spy[T]) Allocate(n int) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAfter == 0 || (s.limit > 0 && s.stats.LiveSlots+n > s.limit) {
		s.stats.Failures++
		s.record(Event{Op: OpAllocate, Slots: n, Failed: true})
		return nil, errors.Wrapf(ErrExhausted, "allocate %d slots", n)
	}

	buf, err := s.a.Allocate(n)
	if err != nil {
		s.stats.Failures++
		s.record(Event{Op: OpAllocate, Slots: n, Failed: true})
		return nil, err
	}
	if s.failAfter > 0 {
		s.failAfter--
	}
	s.stats.Allocations++
	s.stats.LiveSlots += n
	if s.stats.LiveSlots > s.stats.PeakSlots {
		s.stats.PeakSlots = s.stats.LiveSlots
	}
	s.record(Event{Op: OpAllocate, Slots: n})
	return buf, nil
}

func (s *Spy[T]) Deallocate(buf []T, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Deallocate(buf, n)
	s.stats.Deallocations++
	s.stats.LiveSlots -= n
	s.record(Event{Op: OpDeallocate, Slots: n})
}

func (s *Spy[T]) Construct(slot *T, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Construct(slot, v)
	s.stats.Constructs++
	s.record(Event{Op: OpConstruct, Slots: 1})
}

func (s *Spy[T]) Destroy(slot *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Destroy(slot)
	s.stats.Destroys++
	s.record(Event{Op: OpDestroy, Slots: 1})
}

func (s *Spy[T]) record(e Event) {
	if s.trace {
		s.events = append(s.events, e)
	}
}
