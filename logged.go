package mem

import (
	"reflect"

	"github.com/rs/zerolog"
)

type logged[T any] struct {
	a    Allocator[T]
	lg   zerolog.Logger
	size int
}

// Logged wraps a so that every Allocate and Deallocate is written to lg at
// debug level, refused allocations at warn level and element construction at
// trace level. A nil a wraps Heap.
func Logged[T any](a Allocator[T], lg zerolog.Logger) Allocator[T] {
	return &logged[T]{
		a:    Or(a),
		lg:   lg.With().Str("elem", reflect.TypeFor[T]().String()).Logger(),
		size: SizeOf[T](),
	}
}

func (l *logged[T]) Allocate(n int) ([]T, error) {
	buf, err := l.a.Allocate(n)
	if err != nil {
		l.lg.Warn().Err(err).Int("slots", n).Msg("allocate failed")
		return nil, err
	}
	l.lg.Debug().Int("slots", n).Int("bytes", n*l.size).Msg("allocate")
	return buf, nil
}

func (l *logged[T]) Deallocate(buf []T, n int) {
	l.a.Deallocate(buf, n)
	l.lg.Debug().Int("slots", n).Int("bytes", n*l.size).Msg("deallocate")
}

func (l *logged[T]) Construct(slot *T, v T) {
	l.a.Construct(slot, v)
	l.lg.Trace().Msg("construct")
}

func (l *logged[T]) Destroy(slot *T) {
	l.a.Destroy(slot)
	l.lg.Trace().Msg("destroy")
}
