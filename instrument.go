package mem

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors fed by Instrumented allocators.
// One Metrics value may be shared by any number of allocators.
type Metrics struct {
	calls     *prometheus.CounterVec
	slots     *prometheus.CounterVec
	failures  prometheus.Counter
	liveSlots prometheus.Gauge
}

// NewMetrics creates the allocator collectors under namespace and registers
// them with reg. A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "allocator",
			Name:      "calls_total",
			Help:      "Allocator capability calls by operation.",
		}, []string{"op"}),
		slots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "allocator",
			Name:      "slots_total",
			Help:      "Element slots allocated or deallocated.",
		}, []string{"op"}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "allocator",
			Name:      "failures_total",
			Help:      "Allocate calls that returned an error.",
		}),
		liveSlots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "allocator",
			Name:      "live_slots",
			Help:      "Element slots allocated and not yet deallocated.",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.calls, m.slots, m.failures, m.liveSlots} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

type instrumented[T any] struct {
	a Allocator[T]
	m *Metrics
}

// Instrumented wraps a so that every call updates m. A nil a wraps Heap.
func Instrumented[T any](a Allocator[T], m *Metrics) Allocator[T] {
	return &instrumented[T]{a: Or(a), m: m}
}

func (i *instrumented[T]) Allocate(n int) ([]T, error) {
	buf, err := i.a.Allocate(n)
	if err != nil {
		i.m.failures.Inc()
		return nil, err
	}
	i.m.calls.WithLabelValues(OpAllocate.String()).Inc()
	i.m.slots.WithLabelValues(OpAllocate.String()).Add(float64(n))
	i.m.liveSlots.Add(float64(n))
	return buf, nil
}

func (i *instrumented[T]) Deallocate(buf []T, n int) {
	i.a.Deallocate(buf, n)
	i.m.calls.WithLabelValues(OpDeallocate.String()).Inc()
	i.m.slots.WithLabelValues(OpDeallocate.String()).Add(float64(n))
	i.m.liveSlots.Sub(float64(n))
}

func (i *instrumented[T]) Construct(slot *T, v T) {
	i.a.Construct(slot, v)
	i.m.calls.WithLabelValues(OpConstruct.String()).Inc()
}

func (i *instrumented[T]) Destroy(slot *T) {
	i.a.Destroy(slot)
	i.m.calls.WithLabelValues(OpDestroy.String()).Inc()
}
