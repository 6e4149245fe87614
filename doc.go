// Package mem provides the allocator capability shared by the containers in
// this module, together with a family of allocators that implement it.
//
// # Overview
//
// Every container in the vector, list and sso packages obtains and releases
// its storage through an [Allocator]. The capability has four operations:
//
//   - Allocate(n): raw storage for n element slots
//   - Deallocate(buf, n): return storage obtained from Allocate
//   - Construct(slot, v): place one element into a slot
//   - Destroy(slot): end the lifetime of one element
//
// Containers never touch memory any other way, so an allocator sees every
// allocation, every deallocation and every element construction. This makes
// it possible to count calls, inject failures, log, export metrics or move
// storage off the Go heap without changing container code.
//
// # Basic Usage
//
//	v := vector.New[int](nil) // nil selects mem.Heap
//	_ = v.PushBack(1)
//
//	spy := mem.NewSpy[int](nil)
//	w := vector.New[int](spy)
//	_ = w.PushBack(1)
//	fmt.Println(spy.Stats().Allocations) // 1
//
// # Allocators
//
//   - Heap: plain make(); Deallocate is a no-op
//   - Arena / SafeArena with ArenaOf: chunked bump allocation, bulk Reset
//   - Manual: off-heap memory for pointer-free element types
//   - Spy: call counting, event trace and failure injection
//   - Logged: zerolog debug output for every allocation
//   - Instrumented: prometheus counters and gauges
//   - Recycler: LRU cache of released buffers keyed by slot count
//   - Locked: mutex wrapper for sharing one allocator across goroutines
//
// # Memory Layout
//
// The arena allocates memory in chunks (default 64KB). When a chunk fills up,
// a new chunk is allocated. Memory within chunks is allocated sequentially
// with pointer-size alignment.
//
// # Thread Safety
//
// Heap carries no mutable state and may be shared. Arena is not thread-safe;
// use SafeArena. Manual wraps a stateful memory.Allocator and must be wrapped
// in Locked before goroutines share it. Spy, Instrumented, Recycler and
// Locked may be shared.
// The containers themselves are never safe for concurrent mutation.
//
// # Important Notes
//
//   - Arena and Manual storage is invisible to the garbage collector. Element
//     types kept there must not reference ordinary Go heap memory.
//   - Allocation errors are returned to the caller unmodified; containers
//     leave their state untouched when Allocate fails.
package mem
