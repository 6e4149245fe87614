package mem

import "unsafe"

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

const ptrAlign = unsafe.Sizeof(uintptr(0))

// chunk represents a single memory chunk within an arena.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // allocation offset within buf
}

// Arena is a chunked bump allocator. Not goroutine-safe; use SafeArena for
// concurrent access. Container storage is carved out of it through ArenaOf.
type Arena struct {
	chunks       []chunk
	chunkSize    int
	currentChunk *chunk
	cur          int // index of currentChunk
	inUse        int
	peak         int
	allocs       int
}

// NewArena creates a new Arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	a := &Arena{chunkSize: chunkSize}
	a.grow(chunkSize)
	return a
}

// AllocBytes returns n pointer-aligned bytes carved from the current chunk.
// The bytes are not zeroed after a Reset. Returns nil if n <= 0.
func (a *Arena) AllocBytes(n int) []byte {
	if n <= 0 {
		return nil
	}

	if c := a.currentChunk; c != nil {
		off := alignPtr(c.offset)
		if off+uintptr(n) <= uintptr(len(c.buf)) {
			return a.carve(c, off, n)
		}
	}

	return a.allocBytesSlow(n)
}

// allocBytesSlow handles allocation when the current chunk is full. Chunks
// kept by Reset are used again before a new one is grown.
func (a *Arena) allocBytesSlow(n int) []byte {
	a.panicIfReleased()
	if !a.advance(n) {
		a.grow(n)
	}
	c := a.currentChunk
	return a.carve(c, alignPtr(c.offset), n)
}

func (a *Arena) carve(c *chunk, off uintptr, n int) []byte {
	end := off + uintptr(n)
	a.inUse += int(end - c.offset)
	c.offset = end
	a.allocs++
	if a.inUse > a.peak {
		a.peak = a.inUse
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&c.buf[off])), n)
}

// advance makes the first chunk after the current one with room for n bytes
// current. Chunks past the current one are untouched since the last Reset.
func (a *Arena) advance(n int) bool {
	for i := a.cur + 1; i < len(a.chunks); i++ {
		if n <= len(a.chunks[i].buf) {
			a.cur = i
			a.currentChunk = &a.chunks[i]
			return true
		}
	}
	return false
}

// EnsureCapacity ensures the current chunk has at least n free bytes.
// If not, it grows the arena with a new chunk.
func (a *Arena) EnsureCapacity(n int) {
	a.panicIfReleased()
	c := a.currentChunk
	if c == nil || alignPtr(c.offset)+uintptr(n) > uintptr(len(c.buf)) {
		if !a.advance(n) {
			a.grow(n)
		}
	}
}

// Reset rewinds every chunk so the memory can be handed out again. Every
// container whose storage came from this arena must be discarded first.
func (a *Arena) Reset() {
	a.panicIfReleased()
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	a.cur = 0
	a.currentChunk = &a.chunks[0]
	a.inUse = 0
}

// Release drops all chunks and makes the arena unusable.
// Any subsequent allocation will panic.
func (a *Arena) Release() {
	a.chunks = nil
	a.currentChunk = nil
	a.cur = 0
	a.inUse = 0
}

// grow appends a new chunk of at least min bytes and makes it current.
func (a *Arena) grow(min int) {
	size := a.chunkSize
	if min > size {
		size = min
	}
	a.chunks = append(a.chunks, chunk{buf: make([]byte, size)})
	a.cur = len(a.chunks) - 1
	a.currentChunk = &a.chunks[a.cur]
}

func (a *Arena) panicIfReleased() {
	if a.chunks == nil {
		panic("arena: use after Release()")
	}
}

// alignPtr aligns the offset up to pointer size alignment.
func alignPtr(off uintptr) uintptr {
	mask := ptrAlign - 1
	return (off + mask) & ^mask
}
