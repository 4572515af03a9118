// Package allocator implements the bulk-allocation memory discipline of
// the Kestrel runtime. Every AST node and child vector of a compilation
// unit is carved out of one Arena; nothing is freed individually and the
// whole arena is released at once when the unit is discarded or reparsed.
package allocator

import (
	"unsafe"
)

// defaultChunkSize is the size of the first storage chunk. Subsequent
// chunks grow geometrically, so parsing a large unit does not degenerate
// into one allocation per chunk-sized slice of nodes.
const defaultChunkSize = 64 * 1024

// Arena is a monotonic bump-pointer allocator over a list of storage
// chunks. Allocation advances a cursor within the current chunk and
// allocates a fresh, larger chunk when the cursor would overflow.
//
// An Arena belongs to exactly one compilation unit and is not safe for
// concurrent use; units parsed in parallel each own their own arena.
type Arena struct {
	chunks    [][]byte
	current   []byte
	offset    int
	nextSize  int
	destroyed bool

	allocations uint64
}

// NewArena creates an arena whose first chunk holds chunkSize bytes.
// A chunkSize <= 0 selects the default.
func NewArena(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	a := &Arena{
		chunks:   make([][]byte, 0, 4),
		nextSize: chunkSize,
	}
	a.grow(chunkSize)

	return a
}

// Alloc returns size bytes of zero-initialized arena memory aligned to
// align (a power of two). The memory is owned by the arena: it cannot be
// freed individually and must not be referenced after Destroy. Alloc
// panics if the arena has been destroyed.
func (a *Arena) Alloc(size, align int) unsafe.Pointer {
	if a.destroyed {
		panic("allocator: Alloc on destroyed arena")
	}
	if size == 0 {
		return nil
	}

	offset := (a.offset + align - 1) &^ (align - 1)
	if offset+size > len(a.current) {
		a.grow(size)
		offset = 0
	}

	ptr := unsafe.Pointer(&a.current[offset])
	a.offset = offset + size
	a.allocations++

	return ptr
}

// grow appends a fresh chunk large enough for at least min bytes and
// makes it current. Chunk sizes double so the chunk count stays
// logarithmic in the total allocation volume.
func (a *Arena) grow(min int) {
	size := a.nextSize
	if size < min {
		size = min
	}
	a.nextSize = size * 2

	chunk := make([]byte, size)
	a.chunks = append(a.chunks, chunk)
	a.current = chunk
	a.offset = 0
}

// Destroy releases every chunk at once. All memory previously returned
// by Alloc is invalidated by contract: the arena no longer keeps it
// reachable, and callers must guarantee that no reference derived from
// this arena is used afterwards. Further Alloc calls panic.
func (a *Arena) Destroy() {
	if a.destroyed {
		panic("allocator: arena destroyed twice")
	}
	a.chunks = nil
	a.current = nil
	a.offset = 0
	a.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (a *Arena) Destroyed() bool {
	return a.destroyed
}

// New allocates a zeroed T in the arena.
//
// The arena's backing storage is untyped, so pointer fields written into
// an arena-resident value must stay reachable through a reference the
// garbage collector can see (the owning unit keeps its node table typed
// for exactly this reason).
func New[T any](a *Arena) *T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	align := int(unsafe.Alignof(zero))
	return (*T)(a.Alloc(size, align))
}

// MakeSlice allocates a slice of n zeroed Ts whose backing array lives
// in arena memory. The same reachability constraint as New applies.
func MakeSlice[T any](a *Arena, n int) []T {
	if n == 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero)) * n
	align := int(unsafe.Alignof(zero))
	ptr := a.Alloc(size, align)
	return unsafe.Slice((*T)(ptr), n)
}

// Stats describes an arena's storage for diagnostics.
type Stats struct {
	ChunkCount  int    // number of storage chunks
	TotalBytes  int    // bytes held across all chunks
	UsedBytes   int    // bytes handed out, including alignment padding
	WastedBytes int    // unreachable tail of the current chunk
	Allocations uint64 // number of Alloc calls
}

// Stats returns the arena's current storage statistics.
func (a *Arena) Stats() Stats {
	stats := Stats{
		ChunkCount:  len(a.chunks),
		Allocations: a.allocations,
	}

	for i, chunk := range a.chunks {
		stats.TotalBytes += len(chunk)
		if i < len(a.chunks)-1 {
			// Earlier chunks are retired as-is once the cursor moves on.
			stats.UsedBytes += len(chunk)
		} else {
			stats.UsedBytes += a.offset
			stats.WastedBytes += len(chunk) - a.offset
		}
	}

	return stats
}
