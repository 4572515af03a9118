package plist

// poolChunkNodes is the node count per storage chunk.
const poolChunkNodes = 256

// node is one cell of a persistent list. Cells are pool-owned and
// immutable once linked in.
type node[T any] struct {
	elem T
	tail *node[T]
}

// Pool owns the cells of a family of lists that share structure. All
// lists reachable by Tail from one pooled list alias the same pool; the
// handle that created the pool decides when to release it.
type Pool[T any] struct {
	chunks   [][]node[T]
	next     int // index of the first free cell in the last chunk
	released bool
}

func newPool[T any]() *Pool[T] {
	return &Pool[T]{
		chunks: [][]node[T]{make([]node[T], poolChunkNodes)},
	}
}

// alloc hands out the next free cell, growing by whole chunks.
func (p *Pool[T]) alloc() *node[T] {
	if p.released {
		panic("plist: allocation from released pool")
	}
	last := p.chunks[len(p.chunks)-1]
	if p.next == len(last) {
		last = make([]node[T], poolChunkNodes)
		p.chunks = append(p.chunks, last)
		p.next = 0
	}
	n := &last[p.next]
	p.next++
	return n
}

// release drops every cell at once. Releasing twice is a contract
// violation: shared-tail lists may still alias this pool, and only the
// consumer can know when the last reader is done.
func (p *Pool[T]) release() {
	if p.released {
		panic("plist: pool released twice")
	}
	// Unlink iteratively, chunk by chunk, so teardown cost never
	// depends on list depth the way a recursive walk would.
	for _, chunk := range p.chunks {
		for i := range chunk {
			chunk[i] = node[T]{}
		}
	}
	p.chunks = nil
	p.next = 0
	p.released = true
}
