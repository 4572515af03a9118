package allocator

// initialSeqCapacity is the element count of a sequence's first buffer.
const initialSeqCapacity = 4

// Seq is an append-only vector whose storage is carved out of an Arena.
// The repetition runtime uses it to accumulate list children before a
// list node is finalized.
//
// The zero value is an empty sequence that owns no storage; the first
// Append allocates the initial buffer. Growth doubles the capacity and
// copies the elements into a fresh arena buffer — the old buffer becomes
// arena garbage, which is the deliberate trade the arena discipline
// makes for allocation simplicity. There is no shrink operation.
type Seq[T any] struct {
	data []T // arena-backed, len(data) == capacity
	n    int
}

// Append adds v at the end of the sequence, growing the arena-backed
// buffer when the capacity is exhausted. Amortized O(1).
func (s *Seq[T]) Append(a *Arena, v T) {
	if s.n == len(s.data) {
		capacity := 2 * len(s.data)
		if capacity == 0 {
			capacity = initialSeqCapacity
		}
		buf := MakeSlice[T](a, capacity)
		copy(buf, s.data[:s.n])
		s.data = buf
	}
	s.data[s.n] = v
	s.n++
}

// Len returns the number of appended elements.
func (s *Seq[T]) Len() int {
	return s.n
}

// Cap returns the capacity of the current buffer.
func (s *Seq[T]) Cap() int {
	return len(s.data)
}

// At returns the i-th element in append order.
func (s *Seq[T]) At(i int) T {
	if i < 0 || i >= s.n {
		panic("allocator: Seq index out of range")
	}
	return s.data[i]
}

// Slice returns the appended elements as a slice over the arena buffer.
// The slice stays valid until the arena is destroyed; it is invalidated
// as a view by the next growth step.
func (s *Seq[T]) Slice() []T {
	return s.data[:s.n:s.n]
}
