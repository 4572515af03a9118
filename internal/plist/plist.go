// Package plist provides a persistent, structurally-shared singly
// linked list for the later compiler passes — scope and environment
// chains in particular. Prepending never mutates the source list:
// distinct lists built over one tail alias it, and the whole family of
// lists sharing a pool forms a tree converging on the shared empty
// list. Pools are scoped by their consumers and never shared with
// parse-time arenas.
package plist

import "iter"

// List is a handle on a persistent list. The zero value (or New) is
// the distinguished empty list, which owns no pool. Handles are small
// values and are passed by copy; all operations are non-mutating.
type List[T any] struct {
	pool   *Pool[T]
	head   *node[T]
	length int
	owner  bool
}

// New returns the empty list.
func New[T any]() List[T] {
	return List[T]{}
}

// Prepend returns a new list with x in front of l. This is the only
// growing operation. l is never mutated: its head becomes the new
// list's tail by reference, without copying. Prepending onto the empty
// list creates a fresh pool, and the returned handle owns it;
// prepending onto a pooled list joins that pool without ownership.
func Prepend[T any](x T, l List[T]) List[T] {
	pool := l.pool
	owner := false
	if pool == nil {
		pool = newPool[T]()
		owner = true
	}

	n := pool.alloc()
	n.elem = x
	n.tail = l.head

	return List[T]{
		pool:   pool,
		head:   n,
		length: l.length + 1,
		owner:  owner,
	}
}

// HasElement returns true iff the list is non-empty.
func (l List[T]) HasElement() bool {
	return l.head != nil
}

// Len returns the number of elements. O(1): the length is cached in
// the handle at construction.
func (l List[T]) Len() int {
	return l.length
}

// Head returns the front element. Calling Head on the empty list is a
// contract violation and panics; check HasElement first.
func (l List[T]) Head() T {
	if l.head == nil {
		panic("plist: Head of empty list")
	}
	return l.head.elem
}

// Tail returns the remainder of the list as a handle sharing the same
// pool and cell chain. Calling Tail on the empty list is a contract
// violation and panics.
func (l List[T]) Tail() List[T] {
	if l.head == nil {
		panic("plist: Tail of empty list")
	}
	return List[T]{
		pool:   l.pool,
		head:   l.head.tail,
		length: l.length - 1,
	}
}

// ToArray returns the elements front-to-back as a fresh slice. The
// list is not mutated; the empty list yields nil.
func (l List[T]) ToArray() []T {
	if l.head == nil {
		return nil
	}
	out := make([]T, 0, l.length)
	for n := l.head; n != nil; n = n.tail {
		out = append(out, n.elem)
	}
	return out
}

// All returns a lazy front-to-back view of the elements. The list is
// immutable, so the sequence is restartable: ranging over it again
// reproduces the same elements.
func (l List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.head; n != nil; n = n.tail {
			if !yield(n.elem) {
				return
			}
		}
	}
}

// Destroy releases the pool behind the list. Only the handle that
// created the pool — the first Prepend onto the empty list — may
// destroy it; destroying through a non-owning or already-destroyed
// handle is a contract violation and panics. Which handle that is, and
// when every shared-tail alias is done reading, is the consumer's
// responsibility to resolve. Destroying the empty list is a no-op.
func (l List[T]) Destroy() {
	if l.pool == nil {
		return
	}
	if !l.owner {
		panic("plist: Destroy through non-owning handle")
	}
	l.pool.release()
}
