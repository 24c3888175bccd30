// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

// Container is the combined producer-consumer interface satisfied by both
// Queue (FIFO) and Stack (LIFO).
//
// The interface intentionally excludes length because accurate counts in
// lock-free algorithms require expensive cross-core synchronization.
// Track counts in application logic when needed. Cap is not a length: it
// reports allocated nodes, free and live combined.
//
// Example:
//
//	var c lfc.Container[int] = lfc.NewQueue[int](1024)
//
//	v := 42
//	c.Enqueue(&v)
//
//	elem, err := c.Dequeue()
//	if err == nil {
//	    fmt.Println(elem)
//	}
type Container[T any] interface {
	Producer[T]
	Consumer[T]

	// Empty reports whether the container had no elements at some
	// instant. The answer may be stale immediately.
	Empty() bool

	// Cap returns the number of value nodes allocated so far.
	// Monotonically non-decreasing.
	Cap() int

	// Close releases every node the container owns. Returns ErrNotEmpty,
	// releasing nothing, while live elements remain.
	Close() error
}

// Producer is the interface for adding elements.
//
// Elements are passed by pointer to avoid copying large structs at the call
// boundary. Both methods always return a nil error on these unbounded
// containers; the error result exists so bounded implementations can share
// the interface.
type Producer[T any] interface {
	// Enqueue adds a copy of *elem (non-blocking, lock-free).
	// The original can be modified after Enqueue returns.
	Enqueue(elem *T) error

	// EnqueueMove adds *elem and zeroes the source, releasing the
	// caller's references for the garbage collector.
	EnqueueMove(elem *T) error
}

// Consumer is the interface for removing elements.
//
// The removal order is the container's discipline: FIFO for Queue, LIFO for
// Stack. The vacated node slot is cleared so referenced objects can be
// garbage collected.
type Consumer[T any] interface {
	// Dequeue removes and returns an element (non-blocking, lock-free).
	// Returns (zero-value, ErrWouldBlock) if the container is empty.
	Dequeue() (T, error)

	// DequeueInto removes an element into *elem.
	// Returns ErrWouldBlock and leaves *elem unchanged if the container
	// is empty.
	DequeueInto(elem *T) error
}
