// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

import "code.hybscloud.com/spin"

// Queue is an unbounded lock-free multi-producer multi-consumer FIFO queue.
//
// Based on the algorithm of Michael and Scott ("Simple, Fast, and Practical
// Non-Blocking and Blocking Concurrent Queue Algorithms", PODC 1996), with
// tagged pointers for ABA protection on every CAS target. Nodes are drawn
// from an internal lock-free free list; a free miss allocates a fresh node
// and grows capacity, so Enqueue never fails. Nodes are recycled through the
// free list and released only at Close.
//
// The node pointed to by head is a sentinel: its value is stale and never
// read, and the queue's first live value is in head.next. The tail either
// points at the last live node or lags it by one; any operation observing
// the lag helps advance tail before proceeding.
//
// Ordering: dequeues respect each producer's enqueue order; enqueues from
// different producers interleave arbitrarily. A dequeued value reflects
// every write its producer performed into the value before Enqueue returned.
//
// Memory: one node per element plus one sentinel, high-water-mark retained.
type Queue[T any] struct {
	_    pad
	head AtomicTaggedPointer[node[T]] // Sentinel; head.next is the first live value
	_    pad
	tail AtomicTaggedPointer[node[T]] // Last live node, or one behind it
	_    pad
	pool pool[T]
}

// NewQueue creates an unbounded FIFO queue with the given initial capacity
// in nodes. Capacity grows on demand; it bounds nothing. One extra node is
// allocated as the initial sentinel.
//
// Panics if capacity < 0.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 0 {
		panic("lfc: capacity must be >= 0")
	}

	q := &Queue[T]{}
	q.pool.prealloc(capacity)

	// The sentinel is not a value slot; it stays outside the capacity count.
	s := q.pool.newNode()
	q.head.Store(TaggedPointerOf(s))
	q.tail.Store(TaggedPointerOf(s))
	return q
}

// Enqueue adds a copy of *elem at the tail.
// The original can be modified after Enqueue returns.
// The error is always nil; the signature exists for Container conformance.
func (q *Queue[T]) Enqueue(elem *T) error {
	n := q.pool.get()
	n.value = *elem
	q.enqueue(n)
	return nil
}

// EnqueueMove adds *elem at the tail and zeroes the source, releasing the
// caller's references for the garbage collector (ownership transfer).
// The error is always nil; the signature exists for Container conformance.
func (q *Queue[T]) EnqueueMove(elem *T) error {
	n := q.pool.get()
	n.value = *elem
	var zero T
	*elem = zero
	q.enqueue(n)
	return nil
}

// enqueue links n after the current tail.
func (q *Queue[T]) enqueue(n *node[T]) {
	n.next.StoreRelaxed(0)

	sw := spin.Wait{}
	var t TaggedPointer[node[T]]
	for {
		t = q.tail.LoadAcquire()
		next := t.Ptr().next.LoadAcquire()

		// Verify the read of tail and tail.next was consistent.
		if t != q.tail.LoadRelaxed() {
			continue
		}

		if next.IsNil() {
			// Link n in. This CAS is the linearization point.
			if t.Ptr().next.CompareAndSwapAcqRel(next, TaggedPointerOf(n).SetTag(next).IncrementTag()) {
				break
			}
		} else {
			// Tail lagged behind; help it along and restart.
			q.tail.CompareAndSwapAcqRel(t, next.SetTag(t).IncrementTag())
			continue
		}
		sw.Once()
	}

	// A failure here is benign: the next operation observing the lag
	// advances tail.
	q.tail.CompareAndSwapAcqRel(t, TaggedPointerOf(n).SetTag(t).IncrementTag())
}

// Dequeue removes and returns the element at the head.
// Returns (zero-value, ErrWouldBlock) if the queue is empty. Does not
// allocate on the empty path.
func (q *Queue[T]) Dequeue() (T, error) {
	var zero T
	sw := spin.Wait{}
	for {
		h := q.head.LoadAcquire()
		t := q.tail.LoadAcquire()
		next := h.Ptr().next.LoadAcquire()

		// Verify the read of head, tail and head.next was consistent.
		if h != q.head.LoadRelaxed() {
			continue
		}

		if h.Ptr() == t.Ptr() {
			if next.IsNil() {
				// Empty. Linearizes at the consistency check above.
				return zero, ErrWouldBlock
			}
			// Tail lagged behind; help it along and restart.
			q.tail.CompareAndSwapAcqRel(t, next.SetTag(t).IncrementTag())
			continue
		}

		// Copy the value out before the CAS. A losing CAS discards the
		// copy and re-reads against the new head, so a failed attempt
		// never leaves the node's value disturbed.
		v := next.Ptr().value
		if q.head.CompareAndSwapAcqRel(h, next.SetTag(h).IncrementTag()) {
			// The old sentinel is now exclusively ours. Clearing its
			// value drops the references of the element delivered one
			// dequeue earlier; the new sentinel still pins v's source
			// until it is demoted in turn.
			old := h.Ptr()
			old.value = zero
			q.pool.put(old)
			return v, nil
		}
		sw.Once()
	}
}

// DequeueInto removes the element at the head into *elem.
// Returns ErrWouldBlock and leaves *elem unchanged if the queue is empty.
func (q *Queue[T]) DequeueInto(elem *T) error {
	v, err := q.Dequeue()
	if err != nil {
		return err
	}
	*elem = v
	return nil
}

// Empty reports whether the queue had no elements at some instant.
// The answer may be stale immediately. Untagged addresses are compared, so
// the snapshot is immune to tag drift between head and tail.
func (q *Queue[T]) Empty() bool {
	return q.head.Load().Ptr() == q.tail.Load().Ptr()
}

// Cap returns the number of value nodes the queue has allocated, free and
// live combined, excluding the sentinel. Monotonically non-decreasing.
func (q *Queue[T]) Cap() int {
	return q.pool.cap()
}

// Range walks the live elements from oldest to newest, skipping the
// sentinel, until f returns false. Debugging aid.
// Not safe for concurrent invocation with mutators.
func (q *Queue[T]) Range(f func(*T) bool) {
	for t := q.head.Load().Ptr().next.Load(); !t.IsNil(); t = t.Ptr().next.Load() {
		if !f(&t.Ptr().value) {
			return
		}
	}
}

// Close releases every node the queue owns. The queue must be drained
// first: Close returns ErrNotEmpty, and releases nothing, while live
// elements remain. Callers must have quiesced all producers and consumers.
// Operations after a successful Close have undefined behavior.
func (q *Queue[T]) Close() error {
	if !q.Empty() {
		return ErrNotEmpty
	}
	q.head.Store(0)
	q.tail.Store(0)
	q.pool.drain()
	return nil
}
