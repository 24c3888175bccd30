// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

// Stack is an unbounded lock-free multi-producer multi-consumer LIFO stack.
//
// A Treiber stack of pooled nodes: the live chain and the node free list are
// both intrusive lock-free stacks headed by a single tagged pointer each.
// Enqueue pushes onto the top, Dequeue pops the most recently enqueued
// element. A free miss allocates a fresh node and grows capacity, so Enqueue
// never fails. Nodes are recycled through the free list and released only at
// Close.
//
// The producer-consumer method names match Queue so that either container
// satisfies Container; the ordering discipline is the only difference.
type Stack[T any] struct {
	_    pad
	live intrusive[T]
	_    pad
	pool pool[T]
}

// NewStack creates an unbounded LIFO stack with the given initial capacity
// in nodes. Capacity grows on demand; it bounds nothing.
//
// Panics if capacity < 0.
func NewStack[T any](capacity int) *Stack[T] {
	if capacity < 0 {
		panic("lfc: capacity must be >= 0")
	}

	s := &Stack[T]{}
	s.pool.prealloc(capacity)
	return s
}

// Enqueue pushes a copy of *elem onto the top.
// The original can be modified after Enqueue returns.
// The error is always nil; the signature exists for Container conformance.
func (s *Stack[T]) Enqueue(elem *T) error {
	n := s.pool.get()
	n.value = *elem
	s.live.push(n)
	return nil
}

// EnqueueMove pushes *elem onto the top and zeroes the source, releasing
// the caller's references for the garbage collector (ownership transfer).
// The error is always nil; the signature exists for Container conformance.
func (s *Stack[T]) EnqueueMove(elem *T) error {
	n := s.pool.get()
	n.value = *elem
	var zero T
	*elem = zero
	s.live.push(n)
	return nil
}

// Dequeue pops and returns the top element.
// Returns (zero-value, ErrWouldBlock) if the stack is empty. Does not
// allocate on the empty path.
func (s *Stack[T]) Dequeue() (T, error) {
	n := s.live.pop()
	if n == nil {
		var zero T
		return zero, ErrWouldBlock
	}
	// The node is exclusively ours between pop and put; clearing the slot
	// releases the value's references before the node is recycled.
	v := n.value
	var zero T
	n.value = zero
	s.pool.put(n)
	return v, nil
}

// DequeueInto pops the top element into *elem.
// Returns ErrWouldBlock and leaves *elem unchanged if the stack is empty.
func (s *Stack[T]) DequeueInto(elem *T) error {
	v, err := s.Dequeue()
	if err != nil {
		return err
	}
	*elem = v
	return nil
}

// Empty reports whether the stack had no elements at some instant.
// The answer may be stale immediately.
func (s *Stack[T]) Empty() bool {
	return s.live.empty()
}

// Cap returns the number of nodes the stack has allocated, free and live
// combined. Monotonically non-decreasing.
func (s *Stack[T]) Cap() int {
	return s.pool.cap()
}

// Range walks the live elements from top to bottom until f returns false.
// Not safe for concurrent invocation with mutators.
func (s *Stack[T]) Range(f func(*T) bool) {
	s.live.forEach(func(n *node[T]) bool {
		return f(&n.value)
	})
}

// Close releases every node the stack owns. The stack must be drained
// first: Close returns ErrNotEmpty, and releases nothing, while live
// elements remain. Callers must have quiesced all producers and consumers.
// Operations after a successful Close have undefined behavior.
func (s *Stack[T]) Close() error {
	if !s.Empty() {
		return ErrNotEmpty
	}
	s.pool.drain()
	return nil
}
