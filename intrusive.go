// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

import "code.hybscloud.com/spin"

// intrusive is a lock-free Treiber stack over intrusively linked nodes.
// It serves as the node free list of both containers and as the ordering
// engine of Stack.
//
// The generation tag on head is bumped on every successful CAS, for push and
// pop alike. A thread holding a stale head snapshot cannot succeed on CAS
// even if the same node address has been recycled back into head, because
// the tag differs. Without the tag, the classic failure on the stack A->B->C
// is: a popper snapshots head=A and next=B, sleeps, the stack changes to
// A->C through unrelated pops and pushes, the popper wakes and its CAS
// succeeds because the address still matches, installing the long-gone B.
//
// Every retry is caused by some other thread's successful CAS, so the
// structure is lock-free.
type intrusive[T any] struct {
	head AtomicTaggedPointer[node[T]]
}

// push links n at the top. n must not currently be in any chain.
func (s *intrusive[T]) push(n *node[T]) {
	sw := spin.Wait{}
	for {
		h := s.head.LoadAcquire()
		// n is private to this thread until the CAS below publishes it.
		n.next.StoreRelaxed(h)
		if s.head.CompareAndSwapAcqRel(h, TaggedPointerOf(n).SetTag(h).IncrementTag()) {
			return
		}
		sw.Once()
	}
}

// pop detaches and returns the top node, or nil when empty.
func (s *intrusive[T]) pop() *node[T] {
	sw := spin.Wait{}
	for {
		h := s.head.LoadAcquire()
		if h.IsNil() {
			return nil
		}
		// The dereference the tag defends: h may already be detached,
		// but it is still container-retained memory, and a stale h
		// fails the CAS below.
		n := h.Ptr().next.LoadAcquire()
		if s.head.CompareAndSwapAcqRel(h, n.SetTag(h).IncrementTag()) {
			return h.Ptr()
		}
		sw.Once()
	}
}

// empty reports whether the stack was empty at some instant.
// The answer may be stale immediately.
func (s *intrusive[T]) empty() bool {
	return s.head.Load().IsNil()
}

// forEach walks the chain top-down until f returns false.
// Not safe for concurrent invocation with mutators.
func (s *intrusive[T]) forEach(f func(*node[T]) bool) {
	for t := s.head.Load(); !t.IsNil(); t = t.Ptr().next.Load() {
		if !f(t.Ptr()) {
			return
		}
	}
}
