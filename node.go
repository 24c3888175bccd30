// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// node is the intrusive link element shared by both containers. While linked
// in a chain, next points at the element below (stack) or after (queue), or
// is nil at the end. A node is either on a live chain or on the free list,
// never both, never neither (modulo the transient CAS window between unlink
// and free push).
type node[T any] struct {
	next  AtomicTaggedPointer[node[T]]
	value T

	// all links the container-wide retain chain. Written once at
	// allocation, read only at teardown.
	all *node[T]
}

// retainList is the GC-visible chain of every node a container has ever
// allocated. Tagged words hide node addresses from the garbage collector;
// this list is what keeps the nodes alive. Push-only while the container is
// live; severed as a whole at teardown.
//
// The head is a typed pointer atomic from sync/atomic rather than atomix:
// the collector must be able to scan it, which rules out the integer atomics
// the rest of this package uses.
type retainList[T any] struct {
	head atomic.Pointer[node[T]]
}

func (l *retainList[T]) retain(n *node[T]) {
	for {
		h := l.head.Load()
		n.all = h
		if l.head.CompareAndSwap(h, n) {
			return
		}
	}
}

// drop severs the chain and returns the number of nodes released.
// Single-threaded; callers must have quiesced the container.
func (l *retainList[T]) drop() int {
	released := 0
	for n := l.head.Swap(nil); n != nil; n = n.all {
		released++
	}
	return released
}

// pool is the node allocation layer: a lock-free free list plus the retain
// chain and the capacity counter. Nodes are recycled through the free list
// and never handed back to the allocator while the container is live, which
// is what makes dereferencing a stale tagged pointer safe: the worst case is
// reading a node that has been recycled, and the tag check catches that.
type pool[T any] struct {
	free     intrusive[T]
	nodes    retainList[T]
	capacity atomix.Int64
}

// prealloc provisions the initial free capacity.
func (p *pool[T]) prealloc(capacity int) {
	for range capacity {
		p.free.push(p.newNode())
	}
	p.capacity.Store(int64(capacity))
}

// newNode allocates a node and links it on the retain chain.
// Does not touch the capacity counter; callers account for the node.
func (p *pool[T]) newNode() *node[T] {
	n := new(node[T])
	p.nodes.retain(n)
	return n
}

// get pops a free node, or allocates one and grows capacity on a free miss.
func (p *pool[T]) get() *node[T] {
	if n := p.free.pop(); n != nil {
		return n
	}
	p.capacity.Add(1)
	return p.newNode()
}

// put returns a node to the free list.
func (p *pool[T]) put(n *node[T]) {
	p.free.push(n)
}

func (p *pool[T]) cap() int {
	return int(p.capacity.Load())
}

// drain empties the free list and severs the retain chain, returning the
// number of nodes released. Single-threaded teardown path.
func (p *pool[T]) drain() int {
	for p.free.pop() != nil {
	}
	return p.nodes.drop()
}
