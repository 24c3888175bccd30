// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfc provides unbounded lock-free container implementations.
//
// The package offers two multi-producer multi-consumer containers backed by
// a shared node-pooling design:
//
//   - Queue: FIFO, the Michael-Scott algorithm over pooled nodes
//   - Stack: LIFO, a Treiber stack over the same node pool
//
// Both grow on demand: an enqueue that misses the internal free list
// allocates a fresh node, so enqueues never fail and never block. For the
// bounded, ring-buffer counterparts see code.hybscloud.com/lfq.
//
// # Quick Start
//
// Direct constructors (recommended for most cases):
//
//	q := lfc.NewQueue[Event](lfc.DefaultCapacity)
//	s := lfc.NewStack[*Request](4096)
//
// Builder API selects the container from the ordering discipline:
//
//	q := lfc.BuildFIFO[Event](lfc.New(1024))          // → Queue
//	s := lfc.BuildLIFO[Event](lfc.New(1024).LIFO())   // → Stack
//	c := lfc.Build[Event](lfc.New(1024))              // → Container (Queue)
//
// # Basic Usage
//
// Both containers share the same interface for adding and removing:
//
//	q := lfc.NewQueue[int](1024)
//
//	// Enqueue (non-blocking, never fails: capacity grows on demand)
//	value := 42
//	q.Enqueue(&value)
//
//	// Dequeue (non-blocking)
//	elem, err := q.Dequeue()
//	if lfc.IsWouldBlock(err) {
//	    // Container is empty - try again later
//	}
//
// EnqueueMove transfers ownership: the source is zeroed after the copy so
// the caller's references are released for the garbage collector:
//
//	msg := Message{Data: largePayload}
//	q.EnqueueMove(&msg)
//	// msg is now the zero value; the queue holds the only reference
//
// # Common Patterns
//
// Work distribution (Queue):
//
//	q := lfc.NewQueue[Task](4096)
//
//	// Producers enqueue from anywhere; no backpressure handling needed
//	go func() {
//	    for task := range tasks {
//	        q.Enqueue(&task)
//	    }
//	}()
//
//	// Workers
//	for range numWorkers {
//	    go func() {
//	        backoff := iox.Backoff{}
//	        for {
//	            task, err := q.Dequeue()
//	            if err != nil {
//	                backoff.Wait()
//	                continue
//	            }
//	            backoff.Reset()
//	            task.Execute()
//	        }
//	    }()
//	}
//
// Free-object cache (Stack): a LIFO discipline returns the most recently
// released object, which is the one most likely to still be cache-hot:
//
//	cache := lfc.NewStack[*Buffer](1024)
//
//	// Release
//	cache.Enqueue(&buf)
//
//	// Acquire, falling back to allocation
//	buf, err := cache.Dequeue()
//	if err != nil {
//	    buf = NewBuffer()
//	}
//
// # Design
//
// Every atomic compare-and-swap target in this package is a tagged pointer:
// a single 64-bit word packing a node address with a 16-bit generation tag
// (bits [48..63] on 64-bit platforms). The tag is bumped on every successful
// publish, so a thread acting on a stale snapshot fails its CAS even when
// the same node address has been recycled into place. See TaggedPointer for
// the ABA discussion.
//
// Nodes are pre-allocated at construction and recycled through an internal
// lock-free free list (itself a Treiber stack). A node is never returned to
// the allocator while the container is live, so a late dereference through a
// stale tagged pointer always lands in container-retained memory; the tag
// check then discards the result. The cost is that the pool holds its
// high-water mark of nodes until Close.
//
// The queue keeps a permanent sentinel node at head: the first live value is
// in head.next, and tail may transiently lag one node behind the last
// enqueue (any operation observing the lag helps repair it). Dequeue copies
// the value out before the head CAS, so a losing race never disturbs a
// node another consumer went on to win.
//
// # Ordering Guarantees
//
//   - Queue: FIFO between operation linearization points. Two enqueues from
//     the same goroutine dequeue in that order; enqueues from different
//     goroutines interleave arbitrarily.
//   - Stack: LIFO between linearization points.
//   - Visibility: a dequeued value reflects every write the enqueueing
//     goroutine performed into the element before its enqueue.
//
// # Error Handling
//
// Dequeue returns [ErrWouldBlock] when the container is empty. The error is
// sourced from [code.hybscloud.com/iox] for ecosystem consistency. Enqueue
// never returns it: capacity grows instead.
//
//	backoff := iox.Backoff{}
//	for {
//	    v, err := q.Dequeue()
//	    if err == nil {
//	        backoff.Reset()
//	        process(v)
//	        continue
//	    }
//	    backoff.Wait()
//	}
//
// For semantic error classification (delegates to iox):
//
//	lfc.IsWouldBlock(err)  // true if container empty
//	lfc.IsSemantic(err)    // true if control flow signal
//	lfc.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// Close returns [ErrNotEmpty], a real failure, when live elements remain.
//
// # Capacity
//
// The constructor capacity is an initial node count, not a bound; the
// default of 8192 avoids allocation until that many elements are in flight
// at once. Cap reports the allocated node count (free and live combined,
// excluding the queue's sentinel) and only ever grows. Length is
// intentionally not provided because accurate counts in lock-free
// algorithms require expensive cross-core synchronization.
//
// # Thread Safety
//
// All Enqueue/EnqueueMove/Dequeue/DequeueInto calls are safe from any number
// of goroutines. Empty and Cap are safe snapshots that may be stale
// immediately. Range and Close require external quiescence: no concurrent
// mutators may exist.
//
// # Race Detection
//
// Go's race detector is not designed for lock-free algorithm verification.
// The race detector tracks explicit synchronization primitives (mutex,
// channels, WaitGroup) but cannot observe happens-before relationships
// established through atomic memory orderings (acquire-release semantics).
//
// These containers protect non-atomic node fields with tagged-pointer CAS
// publication. The algorithms are correct, but the race detector may report
// false positives because it cannot track synchronization provided by
// atomic operations on separate variables.
//
// For lock-free algorithm correctness verification, use:
//   - Formal verification tools (TLA+, SPIN)
//   - Stress testing without race detector
//   - Memory model analysis
//
// Concurrent tests incompatible with race detection skip themselves when
// RaceEnabled is true; the examples are excluded via //go:build !race.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause instructions.
package lfc
