// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

// DefaultCapacity is the initial node capacity used when callers have no
// better estimate. Roughly the high-water mark at which a busy
// producer-consumer system stops allocating.
const DefaultCapacity = 8192

// Options configures container creation.
type Options struct {
	// Ordering discipline (determines container type)
	lifo bool

	// Initial node capacity
	capacity int
}

// Builder creates containers with fluent configuration.
//
// The builder selects the container from the requested ordering discipline:
// FIFO (default) builds a Queue, LIFO builds a Stack.
//
// Example:
//
//	// FIFO queue (default)
//	q := lfc.BuildFIFO[Event](lfc.New(1024))
//
//	// LIFO stack
//	s := lfc.BuildLIFO[Task](lfc.New(1024).LIFO())
//
//	// Discipline decided by configuration
//	c := lfc.Build[Job](lfc.New(lfc.DefaultCapacity).LIFO())
type Builder struct {
	opts Options
}

// New creates a container builder with the given initial capacity in nodes.
// Capacity grows on demand; it bounds nothing.
//
// Panics if capacity < 0.
func New(capacity int) *Builder {
	if capacity < 0 {
		panic("lfc: capacity must be >= 0")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// LIFO declares that elements should be consumed newest-first.
// Build selects a Stack instead of a Queue.
func (b *Builder) LIFO() *Builder {
	b.opts.lifo = true
	return b
}

// Build creates a Container[T] with the configured ordering discipline:
// a Stack when LIFO() was called, a Queue otherwise.
//
// For concrete types, use BuildFIFO[T](b) or BuildLIFO[T](b).
func Build[T any](b *Builder) Container[T] {
	if b.opts.lifo {
		return NewStack[T](b.opts.capacity)
	}
	return NewQueue[T](b.opts.capacity)
}

// BuildFIFO creates a Queue with compile-time type safety.
// Panics if the builder is configured with LIFO().
func BuildFIFO[T any](b *Builder) *Queue[T] {
	if b.opts.lifo {
		panic("lfc: BuildFIFO requires a builder without LIFO()")
	}
	return NewQueue[T](b.opts.capacity)
}

// BuildLIFO creates a Stack with compile-time type safety.
// Panics if the builder is not configured with LIFO().
func BuildLIFO[T any](b *Builder) *Stack[T] {
	if !b.opts.lifo {
		panic("lfc: BuildLIFO requires LIFO()")
	}
	return NewStack[T](b.opts.capacity)
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
