// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc_test

import (
	"testing"

	"code.hybscloud.com/lfc"
)

// =============================================================================
// TaggedPointer - Value Semantics
// =============================================================================

// TestTaggedPointerZero tests the zero value: nil pointer, tag 0.
func TestTaggedPointerZero(t *testing.T) {
	var tp lfc.TaggedPointer[int]

	if !tp.IsNil() {
		t.Fatalf("IsNil on zero value: got false, want true")
	}
	if tp.Ptr() != nil {
		t.Fatalf("Ptr on zero value: got %p, want nil", tp.Ptr())
	}
	if tp.Tag() != 0 {
		t.Fatalf("Tag on zero value: got %d, want 0", tp.Tag())
	}
}

// TestTaggedPointerRoundTrip tests that packing and unpacking preserves the
// address and that a fresh value carries tag 0.
func TestTaggedPointerRoundTrip(t *testing.T) {
	v := 42
	tp := lfc.TaggedPointerOf(&v)

	if tp.IsNil() {
		t.Fatalf("IsNil: got true, want false")
	}
	if tp.Ptr() != &v {
		t.Fatalf("Ptr: got %p, want %p", tp.Ptr(), &v)
	}
	if tp.Tag() != 0 {
		t.Fatalf("Tag: got %d, want 0", tp.Tag())
	}
	if *tp.Ptr() != 42 {
		t.Fatalf("deref: got %d, want 42", *tp.Ptr())
	}

	// Nil input round-trips too.
	if !lfc.TaggedPointerOf[int](nil).IsNil() {
		t.Fatalf("TaggedPointerOf(nil).IsNil: got false, want true")
	}
}

// TestTaggedPointerTagOps tests WithTag, SetTag and IncrementTag laws:
// the pointer is preserved, only the tag changes.
func TestTaggedPointerTagOps(t *testing.T) {
	v := 7
	tp := lfc.TaggedPointerOf(&v)

	// Tag values stay within the narrowest scheme (2 bits) so the laws
	// hold on every platform.
	tagged := tp.WithTag(1)
	if tagged.Ptr() != &v {
		t.Fatalf("WithTag changed pointer: got %p, want %p", tagged.Ptr(), &v)
	}
	if tagged.Tag() != 1 {
		t.Fatalf("WithTag: got tag %d, want 1", tagged.Tag())
	}

	inc := tagged.IncrementTag()
	if inc.Tag() != 2 {
		t.Fatalf("IncrementTag: got tag %d, want 2", inc.Tag())
	}
	if inc.Ptr() != &v {
		t.Fatalf("IncrementTag changed pointer: got %p, want %p", inc.Ptr(), &v)
	}

	// SetTag takes this pointer, other's tag.
	w := 8
	other := lfc.TaggedPointerOf(&w).WithTag(3)
	set := tp.SetTag(other)
	if set.Ptr() != &v || set.Tag() != 3 {
		t.Fatalf("SetTag: got (%p, %d), want (%p, 3)", set.Ptr(), set.Tag(), &v)
	}

	// IsNil ignores the tag.
	var nilTP lfc.TaggedPointer[int]
	if !nilTP.IncrementTag().IsNil() {
		t.Fatalf("IsNil on tagged nil: got false, want true")
	}
}

// TestTaggedPointerEquality tests that equality covers pointer and tag both.
func TestTaggedPointerEquality(t *testing.T) {
	v, w := 1, 2
	a := lfc.TaggedPointerOf(&v)
	b := lfc.TaggedPointerOf(&v)
	c := lfc.TaggedPointerOf(&w)

	if a != b {
		t.Fatalf("equal pointer and tag: got not-equal")
	}
	if a == a.IncrementTag() {
		t.Fatalf("same pointer, different tag: got equal")
	}
	if a == c {
		t.Fatalf("different pointers: got equal")
	}
}

// tagPeriod measures the tag wraparound period by incrementing until the
// tag returns to zero. 16 bits on 64-bit platforms, 2 bits on 32-bit.
func tagPeriod(tb testing.TB) int {
	tb.Helper()
	v := 0
	tp := lfc.TaggedPointerOf(&v)
	const limit = 1 << 20
	for period := 1; period <= limit; period++ {
		tp = tp.IncrementTag()
		if tp.Tag() == 0 {
			return period
		}
	}
	tb.Fatalf("tag did not wrap within %d increments", limit)
	return 0
}

// TestTaggedPointerWraparound tests that the tag wraps modulo a power of
// two and leaves the pointer intact across the full cycle.
func TestTaggedPointerWraparound(t *testing.T) {
	period := tagPeriod(t)
	if period&(period-1) != 0 || period < 4 {
		t.Fatalf("tag period: got %d, want a power of two >= 4", period)
	}

	v := 1
	tp := lfc.TaggedPointerOf(&v)
	for range period {
		tp = tp.IncrementTag()
		if tp.Ptr() != &v {
			t.Fatalf("pointer corrupted at tag %d: got %p, want %p", tp.Tag(), tp.Ptr(), &v)
		}
	}
	if tp.Tag() != 0 {
		t.Fatalf("after full cycle: got tag %d, want 0", tp.Tag())
	}
}

// =============================================================================
// AtomicTaggedPointer
// =============================================================================

// TestAtomicTaggedPointerLoadStore tests the load/store variants.
func TestAtomicTaggedPointerLoadStore(t *testing.T) {
	var a lfc.AtomicTaggedPointer[int]

	if !a.Load().IsNil() {
		t.Fatalf("Load on zero value: got non-nil")
	}

	v := 5
	tp := lfc.TaggedPointerOf(&v).WithTag(1)
	a.Store(tp)
	if got := a.Load(); got != tp {
		t.Fatalf("Load after Store: got (%p, %d), want (%p, 1)", got.Ptr(), got.Tag(), &v)
	}

	a.StoreRelease(tp.IncrementTag())
	if got := a.LoadAcquire(); got.Tag() != 2 {
		t.Fatalf("LoadAcquire after StoreRelease: got tag %d, want 2", got.Tag())
	}
	if got := a.LoadRelaxed(); got.Ptr() != &v {
		t.Fatalf("LoadRelaxed: got %p, want %p", got.Ptr(), &v)
	}
}

// TestAtomicTaggedPointerCompareAndSwap tests CAS success and failure,
// including the stale-tag failure that underpins ABA protection.
func TestAtomicTaggedPointerCompareAndSwap(t *testing.T) {
	var a lfc.AtomicTaggedPointer[int]
	v, w := 1, 2

	first := lfc.TaggedPointerOf(&v)
	a.Store(first)

	// Successful swap bumps the tag.
	desired := lfc.TaggedPointerOf(&w).SetTag(first).IncrementTag()
	if !a.CompareAndSwapAcqRel(first, desired) {
		t.Fatalf("CAS with matching word: got failure")
	}
	if got := a.Load(); got != desired {
		t.Fatalf("after CAS: got (%p, %d), want (%p, %d)", got.Ptr(), got.Tag(), desired.Ptr(), desired.Tag())
	}

	// A stale snapshot fails even when the pointer matches.
	stale := lfc.TaggedPointerOf(&w) // tag 0, current tag 1
	if a.CompareAndSwapAcqRel(stale, stale.IncrementTag()) {
		t.Fatalf("CAS with stale tag: got success")
	}

	// Relaxed variant behaves identically at the value level.
	cur := a.Load()
	if !a.CompareAndSwapRelaxed(cur, cur.IncrementTag()) {
		t.Fatalf("relaxed CAS with matching word: got failure")
	}
}

// TestAtomicTaggedPointerPublishCycle drives one full tag wraparound of
// successful CAS publications against a single address. The structure must
// come back to its initial word without corruption.
func TestAtomicTaggedPointerPublishCycle(t *testing.T) {
	period := tagPeriod(t)

	v := 99
	var a lfc.AtomicTaggedPointer[int]
	initial := lfc.TaggedPointerOf(&v)
	a.Store(initial)

	for i := range period {
		expected := a.Load()
		if !a.CompareAndSwapAcqRel(expected, expected.IncrementTag()) {
			t.Fatalf("publish %d: CAS failed without contention", i)
		}
		if got := a.Load().Ptr(); got != &v {
			t.Fatalf("publish %d: pointer corrupted: got %p, want %p", i, got, &v)
		}
	}

	if got := a.Load(); got != initial {
		t.Fatalf("after %d publishes: got (%p, %d), want initial (%p, 0)",
			period, got.Ptr(), got.Tag(), &v)
	}
}
