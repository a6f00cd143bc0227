// Copyright 2026 smrq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package smrq

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// MaxThreads bounds the number of goroutines that may ever be registered
// against a single HazardPointer instance. It sizes the protected-pointer
// array and the per-thread retired lists.
const MaxThreads = 128

// RetiredThreshold is the retired-list size at which Retire triggers a scan
// before appending, per thread. Equal to MaxThreads, matching the source
// this family is derived from: a thread can accumulate at most one retired
// node "owed" per possible protector before a scan becomes worthwhile.
const RetiredThreshold = MaxThreads

// HazardPointer is a generic single-slot-per-thread hazard pointer
// substrate: each registered thread gets one protected-pointer slot and one
// retired list. A node protected by any thread's slot will not be freed by
// any other thread's retire/scan until that slot is cleared or overwritten.
//
// HazardPointer is a leaf dependency: BLQueue and LLQueue each embed one,
// generic over their own node type, so a BLQueue's hazard pointers never
// interact with an LLQueue's.
type HazardPointer[T any] struct {
	protected  [MaxThreads]atomic.Pointer[T]
	retired    [MaxThreads]retiredList[T]
	numThreads atomix.Int32
}

// retiredList is a singly linked list of pointers retired by one thread,
// exclusively owned by that thread (invariant P2: each retired pointer
// belongs to at most one retired list at a time).
type retiredList[T any] struct {
	head *retiredNode[T]
	tail *retiredNode[T]
	size int
}

type retiredNode[T any] struct {
	ptr  *T
	next *retiredNode[T]
}

func (l *retiredList[T]) add(ptr *T) {
	n := &retiredNode[T]{ptr: ptr}
	if l.tail == nil {
		l.head, l.tail = n, n
	} else {
		l.tail.next = n
		l.tail = n
	}
	l.size++
}

// NewHazardPointer creates a ready-to-use hazard pointer substrate. There is
// no separate initialize step (unlike the C source this is derived from):
// the zero value of every field here is already the initialized state.
func NewHazardPointer[T any]() *HazardPointer[T] {
	return &HazardPointer[T]{}
}

// Handle is a registered thread's view into a HazardPointer substrate. It
// carries the thread's dense numeric id, passed explicitly rather than
// through thread-local state (the "pass the id explicitly" strategy),
// so a Handle is safe to create once per goroutine per queue and thread
// through every subsequent Protect/Clear/Retire call made by that goroutine
// alone — a Handle must not be shared across goroutines.
type Handle[T any] struct {
	hp *HazardPointer[T]
	id int
}

// Register associates the calling thread with threadID in [0, numThreads).
// Must be called exactly once per participating thread, before that thread
// touches the owning queue. Panics if threadID or numThreads is out of
// range — an unregistered or misregistered thread calling hazard-protected
// operations is undefined behavior, and Go's idiom for
// "undefined behavior, assert instead" is a panic at the boundary we can
// actually check.
func (hp *HazardPointer[T]) Register(threadID, numThreads int) *Handle[T] {
	if numThreads <= 0 || numThreads > MaxThreads {
		panic("smrq: numThreads out of range")
	}
	if threadID < 0 || threadID >= numThreads {
		panic("smrq: threadID out of range")
	}
	hp.numThreads.StoreRelease(int32(numThreads))
	return &Handle[T]{hp: hp, id: threadID}
}

// Protect reads *slot, announces it in this thread's protected entry, then
// re-reads *slot; it repeats until the two reads agree, guaranteeing the
// returned pointer is stable and announced by the time Protect returns
// (invariant P1). The caller must eventually call Clear, or reprotect
// before dereferencing the result again.
func (h *Handle[T]) Protect(slot *atomic.Pointer[T]) *T {
	sw := spin.Wait{}
	for {
		p := slot.Load()
		h.hp.protected[h.id].Store(p)
		if slot.Load() == p {
			return p
		}
		sw.Once()
	}
}

// Clear releases this thread's protected entry.
func (h *Handle[T]) Clear() {
	h.hp.protected[h.id].Store(nil)
}

// Retire appends ptr to this thread's retired list, first running a scan if
// the list has reached RetiredThreshold. ptr must be uniquely owned by the
// caller: a node retired twice, by any thread, violates invariant P2.
func (h *Handle[T]) Retire(ptr *T) {
	list := &h.hp.retired[h.id]
	if list.size >= RetiredThreshold {
		h.scan()
	}
	list.add(ptr)
}

// scan walks this thread's retired list and drops (eligible for garbage
// collection) every entry no longer announced in any registered thread's
// protected slot, preserving the relative order of survivors. It compares
// against the retired pointer itself, matching invariant P1 — see
// DESIGN.md for why this is the one place the C source this is derived
// from is easy to get subtly wrong.
func (h *Handle[T]) scan() {
	list := &h.hp.retired[h.id]
	n := int(h.hp.numThreads.LoadAcquire())

	var prev *retiredNode[T]
	curr := list.head
	for curr != nil {
		next := curr.next
		if h.hp.canFree(curr.ptr, n) {
			list.size--
			if prev == nil {
				list.head = next
			} else {
				prev.next = next
			}
			curr.ptr = nil
			curr.next = nil
		} else {
			prev = curr
		}
		curr = next
	}
	list.tail = prev
}

// canFree reports whether ptr is free to drop: true when none of the first
// n threads' protected slots currently announces it.
func (hp *HazardPointer[T]) canFree(ptr *T, n int) bool {
	for i := 0; i < n; i++ {
		if hp.protected[i].Load() == ptr {
			return false
		}
	}
	return true
}

// Finalize frees every node still on every thread's retired list,
// unconditionally. Called once at queue teardown; the caller must ensure no
// concurrent activity remains.
func (hp *HazardPointer[T]) Finalize() {
	for i := range hp.retired {
		list := &hp.retired[i]
		for n := list.head; n != nil; {
			next := n.next
			n.ptr = nil
			n.next = nil
			n = next
		}
		list.head, list.tail, list.size = nil, nil, 0
	}
}
