// Copyright 2026 smrq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package smrq

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// DefaultBufferSize is the per-node buffer capacity BLQueue uses when not
// otherwise specified.
const DefaultBufferSize = 1024

// BLHandle is a registered thread's handle for a BLQueue. Obtain one with
// (*BLQueue).Register.
type BLHandle = Handle[blNode]

// blNode is one node of a BLQueue: a fixed-size buffer of cells plus a
// successor pointer. Cells evolve monotonically EMPTY -> value -> TAKEN, or
// EMPTY -> TAKEN if a popper steals an unfilled cell (invariant B2).
type blNode struct {
	next    atomic.Pointer[blNode]
	buffer  []blCell
	pushIdx atomix.Int64 // monotonically increasing; may exceed len(buffer)
	popIdx  atomix.Int64
}

type blCell struct {
	v atomix.Int64
	_ padShort
}

func newBLNode(bufferSize int) *blNode {
	n := &blNode{buffer: make([]blCell, bufferSize)}
	for i := range n.buffer {
		n.buffer[i].v.StoreRelaxed(int64(Empty))
	}
	return n
}

func newBLNodeWithValue(bufferSize int, item Value) *blNode {
	n := &blNode{buffer: make([]blCell, bufferSize)}
	n.buffer[0].v.StoreRelaxed(int64(item))
	for i := 1; i < bufferSize; i++ {
		n.buffer[i].v.StoreRelaxed(int64(Empty))
	}
	n.pushIdx.StoreRelaxed(1)
	return n
}

// casExchange atomically replaces cell's value with newVal and returns the
// previous value, as a CompareAndSwapAcqRel retry loop: atomix exposes no
// Exchange primitive, so this is built from the same CAS primitive the
// teacher's own slot-repair path uses.
func casExchange(cell *atomix.Int64, newVal int64) int64 {
	for {
		old := cell.LoadAcquire()
		if cell.CompareAndSwapAcqRel(old, newVal) {
			return old
		}
	}
}

// BLQueue is a lock-free MPMC queue: a linked list of fixed-size
// buffer-nodes, with pushers and poppers claiming cells via fetch-add on
// per-node indices. Batching amortizes node allocation across BufferSize
// values, at the cost of allowing concurrent in-flight operations within
// one node to complete out of push order — FIFO still holds at
// the granularity of successfully claimed slots.
//
// Every participating goroutine must call Register once and thread the
// resulting *BLHandle through Push/Pop/IsEmpty.
type BLQueue struct {
	_          pad
	head       atomic.Pointer[blNode]
	_          pad
	tail       atomic.Pointer[blNode]
	_          pad
	hp         *HazardPointer[blNode]
	bufferSize int
}

// NewBLQueue creates an empty BLQueue with the given per-node buffer size.
// Panics if bufferSize < 1.
func NewBLQueue(bufferSize int) *BLQueue {
	if bufferSize < 1 {
		panic("smrq: BLQueue buffer size must be >= 1")
	}
	q := &BLQueue{hp: NewHazardPointer[blNode](), bufferSize: bufferSize}
	n := newBLNode(bufferSize)
	q.head.Store(n)
	q.tail.Store(n)
	return q
}

// Register associates the calling thread with threadID, returning a handle
// to pass to Push/Pop/IsEmpty. See (*HazardPointer[T]).Register.
func (q *BLQueue) Register(threadID, numThreads int) *BLHandle {
	return q.hp.Register(threadID, numThreads)
}

// Close tears down the queue. The caller must ensure quiescence: no
// concurrent Push/Pop/IsEmpty calls may be in flight. All remaining nodes
// and retired-list entries are reclaimed wholesale, including the final
// sentinel. Wholesale teardown skips the incremental hazard-pointer
// discipline by design: no goroutine may be using the queue concurrently.
func (q *BLQueue) Close() {
	q.hp.Finalize()
	q.head.Store(nil)
	q.tail.Store(nil)
}

// Push adds item to the queue. Panics if item is Empty or Taken.
func (q *BLQueue) Push(h *BLHandle, item Value) {
	checkPushable(item)
	sw := spin.Wait{}
	for {
		tail := h.Protect(&q.tail)
		if tail != q.tail.Load() {
			sw.Once()
			continue
		}

		idx := tail.pushIdx.AddAcqRel(1) - 1
		if idx < int64(q.bufferSize) {
			if !tail.buffer[idx].v.CompareAndSwapAcqRel(int64(Empty), int64(item)) {
				// A popper raced ahead and stole this cell as empty.
				sw.Once()
				continue
			}
			break
		}

		next := tail.next.Load()
		if next == nil {
			newNode := newBLNodeWithValue(q.bufferSize, item)
			if q.tail.CompareAndSwap(tail, newNode) {
				// tail is swung before the link is published; a popper that
				// reaches the full old node in that gap sees a nil next and
				// Pop returns Empty for that call.
				tail.next.Store(newNode)
				break
			}
			// Lost the race: newNode was never published, GC reclaims it.
		} else {
			q.tail.CompareAndSwap(tail, next)
		}
		sw.Once()
	}
	h.Clear()
}

// Pop removes and returns the front value, or Empty if the queue was
// observed empty.
func (q *BLQueue) Pop(h *BLHandle) Value {
	sw := spin.Wait{}
	for {
		head := h.Protect(&q.head)
		if head != q.head.Load() {
			sw.Once()
			continue
		}

		idx := head.popIdx.AddAcqRel(1) - 1
		if idx >= 0 && idx < int64(q.bufferSize) {
			old := Value(casExchange(&head.buffer[idx].v, int64(Taken)))
			if old == Empty || old == Taken {
				// Stole an unfilled cell, or another popper already took
				// it: neither is "the queue is empty", keep trying.
				sw.Once()
				continue
			}
			h.Clear()
			return old
		}

		next := head.next.Load()
		if next == nil {
			h.Clear()
			return Empty
		}
		if q.head.CompareAndSwap(head, next) {
			h.Retire(head)
		}
		sw.Once()
	}
}

// IsEmpty reports whether the queue looked empty at the moment of
// inspection. Not linearizable with concurrent Push/Pop.
func (q *BLQueue) IsEmpty(h *BLHandle) bool {
	sw := spin.Wait{}
	for {
		head := h.Protect(&q.head)
		if head != q.head.Load() {
			sw.Once()
			continue
		}

		idx := head.popIdx.LoadAcquire()
		if idx < int64(q.bufferSize) {
			v := Value(head.buffer[idx].v.LoadAcquire())
			switch v {
			case Empty:
				h.Clear()
				return true
			case Taken:
				sw.Once()
				continue
			default:
				h.Clear()
				return false
			}
		}

		next := head.next.Load()
		if next == nil {
			h.Clear()
			return true
		}
		if q.head.CompareAndSwap(head, next) {
			h.Retire(head)
		}
		sw.Once()
	}
}
