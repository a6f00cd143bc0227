// Copyright 2026 smrq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package smrq

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// LLHandle is a registered thread's handle for an LLQueue. Obtain one with
// (*LLQueue).Register.
type LLHandle = Handle[llNode]

// llNode is one node of an LLQueue: exactly one value, plus a successor
// pointer. The dummy head node installed at construction carries item ==
// Empty.
type llNode struct {
	next atomic.Pointer[llNode]
	item atomix.Int64
}

func newLLNode(item Value) *llNode {
	n := &llNode{}
	n.item.StoreRelaxed(int64(item))
	return n
}

// LLQueue is a lock-free MPMC queue allocating one node per value. Compared
// to BLQueue it trades batching for simplicity: no per-node buffer, no
// push/pop index bookkeeping, one CAS to publish a new tail.
//
// Every participating goroutine must call Register once and thread the
// resulting *LLHandle through Push/Pop/IsEmpty.
type LLQueue struct {
	head atomic.Pointer[llNode]
	tail atomic.Pointer[llNode]
	hp   *HazardPointer[llNode]
}

// NewLLQueue creates an empty LLQueue with a dummy sentinel node, so head
// and tail are never nil during the queue's lifetime (invariant Q1).
func NewLLQueue() *LLQueue {
	q := &LLQueue{hp: NewHazardPointer[llNode]()}
	sentinel := newLLNode(Empty)
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	return q
}

// Register associates the calling thread with threadID, returning a handle
// to pass to Push/Pop/IsEmpty. See (*HazardPointer[T]).Register.
func (q *LLQueue) Register(threadID, numThreads int) *LLHandle {
	return q.hp.Register(threadID, numThreads)
}

// Close tears down the queue. The caller must ensure quiescence.
func (q *LLQueue) Close() {
	q.hp.Finalize()
	q.head.Store(nil)
	q.tail.Store(nil)
}

// Push adds item to the queue. Panics if item is Empty or Taken.
func (q *LLQueue) Push(h *LLHandle, item Value) {
	checkPushable(item)
	newNode := newLLNode(item)
	sw := spin.Wait{}
	for {
		tail := h.Protect(&q.tail)
		if q.tail.CompareAndSwap(tail, newNode) {
			// tail is swung before the link is published; a popper that
			// overtakes head to this old tail sees a transient nil next
			// and Pop returns Empty for that call.
			tail.next.Store(newNode)
			break
		}
		sw.Once()
	}
	h.Clear()
}

// Pop removes and returns the front value, or Empty if the queue was
// observed empty.
func (q *LLQueue) Pop(h *LLHandle) Value {
	sw := spin.Wait{}
	for {
		head := h.Protect(&q.head)
		if head != q.head.Load() {
			sw.Once()
			continue
		}

		old := casExchange(&head.item, int64(Empty))
		value := Value(old)
		finished := value != Empty

		next := head.next.Load()
		if next != nil {
			if q.head.CompareAndSwap(head, next) {
				h.Retire(head)
			}
			// Head advance is best-effort and attempted regardless of
			// whether this call already has its return value: the return is fixed
			// once found, but head advance is best-effort and never blocks it.
		} else {
			finished = true
		}

		if finished {
			h.Clear()
			return value
		}
		sw.Once()
	}
}

// IsEmpty reports whether the queue looked empty at the moment of
// inspection. Not linearizable with concurrent Push/Pop.
func (q *LLQueue) IsEmpty(h *LLHandle) bool {
	sw := spin.Wait{}
	for {
		head := h.Protect(&q.head)
		if head != q.head.Load() {
			sw.Once()
			continue
		}

		value := Value(head.item.LoadAcquire())
		if value != Empty {
			h.Clear()
			return false
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
