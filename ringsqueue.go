// Copyright 2026 smrq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package smrq

import (
	"sync"
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// DefaultRingSize is the per-node ring capacity RingsQueue uses when not
// otherwise specified.
const DefaultRingSize = 1024

// ringsNode is one fixed-capacity circular buffer in a RingsQueue's linked
// list. pushIdx/popIdx are only ever touched under the lock matching their
// side (pushMtx, popMtx respectively) and so need no atomic protection;
// freeSlots is the one field read and written from both lock domains
// without holding both at once, and is the bridge between them (invariant
// R1: freeSlots is always in [0, len(buffer)]).
type ringsNode struct {
	next      atomic.Pointer[ringsNode]
	buffer    []Value
	pushIdx   int
	popIdx    int
	freeSlots atomix.Int64
}

func newRingsNode(ringSize int) *ringsNode {
	n := &ringsNode{buffer: make([]Value, ringSize)}
	n.freeSlots.StoreRelaxed(int64(ringSize))
	return n
}

func newRingsNodeWithValue(ringSize int, item Value) *ringsNode {
	n := &ringsNode{buffer: make([]Value, ringSize)}
	n.buffer[0] = item
	n.pushIdx = 1
	n.freeSlots.StoreRelaxed(int64(ringSize - 1))
	return n
}

// RingsQueue is a mutex-guarded MPMC queue: a linked list of fixed-capacity
// ring buffers. Producers and consumers are serialized by independent
// locks, pushMtx and popMtx, so a push and a pop on different nodes never
// contend with each other.
type RingsQueue struct {
	head     *ringsNode
	tail     *ringsNode
	pushMtx  sync.Mutex
	popMtx   sync.Mutex
	ringSize int
}

// NewRingsQueue creates an empty RingsQueue with the given per-node ring
// size. Panics if ringSize < 1.
func NewRingsQueue(ringSize int) *RingsQueue {
	if ringSize < 1 {
		panic("smrq: RingsQueue ring size must be >= 1")
	}
	n := newRingsNode(ringSize)
	return &RingsQueue{head: n, tail: n, ringSize: ringSize}
}

var _ Queue = (*RingsQueue)(nil)

// Push adds item to the queue. Panics if item is Empty or Taken.
func (q *RingsQueue) Push(item Value) {
	checkPushable(item)
	q.pushMtx.Lock()
	defer q.pushMtx.Unlock()

	if q.tail.freeSlots.LoadRelaxed() > 0 {
		q.tail.buffer[q.tail.pushIdx] = item
		q.tail.pushIdx = (q.tail.pushIdx + 1) % q.ringSize
		q.tail.freeSlots.AddAcqRel(-1)
		return
	}

	newNode := newRingsNodeWithValue(q.ringSize, item)
	q.tail.next.Store(newNode)
	q.tail = newNode
}

// Pop removes and returns the front value, or Empty if the queue was
// observed empty.
func (q *RingsQueue) Pop() Value {
	q.popMtx.Lock()
	defer q.popMtx.Unlock()

	head := q.head
	if head.next.Load() != nil && head.freeSlots.LoadRelaxed() == int64(q.ringSize) {
		newHead := head.next.Load()
		q.head = newHead
		return q.take(newHead)
	}
	if head.freeSlots.LoadRelaxed() < int64(q.ringSize) {
		return q.take(head)
	}
	return Empty
}

func (q *RingsQueue) take(n *ringsNode) Value {
	v := n.buffer[n.popIdx]
	n.popIdx = (n.popIdx + 1) % q.ringSize
	n.freeSlots.AddAcqRel(1)
	return v
}

// IsEmpty reports whether the queue looked empty at the moment of
// inspection. True iff empty, matching the external contract — see
// DESIGN.md for why the C source this is derived from reads as the
// opposite at a glance.
func (q *RingsQueue) IsEmpty() bool {
	q.popMtx.Lock()
	defer q.popMtx.Unlock()

	return q.head.freeSlots.LoadRelaxed() == int64(q.ringSize) && q.head.next.Load() == nil
}

// Close tears down the queue. The caller must ensure quiescence.
func (q *RingsQueue) Close() {
	q.head = nil
	q.tail = nil
}
