// Copyright 2026 smrq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package smrq

import (
	"sync"
	"sync/atomic"
)

// simpleNode is one node of a SimpleQueue: a sentinel-headed singly linked
// list, exactly like LLQueue's node shape, but guarded by locks instead of
// hazard pointers.
type simpleNode struct {
	next atomic.Pointer[simpleNode]
	item Value
}

// SimpleQueue is a mutex-guarded two-lock MPMC queue (Michael & Scott's
// algorithm with locks instead of CAS): headMtx and tailMtx guard head and
// tail independently, so a push and a pop never contend with each other
// except through the shared sentinel node at the boundary.
type SimpleQueue struct {
	head    *simpleNode
	tail    *simpleNode
	headMtx sync.Mutex
	tailMtx sync.Mutex
}

// NewSimpleQueue creates an empty SimpleQueue with a sentinel node, so head
// and tail are never nil during the queue's lifetime (invariant Q1).
func NewSimpleQueue() *SimpleQueue {
	sentinel := &simpleNode{item: Empty}
	return &SimpleQueue{head: sentinel, tail: sentinel}
}

var _ Queue = (*SimpleQueue)(nil)

// Push adds item to the queue. Panics if item is Empty or Taken.
func (q *SimpleQueue) Push(item Value) {
	checkPushable(item)
	newNode := &simpleNode{item: item}

	q.tailMtx.Lock()
	q.tail.next.Store(newNode)
	q.tail = newNode
	q.tailMtx.Unlock()
}

// Pop removes and returns the front value, or Empty if the queue was
// observed empty.
func (q *SimpleQueue) Pop() Value {
	q.headMtx.Lock()
	defer q.headMtx.Unlock()

	newHead := q.head.next.Load()
	if newHead == nil {
		return Empty
	}
	v := newHead.item
	q.head = newHead
	return v
}

// IsEmpty reports whether the queue looked empty at the moment of
// inspection.
func (q *SimpleQueue) IsEmpty() bool {
	q.headMtx.Lock()
	defer q.headMtx.Unlock()

	return q.head.next.Load() == nil
}

// Close tears down the queue. The caller must ensure quiescence.
func (q *SimpleQueue) Close() {
	q.head = nil
	q.tail = nil
}
