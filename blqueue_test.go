// Copyright 2026 smrq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package smrq_test

import (
	"testing"

	"github.com/smrq-go/smrq"
)

func TestBLQueueBasic(t *testing.T) {
	q := smrq.NewBLQueue(4)
	h := q.Register(0, 1)

	if !q.IsEmpty(h) {
		t.Fatal("IsEmpty: new queue should be empty")
	}
	if v := q.Pop(h); v != smrq.Empty {
		t.Fatalf("Pop on empty: got %v, want Empty", v)
	}

	for i := range 10 {
		q.Push(h, smrq.Value(i))
	}
	if q.IsEmpty(h) {
		t.Fatal("IsEmpty: queue with items should not be empty")
	}

	for i := range 10 {
		v := q.Pop(h)
		if v != smrq.Value(i) {
			t.Fatalf("Pop(%d): got %v, want %v", i, v, i)
		}
	}
	if !q.IsEmpty(h) {
		t.Fatal("IsEmpty: drained queue should be empty")
	}
	if v := q.Pop(h); v != smrq.Empty {
		t.Fatalf("Pop on drained queue: got %v, want Empty", v)
	}
}

func TestBLQueueCrossesNodeBoundary(t *testing.T) {
	// A buffer size of 2 forces several node allocations for 10 pushes,
	// exercising the linked-list growth path.
	q := smrq.NewBLQueue(2)
	h := q.Register(0, 1)

	for i := range 10 {
		q.Push(h, smrq.Value(i))
	}
	for i := range 10 {
		if v := q.Pop(h); v != smrq.Value(i) {
			t.Fatalf("Pop(%d): got %v, want %v", i, v, i)
		}
	}
}

func TestBLQueuePushRejectsSentinels(t *testing.T) {
	q := smrq.NewBLQueue(4)
	h := q.Register(0, 1)

	for _, v := range []smrq.Value{smrq.Empty, smrq.Taken} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("Push(%v): expected panic", v)
				}
			}()
			q.Push(h, v)
		}()
	}
}

func TestBLQueueRegisterOutOfRangePanics(t *testing.T) {
	q := smrq.NewBLQueue(4)
	defer func() {
		if recover() == nil {
			t.Fatal("Register with out-of-range threadID: expected panic")
		}
	}()
	q.Register(5, 4)
}

func TestBLQueueNewPanicsOnBadBufferSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewBLQueue(0): expected panic")
		}
	}()
	smrq.NewBLQueue(0)
}

func TestBLQueueInterleavedPushPop(t *testing.T) {
	q := smrq.NewBLQueue(4)
	h := q.Register(0, 1)

	q.Push(h, 1)
	q.Push(h, 2)
	if v := q.Pop(h); v != 1 {
		t.Fatalf("Pop: got %v, want 1", v)
	}
	q.Push(h, 3)
	if v := q.Pop(h); v != 2 {
		t.Fatalf("Pop: got %v, want 2", v)
	}
	if v := q.Pop(h); v != 3 {
		t.Fatalf("Pop: got %v, want 3", v)
	}
	if v := q.Pop(h); v != smrq.Empty {
		t.Fatalf("Pop: got %v, want Empty", v)
	}
}
