// Copyright 2026 smrq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package smrq_test

import (
	"testing"

	"github.com/smrq-go/smrq"
)

func TestSimpleQueueBasic(t *testing.T) {
	q := smrq.NewSimpleQueue()

	if !q.IsEmpty() {
		t.Fatal("IsEmpty: new queue should be empty")
	}
	if v := q.Pop(); v != smrq.Empty {
		t.Fatalf("Pop on empty: got %v, want Empty", v)
	}

	for i := range 10 {
		q.Push(smrq.Value(i))
	}
	if q.IsEmpty() {
		t.Fatal("IsEmpty: queue with items should not be empty")
	}

	for i := range 10 {
		v := q.Pop()
		if v != smrq.Value(i) {
			t.Fatalf("Pop(%d): got %v, want %v", i, v, i)
		}
	}
	if !q.IsEmpty() {
		t.Fatal("IsEmpty: drained queue should be empty")
	}
}

func TestSimpleQueuePushRejectsSentinels(t *testing.T) {
	q := smrq.NewSimpleQueue()
	for _, v := range []smrq.Value{smrq.Empty, smrq.Taken} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("Push(%v): expected panic", v)
				}
			}()
			q.Push(v)
		}()
	}
}

func TestSimpleQueueImplementsQueue(t *testing.T) {
	var q smrq.Queue = smrq.NewSimpleQueue()
	q.Push(1)
	if v := q.Pop(); v != 1 {
		t.Fatalf("Pop: got %v, want 1", v)
	}
}
