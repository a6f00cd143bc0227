// Copyright 2026 smrq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package smrq_test

import (
	"testing"

	"github.com/smrq-go/smrq"
)

func TestNewRingsAndSimple(t *testing.T) {
	for _, f := range []smrq.Family{smrq.FamilyRings, smrq.FamilySimple} {
		t.Run(f.String(), func(t *testing.T) {
			q := smrq.New(f, smrq.Config{})
			q.Push(7)
			if v := q.Pop(); v != 7 {
				t.Fatalf("Pop: got %v, want 7", v)
			}
			q.Close()
		})
	}
}

func TestNewHandleFamiliesPanic(t *testing.T) {
	for _, f := range []smrq.Family{smrq.FamilyBatchedLinked, smrq.FamilyLinkedList} {
		t.Run(f.String(), func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("New(%v): expected panic", f)
				}
			}()
			smrq.New(f, smrq.Config{})
		})
	}
}

func TestFamilyString(t *testing.T) {
	cases := map[smrq.Family]string{
		smrq.FamilyBatchedLinked: "BLQueue",
		smrq.FamilyLinkedList:    "LLQueue",
		smrq.FamilyRings:         "RingsQueue",
		smrq.FamilySimple:        "SimpleQueue",
	}
	for f, want := range cases {
		if got := f.String(); got != want {
			t.Errorf("Family(%d).String(): got %q, want %q", int(f), got, want)
		}
	}
}
