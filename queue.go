// Copyright 2026 smrq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package smrq

import "fmt"

// Queue is the common handle-free interface implemented by the
// mutex-guarded queue variants, RingsQueue and SimpleQueue.
//
// BLQueue and LLQueue deliberately do not implement Queue: their
// lock-free/hazard-pointer discipline requires each goroutine to pass a
// registered handle (*BLHandle, *LLHandle) into every call, which a single
// interface can't express without erasing the node type. Use them
// directly — see the package doc for the handle-based calling convention.
type Queue interface {
	// Push adds v to the queue. Panics if v is Empty or Taken.
	Push(v Value)
	// Pop removes and returns the front value, or Empty if the queue was
	// observed empty.
	Pop() Value
	// IsEmpty reports whether the queue looked empty at the moment of
	// inspection. Not linearizable with concurrent Push/Pop.
	IsEmpty() bool
	// Close tears down the queue. The caller must ensure quiescence.
	Close()
}

// Family names one of the four synchronization disciplines this package
// implements, for benchmarking and comparison harnesses that want to
// iterate over the whole suite of algorithms side by side.
type Family int

const (
	// FamilyBatchedLinked is BLQueue: lock-free, batched buffer-nodes.
	FamilyBatchedLinked Family = iota
	// FamilyLinkedList is LLQueue: lock-free, one value per node.
	FamilyLinkedList
	// FamilyRings is RingsQueue: mutex-guarded, linked ring buffers.
	FamilyRings
	// FamilySimple is SimpleQueue: mutex-guarded, two-lock linked list.
	FamilySimple
)

// String returns a short human-readable name for f.
func (f Family) String() string {
	switch f {
	case FamilyBatchedLinked:
		return "BLQueue"
	case FamilyLinkedList:
		return "LLQueue"
	case FamilyRings:
		return "RingsQueue"
	case FamilySimple:
		return "SimpleQueue"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// Config bundles the per-node sizing knobs for the families that need them.
// A zero RingSize falls back to DefaultRingSize. New does not construct
// BLQueue, so New never reads BufferSize.
type Config struct {
	BufferSize int // BLQueue only; unused by New
	RingSize   int // RingsQueue only
}

func (c Config) bufferSize() int {
	if c.BufferSize > 0 {
		return c.BufferSize
	}
	return DefaultBufferSize
}

func (c Config) ringSize() int {
	if c.RingSize > 0 {
		return c.RingSize
	}
	return DefaultRingSize
}

// New constructs the Queue-interface member of f: RingsQueue or
// SimpleQueue. Panics for FamilyBatchedLinked and FamilyLinkedList, which
// need a handle-based calling convention Queue can't express — construct
// those with NewBLQueue/NewLLQueue directly.
func New(f Family, cfg Config) Queue {
	switch f {
	case FamilyRings:
		return NewRingsQueue(cfg.ringSize())
	case FamilySimple:
		return NewSimpleQueue()
	case FamilyBatchedLinked, FamilyLinkedList:
		panic(fmt.Sprintf("smrq: %s requires a handle-based constructor (NewBLQueue/NewLLQueue), not New", f))
	default:
		panic(fmt.Sprintf("smrq: unknown family %d", int(f)))
	}
}
