// Copyright 2026 smrq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package smrq provides a family of concurrent MPMC FIFO queues over a
// 64-bit Value alphabet, built on a shared hazard-pointer safe memory
// reclamation (SMR) substrate.
//
// Four variants are offered, differing in synchronization discipline so the
// family can be studied, benchmarked, and stress-tested against one
// another:
//
//   - BLQueue: lock-free, batched linked list of buffer-nodes
//   - LLQueue: lock-free, one value per linked-list node
//   - RingsQueue: mutex-guarded, linked list of fixed-capacity ring buffers
//   - SimpleQueue: mutex-guarded, two-lock Michael-Scott queue
//
// # Quick Start
//
// RingsQueue and SimpleQueue need no per-goroutine setup:
//
//	q := smrq.NewSimpleQueue()
//	q.Push(42)
//	v := q.Pop() // smrq.Empty if nothing was pushed
//
// BLQueue and LLQueue are lock-free and reclaim retired nodes with hazard
// pointers, which requires every participating goroutine to register once
// and thread an opaque handle through every call:
//
//	q := smrq.NewLLQueue()
//	h := q.Register(0, 1) // thread id 0 of 1
//	q.Push(h, 42)
//	v := q.Pop(h)
//
// Thread ids are assigned by the caller (the driver/harness, out of scope
// for this package) and must be stable, dense in [0, numThreads), and
// distinct per goroutine.
//
// # Value and its sentinels
//
// Value wraps int64. Two values are reserved and must never be pushed:
// [Empty] ("no value here") and [Taken] ("a value was here and has been
// consumed"). Pop returns Empty to mean "the queue was observed empty" —
// there is no separate error type, matching this family's "operations
// succeed or abort" contract: a caller violation (pushing Empty or Taken,
// registering an out-of-range thread id) panics rather than returning an
// error.
//
// # Choosing a variant
//
//	BLQueue, LLQueue        — lock-free, need Register + a handle per goroutine
//	RingsQueue, SimpleQueue — mutex-guarded, no registration needed
//
// BLQueue amortizes allocation by batching many values into each node's
// fixed-size buffer (BufferSize, default 1024); LLQueue allocates one node
// per value. Both rely on hazard pointers to make "swing the pointer, then
// link/retire the old node" safe under concurrent traversal — see
// [HazardPointer] and [Handle].
//
// # is_empty is a heuristic
//
// IsEmpty on every variant observes a momentary state and is not
// linearizable with concurrent Push/Pop: a true result means the queue
// looked empty at the moment of inspection, not that it will still be empty
// by the time the caller acts on it.
//
// # Family dispatch
//
// [New] constructs RingsQueue or SimpleQueue from a [Family] value, useful
// for benchmarks and comparisons that iterate over the mutex-guarded pair;
// it panics for FamilyBatchedLinked and FamilyLinkedList. [Queue] is the
// handle-free common interface RingsQueue and SimpleQueue implement. BLQueue and LLQueue are not [Queue] implementors
// because their Push/Pop/IsEmpty require a handle argument the interface
// can't express without erasing the node type — use them directly.
package smrq
