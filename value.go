// Copyright 2026 smrq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package smrq

import "math"

// Value is the payload type carried by every queue in this package.
//
// Two values are reserved and must never be pushed: [Empty] marks a slot
// that was never filled (or signals "no value" from Pop), and
// [Taken] marks a slot that was filled and has already been consumed.
// Pushing either sentinel panics.
type Value int64

const (
	// Empty means "no value here" — an unfilled slot, or Pop's result when
	// the queue was observed empty.
	Empty Value = math.MinInt64
	// Taken means "a value was here and has been consumed".
	Taken Value = math.MinInt64 + 1
)

// valid reports whether v is an admissible payload, i.e. not a reserved
// sentinel.
func (v Value) valid() bool {
	return v != Empty && v != Taken
}

// checkPushable panics if v is not a valid payload. Every Push entry point
// calls this: pushing a sentinel is a caller-contract violation,
// not a recoverable condition.
func checkPushable(v Value) {
	if !v.valid() {
		panic("smrq: pushed value must not be Empty or Taken")
	}
}

// pad is cache-line padding, sized to avoid false sharing between
// hot atomic fields that would otherwise land on the same cache line.
type pad [64]byte

// padShort pads out the remainder of a cache line after an 8-byte field.
type padShort [64 - 8]byte
