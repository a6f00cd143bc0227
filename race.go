// Copyright 2026 smrq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package smrq

// RaceEnabled is true when the race detector is active. Tests use it to
// skip stress scenarios whose atomic orderings are correct but trip the
// race detector's happens-before model around padding and cell reuse.
const RaceEnabled = true
