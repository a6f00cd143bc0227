// Copyright 2026 smrq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package smrq

// Push and Pop never return an error. Pop reports an empty queue by
// returning the Empty sentinel, and Push signals a contract violation
// (pushing Empty or Taken) by panicking rather than returning an error —
// there is no recoverable "would block" state in this API, only "try
// again" signal. See checkPushable in value.go.
//
// iox's semantic-error helpers (IsWouldBlock, IsSemantic, IsNonFailure)
// accordingly have no role here. This package's own tests use only
// iox.Backoff, for bounded retry loops against the sentinel values, not
// against errors. See the _test.go files.
