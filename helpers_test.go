// Copyright 2026 smrq authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package smrq_test

import (
	"testing"
	"time"

	"code.hybscloud.com/iox"

	"github.com/smrq-go/smrq"
)

// retryWithTimeout retries f until it returns true or timeout expires.
func retryWithTimeout(t *testing.T, timeout time.Duration, f func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	backoff := iox.Backoff{}
	for !f() {
		if time.Now().After(deadline) {
			t.Fatalf("timeout after %v: %s", timeout, msg)
		}
		backoff.Wait()
	}
}

// popWithTimeout retries pop until it returns a value other than Empty, or
// fails the test after timeout.
func popWithTimeout(t *testing.T, timeout time.Duration, pop func() smrq.Value) smrq.Value {
	t.Helper()
	deadline := time.Now().Add(timeout)
	backoff := iox.Backoff{}
	for {
		v := pop()
		if v != smrq.Empty {
			return v
		}
		if time.Now().After(deadline) {
			t.Fatalf("timeout after %v waiting for a non-empty pop", timeout)
		}
		backoff.Wait()
	}
}
