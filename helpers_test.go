// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace_test

import (
	"errors"
	"testing"
)

// ledger counts Drop calls per item id.
type ledger struct {
	next  int
	drops map[int]int
}

func newLedger() *ledger {
	return &ledger{drops: make(map[int]int)}
}

func (l *ledger) item() item {
	l.next++
	return item{id: l.next, l: l}
}

// item panics with a nil dereference if a zero (never constructed) slot
// is ever destroyed.
type item struct {
	id int
	l  *ledger
}

func (it item) Drop() { it.l.drops[it.id]++ }

func ids(items []item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

// mustPanic runs f and fails unless it panics with an error matching target.
func mustPanic(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %v", target)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	f()
}

// swallow runs f and recovers any panic.
func swallow(f func()) (r any) {
	defer func() { r = recover() }()
	f()
	return nil
}
