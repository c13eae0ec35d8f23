// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace_test

import (
	"testing"

	"code.hybscloud.com/emplace"
)

func TestConstructRoundTrip(t *testing.T) {
	p := emplace.Construct(func(out *emplace.Uninit[int]) *emplace.Init[int] {
		return out.Set(50)
	})
	if *p != 50 {
		t.Fatalf("got %d, want 50", *p)
	}
}

func TestConstructTakeAndSet(t *testing.T) {
	p := emplace.Construct(func(out *emplace.Uninit[int]) *emplace.Init[int] {
		filled := out.Set(50)
		v := *filled.Get()
		out = filled.Drop()
		return out.Set(v * 2)
	})
	if *p != 100 {
		t.Fatalf("got %d, want 100", *p)
	}
}

type large struct {
	header [8]uint64
	body   [1 << 12]byte
}

func TestEmplaceStackSlot(t *testing.T) {
	var v large
	p := emplace.Emplace(emplace.At(&v), func(out *emplace.Uninit[large]) *emplace.Init[large] {
		l := out.Ptr()
		l.header[0] = 42
		for i := range l.body {
			l.body[i] = byte(i)
		}
		return out.AssumeInit()
	})
	if p != &v {
		t.Fatal("Emplace on a slot must return the slot address")
	}
	if v.header[0] != 42 || v.body[255] != 255 {
		t.Fatalf("unexpected contents: %d %d", v.header[0], v.body[255])
	}
}

func TestEmplaceForeignProof(t *testing.T) {
	var leaked *emplace.Init[int]
	emplace.Construct(func(out *emplace.Uninit[int]) *emplace.Init[int] {
		leaked = out.Set(1)
		return leaked
	})

	mustPanic(t, emplace.ErrForeignProof, func() {
		emplace.Construct(func(out *emplace.Uninit[int]) *emplace.Init[int] {
			out.Set(2)
			return leaked
		})
	})
}

func TestEmplaceForeignProofLiveScope(t *testing.T) {
	// A proof minted by an enclosing, still running call.
	mustPanic(t, emplace.ErrForeignProof, func() {
		emplace.Construct(func(outer *emplace.Uninit[int]) *emplace.Init[int] {
			proof := outer.Set(1)
			emplace.Construct(func(inner *emplace.Uninit[int]) *emplace.Init[int] {
				inner.Set(2)
				return proof
			})
			return proof
		})
	})
}

func TestEmplaceProofForOtherPlace(t *testing.T) {
	var other int
	mustPanic(t, emplace.ErrForeignProof, func() {
		emplace.Construct(func(out *emplace.Uninit[int]) *emplace.Init[int] {
			out.Set(1)
			return emplace.Lend(out.Scope(), emplace.At(&other)).Set(2)
		})
	})
}

func TestEmplaceNilProof(t *testing.T) {
	mustPanic(t, emplace.ErrNoProof, func() {
		emplace.Construct(func(out *emplace.Uninit[int]) *emplace.Init[int] {
			return nil
		})
	})
}

func TestEmplaceConsumedProof(t *testing.T) {
	l := newLedger()
	mustPanic(t, emplace.ErrHandleConsumed, func() {
		emplace.Construct(func(out *emplace.Uninit[item]) *emplace.Init[item] {
			proof := out.Set(l.item())
			proof.Drop()
			return proof
		})
	})
	if l.drops[1] != 1 {
		t.Fatalf("drops = %d, want 1", l.drops[1])
	}
}

func TestEmplaceEscapedView(t *testing.T) {
	var escaped *emplace.Uninit[int]
	var x int
	emplace.Enter(func(s *emplace.Scope) struct{} {
		escaped = emplace.Lend(s, emplace.At(&x))
		return struct{}{}
	})
	mustPanic(t, emplace.ErrScopeExited, func() { escaped.Set(1) })
	mustPanic(t, emplace.ErrScopeExited, func() { escaped.Ptr() })
	if x != 0 {
		t.Fatalf("escaped write reached the slot: %d", x)
	}
}

func TestEnterReleasesForgottenInit(t *testing.T) {
	l := newLedger()
	var a, b item
	emplace.Enter(func(s *emplace.Scope) struct{} {
		emplace.Lend(s, emplace.At(&a)).Set(l.item())
		kept := emplace.Lend(s, emplace.At(&b)).Set(l.item())
		kept.Forget()
		return struct{}{}
	})
	if l.drops[1] != 1 {
		t.Fatalf("unconsumed Init must be dropped at scope exit, drops = %v", l.drops)
	}
	if l.drops[2] != 0 || b.id != 2 {
		t.Fatalf("forgotten Init must survive, drops = %v, b = %+v", l.drops, b)
	}
}

func TestEnterReturnsResult(t *testing.T) {
	var epoch uint64
	got := emplace.Enter(func(s *emplace.Scope) int {
		if !s.Live() {
			t.Fatal("scope must be live inside Enter")
		}
		epoch = s.Epoch()
		return 7
	})
	if got != 7 || epoch == 0 {
		t.Fatalf("got %d, epoch %d", got, epoch)
	}
	next := emplace.Enter(func(s *emplace.Scope) uint64 { return s.Epoch() })
	if next == epoch {
		t.Fatal("epochs must never repeat")
	}
}

func TestEmplacePanicDropsPartialValues(t *testing.T) {
	l := newLedger()
	var spare item
	r := swallow(func() {
		emplace.Construct(func(out *emplace.Uninit[item]) *emplace.Init[item] {
			out.Set(l.item())
			emplace.Lend(out.Scope(), emplace.At(&spare)).Set(l.item())
			panic("boom")
		})
	})
	if r != "boom" {
		t.Fatalf("unexpected panic: %v", r)
	}
	if l.drops[1] != 1 || l.drops[2] != 1 {
		t.Fatalf("drops = %v, want each once", l.drops)
	}
}

func TestEmplaceSlice(t *testing.T) {
	buf := make([]string, 3)
	got := emplace.EmplaceSlice(emplace.SliceAt(buf), func(out *emplace.UninitSlice[string]) *emplace.InitSlice[string] {
		s := emplace.NewSeq(out)
		s.Push("a")
		s.Push("b")
		s.Push("c")
		return s.AssertFull()
	})
	if len(got) != 3 || got[0] != "a" || got[2] != "c" || &got[0] != &buf[0] {
		t.Fatalf("got %v", got)
	}
}

func TestEmplaceSliceForeignProof(t *testing.T) {
	other := emplace.LendSlice[int](nil, emplace.SliceAt(make([]int, 1))).CopyFrom([]int{1})
	mustPanic(t, emplace.ErrForeignProof, func() {
		emplace.ConstructSlice(1, func(out *emplace.UninitSlice[int]) *emplace.InitSlice[int] {
			return other
		})
	})
}
