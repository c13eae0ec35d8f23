// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace_test

import (
	"reflect"
	"testing"

	"code.hybscloud.com/emplace"
)

type benchLarge struct {
	buf [4096]byte
	n   int
}

// BenchmarkConstruct measures heap construction of a small value.
func BenchmarkConstruct(b *testing.B) {
	for b.Loop() {
		_ = emplace.Construct(func(out *emplace.Uninit[int]) *emplace.Init[int] {
			return out.Set(50)
		})
	}
}

// BenchmarkEmplaceStackLarge measures filling a large caller variable in place.
func BenchmarkEmplaceStackLarge(b *testing.B) {
	var v benchLarge
	for b.Loop() {
		_ = emplace.Emplace(emplace.At(&v), func(out *emplace.Uninit[benchLarge]) *emplace.Init[benchLarge] {
			p := out.Ptr()
			p.buf[0] = 1
			p.n = 1
			return out.AssumeInit()
		})
	}
}

// BenchmarkConstructInPool measures construction with recycled storage.
func BenchmarkConstructInPool(b *testing.B) {
	pool := emplace.NewPool()
	for b.Loop() {
		p := emplace.ConstructIn(pool, func(out *emplace.Uninit[[64]int]) *emplace.Init[[64]int] {
			out.Ptr()[0] = 1
			return out.AssumeInit()
		})
		emplace.Destroy(pool, p)
	}
}

// BenchmarkSeqPush measures a 64-element append fill.
func BenchmarkSeqPush(b *testing.B) {
	buf := make([]uint64, 64)
	for b.Loop() {
		_ = emplace.EmplaceSlice(emplace.SliceAt(buf), func(out *emplace.UninitSlice[uint64]) *emplace.InitSlice[uint64] {
			s := emplace.NewSeq(out)
			for i := range 64 {
				s.Push(uint64(i))
			}
			return s.AssertFull()
		})
	}
}

// BenchmarkSeqInsertFront measures a 64-element fill inserting at index 0.
func BenchmarkSeqInsertFront(b *testing.B) {
	buf := make([]uint64, 64)
	for b.Loop() {
		_ = emplace.EmplaceSlice(emplace.SliceAt(buf), func(out *emplace.UninitSlice[uint64]) *emplace.InitSlice[uint64] {
			s := emplace.NewSeq(out)
			for i := range 64 {
				s.EmplaceAt(0).Set(uint64(i))
			}
			return s.AssertFull()
		})
	}
}

// BenchmarkArenaAllocFree measures a bump allocation reclaimed immediately.
func BenchmarkArenaAllocFree(b *testing.B) {
	a, err := emplace.NewArena(emplace.WithCapacity(4096))
	if err != nil {
		b.Fatal(err)
	}
	defer a.Close()
	typ := reflect.TypeFor[[8]uint64]()
	for b.Loop() {
		a.Free(a.Alloc(typ, 1), typ, 1)
	}
}

func TestArenaAllocFreeAllocs(t *testing.T) {
	a, err := emplace.NewArena(emplace.WithCapacity(4096))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	typ := reflect.TypeFor[[8]uint64]()
	allocs := testing.AllocsPerRun(100, func() {
		a.Free(a.Alloc(typ, 1), typ, 1)
	})
	if allocs > 0 {
		t.Errorf("Arena Alloc/Free allocs = %v; want 0", allocs)
	}
}
