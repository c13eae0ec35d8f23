// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package emplace constructs values directly inside their final memory
// location: a heap block, a caller variable, or a slot of a slice.
//
// A value is built through views of its place rather than assembled
// elsewhere and copied in. This matters for large values and for filling
// slices element by element without temporaries.
//
// # Design Philosophy
//
// emplace provides:
//   - A typestate pair, [Uninit] and [Init], telling apart a place that holds
//     nothing from one that owns a valid value
//   - A construction protocol, [Emplace], that only finalizes a place when the
//     closure proves, with an [Init] of that very place, that it built the value
//   - Per-call brands: every view carries the [Scope] of the call that lent it,
//     so views and proofs cannot cross calls or outlive them
//   - Tear-down that holds under panics: at every point user code regains
//     control, each constructed value is owned by exactly one handle
//
// Handles are affine. Consuming a handle twice panics with
// [ErrHandleConsumed]; using a view after its scope ended panics with
// [ErrScopeExited]. These are programmer errors and are never returned.
//
// # Places
//
//   - [Place]: sized memory location finalizing into an owner
//   - [SlicePlace]: slice-shaped memory location
//   - [Abandoner]: tear-down path of storage that never received a value
//   - [At], [Slot]: a caller variable, typically on the stack
//   - [SliceAt], [SliceSlot]: caller-provided slice storage
//   - [NewBox], [Box]: a single value from an [Allocator]
//   - [NewBoxSlice], [BoxSlice]: a slice from an [Allocator]
//
// # Typestate
//
//   - [Uninit.Set]: write a value, yielding an [Init]
//   - [Uninit.AssumeInit]: after writing through [Uninit.Ptr]
//   - [Init.Get]: access the owned value
//   - [Init.Drop]: destroy in place, yielding the [Uninit] place back
//   - [Init.Take]: move the value out, yielding the [Uninit] place back
//   - [Init.Forget]: give up ownership without destroying
//   - [Finalize]: hand an initialized place to its owner
//   - [Own]: initialized view over a caller variable
//
// Values are destroyed by calling Drop when they implement [Dropper]; the
// slot is then reset to the zero value.
//
// # Construction Protocol
//
//   - [Emplace]: construct a value inside a [Place]
//   - [EmplaceSlice]: construct a slice inside a [SlicePlace]
//   - [Enter]: run a function with a fresh [Scope]
//   - [Lend], [LendSlice]: brand a view of a place with a scope
//
// A proof from another call panics with [ErrForeignProof]. If the closure
// panics, values it initialized but did not hand back are destroyed,
// sequence builders drop their elements, and the place is abandoned.
//
// # Sequence Builder
//
// [Seq] fills a slice place element by element:
//
//   - [Seq.Push], [Seq.Emplace], [Seq.PushWith]: append
//   - [Seq.EmplaceAt], [Seq.InsertWith]: insert, opening a [Hole]
//   - [Seq.Pop], [Seq.Truncate], [Seq.Clear]: shrink
//   - [Seq.AssertFull]: finalize a full sequence (panics with [ErrSeqNotFull] otherwise)
//   - [Seq.Close]: tear down, destroying the constructed prefix
//
// While a [Hole] is open, the sequence length equals the gap position.
// Committing the hole restores the length plus one; closing it without a
// commit shifts the suffix back and restores the length exactly.
//
// # Allocators
//
//   - [Allocator]: raw storage supplier
//   - [Heap]: garbage-collected heap (default)
//   - [Pool]: recycles freed storage per type and length
//   - [Arena]: bump allocator over an mmap region for pointer-free types
//   - [Construct], [ConstructIn], [ConstructSlice], [ConstructSliceIn]: allocate and construct
//   - [Destroy], [DestroySlice]: destroy in place and free
//
// # Example
//
//	p := emplace.Construct(func(out *emplace.Uninit[int]) *emplace.Init[int] {
//		v := out.Set(50)
//		n, out := v.Take()
//		return out.Set(n * 2)
//	})
//	// *p == 100
//
//	fib := emplace.ConstructSlice(64, func(out *emplace.UninitSlice[uint64]) *emplace.InitSlice[uint64] {
//		s := emplace.NewSeq(out)
//		for !s.IsFull() {
//			v := uint64(1)
//			if e := s.Elems(); len(e) >= 2 {
//				v = e[len(e)-1] + e[len(e)-2]
//			}
//			s.Push(v)
//		}
//		return s.AssertFull()
//	})
//	// fib[63] == 10610209857723
package emplace
