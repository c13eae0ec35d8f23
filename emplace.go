// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

// Construction protocol.
// A place is lent to a closure as a branded Uninit view; the closure must
// hand back the Init view of that very place, produced within the same
// call. Only then is the place finalized into its owner.

// Lend returns a view of p branded with s. Values constructed through the
// view that are not handed back are released when s exits.
// A nil s lends an unbranded view whose cleanup is the caller's concern.
func Lend[T any](s *Scope, p interface{ Ptr() *T }) *Uninit[T] {
	return newUninit(p.Ptr(), s.brand())
}

// LendSlice is the slice-shaped counterpart of Lend.
func LendSlice[E any](s *Scope, p interface{ Slots() []E }) *UninitSlice[E] {
	return newUninitSlice(p.Slots(), s.brand())
}

// Emplace constructs a value directly inside p and returns p's owner.
//
// f receives an uninitialized view of p and must return the initialized
// view of the same place, produced during this call. A nil proof panics
// with ErrNoProof and a proof from any other place or call panics with
// ErrForeignProof.
//
// If f panics, values it initialized but did not return are destroyed,
// sequence builders it created drop their elements, and p is abandoned
// if it implements Abandoner. The panic then continues.
//
// Example:
//
//	var big [1 << 16]byte
//	p := emplace.Emplace(emplace.At(&big), func(out *emplace.Uninit[[1 << 16]byte]) *emplace.Init[[1 << 16]byte] {
//		buf := out.Ptr()
//		buf[0] = 1
//		return out.AssumeInit()
//	})
func Emplace[T, O any](p Place[T, O], f func(out *Uninit[T]) *Init[T]) O {
	done := false
	if a, ok := p.(Abandoner); ok {
		defer func() {
			if !done {
				a.Abandon()
			}
		}()
	}

	s := acquireScope()
	defer s.exit()

	out := newUninit(p.Ptr(), s.brand())
	proof := f(out)
	if proof == nil {
		fatal(ErrNoProof)
	}
	if !proof.brand.is(s) || proof.ptr != out.ptr {
		fatal(ErrForeignProof)
	}
	if !proof.consume() {
		fatal(ErrHandleConsumed)
	}
	done = true
	return p.AssumeInit()
}

// EmplaceSlice constructs every element of the slice place p in place and
// returns p's owner. It follows the rules of Emplace.
func EmplaceSlice[E, O any](p SlicePlace[E, O], f func(out *UninitSlice[E]) *InitSlice[E]) O {
	done := false
	if a, ok := p.(Abandoner); ok {
		defer func() {
			if !done {
				a.Abandon()
			}
		}()
	}

	s := acquireScope()
	defer s.exit()

	out := newUninitSlice(p.Slots(), s.brand())
	proof := f(out)
	if proof == nil {
		fatal(ErrNoProof)
	}
	if !proof.brand.is(s) || !sameSlots(proof.slots, out.slots) {
		fatal(ErrForeignProof)
	}
	if !proof.consume() {
		fatal(ErrHandleConsumed)
	}
	done = true
	return p.AssumeInit()
}
