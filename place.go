// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

// Place is a memory location of shape T that finalizes into an owner O.
//
// A Place knows nothing about whether its referent holds a valid value.
// AssumeInit transfers the referent to its owner and must only be called
// once a valid T has been written; Emplace and Finalize are the checked
// ways to reach it.
type Place[T, O any] interface {
	Ptr() *T
	AssumeInit() O
}

// SlicePlace is a slice-shaped memory location finalizing into O.
// len(Slots()) is the shape length.
type SlicePlace[E, O any] interface {
	Slots() []E
	AssumeInit() O
}

// Abandoner is implemented by places that have their own tear-down path
// for storage that never received a value, such as allocator-backed
// boxes and sequence holes. Emplace calls Abandon when construction does
// not complete.
type Abandoner interface {
	Abandon()
}

// Slot is a place over a caller variable, typically a stack local.
type Slot[T any] struct {
	p *T
}

// At returns a place over the variable at p. The variable's current
// contents are treated as uninitialized and are overwritten.
func At[T any](p *T) Slot[T] {
	return Slot[T]{p: p}
}

func (s Slot[T]) Ptr() *T { return s.p }

func (s Slot[T]) AssumeInit() *T { return s.p }

// SliceSlot is a slice place over caller-provided storage.
type SliceSlot[E any] struct {
	s []E
}

// SliceAt returns a slice place over buf. The shape length is len(buf).
func SliceAt[E any](buf []E) SliceSlot[E] {
	return SliceSlot[E]{s: buf}
}

func (s SliceSlot[E]) Slots() []E { return s.s }

func (s SliceSlot[E]) AssumeInit() []E { return s.s }
