// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

// Init is a view of a place that holds a valid value it logically owns.
//
// Exactly one of Drop, Take, Forget or a construction call accepting the
// view as its proof consumes it. An Init produced inside a scope that is
// never consumed is destroyed when the scope exits.
type Init[T any] struct {
	once
	ptr   *T
	brand brand
}

func newInit[T any](ptr *T, b brand) *Init[T] {
	i := &Init[T]{ptr: ptr, brand: b}
	b.register(i)
	return i
}

// Own writes v into the caller variable slot and returns an unbranded
// initialized view of it. The caller is responsible for consuming it.
func Own[T any](slot *T, v T) *Init[T] {
	*slot = v
	return &Init[T]{ptr: slot}
}

func (i *Init[T]) take() *T {
	i.brand.check()
	if !i.consume() {
		fatal(ErrHandleConsumed)
	}
	return i.ptr
}

func (i *Init[T]) release() {
	if i.consume() {
		dropInPlace(i.ptr)
	}
}

// Get returns the address of the owned value.
func (i *Init[T]) Get() *T {
	i.brand.check()
	if i.spent() {
		fatal(ErrHandleConsumed)
	}
	return i.ptr
}

// Drop destroys the value in place and returns the now uninitialized place.
func (i *Init[T]) Drop() *Uninit[T] {
	p := i.take()
	dropInPlace(p)
	return newUninit(p, i.brand)
}

// Take moves the value out and returns it with the uninitialized place.
func (i *Init[T]) Take() (T, *Uninit[T]) {
	p := i.take()
	return moveOut(p), newUninit(p, i.brand)
}

// Forget gives up ownership without destroying the value and returns its
// address. The value stays valid; its lifetime is now the caller's concern.
func (i *Init[T]) Forget() *T {
	return i.take()
}

// Finalize hands the initialized place p to its owner. init must be the
// view of p; otherwise Finalize panics with ErrForeignProof.
func Finalize[T, O any](p Place[T, O], init *Init[T]) O {
	if init == nil {
		fatal(ErrNoProof)
	}
	if init.ptr != p.Ptr() {
		fatal(ErrForeignProof)
	}
	init.take()
	return p.AssumeInit()
}

// InitSlice is the slice-shaped counterpart of Init.
type InitSlice[E any] struct {
	once
	slots []E
	brand brand
}

func newInitSlice[E any](slots []E, b brand) *InitSlice[E] {
	i := &InitSlice[E]{slots: slots, brand: b}
	b.register(i)
	return i
}

func (i *InitSlice[E]) take() []E {
	i.brand.check()
	if !i.consume() {
		fatal(ErrHandleConsumed)
	}
	return i.slots
}

func (i *InitSlice[E]) release() {
	if i.consume() {
		dropSlice(i.slots)
	}
}

// Get returns the owned elements.
func (i *InitSlice[E]) Get() []E {
	i.brand.check()
	if i.spent() {
		fatal(ErrHandleConsumed)
	}
	return i.slots
}

// Len returns the number of owned elements.
func (i *InitSlice[E]) Len() int {
	return len(i.slots)
}

// Drop destroys every element in place and returns the uninitialized place.
func (i *InitSlice[E]) Drop() *UninitSlice[E] {
	s := i.take()
	dropSlice(s)
	return newUninitSlice(s, i.brand)
}

// Forget gives up ownership of the elements without destroying them.
func (i *InitSlice[E]) Forget() []E {
	return i.take()
}

// FinalizeSlice hands the initialized slice place p to its owner.
func FinalizeSlice[E, O any](p SlicePlace[E, O], init *InitSlice[E]) O {
	if init == nil {
		fatal(ErrNoProof)
	}
	if !sameSlots(init.slots, p.Slots()) {
		fatal(ErrForeignProof)
	}
	init.take()
	return p.AssumeInit()
}

// sameSlots reports whether a and b view the same backing storage.
func sameSlots[E any](a, b []E) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
