// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

// Uninit is a view of a place that holds no value this package owns.
//
// An Uninit is affine: Set and AssumeInit consume it, and any later use
// panics with ErrHandleConsumed. A view lent by a scope panics with
// ErrScopeExited once that scope has returned.
type Uninit[T any] struct {
	once
	ptr   *T
	brand brand
}

func newUninit[T any](ptr *T, b brand) *Uninit[T] {
	return &Uninit[T]{ptr: ptr, brand: b}
}

func (u *Uninit[T]) live() {
	u.brand.check()
	if u.spent() {
		fatal(ErrHandleConsumed)
	}
}

func (u *Uninit[T]) take() *T {
	u.brand.check()
	if !u.consume() {
		fatal(ErrHandleConsumed)
	}
	return u.ptr
}

// Ptr returns the address of the place. The referent is the zero value;
// writes through it only count once AssumeInit is called.
func (u *Uninit[T]) Ptr() *T {
	u.live()
	return u.ptr
}

// Scope returns the scope that lent this view, or nil if it is unbranded.
func (u *Uninit[T]) Scope() *Scope {
	return u.brand.scope
}

// Set writes v into the place and returns the initialized view.
func (u *Uninit[T]) Set(v T) *Init[T] {
	p := u.take()
	*p = v
	return newInit(p, u.brand)
}

// AssumeInit declares that a valid value was written through Ptr.
// Calling it on a place that was never written yields the zero value as
// the constructed value.
func (u *Uninit[T]) AssumeInit() *Init[T] {
	return newInit(u.take(), u.brand)
}

// UninitSlice is the slice-shaped counterpart of Uninit.
type UninitSlice[E any] struct {
	once
	slots []E
	brand brand
}

func newUninitSlice[E any](slots []E, b brand) *UninitSlice[E] {
	return &UninitSlice[E]{slots: slots, brand: b}
}

func (u *UninitSlice[E]) live() {
	u.brand.check()
	if u.spent() {
		fatal(ErrHandleConsumed)
	}
}

func (u *UninitSlice[E]) take() []E {
	u.brand.check()
	if !u.consume() {
		fatal(ErrHandleConsumed)
	}
	return u.slots
}

// Slots returns the backing storage of the place.
func (u *UninitSlice[E]) Slots() []E {
	u.live()
	return u.slots
}

// Len returns the shape length of the place.
func (u *UninitSlice[E]) Len() int {
	return len(u.slots)
}

// Scope returns the scope that lent this view, or nil if it is unbranded.
func (u *UninitSlice[E]) Scope() *Scope {
	return u.brand.scope
}

// CopyFrom fills the place with a copy of src.
// It panics with ErrLengthMismatch unless len(src) equals Len.
func (u *UninitSlice[E]) CopyFrom(src []E) *InitSlice[E] {
	if len(src) != len(u.slots) {
		fatalf(ErrLengthMismatch, "copy %d elements into %d slots", len(src), len(u.slots))
	}
	s := u.take()
	copy(s, src)
	return newInitSlice(s, u.brand)
}

// AssumeInit declares that every slot was written through Slots.
func (u *UninitSlice[E]) AssumeInit() *InitSlice[E] {
	return newInitSlice(u.take(), u.brand)
}
