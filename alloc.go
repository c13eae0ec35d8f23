// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

import (
	"reflect"
	"unsafe"
)

// Allocator supplies raw storage for n consecutive values of typ.
//
// Alloc returns storage sized and aligned for typ; its contents are the
// zero value and count as uninitialized. Adopt is called once the storage
// holds valid values and is handed to an owner. Free returns storage that
// was never adopted, or whose values were destroyed. The core never picks
// an allocation strategy itself.
type Allocator interface {
	Alloc(typ reflect.Type, n int) unsafe.Pointer
	Adopt(p unsafe.Pointer, typ reflect.Type, n int)
	Free(p unsafe.Pointer, typ reflect.Type, n int)
}

// Heap allocates from the garbage-collected heap. Freed storage is left
// to the collector.
var Heap Allocator = heapAllocator{}

type heapAllocator struct{}

func (heapAllocator) Alloc(typ reflect.Type, n int) unsafe.Pointer {
	if n == 1 {
		return reflect.New(typ).UnsafePointer()
	}
	return reflect.MakeSlice(reflect.SliceOf(typ), n, n).UnsafePointer()
}

func (heapAllocator) Adopt(unsafe.Pointer, reflect.Type, int) {}

func (heapAllocator) Free(unsafe.Pointer, reflect.Type, int) {}

// Box is an allocator-backed place for a single T.
// It finalizes into *T and, if abandoned, returns its storage.
type Box[T any] struct {
	once
	a Allocator
	p *T
}

// NewBox allocates uninitialized storage for a T from a.
func NewBox[T any](a Allocator) *Box[T] {
	return &Box[T]{a: a, p: (*T)(a.Alloc(reflect.TypeFor[T](), 1))}
}

func (b *Box[T]) Ptr() *T {
	if b.spent() {
		fatal(ErrHandleConsumed)
	}
	return b.p
}

func (b *Box[T]) AssumeInit() *T {
	if !b.consume() {
		fatal(ErrHandleConsumed)
	}
	b.a.Adopt(unsafe.Pointer(b.p), reflect.TypeFor[T](), 1)
	return b.p
}

// Abandon returns the storage to the allocator unless the box was
// finalized.
func (b *Box[T]) Abandon() {
	if b.consume() {
		b.a.Free(unsafe.Pointer(b.p), reflect.TypeFor[T](), 1)
	}
}

// BoxSlice is an allocator-backed place for n consecutive values of E.
type BoxSlice[E any] struct {
	once
	a Allocator
	s []E
}

// NewBoxSlice allocates uninitialized storage for n values of E from a.
func NewBoxSlice[E any](a Allocator, n int) *BoxSlice[E] {
	if n < 0 {
		fatalf(ErrOutOfRange, "slice length %d", n)
	}
	if n == 0 {
		return &BoxSlice[E]{a: a, s: []E{}}
	}
	p := a.Alloc(reflect.TypeFor[E](), n)
	return &BoxSlice[E]{a: a, s: unsafe.Slice((*E)(p), n)}
}

func (b *BoxSlice[E]) Slots() []E {
	if b.spent() {
		fatal(ErrHandleConsumed)
	}
	return b.s
}

func (b *BoxSlice[E]) AssumeInit() []E {
	if !b.consume() {
		fatal(ErrHandleConsumed)
	}
	if len(b.s) > 0 {
		b.a.Adopt(unsafe.Pointer(unsafe.SliceData(b.s)), reflect.TypeFor[E](), len(b.s))
	}
	return b.s
}

// Abandon returns the storage to the allocator unless the box was
// finalized.
func (b *BoxSlice[E]) Abandon() {
	if b.consume() && len(b.s) > 0 {
		b.a.Free(unsafe.Pointer(unsafe.SliceData(b.s)), reflect.TypeFor[E](), len(b.s))
	}
}

// Construct builds a T in place on the heap.
//
// Example:
//
//	p := emplace.Construct(func(out *emplace.Uninit[int]) *emplace.Init[int] {
//		return out.Set(50)
//	})
//	// *p == 50
func Construct[T any](f func(out *Uninit[T]) *Init[T]) *T {
	return ConstructIn(Heap, f)
}

// ConstructIn builds a T in place in storage obtained from a.
// If f panics, the storage is freed before the panic continues.
func ConstructIn[T any](a Allocator, f func(out *Uninit[T]) *Init[T]) *T {
	return Emplace[T, *T](NewBox[T](a), f)
}

// ConstructSlice builds n values of E in place on the heap.
func ConstructSlice[E any](n int, f func(out *UninitSlice[E]) *InitSlice[E]) []E {
	return ConstructSliceIn(Heap, n, f)
}

// ConstructSliceIn builds n values of E in place in storage obtained from a.
func ConstructSliceIn[E any](a Allocator, n int, f func(out *UninitSlice[E]) *InitSlice[E]) []E {
	return EmplaceSlice[E, []E](NewBoxSlice[E](a, n), f)
}

// Destroy destroys the value at p in place and frees its storage to a.
// p must have been constructed in storage obtained from a.
func Destroy[T any](a Allocator, p *T) {
	dropInPlace(p)
	a.Free(unsafe.Pointer(p), reflect.TypeFor[T](), 1)
}

// DestroySlice destroys the elements of s in place and frees their
// storage to a.
func DestroySlice[E any](a Allocator, s []E) {
	dropSlice(s)
	if len(s) > 0 {
		a.Free(unsafe.Pointer(unsafe.SliceData(s)), reflect.TypeFor[E](), len(s))
	}
}
