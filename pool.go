// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

import (
	"reflect"
	"sync"
	"unsafe"
)

// Pool is an Allocator that recycles freed storage.
// Storage is pooled per element type and length through sync.Pool and is
// zeroed on Free, so a recycled block is indistinguishable from a fresh one.
// Pool is safe for concurrent use.
type Pool struct {
	classes sync.Map // poolKey -> *sync.Pool
}

type poolKey struct {
	typ reflect.Type
	n   int
}

// NewPool returns an empty recycling allocator.
func NewPool() *Pool {
	return &Pool{}
}

func (p *Pool) class(typ reflect.Type, n int) *sync.Pool {
	k := poolKey{typ: typ, n: n}
	if c, ok := p.classes.Load(k); ok {
		return c.(*sync.Pool)
	}
	c, _ := p.classes.LoadOrStore(k, &sync.Pool{New: func() any {
		return heapAllocator{}.Alloc(typ, n)
	}})
	return c.(*sync.Pool)
}

func (p *Pool) Alloc(typ reflect.Type, n int) unsafe.Pointer {
	return p.class(typ, n).Get().(unsafe.Pointer)
}

func (p *Pool) Adopt(unsafe.Pointer, reflect.Type, int) {}

// Free zeroes the storage and keeps it for the next Alloc of the same
// type and length.
func (p *Pool) Free(ptr unsafe.Pointer, typ reflect.Type, n int) {
	if ptr == nil || n <= 0 {
		return
	}
	reflect.NewAt(reflect.ArrayOf(n, typ), ptr).Elem().SetZero()
	p.class(typ, n).Put(ptr)
}
