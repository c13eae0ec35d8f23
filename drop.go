// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

import "reflect"

// Dropper is implemented by values that release resources when they are
// destroyed in place. Drop is called at most once per constructed value.
//
// Drop is looked up on the stored value first, so pointer and interface
// element types are destroyed too; a nil value is skipped. Otherwise a
// pointer-receiver Drop on the slot itself is used.
type Dropper interface {
	Drop()
}

// dropInPlace destroys the value at p and leaves the slot holding the zero
// value, which this package treats as uninitialized.
func dropInPlace[T any](p *T) {
	if d, ok := any(*p).(Dropper); ok {
		if !isNil(d) {
			d.Drop()
		}
	} else if d, ok := any(p).(Dropper); ok {
		d.Drop()
	}
	var zero T
	*p = zero
}

// isNil reports whether d is a nil pointer, map, slice, chan or func
// wrapped in an interface. A nil interface never reaches here.
func isNil(d Dropper) bool {
	v := reflect.ValueOf(d)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}

// dropSlice destroys s front to back. The caller must already have
// committed any length bookkeeping so that a panicking Drop leaks the
// remaining elements instead of destroying them twice.
func dropSlice[E any](s []E) {
	for i := range s {
		dropInPlace(&s[i])
	}
}

// moveOut reads the value at p and resets the slot without destroying the
// value; ownership moves to the caller.
func moveOut[T any](p *T) T {
	v := *p
	var zero T
	*p = zero
	return v
}
