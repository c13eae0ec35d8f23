// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

import (
	"sync"
	"sync/atomic"
)

// Scope brands the views lent out by one construction call.
//
// A Scope is minted with a fresh epoch when the call is entered and retired
// when it returns. Every view produced inside the call records the scope and
// its epoch, so a view that escapes the call, or a proof produced by another
// call, is rejected on access. Epochs come from a process-wide counter and
// are never reused, which keeps recycled Scope objects unforgeable.
//
// A Scope also carries the tear-down work of the call: values constructed
// inside it but never handed back, sequence builders and open holes are
// released in reverse order when the scope exits, whether the call returns
// or panics.
//
// A Scope must not be retained after the function it was passed to returns.
type Scope struct {
	epoch   uint64
	cleanup []releaser
}

// releaser is the tear-down hook of a value registered with a Scope.
// release must be idempotent and a no-op once the value was consumed.
type releaser interface {
	release()
}

var epochs atomic.Uint64

var scopePool = sync.Pool{New: func() any { return new(Scope) }}

func acquireScope() *Scope {
	s := scopePool.Get().(*Scope)
	s.epoch = epochs.Add(1)
	return s
}

// exit retires s and runs its cleanups in reverse registration order.
// s is returned to the pool only if every cleanup returned normally.
func (s *Scope) exit() {
	s.epoch = 0
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		r := s.cleanup[i]
		s.cleanup[i] = nil
		s.cleanup = s.cleanup[:i]
		r.release()
	}
	scopePool.Put(s)
}

// Epoch returns the epoch of a live scope, or zero once it has exited.
func (s *Scope) Epoch() uint64 {
	if s == nil {
		return 0
	}
	return s.epoch
}

// Live reports whether the scope has not exited yet.
func (s *Scope) Live() bool {
	return s != nil && s.epoch != 0
}

func (s *Scope) brand() brand {
	if s == nil {
		return brand{}
	}
	if s.epoch == 0 {
		fatal(ErrScopeExited)
	}
	return brand{scope: s, epoch: s.epoch}
}

func (s *Scope) onExit(r releaser) {
	if s != nil {
		s.cleanup = append(s.cleanup, r)
	}
}

// Enter runs f with a fresh scope and returns its result. Values registered
// with the scope are released when f returns or panics.
func Enter[R any](f func(s *Scope) R) R {
	s := acquireScope()
	defer s.exit()
	return f(s)
}

// brand is the (scope, epoch) pair stamped on every view. The zero brand
// marks an unbranded view that belongs to no scope.
type brand struct {
	scope *Scope
	epoch uint64
}

func (b brand) check() {
	if b.scope != nil && b.scope.epoch != b.epoch {
		fatal(ErrScopeExited)
	}
}

func (b brand) register(r releaser) {
	if b.scope != nil {
		b.scope.onExit(r)
	}
}

// once is the one-shot guard of a handle: the first consume wins and every
// later attempt fails.
type once struct {
	used atomic.Uintptr
}

func (o *once) consume() bool { return o.used.Add(1) == 1 }

func (o *once) spent() bool { return o.used.Load() != 0 }

// is reports whether b was stamped by the current epoch of s.
func (b brand) is(s *Scope) bool {
	return b.scope == s && b.epoch == s.epoch
}
