// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

// Seq builds a fixed-capacity sequence element by element inside a slice
// place.
//
// Elements [0, Len) are valid and owned by the Seq; slots [Len, Cap) hold
// nothing. Every operation keeps that bookkeeping exact at each point user
// code regains control, so tearing the Seq down at any moment, including
// while a panic unwinds, destroys each constructed element exactly once.
//
// A Seq created from a scoped view is closed automatically when the scope
// exits. Otherwise callers should defer Close.
type Seq[E any] struct {
	once
	slots []E
	len   int
	hole  *Hole[E]
	brand brand
}

// NewSeq consumes out and returns an empty builder over its slots.
func NewSeq[E any](out *UninitSlice[E]) *Seq[E] {
	slots := out.take()
	s := &Seq[E]{slots: slots, brand: out.brand}
	out.brand.register(s)
	return s
}

func (s *Seq[E]) live() {
	s.brand.check()
	if s.spent() {
		fatal(ErrHandleConsumed)
	}
	if s.hole != nil {
		fatalf(ErrHoleOpen, "hole at %d", s.hole.pos)
	}
}

func (s *Seq[E]) take() {
	s.live()
	if !s.consume() {
		fatal(ErrHandleConsumed)
	}
}

// Len returns the number of constructed elements.
func (s *Seq[E]) Len() int { return s.len }

// Cap returns the shape length of the underlying place.
func (s *Seq[E]) Cap() int { return len(s.slots) }

// IsFull reports whether every slot holds a constructed element.
func (s *Seq[E]) IsFull() bool { return s.len >= len(s.slots) }

// Elems returns the constructed prefix. The returned slice must not be
// retained across operations that change Len.
func (s *Seq[E]) Elems() []E {
	s.live()
	return s.slots[:s.len:s.len]
}

// Push appends v.
func (s *Seq[E]) Push(v E) {
	s.Emplace().Set(v)
}

// Emplace opens a hole at the end of the sequence.
// It panics with ErrSeqFull if the sequence is full.
func (s *Seq[E]) Emplace() *Hole[E] {
	s.live()
	if s.IsFull() {
		fatalf(ErrSeqFull, "len %d", s.len)
	}
	return s.open(s.len)
}

// EmplaceAt opens a hole at pos, shifting elements [pos, Len) one slot to
// the right. It panics with ErrSeqFull if the sequence is full and with
// ErrOutOfRange if pos is not in [0, Len].
func (s *Seq[E]) EmplaceAt(pos int) *Hole[E] {
	s.live()
	if s.IsFull() {
		fatalf(ErrSeqFull, "len %d", s.len)
	}
	if pos < 0 || pos > s.len {
		fatalf(ErrOutOfRange, "position %d, len %d", pos, s.len)
	}
	return s.open(pos)
}

// open moves the suffix right by one and lowers len to pos before the
// hole is exposed, so a leaked or unwound hole only ever owns the prefix.
func (s *Seq[E]) open(pos int) *Hole[E] {
	n := s.len - pos
	copy(s.slots[pos+1:s.len+1], s.slots[pos:s.len])
	var zero E
	s.slots[pos] = zero
	s.len = pos
	h := &Hole[E]{seq: s, pos: pos, n: n}
	s.hole = h
	return h
}

// PushWith appends an element constructed in place by f. f also receives
// the constructed prefix.
func (s *Seq[E]) PushWith(f func(prefix []E, out *Uninit[E]) *Init[E]) *E {
	h := s.Emplace()
	return Emplace[E, *E](h, func(out *Uninit[E]) *Init[E] {
		return f(h.Prefix(), out)
	})
}

// InsertWith inserts at pos an element constructed in place by f.
// f receives the elements before and after the gap.
func (s *Seq[E]) InsertWith(pos int, f func(prefix, suffix []E, out *Uninit[E]) *Init[E]) *E {
	h := s.EmplaceAt(pos)
	return Emplace[E, *E](h, func(out *Uninit[E]) *Init[E] {
		prefix, suffix := h.Split()
		return f(prefix, suffix, out)
	})
}

// Pop moves the last element out. It reports false if the sequence is
// empty. The caller owns the returned value.
func (s *Seq[E]) Pop() (E, bool) {
	s.live()
	if s.len == 0 {
		var zero E
		return zero, false
	}
	s.len--
	return moveOut(&s.slots[s.len]), true
}

// Truncate destroys the elements at [n, Len). It is a no-op if n >= Len.
func (s *Seq[E]) Truncate(n int) {
	s.live()
	if n < 0 {
		fatalf(ErrOutOfRange, "truncate to %d", n)
	}
	if n >= s.len {
		return
	}
	old := s.len
	s.len = n
	dropSlice(s.slots[n:old])
}

// Clear destroys every element.
func (s *Seq[E]) Clear() {
	s.Truncate(0)
}

// AssertFull converts a full sequence into an initialized view of the
// whole place. It panics with ErrSeqNotFull otherwise, leaving the
// sequence intact.
func (s *Seq[E]) AssertFull() *InitSlice[E] {
	s.live()
	if !s.IsFull() {
		fatalf(ErrSeqNotFull, "len %d, capacity %d", s.len, len(s.slots))
	}
	s.take()
	return newInitSlice(s.slots, s.brand)
}

// Drop destroys every element and returns the uninitialized place.
func (s *Seq[E]) Drop() *UninitSlice[E] {
	s.take()
	n := s.len
	s.len = 0
	dropSlice(s.slots[:n])
	return newUninitSlice(s.slots, s.brand)
}

// Forget returns the place without destroying the elements, which are
// leaked.
func (s *Seq[E]) Forget() *UninitSlice[E] {
	s.take()
	s.len = 0
	return newUninitSlice(s.slots, s.brand)
}

// Leak gives up ownership of the constructed prefix and returns it.
func (s *Seq[E]) Leak() []E {
	s.take()
	return s.slots[:s.len:s.len]
}

// Close tears the builder down: an open hole is closed and the
// constructed elements are destroyed. Close is idempotent and a no-op
// after the builder was consumed.
func (s *Seq[E]) Close() {
	if h := s.hole; h != nil {
		h.Close()
	}
	if !s.consume() {
		return
	}
	n := s.len
	s.len = 0
	dropSlice(s.slots[:n])
}

func (s *Seq[E]) release() { s.Close() }
