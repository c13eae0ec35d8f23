// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package emplace

// Hole is a one-element gap opened inside a Seq.
//
// While the hole is open the sequence length equals Pos: the prefix is
// owned by the Seq and the shifted suffix is owned by the hole. Committing
// the hole (Set, AssumeInit, or Emplace on it) restores the length to its
// old value plus one. Closing it without a commit shifts the suffix back
// and restores the old length, leaving no trace.
//
// Hole implements Place and Abandoner, so it can be passed to Emplace.
type Hole[E any] struct {
	once
	seq *Seq[E]
	pos int
	n   int
}

func (h *Hole[E]) live() {
	h.seq.brand.check()
	if h.spent() {
		fatal(ErrHandleConsumed)
	}
}

// Pos returns the index of the gap.
func (h *Hole[E]) Pos() int { return h.pos }

// Prefix returns the elements before the gap.
func (h *Hole[E]) Prefix() []E {
	h.live()
	return h.seq.slots[:h.pos:h.pos]
}

// Suffix returns the elements after the gap.
func (h *Hole[E]) Suffix() []E {
	h.live()
	end := h.pos + 1 + h.n
	return h.seq.slots[h.pos+1 : end : end]
}

// Split returns the elements before and after the gap.
func (h *Hole[E]) Split() (prefix, suffix []E) {
	return h.Prefix(), h.Suffix()
}

// Ptr returns the address of the gap.
func (h *Hole[E]) Ptr() *E {
	h.live()
	return &h.seq.slots[h.pos]
}

// Set writes v into the gap and commits the hole.
func (h *Hole[E]) Set(v E) *E {
	*h.Ptr() = v
	return h.AssumeInit()
}

// AssumeInit commits a gap written through Ptr and returns its address.
func (h *Hole[E]) AssumeInit() *E {
	h.seq.brand.check()
	if !h.consume() {
		fatal(ErrHandleConsumed)
	}
	s := h.seq
	s.len += h.n + 1
	s.hole = nil
	return &s.slots[h.pos]
}

// Close shifts the suffix back over the gap without committing it.
// Anything written into the gap is discarded without being destroyed.
// Close is idempotent.
func (h *Hole[E]) Close() {
	if !h.consume() {
		return
	}
	s := h.seq
	end := h.pos + h.n
	copy(s.slots[h.pos:end], s.slots[h.pos+1:end+1])
	var zero E
	s.slots[end] = zero
	s.len += h.n
	s.hole = nil
}

// Abandon implements Abandoner.
func (h *Hole[E]) Abandon() { h.Close() }
