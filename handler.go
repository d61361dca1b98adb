// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package polyval

import "reflect"

// Cloner is the copy capability for heap-stored subtypes. Clone must return
// a fresh, independent payload as the base interface view (conventionally a
// new *U). Inline-stored subtypes are pointer-free and copy by byte copy, so
// they never need Clone; a copy-enabled schema requires it from every
// pointer-bearing subtype at registration time.
type Cloner[B any] interface {
	Clone() B
}

// Disposer is the destruction hook for payloads that own external resources.
// Reset, re-emplacement, and pool release invoke Dispose through the active
// handler before the payload is dropped. Containers abandoned to the garbage
// collector without Reset skip the hook.
type Disposer interface {
	Dispose()
}

// handler is the dispatch object for one (subtype, storage mode) pair.
// Handlers are stateless apart from an immutable type tag; a single shared
// instance per pair is created at registration and installed into every
// container that stores that subtype. Handler identity is the only record of
// what a cell currently holds.
type handler[B any] interface {
	// get returns the base-interface view of the payload, or the zero B
	// for the empty variant.
	get(c *cell[B]) B
	// copyInto places an independent copy of src's payload into dst.
	// Unreachable for non-copyable payloads when registration checks held.
	copyInto(dst, src *cell[B])
	// moveInto transfers src's payload into dst. The caller discards the
	// source cell afterwards without running destruction hooks; ownership
	// has moved.
	moveInto(dst, src *cell[B])
	// destroy runs the payload's Dispose hook if any and clears the live
	// interpretation of the cell.
	destroy(c *cell[B])
	// imbue installs this handler variant into dst's handler slot, telling
	// the destination what kind of payload it is about to receive without
	// inspecting the payload itself.
	imbue(dst *Value[B])
	// concrete returns the stored subtype, or nil for the empty variant.
	concrete() reflect.Type
}

// emptyHandler is the variant installed in containers that hold nothing.
// All operations are no-ops; get reports the zero base view.
type emptyHandler[B any] struct{}

func (*emptyHandler[B]) get(*cell[B]) B {
	var zero B
	return zero
}

func (*emptyHandler[B]) copyInto(_, _ *cell[B]) {}
func (*emptyHandler[B]) moveInto(_, _ *cell[B]) {}
func (*emptyHandler[B]) destroy(*cell[B])       {}

func (*emptyHandler[B]) imbue(dst *Value[B]) {
	dst.h = dst.schema.empty
}

func (*emptyHandler[B]) concrete() reflect.Type { return nil }

// inlineHandler stores U directly in the cell's byte region. Registration
// guarantees U is pointer-free, fits the effective capacity, and respects
// the alignment floor, so reinterpreting the region as U is sound and byte
// copy is a correct deep copy.
type inlineHandler[B, U any] struct {
	ut reflect.Type
}

func (h *inlineHandler[B, U]) get(c *cell[B]) B {
	p := (*U)(c.inlineBase())
	return any(p).(B)
}

func (h *inlineHandler[B, U]) copyInto(dst, src *cell[B]) {
	*(*U)(dst.inlineBase()) = *(*U)(src.inlineBase())
}

func (h *inlineHandler[B, U]) moveInto(dst, src *cell[B]) {
	*(*U)(dst.inlineBase()) = *(*U)(src.inlineBase())
}

func (h *inlineHandler[B, U]) destroy(c *cell[B]) {
	if d, ok := any((*U)(c.inlineBase())).(Disposer); ok {
		d.Dispose()
	}
	c.clearInline()
}

func (h *inlineHandler[B, U]) imbue(dst *Value[B]) {
	dst.h = h
}

func (h *inlineHandler[B, U]) concrete() reflect.Type { return h.ut }

// heapHandler stores U behind one exclusively-owned allocation per
// emplacement, held as the base interface view in the cell's boxed slot.
type heapHandler[B, U any] struct {
	ut reflect.Type
}

func (h *heapHandler[B, U]) get(c *cell[B]) B {
	return c.boxed
}

func (h *heapHandler[B, U]) copyInto(dst, src *cell[B]) {
	if cl, ok := any(src.boxed).(Cloner[B]); ok {
		dst.boxed = cl.Clone()
		return
	}
	// Pointer-free subtype on the heap path (too large for the inline
	// buffer): a shallow copy is a correct deep copy.
	p := any(src.boxed).(*U)
	q := new(U)
	*q = *p
	dst.boxed = any(q).(B)
}

func (h *heapHandler[B, U]) moveInto(dst, src *cell[B]) {
	dst.boxed = src.boxed
}

func (h *heapHandler[B, U]) destroy(c *cell[B]) {
	if d, ok := any(c.boxed).(Disposer); ok {
		d.Dispose()
	}
	c.clearBoxed()
}

func (h *heapHandler[B, U]) imbue(dst *Value[B]) {
	dst.h = h
}

func (h *heapHandler[B, U]) concrete() reflect.Type { return h.ut }

// inlinePut writes u into the inline region. Split out of Emplace so the
// unsafe reinterpretation stays next to the handler that owns it.
func inlinePut[B, U any](c *cell[B], u U) {
	*(*U)(c.inlineBase()) = u
}

// heapPut boxes u into a fresh exclusive allocation.
func heapPut[B, U any](c *cell[B], u U) {
	p := new(U)
	*p = u
	c.boxed = any(p).(B)
}
