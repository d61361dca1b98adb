// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package polyval

// Value is the type-erased, value-semantic container. It holds at most one
// payload whose pointer form implements the base interface B, stored either
// in the inline byte region or behind one exclusively-owned allocation,
// decided once, when the payload is set, by the subtype's registered storage
// mode. The container itself never knows the concrete subtype; every
// operation is delegated to the active handler.
//
// A Value must be created through its schema ([Schema.NewValue], [Make], or
// [Schema.Acquire]); the zero Value is invalid and its methods panic.
// Containers are not safe for concurrent mutation; concurrent read-only
// access is safe in the absence of mutation.
type Value[B any] struct {
	schema *Schema[B]
	h      handler[B]
	cell   cell[B]
}

// NewValue creates an empty container: HasValue reports false and Get
// returns the zero base view. The inline region is allocated here, once;
// emplacing inline-mode subtypes afterwards allocates nothing.
func (s *Schema[B]) NewValue() *Value[B] {
	v := &Value[B]{schema: s, h: s.empty}
	v.cell.bytes = alignedBytes(s.opts.cellSize, s.opts.align)
	return v
}

// Make is the factory form of construct-with-subtype, for expression
// contexts. Equivalent to NewValue followed by [Emplace].
func Make[U any, B any](s *Schema[B], u U) (*Value[B], error) {
	v := s.NewValue()
	if err := Emplace(v, u); err != nil {
		return nil, err
	}
	return v, nil
}

// MustMake is like [Make] but panics on a registration rejection.
func MustMake[U any, B any](s *Schema[B], u U) *Value[B] {
	v, err := Make(s, u)
	if err != nil {
		panic(err)
	}
	return v
}

// Emplace destroys the current payload, if any, and stores u. The subtype is
// registered on first use, so a rejected configuration (see [Register])
// surfaces here as an error before the container is touched: a failed
// Emplace leaves the container unchanged.
//
// Inline-mode subtypes are written into the inline region with no
// allocation; heap-mode subtypes cost exactly one allocation.
func Emplace[U any, B any](v *Value[B], u U) error {
	h, err := variantFor[U](v.active().schema)
	if err != nil {
		return err
	}
	v.h.destroy(&v.cell)
	switch h.(type) {
	case *inlineHandler[B, U]:
		inlinePut(&v.cell, u)
	default:
		heapPut(&v.cell, u)
	}
	v.h = h
	return nil
}

// MustEmplace is like [Emplace] but panics on a registration rejection.
func MustEmplace[U any, B any](v *Value[B], u U) {
	if err := Emplace(v, u); err != nil {
		panic(err)
	}
}

// HasValue reports whether the container holds a payload.
func (v *Value[B]) HasValue() bool {
	return v.active().h.concrete() != nil
}

// Get returns the base-interface view of the payload, or the zero B when
// empty. It never fails. The view aliases the container's storage: mutating
// through it mutates the payload in place.
func (v *Value[B]) Get() B {
	v.active()
	return v.h.get(&v.cell)
}

// Reset destroys the current payload and leaves the container empty.
// Idempotent. This is the deterministic destruction point: payloads
// implementing [Disposer] get their hook invoked here.
func (v *Value[B]) Reset() {
	v.active()
	v.h.destroy(&v.cell)
	v.h = v.schema.empty
}

// Clone copy-constructs an independent container holding a copy of the
// payload. Panics if the schema was built without the Copy option; every
// registered subtype of a copy-enabled schema is copyable by construction,
// so Clone itself cannot fail.
func (v *Value[B]) Clone() *Value[B] {
	v.active()
	if !v.schema.opts.copy {
		misuse("Clone on a copy-disabled schema")
	}
	dst := v.schema.NewValue()
	v.h.imbue(dst)
	v.h.copyInto(&dst.cell, &v.cell)
	return dst
}

// CopyFrom copy-assigns src's payload into v, destroying v's current
// payload first. Self-assignment is a no-op. Panics if the schema was built
// without the Copy option, or if src belongs to a different schema
// (containers of differing configurations do not interoperate).
func (v *Value[B]) CopyFrom(src *Value[B]) {
	v.active()
	src.active()
	if !v.schema.opts.copy {
		misuse("CopyFrom on a copy-disabled schema")
	}
	if v == src {
		return
	}
	if v.schema != src.schema {
		misuse("CopyFrom across differing schemas")
	}
	v.h.destroy(&v.cell)
	src.h.imbue(v)
	v.h.copyInto(&v.cell, &src.cell)
}

// MoveFrom move-assigns src's payload into v, destroying v's current
// payload first and leaving src empty (a guarantee, not an unspecified
// state). Ownership transfers whole: no destruction hook runs on the source.
// Self-move is a no-op. Panics if the schema was built without the Move
// option, or if src belongs to a different schema.
func (v *Value[B]) MoveFrom(src *Value[B]) {
	v.active()
	src.active()
	if !v.schema.opts.move {
		misuse("MoveFrom on a move-disabled schema")
	}
	if v == src {
		return
	}
	if v.schema != src.schema {
		misuse("MoveFrom across differing schemas")
	}
	v.h.destroy(&v.cell)
	src.h.imbue(v)
	v.h.moveInto(&v.cell, &src.cell)
	src.discard()
}

// discard empties the container without running destruction hooks.
// Used on move sources: the payload now lives elsewhere.
func (v *Value[B]) discard() {
	v.cell.clearInline()
	v.cell.clearBoxed()
	v.h = v.schema.empty
}

// active guards against the zero Value and returns v for chaining.
func (v *Value[B]) active() *Value[B] {
	if v.h == nil {
		misuse("use of zero Value; construct via Schema.NewValue")
	}
	return v
}
