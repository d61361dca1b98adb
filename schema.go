// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package polyval

import (
	"reflect"
	"sync"
	"unsafe"
)

// Schema is the resolved container type: one base interface plus one
// resolved [Options] descriptor plus the closed set of subtype variants
// registered against it. Every container created from a schema shares the
// same fixed footprint and the same policy flags for its whole lifetime.
//
// All configuration-time policy checks happen here, before any payload
// exists: at [New] for the descriptor, and at [Register] (or the implicit
// registration performed by [Emplace]) for each subtype.
type Schema[B any] struct {
	opts  resolved
	base  reflect.Type
	empty handler[B]

	mu       sync.RWMutex
	variants map[reflect.Type]handler[B]

	pool sync.Pool
}

// New creates a schema for base interface B with the given descriptor.
// B must be an interface type; stored subtypes are the concrete types whose
// pointer form implements it.
func New[B any](opts Options) (*Schema[B], error) {
	base := reflect.TypeOf((*B)(nil)).Elem()
	if base.Kind() != reflect.Interface {
		return nil, &BadOptionsError{Reason: "base type " + base.String() + " is not an interface"}
	}
	r, err := resolve(opts, base)
	if err != nil {
		return nil, err
	}
	s := &Schema[B]{
		opts:     r,
		base:     base,
		empty:    &emptyHandler[B]{},
		variants: make(map[reflect.Type]handler[B]),
	}
	s.pool.New = func() any { return s.NewValue() }
	return s, nil
}

// MustNew is like [New] but panics on an invalid configuration.
// Intended for package-level schema variables.
func MustNew[B any](opts Options) *Schema[B] {
	s, err := New[B](opts)
	if err != nil {
		panic(err)
	}
	return s
}

// Register adds subtype U to the schema's variant set, running every
// configuration-time policy check:
//
//   - *U must implement the base interface ([NotSubtypeError])
//   - U's alignment must not exceed the configured floor ([AlignmentError])
//   - under a no-heap policy, U must fit the inline buffer and be
//     pointer-free ([NotInlineableError])
//   - under a copy-enabled policy, a pointer-bearing U must implement
//     [Cloner] ([NotCopyableError])
//
// The storage mode, inline or heap, is decided here, once, by comparing
// U's layout against the effective capacity. Registering the same subtype
// again is a no-op. Registration is value-independent: a subtype that
// registers cleanly can never fail a container operation other than
// narrowing access.
func Register[U any, B any](s *Schema[B]) error {
	ut := reflect.TypeOf((*U)(nil)).Elem()

	s.mu.RLock()
	_, ok := s.variants[ut]
	s.mu.RUnlock()
	if ok {
		return nil
	}

	pt := reflect.PointerTo(ut)
	if !pt.Implements(s.base) {
		return &NotSubtypeError{Base: s.base, Type: ut}
	}
	if a := ut.Align(); a > s.opts.align {
		return &AlignmentError{Type: ut, Align: a, Floor: s.opts.align}
	}

	size := int(ut.Size())
	ptrBearing := hasPointers(ut)
	inline := !ptrBearing && size <= s.opts.capacity
	if !inline && !s.opts.heap {
		return &NotInlineableError{Type: ut, Size: size, Capacity: s.opts.capacity, PointerBearing: ptrBearing}
	}
	if s.opts.copy && ptrBearing && !pt.Implements(reflect.TypeOf((*Cloner[B])(nil)).Elem()) {
		return &NotCopyableError{Type: ut}
	}

	var h handler[B]
	if inline {
		h = &inlineHandler[B, U]{ut: ut}
	} else {
		h = &heapHandler[B, U]{ut: ut}
	}

	s.mu.Lock()
	if _, ok := s.variants[ut]; !ok {
		s.variants[ut] = h
	}
	s.mu.Unlock()
	return nil
}

// MustRegister is like [Register] but panics on rejection.
// Intended for init-time registration next to the schema variable.
func MustRegister[U any, B any](s *Schema[B]) {
	if err := Register[U](s); err != nil {
		panic(err)
	}
}

// variantFor returns the registered handler for U, registering it first if
// this is the schema's first encounter with U.
func variantFor[U any, B any](s *Schema[B]) (handler[B], error) {
	ut := reflect.TypeOf((*U)(nil)).Elem()
	s.mu.RLock()
	h, ok := s.variants[ut]
	s.mu.RUnlock()
	if ok {
		return h, nil
	}
	if err := Register[U](s); err != nil {
		return nil, err
	}
	s.mu.RLock()
	h = s.variants[ut]
	s.mu.RUnlock()
	return h, nil
}

// Capacity returns the effective inline capacity in bytes.
func (s *Schema[B]) Capacity() int { return s.opts.capacity }

// Alignment returns the effective alignment floor in bytes.
func (s *Schema[B]) Alignment() int { return s.opts.align }

// AllowsHeap reports whether heap fallback is permitted.
func (s *Schema[B]) AllowsHeap() bool { return s.opts.heap }

// Copyable reports whether Clone and CopyFrom are permitted.
func (s *Schema[B]) Copyable() bool { return s.opts.copy }

// Movable reports whether MoveFrom is permitted.
func (s *Schema[B]) Movable() bool { return s.opts.move }

// Footprint returns the fixed per-container memory footprint in bytes: the
// container header plus the inline region. It does not depend on which
// subtype a container currently holds.
func (s *Schema[B]) Footprint() int {
	return int(unsafe.Sizeof(Value[B]{})) + s.opts.cellSize
}

// Builder accumulates a closed subtype list before sealing a schema,
// mirroring declaration-site registration: name the base, the options, and
// every subtype in one place. With [Builder.Fit], the inline capacity grows
// to the largest pointer-free subtype in the list, so the whole closed set
// stores inline.
type Builder[B any] struct {
	opts Options
	fit  bool
	adds []builderAdd[B]
}

type builderAdd[B any] struct {
	size        int
	pointerFree bool
	register    func(*Schema[B]) error
}

// NewBuilder starts a builder from the given descriptor.
func NewBuilder[B any](opts Options) *Builder[B] {
	return &Builder[B]{opts: opts}
}

// Add appends subtype U to the builder's closed list. Policy checks are
// deferred to [Builder.Seal].
func Add[U any, B any](b *Builder[B]) *Builder[B] {
	ut := reflect.TypeOf((*U)(nil)).Elem()
	b.adds = append(b.adds, builderAdd[B]{
		size:        int(ut.Size()),
		pointerFree: !hasPointers(ut),
		register:    func(s *Schema[B]) error { return Register[U](s) },
	})
	return b
}

// Fit requests capacity derivation: at seal time the declared capacity is
// raised to the size of the largest pointer-free subtype in the list, and
// never below the base type's size, so the derived buffer cannot collapse
// to heap-only under a heap-enabled policy.
func (b *Builder[B]) Fit() *Builder[B] {
	b.fit = true
	return b
}

// Seal resolves the options, creates the schema, and registers every added
// subtype, returning the first rejection encountered.
func (b *Builder[B]) Seal() (*Schema[B], error) {
	opts := b.opts
	if b.fit {
		fitted := false
		for _, a := range b.adds {
			if a.pointerFree {
				opts.Capacity = max(opts.Capacity, a.size)
				fitted = true
			}
		}
		// Resolution collapses a capacity below the base type's size to
		// zero under heap fallback; a fitted buffer must survive that.
		if fitted {
			opts.Capacity = max(opts.Capacity, int(reflect.TypeOf((*B)(nil)).Elem().Size()))
		}
	}
	s, err := New[B](opts)
	if err != nil {
		return nil, err
	}
	for _, a := range b.adds {
		if err := a.register(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustSeal is like [Seal] but panics on rejection.
func (b *Builder[B]) MustSeal() *Schema[B] {
	s, err := b.Seal()
	if err != nil {
		panic(err)
	}
	return s
}
