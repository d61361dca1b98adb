// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package polyval provides a type-erased, value-semantic container with a
// small-buffer optimization and policy-driven configuration.
//
// A [Value] holds exactly one payload whose pointer form implements a fixed
// base interface, while presenting a fixed footprint to the rest of the
// program. Payloads small enough for the configured inline buffer (and free
// of pointers in their representation) are stored inline with no per-set
// allocation; everything else takes exactly one exclusively-owned heap
// allocation. The decision is made once, at the point the payload is set.
//
// # Design Philosophy
//
// polyval provides:
//   - A closed, per-schema set of dispatch variants, one per (subtype,
//     storage mode) pair, rather than open-ended runtime polymorphism
//   - Definition-time policy checks that reject unsatisfiable
//     configurations before any container exists
//   - Allocation-discipline guarantees observable with testing.AllocsPerRun
//
// # Configuration
//
// An [Options] descriptor fixes, once per [Schema], the inline capacity,
// the alignment floor, and whether heap fallback, copying, and moving are
// permitted at all:
//
//   - [New], [MustNew]: resolve a descriptor into a schema
//   - [Register], [MustRegister]: admit a subtype, running every policy check
//   - [NewBuilder], [Add], [Builder.Fit], [Builder.Seal]: declare a closed
//     subtype list and derive the capacity from it
//
// Rejections are typed errors: [NotSubtypeError], [NotInlineableError],
// [AlignmentError], [NotCopyableError], [BadOptionsError]. A subtype that
// registers cleanly can never fail a container operation afterwards, except
// narrowing access.
//
// # Container Operations
//
//   - [Schema.NewValue]: empty container
//   - [Make], [MustMake]: factory construction with an initial payload
//   - [Emplace], [MustEmplace]: destroy-then-set, inline or heap by
//     registered mode
//   - [Value.Reset]: destroy and become empty; idempotent
//   - [Value.Clone], [Value.CopyFrom]: duplicate the payload (copy-enabled
//     schemas only; disabled schemas panic)
//   - [Value.MoveFrom]: transfer the payload, leaving the source empty
//   - [Value.HasValue], [Value.Get]: total observers; Get returns the zero
//     base view when empty
//
// Containers built from different schemas never interoperate: CopyFrom and
// MoveFrom across schemas panic rather than guessing a conversion.
//
// # Narrowing Access
//
// Typed access performs a checked downcast against the active handler's
// recorded subtype:
//
//   - [Has]: typed emptiness check; accepts concrete or interface targets
//   - [Narrow]: typed pointer into the payload, or [NarrowingError];
//     matches the same targets as [Has]
//   - [NarrowOr]: typed copy or a supplied default; never fails
//   - [AndThen], [Transform], [OrElse]: monadic combinators over [Option]
//
// [NarrowingError] is the package's only checked runtime failure; a failed
// narrowing leaves the container unchanged.
//
// # Resource Hooks
//
// Payloads implementing [Cloner] define deep copy for pointer-bearing
// subtypes; payloads implementing [Disposer] get a destruction hook on
// Reset, re-emplacement, and pool release. Move transfers ownership whole
// and never runs hooks on the source.
//
// # Pooling
//
// [Schema.Acquire] and [Schema.Release] reuse containers through a
// sync.Pool, amortizing the inline-region allocation for churny call sites.
//
// # Example
//
//	type Shape interface{ Area() float64 }
//
//	type Circle struct{ R float64 }
//	func (c *Circle) Area() float64 { return math.Pi * c.R * c.R }
//
//	shapes := polyval.MustNew[Shape](polyval.DefaultOptions())
//	v := shapes.NewValue()
//	polyval.MustEmplace(v, Circle{R: 2})
//
//	area := polyval.Transform(v, func(c *Circle) float64 { return c.Area() })
//	// area == Some(12.566...)
package polyval
