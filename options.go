// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package polyval

import "reflect"

// Options is the configuration descriptor for a container type.
// It is resolved exactly once, when a [Schema] is created, and is never
// consulted again: the schema carries the resolved form.
//
// The zero Options value is not useful; start from [DefaultOptions].
type Options struct {
	// Capacity is the requested inline buffer capacity in bytes.
	// Subtypes whose representation fits (and is pointer-free, see below)
	// are stored inline without a per-emplace allocation.
	Capacity int

	// Alignment is the alignment floor of the inline buffer in bytes.
	// Zero means "no requirement beyond the base type's natural alignment".
	// Must be zero or a power of two.
	Alignment int

	// Heap permits falling back to a heap allocation for subtypes that
	// cannot be stored inline. With Heap false, such subtypes are rejected
	// at registration time.
	Heap bool

	// Copy permits Clone and CopyFrom on containers of this schema.
	// A copy-enabled schema rejects, at registration time, pointer-bearing
	// subtypes that do not implement [Cloner].
	Copy bool

	// Move permits MoveFrom on containers of this schema. Go values are
	// trivially relocatable, so unlike Copy this flag implies no per-subtype
	// capability check; it only gates the container-level operations.
	Move bool
}

// DefaultOptions returns the default descriptor: a 64-byte inline buffer
// with heap fallback, copying, and moving all permitted.
func DefaultOptions() Options {
	return Options{Capacity: 64, Heap: true, Copy: true, Move: true}
}

// resolved is the schema-internal form of Options after adjustment for the
// base type. capacity is the effective inline capacity; cellSize is the
// allocated region size (at least one byte, zero-capacity buffers are not
// representable).
type resolved struct {
	capacity int
	cellSize int
	align    int
	heap     bool
	copy     bool
	move     bool
}

// resolve computes the effective configuration for the given base type.
//
// Capacity adjustment mirrors the container contract: with heap fallback, a
// declared capacity smaller than the base type's size collapses to zero
// (heap-only) rather than leaving an unusable buffer; without heap fallback,
// capacity grows to at least the base type's size. The alignment floor is
// never below the base type's natural alignment.
func resolve(opts Options, base reflect.Type) (resolved, error) {
	if opts.Capacity < 0 {
		return resolved{}, &BadOptionsError{Reason: "negative inline capacity"}
	}
	if opts.Alignment < 0 || (opts.Alignment != 0 && opts.Alignment&(opts.Alignment-1) != 0) {
		return resolved{}, &BadOptionsError{Reason: "alignment must be zero or a power of two"}
	}

	baseSize := int(base.Size())
	r := resolved{heap: opts.Heap, copy: opts.Copy, move: opts.Move}

	if opts.Heap {
		if opts.Capacity >= baseSize {
			r.capacity = opts.Capacity
		} else {
			r.capacity = 0
		}
	} else {
		r.capacity = max(opts.Capacity, baseSize)
	}
	r.cellSize = max(1, r.capacity)
	r.align = max(opts.Alignment, base.Align())
	return r, nil
}
