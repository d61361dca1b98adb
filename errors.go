// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package polyval

import (
	"fmt"
	"reflect"
)

// Definition-time errors, reported by Schema creation and subtype
// registration. Once a subtype registers cleanly, no container operation on
// it can fail except narrowing access, which reports NarrowingError.

// BadOptionsError is returned when an Options descriptor or base type cannot
// form a valid schema.
type BadOptionsError struct {
	Reason string
}

func (e *BadOptionsError) Error() string {
	return fmt.Sprintf("polyval: invalid configuration: %s", e.Reason)
}

// NotSubtypeError is returned when a registered type's pointer form does not
// implement the schema's base interface.
type NotSubtypeError struct {
	Base reflect.Type
	Type reflect.Type
}

func (e *NotSubtypeError) Error() string {
	return fmt.Sprintf("polyval: *%v does not implement base interface %v", e.Type, e.Base)
}

// NotInlineableError is returned by a no-heap schema for a subtype that
// cannot live in the inline buffer: it is larger than the effective capacity,
// or its representation contains pointers (the inline region is opaque to the
// garbage collector).
type NotInlineableError struct {
	Type           reflect.Type
	Size           int
	Capacity       int
	PointerBearing bool
}

func (e *NotInlineableError) Error() string {
	if e.PointerBearing {
		return fmt.Sprintf("polyval: %v contains pointers and heap fallback is disabled", e.Type)
	}
	return fmt.Sprintf("polyval: %v (%d bytes) exceeds inline capacity %d and heap fallback is disabled",
		e.Type, e.Size, e.Capacity)
}

// AlignmentError is returned when a subtype's alignment requirement exceeds
// the schema's configured alignment floor.
type AlignmentError struct {
	Type  reflect.Type
	Align int
	Floor int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("polyval: %v requires %d-byte alignment, exceeding the configured floor of %d",
		e.Type, e.Align, e.Floor)
}

// NotCopyableError is returned by a copy-enabled schema for a pointer-bearing
// subtype that does not implement [Cloner]. Either implement Clone on the
// subtype or build the schema with the Copy option disabled.
type NotCopyableError struct {
	Type reflect.Type
}

func (e *NotCopyableError) Error() string {
	return fmt.Sprintf("polyval: %v does not implement Cloner but the schema permits copying", e.Type)
}

// NarrowingError is the only runtime failure in the package. It is returned
// by [Narrow] when the container is empty or holds a different concrete
// subtype than requested. The container is left unchanged.
type NarrowingError struct {
	Want  reflect.Type
	Got   reflect.Type // nil when the container was empty
	Empty bool
}

func (e *NarrowingError) Error() string {
	if e.Empty {
		return fmt.Sprintf("polyval: cannot narrow empty container to %v", e.Want)
	}
	return fmt.Sprintf("polyval: cannot narrow %v to %v", e.Got, e.Want)
}

// misuse panics with a descriptive message for statically-knowable API
// misuse (disabled operations, mismatched schemas, uninitialized containers).
// Extracted as a noinline function so that callers remain inlineable.
//
//go:noinline
func misuse(msg string) {
	panic("polyval: " + msg)
}
