// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package polyval

import "reflect"

// Narrowing accessors: typed views of a type-erased container. Everything
// here is built on the facade's Get/concrete primitives only, is read-only,
// and leaves the container unchanged on failure.
//
// The downcast is a closed-set discriminant check against the handler's
// recorded subtype, not open runtime type inspection: dispatch identity is
// the single source of truth for what a container holds.

// Has reports whether the container holds a payload of type U. U may be the
// exact concrete subtype, or an interface implemented by the stored
// subtype's pointer form. Never fails; false on an empty container.
func Has[U any, B any](v *Value[B]) bool {
	ct := v.active().h.concrete()
	if ct == nil {
		return false
	}
	ut := reflect.TypeOf((*U)(nil)).Elem()
	if ut.Kind() == reflect.Interface {
		return reflect.PointerTo(ct).Implements(ut)
	}
	return ct == ut
}

// Narrow returns the payload narrowed to U, succeeding under exactly the
// rule [Has] uses: U is the stored concrete subtype, or an interface
// implemented by its pointer form. For a concrete U the pointer aliases the
// container's storage, so mutating through it mutates the payload in place;
// for an interface U it addresses a fresh view whose methods still act on the
// stored payload. Fails with [NarrowingError] when the container is empty or
// the target does not match. This is the only checked runtime failure in the
// package.
func Narrow[U any, B any](v *Value[B]) (*U, error) {
	ct := v.active().h.concrete()
	ut := reflect.TypeOf((*U)(nil)).Elem()
	if ct == nil {
		return nil, &NarrowingError{Want: ut, Empty: true}
	}
	if ut.Kind() == reflect.Interface {
		if !reflect.PointerTo(ct).Implements(ut) {
			return nil, &NarrowingError{Want: ut, Got: ct}
		}
		u := any(v.h.get(&v.cell)).(U)
		return &u, nil
	}
	if ct != ut {
		return nil, &NarrowingError{Want: ut, Got: ct}
	}
	return any(v.h.get(&v.cell)).(*U), nil
}

// NarrowOr returns a copy of the payload narrowed to U if present and of
// that subtype, else the supplied default. Never fails.
func NarrowOr[U any, B any](v *Value[B], def U) U {
	if p, err := Narrow[U](v); err == nil {
		return *p
	}
	return def
}

// AndThen invokes f with the payload narrowed to U and returns f's result;
// when the container is empty or holds a different subtype, it returns the
// absent result without invoking f.
func AndThen[U, R any, B any](v *Value[B], f func(*U) Option[R]) Option[R] {
	p, err := Narrow[U](v)
	if err != nil {
		return None[R]()
	}
	return f(p)
}

// Transform applies f to the payload narrowed to U and wraps the result in
// an Option; absent when the container is empty or holds a different
// subtype.
func Transform[U, R any, B any](v *Value[B], f func(*U) R) Option[R] {
	p, err := Narrow[U](v)
	if err != nil {
		return None[R]()
	}
	return Some(f(p))
}

// OrElse returns the payload narrowed to U when present, else the result of
// invoking f (which takes no arguments).
func OrElse[U any, B any](v *Value[B], f func() Option[*U]) Option[*U] {
	p, err := Narrow[U](v)
	if err != nil {
		return f()
	}
	return Some(p)
}
