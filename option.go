// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package polyval

// Option is a value of type A that may be absent. It is the result type of
// the narrowing combinators [AndThen], [Transform], and [OrElse].
type Option[A any] struct {
	present bool
	value   A
}

// Some creates a present Option.
func Some[A any](a A) Option[A] {
	return Option[A]{present: true, value: a}
}

// None creates an absent Option.
func None[A any]() Option[A] {
	return Option[A]{}
}

// IsSome returns true if a value is present.
func (o Option[A]) IsSome() bool {
	return o.present
}

// IsNone returns true if no value is present.
func (o Option[A]) IsNone() bool {
	return !o.present
}

// GetValue returns the value and true, or zero and false.
func (o Option[A]) GetValue() (A, bool) {
	if o.present {
		return o.value, true
	}
	var zero A
	return zero, false
}

// Or returns the value if present, else def.
func (o Option[A]) Or(def A) A {
	if o.present {
		return o.value
	}
	return def
}

// MatchOption pattern matches on the Option, calling onSome or onNone.
func MatchOption[A, T any](o Option[A], onSome func(A) T, onNone func() T) T {
	if o.present {
		return onSome(o.value)
	}
	return onNone()
}

// MapOption applies a function to the present value.
func MapOption[A, B any](o Option[A], f func(A) B) Option[B] {
	if o.present {
		return Some(f(o.value))
	}
	return None[B]()
}

// FlatMapOption sequences two optional computations.
func FlatMapOption[A, B any](o Option[A], f func(A) Option[B]) Option[B] {
	if o.present {
		return f(o.value)
	}
	return None[B]()
}
