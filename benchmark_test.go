// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package polyval_test

import (
	"testing"

	"code.hybscloud.com/polyval"
)

// BenchmarkEmplaceInline measures the inline (no allocation) set path.
func BenchmarkEmplaceInline(b *testing.B) {
	s := polyval.MustNew[Shape](polyval.DefaultOptions())
	v := s.NewValue()
	for b.Loop() {
		polyval.MustEmplace(v, Circle{R: 2})
	}
}

// BenchmarkEmplaceHeap measures the heap (one allocation) set path.
func BenchmarkEmplaceHeap(b *testing.B) {
	s := polyval.MustNew[Shape](polyval.DefaultOptions())
	v := s.NewValue()
	for b.Loop() {
		polyval.MustEmplace(v, Polygon{})
	}
}

// BenchmarkGet measures base-view access.
func BenchmarkGet(b *testing.B) {
	s := polyval.MustNew[Shape](polyval.DefaultOptions())
	v := polyval.MustMake(s, Circle{R: 2})
	for b.Loop() {
		_ = v.Get()
	}
}

// BenchmarkNarrow measures the checked downcast.
func BenchmarkNarrow(b *testing.B) {
	s := polyval.MustNew[Shape](polyval.DefaultOptions())
	v := polyval.MustMake(s, Circle{R: 2})
	for b.Loop() {
		if _, err := polyval.Narrow[Circle](v); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCloneInline measures byte-copy duplication.
func BenchmarkCloneInline(b *testing.B) {
	s := polyval.MustNew[Shape](polyval.DefaultOptions())
	v := polyval.MustMake(s, Rect{W: 2, H: 3})
	for b.Loop() {
		_ = v.Clone()
	}
}

// BenchmarkCloneHeap measures Cloner-backed duplication.
func BenchmarkCloneHeap(b *testing.B) {
	s := polyval.MustNew[Shape](polyval.DefaultOptions())
	v := polyval.MustMake(s, Named{Name: "bench", W: 2, H: 3})
	for b.Loop() {
		_ = v.Clone()
	}
}

// BenchmarkMoveFrom measures ownership transfer.
func BenchmarkMoveFrom(b *testing.B) {
	s := polyval.MustNew[Shape](polyval.DefaultOptions())
	x := polyval.MustMake(s, Polygon{})
	y := s.NewValue()
	for b.Loop() {
		y.MoveFrom(x)
		x.MoveFrom(y)
	}
}

// BenchmarkPooledRoundTrip measures Acquire/Emplace/Release reuse.
func BenchmarkPooledRoundTrip(b *testing.B) {
	s := polyval.MustNew[Shape](polyval.DefaultOptions())
	s.Release(s.Acquire())
	for b.Loop() {
		v := s.Acquire()
		polyval.MustEmplace(v, Circle{R: 1})
		s.Release(v)
	}
}
