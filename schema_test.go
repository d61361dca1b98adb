// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package polyval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/polyval"
)

func TestOptionsResolution(t *testing.T) {
	// Declared capacity at least the base size is kept as-is.
	s := newShapeSchema(t, polyval.Options{Capacity: 64, Heap: true, Copy: true, Move: true})
	assert.Equal(t, 64, s.Capacity())
	assert.True(t, s.AllowsHeap())
	assert.True(t, s.Copyable())
	assert.True(t, s.Movable())

	// With heap fallback, a capacity below the base type's size collapses
	// to zero: heap-only, no unusable buffer.
	tiny := newShapeSchema(t, polyval.Options{Capacity: 8, Heap: true, Copy: true, Move: true})
	assert.Equal(t, 0, tiny.Capacity())

	// Without heap fallback, capacity grows to at least the base size.
	noheap := newShapeSchema(t, polyval.Options{Capacity: 8, Heap: false, Copy: true, Move: true})
	assert.GreaterOrEqual(t, noheap.Capacity(), 16)

	// The alignment floor never drops below the base type's natural one.
	aligned := newShapeSchema(t, polyval.Options{Capacity: 64, Alignment: 64, Heap: true, Copy: true, Move: true})
	assert.Equal(t, 64, aligned.Alignment())
	assert.GreaterOrEqual(t, s.Alignment(), 8)
}

func TestBadOptions(t *testing.T) {
	var boe *polyval.BadOptionsError

	_, err := polyval.New[Shape](polyval.Options{Capacity: -1, Heap: true})
	require.ErrorAs(t, err, &boe)

	_, err = polyval.New[Shape](polyval.Options{Capacity: 64, Alignment: 3, Heap: true})
	require.ErrorAs(t, err, &boe)

	// The base type must be an interface.
	_, err = polyval.New[Circle](polyval.DefaultOptions())
	require.ErrorAs(t, err, &boe)

	assert.Panics(t, func() { polyval.MustNew[Circle](polyval.DefaultOptions()) })
}

func TestRegisterIdempotent(t *testing.T) {
	s := newShapeSchema(t, polyval.DefaultOptions())
	require.NoError(t, polyval.Register[Circle](s))
	require.NoError(t, polyval.Register[Circle](s))

	v := s.NewValue()
	require.NoError(t, polyval.Emplace(v, Circle{R: 1}))
	assert.True(t, polyval.Has[Circle](v))
}

func TestRegisterRejections(t *testing.T) {
	s := newShapeSchema(t, polyval.DefaultOptions())

	var nse *polyval.NotSubtypeError
	err := polyval.Register[notAShape](s)
	require.ErrorAs(t, err, &nse)
	assert.Contains(t, err.Error(), "does not implement")

	assert.Panics(t, func() { polyval.MustRegister[notAShape](s) })
}

func TestRegisterAlignedBuffer(t *testing.T) {
	// A raised alignment floor must not disturb inline storage.
	s := newShapeSchema(t, polyval.Options{Capacity: 64, Alignment: 32, Heap: false, Copy: true, Move: true})
	v := polyval.MustMake(s, Rect{W: 2, H: 2})
	r, err := polyval.Narrow[Rect](v)
	require.NoError(t, err)
	assert.Equal(t, 2.0, r.W)
}

func TestBuilderSeal(t *testing.T) {
	b := polyval.NewBuilder[Shape](polyval.DefaultOptions())
	polyval.Add[Circle](b)
	polyval.Add[Rect](b)
	polyval.Add[Named](b)

	s, err := b.Seal()
	require.NoError(t, err)

	v := s.NewValue()
	require.NoError(t, polyval.Emplace(v, Rect{W: 1, H: 2}))
	assert.True(t, polyval.Has[Rect](v))
}

func TestBuilderFit(t *testing.T) {
	// Fit raises the capacity to the largest pointer-free subtype, so the
	// whole closed set stores inline, even the 800-byte Polygon.
	b := polyval.NewBuilder[Shape](polyval.Options{Capacity: 0, Heap: false, Copy: true, Move: true})
	polyval.Add[Circle](b)
	polyval.Add[Polygon](b)
	b.Fit()

	s, err := b.Seal()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s.Capacity(), 800)

	v := s.NewValue()
	require.NoError(t, polyval.Emplace(v, Polygon{}))
	assert.True(t, polyval.Has[Polygon](v))
}

func TestBuilderFitWithHeapFallback(t *testing.T) {
	// Even with heap fallback on, a fitted capacity must not collapse to
	// heap-only when every subtype is smaller than the base type.
	b := polyval.NewBuilder[Shape](polyval.Options{Capacity: 0, Heap: true, Copy: true, Move: true})
	polyval.Add[Circle](b)
	b.Fit()

	s, err := b.Seal()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s.Capacity(), 8)

	v := s.NewValue()
	allocs := testing.AllocsPerRun(100, func() {
		polyval.MustEmplace(v, Circle{R: 1})
	})
	assert.Zero(t, allocs, "a fitted subtype stores inline")
}

func TestBuilderSealPropagatesRejection(t *testing.T) {
	// noClone cannot live on a copy-enabled schema; Seal reports it.
	b := polyval.NewBuilder[Shape](polyval.DefaultOptions())
	polyval.Add[noClone](b)

	_, err := b.Seal()
	var nce *polyval.NotCopyableError
	require.ErrorAs(t, err, &nce)

	assert.Panics(t, func() { b.MustSeal() })
}
