// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package polyval

import (
	"reflect"
	"unsafe"
)

// cell is the storage region of a container: an aligned inline byte region
// and a boxed heap slot. At most one interpretation is live at a time, and
// the cell itself never knows which: that is tracked entirely by the active
// handler.
type cell[B any] struct {
	bytes []byte // inline region, aligned base, fixed length per schema
	boxed B      // heap-mode payload view; zero when inline or empty
}

// inlineBase returns the aligned base address of the inline region.
func (c *cell[B]) inlineBase() unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(c.bytes))
}

// clearInline zeroes the inline region.
func (c *cell[B]) clearInline() {
	clear(c.bytes)
}

// clearBoxed drops the boxed payload view.
func (c *cell[B]) clearBoxed() {
	var zero B
	c.boxed = zero
}

// alignedBytes allocates a byte region of the given size whose base address
// is a multiple of align. The allocation is over-sized by align-1 bytes and
// re-sliced to the first aligned offset; the returned slice keeps the backing
// array reachable.
func alignedBytes(size, align int) []byte {
	raw := make([]byte, size+align-1)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	off := 0
	if rem := int(base % uintptr(align)); rem != 0 {
		off = align - rem
	}
	return raw[off : off+size : off+size]
}

// hasPointers reports whether a value of type t contains pointers anywhere
// in its representation. Pointer-bearing values must not be stored in the
// inline byte region: the garbage collector does not scan it, so any pointer
// placed there would not keep its referent alive.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		// Pointer, UnsafePointer, Chan, Func, Interface, Map, Slice, String.
		return true
	}
}
