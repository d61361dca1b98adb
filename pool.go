// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package polyval

// Container pool, amortizing the inline-region allocation for call sites
// that create and drop containers at high rate. Released containers are
// destroyed (hooks run, region zeroed) before repooling; a released
// container must not be used again.

// Acquire returns an empty container, reusing a previously released one
// when available.
func (s *Schema[B]) Acquire() *Value[B] {
	return s.pool.Get().(*Value[B])
}

// Release destroys v's payload and returns the container to the schema's
// pool. Panics if v was created by a different schema.
func (s *Schema[B]) Release(v *Value[B]) {
	if v == nil {
		return
	}
	if v.active().schema != s {
		misuse("Release of a Value from a different schema")
	}
	v.Reset()
	s.pool.Put(v)
}
