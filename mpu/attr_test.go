// Copyright (c) The armv8m-mpu authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// cacheable returns every CachePolicy combination whose encoding is
// distinct from the non-cacheable nibble: no-write-back/no-allocation
// policies encode as non-cacheable by rule, transient write-back with no
// allocation hints packs to the same nibble value.
func cacheable() (policies []CachePolicy) {
	for i := 0; i < 16; i++ {
		p := CachePolicy{
			NonTransient:  i&0b1000 != 0,
			WriteBack:     i&0b0100 != 0,
			ReadAllocate:  i&0b0010 != 0,
			WriteAllocate: i&0b0001 != 0,
		}

		if !p.WriteBack && !p.ReadAllocate && !p.WriteAllocate {
			continue
		}

		if p == (CachePolicy{WriteBack: true}) {
			continue
		}

		policies = append(policies, p)
	}

	return
}

func TestNormalAttrRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for _, outer := range cacheable() {
		for _, inner := range cacheable() {
			attr := NormalAttr(outer, inner)

			assert.False(IsDeviceAttr(attr))

			o, i := CachePolicies(attr)
			assert.Equal(outer, o)
			assert.Equal(inner, i)
		}
	}
}

func TestNormalAttrNonCacheable(t *testing.T) {
	assert := assert.New(t)

	// no write-back and no allocation hints encode as non-cacheable,
	// transience included
	nc := CachePolicy{}
	nt := CachePolicy{NonTransient: true}

	assert.Equal(byte(0x44), NormalAttr(nc, nc))
	assert.Equal(byte(0x44), NormalAttr(nt, nt))

	o, i := CachePolicies(NormalAttr(nc, nt))
	assert.Equal(nc, o)
	assert.Equal(nc, i)

	// transient write-back with no allocation hints packs to the
	// non-cacheable nibble and decodes accordingly
	wb := CachePolicy{WriteBack: true}

	assert.Equal(byte(0x44), NormalAttr(wb, wb))

	o, i = CachePolicies(NormalAttr(wb, wb))
	assert.Equal(nc, o)
	assert.Equal(nc, i)
}

func TestDeviceAttr(t *testing.T) {
	assert := assert.New(t)

	kinds := []int{DEVICE_nGnRnE, DEVICE_nGnRE, DEVICE_nGRE, DEVICE_GRE}
	seen := make(map[byte]bool)

	for _, kind := range kinds {
		attr := DeviceAttr(kind)

		// device marker in the high nibble
		assert.Equal(byte(0), attr>>4)
		assert.True(IsDeviceAttr(attr))
		assert.Equal(kind, DeviceAttrKind(attr))

		assert.False(seen[attr], "device attributes must be pairwise distinct")
		seen[attr] = true
	}
}
