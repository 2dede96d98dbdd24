// Copyright (c) The armv8m-mpu authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package reg

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

type access struct {
	off uint32
	val uint32
}

type recorder struct {
	writes []access
}

func (r *recorder) Read(off uint32) uint32 {
	return 0
}

func (r *recorder) Write(off uint32, val uint32) {
	r.writes = append(r.writes, access{off, val})
}

func TestMMIO(t *testing.T) {
	assert := assert.New(t)

	block := make([]uint32, 4)
	m := MMIO{Base: uintptr(unsafe.Pointer(&block[0]))}

	m.Write(0, 0xdeadbeef)
	m.Write(8, 0x0badcafe)

	assert.Equal(uint32(0xdeadbeef), block[0])
	assert.Equal(uint32(0x0badcafe), block[2])
	assert.Equal(uint32(0), block[1])

	assert.Equal(uint32(0xdeadbeef), m.Read(0))
	assert.Equal(uint32(0x0badcafe), m.Read(8))
}

func TestCopyOrder(t *testing.T) {
	assert := assert.New(t)

	r := &recorder{}
	words := []uint32{0x11, 0x22, 0x33, 0x44}

	Copy(r, 0x0c, words)

	assert.Len(r.writes, len(words))

	for i, w := range r.writes {
		assert.Equal(uint32(0x0c)+uint32(i)*4, w.off)
		assert.Equal(words[i], w.val)
	}
}

func TestCopyEmpty(t *testing.T) {
	r := &recorder{}
	Copy(r, 0, nil)
	assert.Empty(t, r.writes)
}
