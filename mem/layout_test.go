// Copyright (c) The armv8m-mpu authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coretrust/armv8m-mpu/emulator"
	"github.com/coretrust/armv8m-mpu/mem"
	"github.com/coretrust/armv8m-mpu/mpu"
)

func TestTable(t *testing.T) {
	assert := assert.New(t)

	table := mem.Table()
	assert.Len(table, 4)

	flash := table[0]
	assert.Equal(uint32(mem.FlashStart), flash.Base())
	assert.Equal(uint32(mem.FlashEnd), flash.Limit())
	assert.True(flash.ReadOnly())
	assert.False(flash.ExecuteNever())
	assert.Equal(mem.AttrNormal, flash.AttrIndex())

	ram := table[1]
	assert.Equal(uint32(mem.RAMStart), ram.Base())
	assert.Equal(uint32(mem.RAMEnd), ram.Limit())
	assert.False(ram.ReadOnly())
	assert.True(ram.ExecuteNever())

	for _, periph := range table[2:] {
		assert.True(periph.ExecuteNever())
		assert.Equal(mem.AttrDevice, periph.AttrIndex())
	}
}

func TestAttributes(t *testing.T) {
	assert := assert.New(t)

	attrs := mem.Attributes()
	assert.Len(attrs, 2)

	assert.False(mpu.IsDeviceAttr(attrs[mem.AttrNormal]))
	assert.True(mpu.IsDeviceAttr(attrs[mem.AttrDevice]))
	assert.Equal(mpu.DEVICE_nGnRE, mpu.DeviceAttrKind(attrs[mem.AttrDevice]))
}

func TestApply(t *testing.T) {
	assert := assert.New(t)

	m := &mpu.MPU{Regs: emulator.NewBank(8)}

	mem.Apply(m)

	// Apply loads the table but does not enable the bank
	assert.False(m.Enabled())

	for i := range mem.Table() {
		assert.True(m.Region(i).Enabled())
	}

	assert.False(m.Region(4).Enabled())
}
