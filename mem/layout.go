// Copyright (c) The armv8m-mpu authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package mem provides an example protection layout for a typical
// Cortex-M33 class memory map: executable flash, non-executable SRAM and
// two peripheral windows.
package mem

import (
	"github.com/coretrust/armv8m-mpu/mpu"
)

// Memory attribute slots referenced by Table
const (
	// write-back cacheable normal memory
	AttrNormal = iota
	// nGnRE device memory
	AttrDevice
)

// Protected address windows, inclusive limits
const (
	FlashStart = 0x08000000
	FlashEnd   = 0x080fffff // 1MB

	RAMStart = 0x20000000
	RAMEnd   = 0x2003ffff // 256KB

	GPIOStart = 0x40020000
	GPIOEnd   = 0x40021fff

	FlashCtrlStart = 0x40022000
	FlashCtrlEnd   = 0x400223ff
)

// Attributes returns the memory attributes referenced by Table, indexed
// by slot number.
func Attributes() []byte {
	cached := mpu.CachePolicy{
		NonTransient:  true,
		WriteBack:     true,
		ReadAllocate:  true,
		WriteAllocate: true,
	}

	return []byte{
		AttrNormal: mpu.NormalAttr(cached, cached),
		AttrDevice: mpu.DeviceAttr(mpu.DEVICE_nGnRE),
	}
}

// Table returns the example region table: read-only executable flash,
// read-write non-executable RAM, and the two peripheral windows as
// non-executable device memory.
func Table() []mpu.Region {
	return []mpu.Region{
		{
			RBAR: mpu.RBAR(FlashStart, mpu.SH_NONE, true, false, false),
			RLAR: mpu.RLAR(FlashEnd, AttrNormal),
		},
		{
			RBAR: mpu.RBAR(RAMStart, mpu.SH_NONE, false, false, true),
			RLAR: mpu.RLAR(RAMEnd, AttrNormal),
		},
		{
			RBAR: mpu.RBAR(GPIOStart, mpu.SH_NONE, false, false, true),
			RLAR: mpu.RLAR(GPIOEnd, AttrDevice),
		},
		{
			RBAR: mpu.RBAR(FlashCtrlStart, mpu.SH_NONE, false, false, true),
			RLAR: mpu.RLAR(FlashCtrlEnd, AttrDevice),
		},
	}
}

// Apply installs the layout attributes and loads the region table on the
// given bank starting at region 0, leaving the bank enable state
// untouched.
func Apply(m *mpu.MPU) {
	for i, attr := range Attributes() {
		m.SetMemAttr(i, attr)
	}

	m.Load(0, Table())
}
