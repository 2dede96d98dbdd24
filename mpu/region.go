// Copyright (c) The armv8m-mpu authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mpu

import (
	"github.com/usbarmory/tamago/bits"
)

// Shareability domains
const (
	SH_NONE  = 0b00
	SH_OUTER = 0b10
	SH_INNER = 0b11
)

// MPU_RBAR/MPU_RLAR fields
const (
	// base and limit addresses cover bits [31:5], 32-byte granule
	ADDR_MASK = 0xffffffe0

	RBAR_SH = 3 // [4:3]
	RBAR_AP = 1 // [2:1]
	RBAR_XN = 0

	RLAR_ATTRIDX = 1 // [3:1]
	RLAR_EN      = 0
)

// Region is one protection region descriptor, the pair of base (RBAR) and
// limit (RLAR) register values. Region tables can be authored as constant
// data with RBAR and RLAR and installed in bulk with Load.
type Region struct {
	RBAR uint32
	RLAR uint32
}

// RBAR returns the base register value for a region starting at base,
// with the given shareability domain (SH_NONE, SH_OUTER, SH_INNER) and
// access permissions. The low 5 bits of base are silently truncated.
func RBAR(base uint32, sh int, ro bool, np bool, xn bool) (rbar uint32) {
	var ap uint32

	if ro {
		ap |= 0b10
	}

	if np {
		ap |= 0b01
	}

	rbar = base & ADDR_MASK
	bits.SetN(&rbar, RBAR_SH, 0b11, uint32(sh))
	bits.SetN(&rbar, RBAR_AP, 0b11, ap)

	if xn {
		bits.SetN(&rbar, RBAR_XN, 1, 1)
	}

	return
}

// RLAR returns the limit register value for a region ending at limit,
// referencing memory attribute slot idx. The limit address is inclusive
// and one-extended by the hardware, its low 5 bits read as all ones.
//
// The region enable bit is left clear, regions are activated when
// installed (see SetRegion, Load).
func RLAR(limit uint32, idx int) (rlar uint32) {
	rlar = limit & ADDR_MASK
	bits.SetN(&rlar, RLAR_ATTRIDX, 0b111, uint32(idx))

	return
}

// Base returns the region base address.
func (r Region) Base() uint32 {
	return r.RBAR & ADDR_MASK
}

// Limit returns the region limit address, one-extended to the end of its
// 32-byte granule.
func (r Region) Limit() uint32 {
	return r.RLAR&ADDR_MASK | 0x1f
}

// Shareability returns the region shareability domain.
func (r Region) Shareability() int {
	return int(bits.Get(&r.RBAR, RBAR_SH, 0b11))
}

// ReadOnly reports whether the region denies write access.
func (r Region) ReadOnly() bool {
	return bits.Get(&r.RBAR, RBAR_AP, 0b11)&0b10 != 0
}

// NonPrivileged reports whether the region is accessible at any privilege
// level.
func (r Region) NonPrivileged() bool {
	return bits.Get(&r.RBAR, RBAR_AP, 0b11)&0b01 != 0
}

// ExecuteNever reports whether instruction fetches from the region are
// denied.
func (r Region) ExecuteNever() bool {
	return bits.Get(&r.RBAR, RBAR_XN, 1) == 1
}

// AttrIndex returns the memory attribute slot referenced by the region.
func (r Region) AttrIndex() int {
	return int(bits.Get(&r.RLAR, RLAR_ATTRIDX, 0b111))
}

// Enabled reports whether the region descriptor is active. A region with
// the enable bit clear is inert regardless of its other fields.
func (r Region) Enabled() bool {
	return bits.Get(&r.RLAR, RLAR_EN, 1) == 1
}
