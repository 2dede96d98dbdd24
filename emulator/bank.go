// Copyright (c) The armv8m-mpu authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package emulator provides a software model of an ARMv8-M MPU register
// bank, allowing protection layouts to be exercised and inspected off
// target through the mpu package.
package emulator

import (
	"sync"

	"github.com/coretrust/armv8m-mpu/mpu"
)

// Bank models one MPU register bank as seen through its register
// interface: region base and limit access is indirected through the
// region number register (RNR), with the RBAR_An/RLAR_An alias pairs
// addressing region (RNR[7:2]<<2)+n, and TYPE reporting the implemented
// region count.
//
// Bank implements reg.Block and can back mpu.MPU directly. Accesses are
// internally serialized, so a console and a loader may share a bank.
type Bank struct {
	sync.Mutex

	// Trace, when set, observes every register write. It must not
	// access the bank.
	Trace func(off uint32, val uint32)

	ctrl    uint32
	rnr     uint32
	mair    [2]uint32
	regions [][2]uint32
}

// NewBank returns a bank model implementing the given number of
// protection regions.
func NewBank(regions int) *Bank {
	return &Bank{
		regions: make([][2]uint32, regions),
	}
}

// Regions returns the number of implemented regions.
func (b *Bank) Regions() int {
	return len(b.regions)
}

// region resolves a base/limit register offset against the current RNR
// selection, limit reports whether the offset is an RLAR one.
func (b *Bank) region(off uint32) (n int, limit bool) {
	alias := int(off-mpu.MPU_RBAR) / 8
	limit = (off-mpu.MPU_RBAR)%8 != 0

	if alias == 0 {
		n = int(b.rnr)
	} else {
		n = int(b.rnr)&^3 + alias
	}

	return
}

// Read implements reg.Block.
func (b *Bank) Read(off uint32) uint32 {
	b.Lock()
	defer b.Unlock()

	switch off {
	case mpu.MPU_TYPE:
		// DREGION [15:8]
		return uint32(len(b.regions)) << 8
	case mpu.MPU_CTRL:
		return b.ctrl
	case mpu.MPU_RNR:
		return b.rnr
	case mpu.MPU_MAIR0:
		return b.mair[0]
	case mpu.MPU_MAIR1:
		return b.mair[1]
	}

	if off >= mpu.MPU_RBAR && off <= mpu.MPU_RLAR_A3 {
		if n, limit := b.region(off); n < len(b.regions) {
			if limit {
				return b.regions[n][1]
			}

			return b.regions[n][0]
		}
	}

	return 0
}

// Write implements reg.Block.
func (b *Bank) Write(off uint32, val uint32) {
	b.Lock()
	defer b.Unlock()

	if b.Trace != nil {
		b.Trace(off, val)
	}

	switch off {
	case mpu.MPU_TYPE:
		// read-only
		return
	case mpu.MPU_CTRL:
		b.ctrl = val
		return
	case mpu.MPU_RNR:
		b.rnr = val & 0xff
		return
	case mpu.MPU_MAIR0:
		b.mair[0] = val
		return
	case mpu.MPU_MAIR1:
		b.mair[1] = val
		return
	}

	if off >= mpu.MPU_RBAR && off <= mpu.MPU_RLAR_A3 {
		if n, limit := b.region(off); n < len(b.regions) {
			if limit {
				b.regions[n][1] = val
			} else {
				b.regions[n][0] = val
			}
		}
	}
}
