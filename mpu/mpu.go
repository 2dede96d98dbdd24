// Copyright (c) The armv8m-mpu authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package mpu implements configuration of the ARMv8-M Memory Protection
// Unit register interface (MPU, PMSAv8), encoding memory attributes and
// region descriptors and applying them to an MPU register bank.
//
// The package performs no runtime validation: attribute slot indexes,
// region numbers, address alignment and table sizes within the
// implemented region count are caller preconditions, as is external
// serialization when multiple execution contexts configure the same bank.
// How overlapping enabled regions are matched is hardware-defined and not
// modeled here.
//
// For detailed register specifications refer to the ARMv8-M Architecture
// Reference Manual (ARM DDI0553).
package mpu

import (
	"github.com/usbarmory/tamago/bits"

	"github.com/coretrust/armv8m-mpu/reg"
)

// MPU register bank bases
const (
	// SecureBase is the bank of the current security state.
	SecureBase = 0xe000ed90
	// NonSecureBase is the MPU_NS alias, through which Secure state
	// configures the Non-secure bank.
	NonSecureBase = 0xe002ed90
)

// MPU register offsets
const (
	MPU_TYPE = 0x00
	MPU_CTRL = 0x04
	MPU_RNR  = 0x08
	MPU_RBAR = 0x0c
	MPU_RLAR = 0x10

	// alias pairs, accessing region (RNR[7:2]<<2)+n
	MPU_RBAR_A1 = 0x14
	MPU_RLAR_A1 = 0x18
	MPU_RBAR_A2 = 0x1c
	MPU_RLAR_A2 = 0x20
	MPU_RBAR_A3 = 0x24
	MPU_RLAR_A3 = 0x28

	MPU_MAIR0 = 0x30
	MPU_MAIR1 = 0x34
)

// MPU_CTRL bits
const (
	CTRL_ENABLE     = 0
	CTRL_HFNMIENA   = 1
	CTRL_PRIVDEFENA = 2
)

// Default access policy flags for Enable, selecting how memory not
// covered by any enabled region is treated.
const (
	// HFNMIENA enforces the MPU for HardFault and NMI handlers.
	HFNMIENA = 1 << CTRL_HFNMIENA
	// PRIVDEFENA grants privileged accesses the default memory map as
	// background region.
	PRIVDEFENA = 1 << CTRL_PRIVDEFENA
)

// regions per RNR selection, through the RBAR/RLAR alias pairs
const raliases = 4

// MPU represents a single MPU register bank instance.
type MPU struct {
	// Regs is the bank register block.
	Regs reg.Block

	// Barrier, when set, is invoked before and after protection state
	// changes (see Enable, Disable). Board support sets it to a full
	// memory barrier sequence (DSB, ISB), software modeled banks can
	// leave it nil.
	Barrier func()
}

// Secure is the register bank of the current security state
// (0xE000ED90).
var Secure = &MPU{Regs: reg.MMIO{Base: SecureBase}}

// NonSecure is the alternate register bank, through which Secure state
// configures Non-secure protection (MPU_NS, 0xE002ED90).
var NonSecure = &MPU{Regs: reg.MMIO{Base: NonSecureBase}}

func (m *MPU) barrier() {
	if m.Barrier != nil {
		m.Barrier()
	}
}

// Enable activates the bank, the defaults argument (0 or an OR of
// PRIVDEFENA, HFNMIENA) selects the default access policy for memory not
// covered by any enabled region, 0 denying all such accesses.
//
// Barriers are issued around the control write so that previously loaded
// region configuration takes effect before protection is active, and so
// that execution resumes under the new protection state.
func (m *MPU) Enable(defaults uint32) {
	ctrl := defaults
	bits.SetN(&ctrl, CTRL_ENABLE, 1, 1)

	m.barrier()
	m.Regs.Write(MPU_CTRL, ctrl)
	m.barrier()
}

// Disable deactivates the bank, preserving its default access policy
// bits. Disabling an already disabled bank has no effect.
func (m *MPU) Disable() {
	ctrl := m.Regs.Read(MPU_CTRL)
	bits.SetN(&ctrl, CTRL_ENABLE, 1, 0)

	m.barrier()
	m.Regs.Write(MPU_CTRL, ctrl)
	m.barrier()
}

// Enabled reports whether the bank is active.
func (m *MPU) Enabled() bool {
	ctrl := m.Regs.Read(MPU_CTRL)
	return bits.Get(&ctrl, CTRL_ENABLE, 1) == 1
}

// SetMemAttr loads memory attribute slot idx (0-7) with an attribute
// byte (see NormalAttr, DeviceAttr), preserving the other slots packed in
// the same MAIR register. Regions reference slots through RLAR.
func (m *MPU) SetMemAttr(idx int, attr byte) {
	off := uint32(MPU_MAIR0)

	if idx >= 4 {
		off = MPU_MAIR1
	}

	mair := m.Regs.Read(off)
	bits.SetN(&mair, (idx%4)*8, 0xff, uint32(attr))
	m.Regs.Write(off, mair)
}

// MemAttr returns the attribute held in memory attribute slot idx.
func (m *MPU) MemAttr(idx int) byte {
	off := uint32(MPU_MAIR0)

	if idx >= 4 {
		off = MPU_MAIR1
	}

	mair := m.Regs.Read(off)

	return byte(bits.Get(&mair, (idx%4)*8, 0xff))
}

// ClearRegion makes region n inert, clearing its enable bit along with
// all base and limit fields.
func (m *MPU) ClearRegion(n int) {
	m.Regs.Write(MPU_RNR, uint32(n))
	m.Regs.Write(MPU_RBAR, 0)
	m.Regs.Write(MPU_RLAR, 0)
}

// SetRegion configures and activates region n, the enable bit is set on
// rlar regardless of its value on input. When the bank is disabled the
// configuration is latched but inert until Enable.
func (m *MPU) SetRegion(n int, rbar uint32, rlar uint32) {
	bits.SetN(&rlar, RLAR_EN, 1, 1)

	m.Regs.Write(MPU_RNR, uint32(n))
	m.Regs.Write(MPU_RBAR, rbar)
	m.Regs.Write(MPU_RLAR, rlar)
}

// Region returns the descriptor currently held by region n.
func (m *MPU) Region(n int) Region {
	m.Regs.Write(MPU_RNR, uint32(n))

	return Region{
		RBAR: m.Regs.Read(MPU_RBAR),
		RLAR: m.Regs.Read(MPU_RLAR),
	}
}

// Load installs table as consecutive regions starting at region number
// start, activating every entry.
//
// Writes stream through the RBAR/RLAR alias pairs, which index regions
// relative to RNR[7:2], so the region number register is written once per
// group of four regions rather than per region.
func (m *MPU) Load(start int, table []Region) {
	for len(table) > 0 {
		alias := start % raliases
		n := raliases - alias

		if n > len(table) {
			n = len(table)
		}

		words := make([]uint32, 0, n*2)

		for _, r := range table[:n] {
			rlar := r.RLAR
			bits.SetN(&rlar, RLAR_EN, 1, 1)
			words = append(words, r.RBAR, rlar)
		}

		m.Regs.Write(MPU_RNR, uint32(start-alias))
		reg.Copy(m.Regs, MPU_RBAR+uint32(alias)*8, words)

		start += n
		table = table[n:]
	}
}
