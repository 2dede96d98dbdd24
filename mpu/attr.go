// Copyright (c) The armv8m-mpu authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mpu

// CachePolicy describes the cacheability of normal memory for one of its
// two (outer, inner) domains.
type CachePolicy struct {
	NonTransient  bool
	WriteBack     bool
	ReadAllocate  bool
	WriteAllocate bool
}

// Device memory variants
// (G = Gathering, R = Reordering, E = Early-write acknowledgement)
const (
	DEVICE_nGnRnE = iota
	DEVICE_nGnRE
	DEVICE_nGRE
	DEVICE_GRE
)

// MAIR nibble for normal non-cacheable memory
const nonCacheable = 0b0100

// DeviceAttr returns the memory attribute for device memory of the given
// kind (DEVICE_nGnRnE, DEVICE_nGnRE, DEVICE_nGRE, DEVICE_GRE). The high
// nibble is always the device marker (0), which distinguishes device from
// normal attributes on decode.
func DeviceAttr(kind int) byte {
	return byte(kind&0b11) << 2
}

// NormalAttr returns the memory attribute for normal memory with the
// given outer (bits 7:4) and inner (bits 3:0) cache policies. A policy
// with no write-back and no allocation hints encodes as non-cacheable.
//
// Transient write-back with no allocation hints packs to the same nibble
// as the non-cacheable encoding, the hardware cannot tell the two apart.
//
// Arguments must describe normal memory, device attributes are built with
// DeviceAttr.
func NormalAttr(outer, inner CachePolicy) byte {
	return nibble(outer)<<4 | nibble(inner)
}

func nibble(p CachePolicy) (n byte) {
	if !p.WriteBack && !p.ReadAllocate && !p.WriteAllocate {
		return nonCacheable
	}

	if p.NonTransient {
		n |= 1 << 3
	}

	if p.WriteBack {
		n |= 1 << 2
	}

	if p.ReadAllocate {
		n |= 1 << 1
	}

	if p.WriteAllocate {
		n |= 1 << 0
	}

	return
}

// IsDeviceAttr reports whether attr encodes device memory.
func IsDeviceAttr(attr byte) bool {
	return attr>>4 == 0
}

// DeviceAttrKind returns the device memory kind encoded in a device
// attribute.
func DeviceAttrKind(attr byte) int {
	return int(attr>>2) & 0b11
}

// CachePolicies returns the outer and inner cache policies encoded in a
// normal memory attribute. The non-cacheable nibble decodes as the zero
// CachePolicy, including when it was produced by a transient write-back
// policy with no allocation hints (see NormalAttr).
func CachePolicies(attr byte) (outer, inner CachePolicy) {
	return policy(attr >> 4), policy(attr & 0xf)
}

func policy(n byte) (p CachePolicy) {
	if n == nonCacheable {
		return
	}

	p.NonTransient = n&(1<<3) != 0
	p.WriteBack = n&(1<<2) != 0
	p.ReadAllocate = n&(1<<1) != 0
	p.WriteAllocate = n&(1<<0) != 0

	return
}
