// Copyright (c) The armv8m-mpu authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package reg provides primitives for register-width access to memory
// mapped device registers.
//
// Every access is issued as a single 32-bit load or store which the
// compiler cannot reorder, merge or elide, matching the strictly ordered
// semantics required by device memory.
package reg

import (
	"sync/atomic"
	"unsafe"
)

// Block represents word-granular access to a device register block.
//
// On hardware a Block is MMIO backed, software models of a register block
// satisfy the same interface.
type Block interface {
	Read(off uint32) uint32
	Write(off uint32, val uint32)
}

// MMIO is a Block backed by a memory mapped register file starting at
// Base.
type MMIO struct {
	Base uintptr
}

// Read performs a single ordered 32-bit load of the register at off.
func (m MMIO) Read(off uint32) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(m.Base + uintptr(off))))
}

// Write performs a single ordered 32-bit store to the register at off.
func (m MMIO) Write(off uint32, val uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(m.Base+uintptr(off))), val)
}

// Copy writes words to consecutive registers starting at off, one ordered
// store per word, in slice order. Destination bounds are a caller
// responsibility.
func Copy(b Block, off uint32, words []uint32) {
	for i, val := range words {
		b.Write(off+uint32(i)*4, val)
	}
}
