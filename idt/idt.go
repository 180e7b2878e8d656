// SPDX-License-Identifier: Unlicense OR MIT

// Package idt constructs the 32-bit x86 interrupt descriptor table.
//
// The gate and pointer layouts follow the Intel Architectures Manual
// Vol. 3, 6.11 ("IDT Descriptors"). All packing is explicit shift and
// mask arithmetic on integer words; the CPU reads the table from
// little-endian memory, so the in-memory uint64 representation of a
// gate is the wire format.
package idt

import "encoding/binary"

const (
	// GateSize is the size in bytes of one gate descriptor.
	GateSize = 8
	// NumVectors is the number of interrupt vectors the CPU
	// dispatches through the table.
	NumVectors = 256
	// PointerSize is the size in bytes of the encoded lidt operand.
	PointerSize = 6
)

// Vector is an interrupt or exception number. The uint8 domain makes
// out-of-range vectors unrepresentable; there is no index to check at
// the call site.
type Vector uint8

// Selector identifies the code segment the CPU switches to before
// jumping to a handler.
type Selector uint16

// Ring is a CPU privilege level.
type Ring uint8

const (
	Ring0 Ring = 0
	Ring3 Ring = 3
)

// Attribute byte of a gate: present flag, privilege level in bits 6-5,
// storage-segment flag (always 0 for interrupt gates) and the gate
// type in the low nibble.
const (
	attrPresent = 1 << 7
	// 32-bit interrupt gate.
	gateTypeInterrupt32 = 0xe
)

// Gate is one 8-byte interrupt gate descriptor. Uses uint64 to force
// 8-byte alignment.
type Gate uint64

// NewInterruptGate returns a present 32-bit interrupt gate dispatching
// to offset through the code segment sel at privilege level dpl. The
// handler offset is split into its low and high 16-bit halves; the
// halves occupy the first and last words of the descriptor.
//
//go:nosplit
func NewInterruptGate(offset uint32, sel Selector, dpl Ring) Gate {
	attr := uint64(attrPresent) | uint64(dpl&3)<<5 | gateTypeInterrupt32
	return Gate(uint64(offset&0xffff) |
		uint64(sel)<<16 |
		attr<<40 |
		uint64(offset>>16)<<48)
}

// Offset reassembles the handler address from its split halves.
//
//go:nosplit
func (g Gate) Offset() uint32 {
	return uint32(g&0xffff) | uint32(g>>48)<<16
}

// Selector returns the code segment selector of the gate.
//
//go:nosplit
func (g Gate) Selector() Selector {
	return Selector(g >> 16)
}

// ReservedByte returns the byte between the selector and the
// attributes. It is zero in every valid descriptor.
//
//go:nosplit
func (g Gate) ReservedByte() uint8 {
	return uint8(g >> 32)
}

// Attributes returns the packed attribute byte.
//
//go:nosplit
func (g Gate) Attributes() uint8 {
	return uint8(g >> 40)
}

// Present reports whether the CPU considers the gate armed. A zeroed
// entry is not present; an interrupt through it faults cleanly instead
// of jumping to garbage.
//
//go:nosplit
func (g Gate) Present() bool {
	return g.Attributes()&attrPresent != 0
}

// DPL returns the descriptor privilege level.
//
//go:nosplit
func (g Gate) DPL() Ring {
	return Ring(g.Attributes() >> 5 & 3)
}

// GateType returns the type nibble of the attribute byte.
//
//go:nosplit
func (g Gate) GateType() uint8 {
	return g.Attributes() & 0xf
}

// Encode serializes the gate in the byte order the CPU reads.
func (g Gate) Encode() [GateSize]byte {
	var b [GateSize]byte
	binary.LittleEndian.PutUint64(b[:], uint64(g))
	return b
}

// Pointer is the 6-byte operand of the lidt instruction: a 16-bit
// limit followed by the 32-bit table base address.
type Pointer struct {
	Limit uint16
	Base  uint32
}

// Encode serializes the pointer in the byte order the CPU reads.
//
//go:nosplit
func (p Pointer) Encode() [PointerSize]byte {
	var b [PointerSize]byte
	binary.LittleEndian.PutUint16(b[:2], p.Limit)
	binary.LittleEndian.PutUint32(b[2:], p.Base)
	return b
}
