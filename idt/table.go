// SPDX-License-Identifier: Unlicense OR MIT

package idt

import "encoding/binary"

// State tracks the install lifecycle of a Table. Transitions only move
// forward; there is no designed way back from Active.
type State uint8

const (
	// Uninitialized is the zero state; the gate array may hold
	// anything and must not be interpreted.
	Uninitialized State = iota
	// Zeroed means every entry holds a non-present gate.
	Zeroed
	// Loaded means the CPU has been handed the table address and
	// consults this exact memory on every interrupt from now on.
	Loaded
	// Active means interrupts are (about to be) unmasked. The table
	// is now shared with the hardware dispatch path and no further
	// software mutation is allowed.
	Active
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Zeroed:
		return "zeroed"
	case Loaded:
		return "loaded"
	case Active:
		return "active"
	}
	return "unknown"
}

// Table is the in-memory interrupt descriptor table. The gate array is
// the first field so that the address of a Table is the base address
// handed to the CPU. A Table is exclusively owned by its installer
// until Active; afterwards the CPU reads it on every interrupt.
type Table struct {
	gates [NumVectors]Gate
	state State
}

// Reset overwrites every entry with zero bytes so that a vector nobody
// registers dispatches through a non-present gate instead of whatever
// the memory held before.
//
//go:nosplit
func (t *Table) Reset() {
	if t.state != Uninitialized {
		panic("idt: Reset on an initialized table")
	}
	for i := range t.gates {
		t.gates[i] = 0
	}
	t.state = Zeroed
}

// Set arms the gate for vector v. Overwriting an armed entry is safe;
// setup runs single threaded with interrupts still masked. Arming
// entries after Active would publish a torn write to the hardware
// dispatch path and is refused.
//
//go:nosplit
func (t *Table) Set(v Vector, g Gate) {
	switch t.state {
	case Uninitialized:
		panic("idt: Set before Reset")
	case Active:
		panic("idt: Set after interrupts were enabled")
	}
	t.gates[v] = g
}

// Gate returns the entry for vector v.
//
//go:nosplit
func (t *Table) Gate(v Vector) Gate {
	return t.gates[v]
}

// Pointer returns the lidt operand for a table placed at base. The
// limit is the table size minus one; the CPU convention is the address
// of the last valid byte, not the size.
//
//go:nosplit
func (t *Table) Pointer(base uint32) Pointer {
	return Pointer{
		Limit: GateSize*NumVectors - 1,
		Base:  base,
	}
}

// MarkLoaded records that the table was handed to the CPU with lidt.
//
//go:nosplit
func (t *Table) MarkLoaded() {
	if t.state != Zeroed {
		panic("idt: MarkLoaded on a table that was not zeroed")
	}
	t.state = Loaded
}

// MarkActive records that interrupts are about to be unmasked. The
// caller must have armed every vector it expects to fire; an interrupt
// through a non-present gate is a fault with no recovery path.
//
//go:nosplit
func (t *Table) MarkActive() {
	if t.state != Loaded {
		panic("idt: MarkActive on a table that was not loaded")
	}
	t.state = Active
}

// State returns the current lifecycle state.
//
//go:nosplit
func (t *Table) State() State {
	return t.state
}

// Image serializes the table exactly as the CPU reads it from memory.
func (t *Table) Image() []byte {
	b := make([]byte, 0, GateSize*NumVectors)
	for _, g := range t.gates {
		b = binary.LittleEndian.AppendUint64(b, uint64(g))
	}
	return b
}
