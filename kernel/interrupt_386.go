// SPDX-License-Identifier: Unlicense OR MIT

package kernel

import (
	"unsafe"

	"kern386.dev/kern386/idt"
)

// Vector assignments. Vectors below 0x20 are CPU exceptions; the PIC
// delivers IRQ 0 (clock) and IRQ 1 (keyboard) starting at its
// configured base of 0x20. Remapping the PIC is the interrupt
// controller driver's job, not ours.
const (
	intDoubleFault idt.Vector = 0x8
	intClock       idt.Vector = 0x20
	intKeyboard    idt.Vector = 0x21
)

// Global interrupt descriptor table, never touched after
// initialization.
var globalIDT idt.Table

// idtr holds the encoded lidt operand. Static storage, like the table
// itself, so the address stays valid for the life of the system.
var idtr [idt.PointerSize]byte

// initInterrupts builds and installs the IDT. The order is the
// correctness condition: the table is zeroed before the CPU learns its
// address, and every handler is armed before interrupts are unmasked.
// An interrupt delivered through a missing gate faults with no
// recovery path at this layer.
//
//go:nosplit
func initInterrupts() {
	globalIDT.Reset()
	base := uint32(uintptr(unsafe.Pointer(&globalIDT)))
	outputString("idt: table at ")
	outputUint32(base)
	outputString("\n")
	idtr = globalIDT.Pointer(base).Encode()
	lidt(uint32(uintptr(unsafe.Pointer(&idtr))))
	globalIDT.MarkLoaded()
	install(intDoubleFault, doubleFaultTrampoline)
	install(intClock, clockTrampoline)
	install(intKeyboard, keyboardTrampoline)
	globalIDT.MarkActive()
	sti()
}

// install arms the gate for one vector with the entry point of an
// externally implemented handler.
//
//go:nosplit
func install(v idt.Vector, trampoline func()) {
	pc := uint32(funcPC(trampoline))
	globalIDT.Set(v, idt.NewInterruptGate(pc, kernelCodeSelector, idt.Ring0))
}

func doubleFaultTrampoline()
func clockTrampoline()
func keyboardTrampoline()
