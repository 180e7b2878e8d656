// SPDX-License-Identifier: Unlicense OR MIT

package kernel

import "unsafe"

// kernError is an error type usable in kernel code.
type kernError string

// runKernel is the Go entry point, called from the startup assembly
// with a flat ring 0 GDT in place and interrupts masked.
//
//go:nosplit
func runKernel() {
	if err := initConsole(); err != nil {
		fatalError(err)
	}
	initInterrupts()
	outputString("kern386: interrupts enabled\n")
	for {
		halt()
	}
}

// funcPC extracts the entry point of f.
//
//go:nosplit
func funcPC(f func()) uintptr {
	return **(**uintptr)(unsafe.Pointer(&f))
}

//go:nosplit
func fatalError(err error) {
	// The only error type supported is kernError,
	// but we can't call its Error method directly,
	// because the compiler wrapper is not nosplit.
	switch err := err.(type) {
	case kernError:
		fatal(err.Error())
	default:
		fatal("unsupported error")
	}
}

//go:nosplit
func fatal(msg string) {
	outputString("fatal error: ")
	outputString(msg)
	outputString("\n")
	halt()
}

func start()
func halt()
func outb(port uint16, b uint8)
func inb(port uint16) uint8
func lidt(addr uint32)
func sti()

//go:nosplit
func (k kernError) Error() string {
	return string(k)
}
