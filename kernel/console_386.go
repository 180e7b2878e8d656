// SPDX-License-Identifier: Unlicense OR MIT

package kernel

// Polled output over the 8250 UART at the standard COM1 ports.

const (
	com1Data    = 0x3f8
	com1IntEn   = 0x3f9
	com1FIFO    = 0x3fa
	com1LineCtl = 0x3fb
	com1LineSts = 0x3fd
	com1Scratch = 0x3ff
)

//go:nosplit
func initConsole() error {
	// Probe the scratch register before trusting the port.
	outb(com1Scratch, 0x5a)
	if inb(com1Scratch) != 0x5a {
		return kernError("initConsole: no serial port at COM1")
	}
	outb(com1IntEn, 0x00)   // Mask UART interrupts; output is polled.
	outb(com1LineCtl, 1<<7) // DLAB on.
	outb(com1Data, 0x01)    // 115200 baud divisor, low byte.
	outb(com1IntEn, 0x00)   // Divisor high byte.
	outb(com1LineCtl, 0x03) // 8n1, DLAB off.
	outb(com1FIFO, 0xc7)    // Enable and clear FIFOs.
	return nil
}

//go:nosplit
func outputByte(b byte) {
	// Wait for the transmit holding register to drain.
	for inb(com1LineSts)&(1<<5) == 0 {
	}
	outb(com1Data, b)
}

//go:nosplit
func outputString(s string) {
	for i := 0; i < len(s); i++ {
		outputByte(s[i])
	}
}

// outputUint32 writes v in fixed-width hexadecimal.
//
//go:nosplit
func outputUint32(v uint32) {
	const digits = "0123456789abcdef"
	outputString("0x")
	for shift := 28; shift >= 0; shift -= 4 {
		outputByte(digits[v>>uint(shift)&0xf])
	}
}
