// SPDX-License-Identifier: Unlicense OR MIT

package kernel

import "kern386.dev/kern386/idt"

// Segment selectors laid down by the boot GDT. Only the flat ring 0
// code segment matters here; every gate carries it so the CPU reloads
// CS before jumping to a handler.
const (
	// Mandatory null selector.
	_ = iota
	segmentCode0
	segmentData0
)

// kernelCodeSelector is the selector every interrupt gate dispatches
// through: GDT index shifted past the RPL and table-indicator bits,
// ring 0.
const kernelCodeSelector = idt.Selector(segmentCode0 << 3)
