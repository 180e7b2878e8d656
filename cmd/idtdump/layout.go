// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"kern386.dev/kern386/idt"
)

// layoutCmd implements subcommands.Command for the "layout" command.
type layoutCmd struct{}

// Name implements subcommands.Command.
func (*layoutCmd) Name() string {
	return "layout"
}

// Synopsis implements subcommands.Command.
func (*layoutCmd) Synopsis() string {
	return "print the hardware descriptor layouts"
}

// Usage implements subcommands.Command.
func (*layoutCmd) Usage() string {
	return `layout
`
}

// SetFlags implements subcommands.Command.
func (*layoutCmd) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*layoutCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	fmt.Printf("gate descriptor: %d bytes x %d vectors = %d bytes\n",
		idt.GateSize, idt.NumVectors, idt.GateSize*idt.NumVectors)
	fmt.Println("  bits  0-15  offset low half")
	fmt.Println("  bits 16-31  code segment selector")
	fmt.Println("  bits 32-39  reserved, zero")
	fmt.Println("  bits 40-47  attributes: P | DPL(2) | S | type(4)")
	fmt.Println("  bits 48-63  offset high half")
	fmt.Printf("table pointer: %d bytes\n", idt.PointerSize)
	fmt.Println("  bits  0-15  limit, table size minus one")
	fmt.Println("  bits 16-47  table base address")
	var tbl idt.Table
	fmt.Printf("limit for a full table: %d\n", tbl.Pointer(0).Limit)
	return subcommands.ExitSuccess
}
