// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"kern386.dev/kern386/idt"
)

// gateCmd implements subcommands.Command for the "gate" command.
type gateCmd struct {
	offset   string
	selector uint
	dpl      uint
}

// Name implements subcommands.Command.
func (*gateCmd) Name() string {
	return "gate"
}

// Synopsis implements subcommands.Command.
func (*gateCmd) Synopsis() string {
	return "encode one interrupt gate and print its fields and bytes"
}

// Usage implements subcommands.Command.
func (*gateCmd) Usage() string {
	return `gate -offset ADDR [-selector SEL] [-dpl RING]
`
}

// SetFlags implements subcommands.Command.
func (c *gateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.offset, "offset", "", "handler entry point address.")
	f.UintVar(&c.selector, "selector", 0x08, "code segment selector.")
	f.UintVar(&c.dpl, "dpl", 0, "descriptor privilege level (0 or 3).")
}

// Execute implements subcommands.Command.Execute.
func (c *gateCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if c.offset == "" || f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	off, err := parseAddr(c.offset)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if c.dpl != 0 && c.dpl != 3 {
		fmt.Fprintf(os.Stderr, "bad dpl %d: hardware rings here are 0 and 3\n", c.dpl)
		return subcommands.ExitUsageError
	}
	g := idt.NewInterruptGate(off, idt.Selector(c.selector), idt.Ring(c.dpl))
	printGate(os.Stdout, g)
	return subcommands.ExitSuccess
}

func printGate(w io.Writer, g idt.Gate) {
	enc := g.Encode()
	fmt.Fprintf(w, "offset     %#08x (low %#04x, high %#04x)\n",
		g.Offset(), g.Offset()&0xffff, g.Offset()>>16)
	fmt.Fprintf(w, "selector   %#04x\n", uint16(g.Selector()))
	fmt.Fprintf(w, "reserved   %#02x\n", g.ReservedByte())
	fmt.Fprintf(w, "attributes %#02x (present=%t dpl=%d type=%#x)\n",
		g.Attributes(), g.Present(), g.DPL(), g.GateType())
	fmt.Fprintf(w, "bytes      % x\n", enc[:])
}
