// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"kern386.dev/kern386/idt"
)

// tableCmd implements subcommands.Command for the "table" command.
type tableCmd struct {
	base     string
	selector uint
}

// Name implements subcommands.Command.
func (*tableCmd) Name() string {
	return "table"
}

// Synopsis implements subcommands.Command.
func (*tableCmd) Synopsis() string {
	return "build a table from VECTOR=ADDR pairs and print the armed entries"
}

// Usage implements subcommands.Command.
func (*tableCmd) Usage() string {
	return `table [-base ADDR] [-selector SEL] VECTOR=ADDR ...
`
}

// SetFlags implements subcommands.Command.
func (c *tableCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.base, "base", "0", "table base address for the lidt operand.")
	f.UintVar(&c.selector, "selector", 0x08, "code segment selector for every gate.")
}

// Execute implements subcommands.Command.Execute.
func (c *tableCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	base, err := parseAddr(c.base)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	var tbl idt.Table
	tbl.Reset()
	for _, arg := range f.Args() {
		v, addr, err := parseEntry(arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		tbl.Set(v, idt.NewInterruptGate(addr, idt.Selector(c.selector), idt.Ring0))
	}

	p := tbl.Pointer(base)
	enc := p.Encode()
	fmt.Printf("idtr: limit %d base %#08x, bytes % x\n", p.Limit, p.Base, enc[:])
	for v := 0; v < idt.NumVectors; v++ {
		g := tbl.Gate(idt.Vector(v))
		if !g.Present() {
			continue
		}
		gb := g.Encode()
		fmt.Printf("%3d: offset %#08x selector %#04x attributes %#02x  % x\n",
			v, g.Offset(), uint16(g.Selector()), g.Attributes(), gb[:])
	}
	return subcommands.ExitSuccess
}
