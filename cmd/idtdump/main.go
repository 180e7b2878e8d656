// SPDX-License-Identifier: Unlicense OR MIT

// Command idtdump encodes x86 interrupt descriptors and prints their
// exact memory layout. Descriptor bugs are invisible until an
// interrupt fires; comparing against this reference output is the way
// to catch them while the code is still on the bench.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(new(gateCmd), "")
	subcommands.Register(new(tableCmd), "")
	subcommands.Register(new(layoutCmd), "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
