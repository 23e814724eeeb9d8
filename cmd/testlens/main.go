// Command testlens discovers browser-runner test trees and annotates them
// with results parsed from captured runner output.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(&discoverCmd{}, "")
	subcommands.Register(&annotateCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
