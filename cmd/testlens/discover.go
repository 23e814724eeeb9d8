package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/testlens/core/pkg/discovery"
)

type discoverCmd struct {
	patterns string
	workers  int
}

func (*discoverCmd) Name() string     { return "discover" }
func (*discoverCmd) Synopsis() string { return "discover the test tree under a directory" }
func (*discoverCmd) Usage() string {
	return `discover [-patterns <glob,glob>] [-workers <n>] <dir>:
  Scan a directory for test files and print the discovered test tree.
`
}

func (c *discoverCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.patterns, "patterns", "", "comma-separated glob patterns to filter test files")
	f.IntVar(&c.workers, "workers", 0, "number of concurrent file parsers (0 = GOMAXPROCS)")
}

func (c *discoverCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	result, err := discovery.Scan(ctx, f.Arg(0), c.scanOptions()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "testlens: %v\n", err)
		return subcommands.ExitFailure
	}
	reportScanErrors(result.Errors)

	tree := discovery.BuildTree(result.Files)
	renderTree(os.Stdout, tree)
	fmt.Printf("\n%d files, %d tests\n", len(result.Files), countSpecs(result))
	return subcommands.ExitSuccess
}

func (c *discoverCmd) scanOptions() []discovery.Option {
	opts := []discovery.Option{discovery.WithWorkers(c.workers)}
	if c.patterns != "" {
		opts = append(opts, discovery.WithPatterns(strings.Split(c.patterns, ",")))
	}
	return opts
}

func countSpecs(result *discovery.Result) int {
	count := 0
	for _, file := range result.Files {
		count += file.CountSpecs()
	}
	return count
}

func reportScanErrors(errs []discovery.ScanError) {
	for _, scanErr := range errs {
		fmt.Fprintf(os.Stderr, "testlens: %v\n", scanErr)
	}
}
