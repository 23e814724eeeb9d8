package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/testlens/core/pkg/console"
	"github.com/testlens/core/pkg/correlate"
	"github.com/testlens/core/pkg/discovery"
	"github.com/testlens/core/pkg/domain"
	"github.com/testlens/core/pkg/reporter"
)

type annotateCmd struct {
	conventions string
	events      bool
	strict      bool
}

func (*annotateCmd) Name() string { return "annotate" }
func (*annotateCmd) Synopsis() string {
	return "annotate a discovered test tree with results from a captured run"
}
func (*annotateCmd) Usage() string {
	return `annotate [-conventions <file>] [-events] [-strict] <dir> <logfile>:
  Scan a directory for test files, parse a captured runner log, and print
  the test tree annotated with outcomes. With -events the log is read as a
  newline-delimited JSON lifecycle event stream instead of console text.
`
}

func (c *annotateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.conventions, "conventions", "", "YAML file overriding the runner output conventions")
	f.BoolVar(&c.events, "events", false, "treat the log as a structured event stream")
	f.BoolVar(&c.strict, "strict", false, "refuse to annotate duplicated test titles")
}

func (c *annotateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	result, err := discovery.Scan(ctx, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "testlens: %v\n", err)
		return subcommands.ExitFailure
	}
	reportScanErrors(result.Errors)
	tree := discovery.BuildTree(result.Files)

	if c.events {
		if status := c.annotateFromEvents(ctx, f.Arg(1), tree); status != subcommands.ExitSuccess {
			return status
		}
	} else {
		if status := c.annotateFromLog(f.Arg(1), tree); status != subcommands.ExitSuccess {
			return status
		}
	}

	renderTree(os.Stdout, tree)
	return subcommands.ExitSuccess
}

func (c *annotateCmd) annotateFromLog(path string, tree *domain.TreeItem) subcommands.ExitStatus {
	conv := console.DefaultConventions()
	if c.conventions != "" {
		var err error
		conv, err = console.LoadConventions(c.conventions)
		if err != nil {
			fmt.Fprintf(os.Stderr, "testlens: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	text, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "testlens: read log: %v\n", err)
		return subcommands.ExitFailure
	}

	results := console.NewParser(console.WithConventions(conv)).Parse(string(text))
	warnings := correlate.AnnotateResults(tree, results, correlate.WithStrict(c.strict))
	for _, warning := range warnings {
		fmt.Fprintf(os.Stderr, "testlens: %s\n", warning)
	}
	return subcommands.ExitSuccess
}

func (c *annotateCmd) annotateFromEvents(ctx context.Context, path string, tree *domain.TreeItem) subcommands.ExitStatus {
	stream, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "testlens: open events: %v\n", err)
		return subcommands.ExitFailure
	}
	defer stream.Close()

	report, err := reporter.Run(ctx, stream)
	if err != nil {
		fmt.Fprintf(os.Stderr, "testlens: %v\n", err)
		return subcommands.ExitFailure
	}
	if report == nil {
		fmt.Fprintln(os.Stderr, "testlens: event stream ended without a run-end event, no result")
		return subcommands.ExitFailure
	}

	correlate.AnnotateReport(tree, report)
	return subcommands.ExitSuccess
}
