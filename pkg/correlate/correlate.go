// Package correlate applies freshly produced test outcomes onto a
// previously discovered, externally owned test tree.
//
// Correlation annotates matching nodes in place and never alters the
// tree's structure or identities. Nodes with no match anywhere in their
// subtree stay unannotated; the caller treats them as not run, not failed.
package correlate

import (
	"sort"

	"github.com/testlens/core/pkg/console"
	"github.com/testlens/core/pkg/domain"
)

// Options configures correlation behavior.
type Options struct {
	// Strict refuses to annotate titles that appear on more than one node
	// in the target tree, reporting them as warnings instead of assigning
	// the same outcome to every duplicate.
	Strict bool
}

// Option configures correlation.
type Option func(*Options)

// WithStrict toggles strict duplicate-title handling.
func WithStrict(strict bool) Option {
	return func(o *Options) {
		o.Strict = strict
	}
}

// AnnotateResults applies a flat title → result map onto the target tree,
// depth-first pre-order: a child whose label is a map key receives the
// outcome and its subtree is not descended; otherwise the search recurses
// into that child with the same map. Sibling subtrees are searched
// independently.
//
// Titles in the map are bare display titles, so a title shared by nodes in
// different suites matches all of them; every duplicate receives the same
// outcome. This imprecision is inherent to console output, which does not
// expose full paths for passing tests. In strict mode such titles are
// skipped and returned as warnings instead.
func AnnotateResults(target domain.TreeNode, results console.ResultMap, opts ...Option) []string {
	if target == nil || len(results) == 0 {
		return nil
	}

	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}

	var warnings []string
	if options.Strict {
		results, warnings = withoutDuplicates(target, results)
	}

	annotateResults(target, results)
	return warnings
}

func annotateResults(node domain.TreeNode, results console.ResultMap) {
	for _, child := range node.Children() {
		if res, ok := results[child.Label()]; ok {
			child.SetOutcome(resultOutcome(res))
			continue
		}
		annotateResults(child, results)
	}
}

func resultOutcome(res console.Result) domain.Outcome {
	if res.Passed {
		return domain.Outcome{State: domain.TestStatePassed}
	}
	return domain.Outcome{State: domain.TestStateFailed, Message: res.Message}
}

// withoutDuplicates removes map keys whose label occurs on more than one
// node of the target tree and reports them, sorted for determinism.
func withoutDuplicates(target domain.TreeNode, results console.ResultMap) (console.ResultMap, []string) {
	counts := make(map[string]int)
	countLabels(target, counts)

	var duplicated []string
	filtered := make(console.ResultMap, len(results))
	for title, res := range results {
		if counts[title] > 1 {
			duplicated = append(duplicated, title)
			continue
		}
		filtered[title] = res
	}

	if len(duplicated) == 0 {
		return results, nil
	}

	sort.Strings(duplicated)
	warnings := make([]string, len(duplicated))
	for i, title := range duplicated {
		warnings[i] = "duplicate title in target tree, not annotated: " + title
	}
	return filtered, warnings
}

func countLabels(node domain.TreeNode, counts map[string]int) {
	for _, child := range node.Children() {
		counts[child.Label()]++
		countLabels(child, counts)
	}
}

// AnnotateReport mirrors a structured report's tree onto the target:
// suites are matched structurally by title before descending, tests by
// full-title equality, which the lockstep walk guarantees. Target levels
// with no counterpart in the report (such as per-file grouping nodes) are
// traversed against the same report suite.
func AnnotateReport(target domain.TreeNode, report *domain.Report) {
	if target == nil || report == nil || report.Root == nil {
		return
	}
	annotateSuite(target, report.Root)
}

func annotateSuite(node domain.TreeNode, suite *domain.TestSuite) {
	for _, child := range node.Children() {
		if sub := findSuite(suite, child.Label()); sub != nil {
			annotateSuite(child, sub)
			continue
		}
		if test := findTest(suite, child.Label()); test != nil {
			child.SetOutcome(testOutcome(test))
			continue
		}
		annotateSuite(child, suite)
	}
}

func findSuite(suite *domain.TestSuite, title string) *domain.TestSuite {
	for _, sub := range suite.Suites {
		if sub.Title == title {
			return sub
		}
	}
	return nil
}

func findTest(suite *domain.TestSuite, title string) *domain.Test {
	for _, t := range suite.Tests {
		if t.Title == title {
			return t
		}
	}
	return nil
}

func testOutcome(t *domain.Test) domain.Outcome {
	o := domain.Outcome{State: t.State}
	if t.Err != nil {
		o.Message = t.Err.Message
	}
	return o
}
