// Package domain defines the core types for test reports and test trees.
package domain

import "time"

// TestState represents the outcome of an executed test.
type TestState string

// Test outcome values as reported by the runner.
const (
	// TestStatePassed indicates the test ran and its assertions held.
	TestStatePassed TestState = "passed"
	// TestStateFailed indicates the test ran and an assertion or error occurred.
	TestStateFailed TestState = "failed"
	// TestStatePending indicates the test was declared but not executed.
	TestStatePending TestState = "pending"
)

// PathSeparator joins suite and test titles into full titles.
const PathSeparator = " > "

// JoinTitle computes the full title of a child under a parent full title.
// The root suite has an empty full title, so its direct children keep their
// bare titles.
func JoinTitle(parentFullTitle, title string) string {
	if parentFullTitle == "" {
		return title
	}
	return parentFullTitle + PathSeparator + title
}

// TestError carries the failure detail attached to a failed test.
type TestError struct {
	// Message is the error message reported by the runner.
	Message string `json:"message"`
	// Stack is the stack trace text, when the runner provided one.
	Stack string `json:"stack,omitempty"`
}

// Test represents a single executed test. A Test is immutable once appended
// to a suite.
type Test struct {
	// Title is the display name, unique within its parent suite.
	Title string `json:"title"`
	// FullTitle is the separator-joined path from the root, unique within a report.
	FullTitle string `json:"fullTitle"`
	// State is the reported outcome.
	State TestState `json:"state"`
	// Duration is the reported run time; zero when the runner did not report one.
	Duration time.Duration `json:"duration,omitempty"`
	// Err holds failure details for failed tests.
	Err *TestError `json:"error,omitempty"`
}

// TestSuite is a named grouping of tests and nested sub-suites. The root
// suite has empty Title and FullTitle and is never emitted as a labeled node.
type TestSuite struct {
	// Title is the display name, unique within its parent suite.
	Title string `json:"title"`
	// FullTitle is the separator-joined path from the root.
	FullTitle string `json:"fullTitle"`
	// Suites contains the nested sub-suites, in declaration order.
	Suites []*TestSuite `json:"suites,omitempty"`
	// Tests contains the direct child tests, in declaration order.
	Tests []*Test `json:"tests,omitempty"`
}

// NewRootSuite creates the unlabeled root of a report tree.
func NewRootSuite() *TestSuite {
	return &TestSuite{}
}

// AddSuite appends a child suite with the given title and returns it.
// The child's full title is derived from this suite's ancestor chain.
func (s *TestSuite) AddSuite(title string) *TestSuite {
	child := &TestSuite{
		Title:     title,
		FullTitle: JoinTitle(s.FullTitle, title),
	}
	s.Suites = append(s.Suites, child)
	return child
}

// AddTest appends a test to this suite. The test's full title is derived
// from this suite when unset.
func (s *TestSuite) AddTest(t *Test) {
	if t.FullTitle == "" {
		t.FullTitle = JoinTitle(s.FullTitle, t.Title)
	}
	s.Tests = append(s.Tests, t)
}

// CountTests returns the total number of tests in this suite and below.
func (s *TestSuite) CountTests() int {
	count := len(s.Tests)
	for _, sub := range s.Suites {
		count += sub.CountTests()
	}
	return count
}

// Depth returns the maximum suite nesting depth below this suite.
// A suite with no sub-suites has depth zero.
func (s *TestSuite) Depth() int {
	depth := 0
	for _, sub := range s.Suites {
		if d := sub.Depth() + 1; d > depth {
			depth = d
		}
	}
	return depth
}

// Walk visits every test in this suite and below, depth-first in
// declaration order.
func (s *TestSuite) Walk(fn func(*Test)) {
	for _, t := range s.Tests {
		fn(t)
	}
	for _, sub := range s.Suites {
		sub.Walk(fn)
	}
}

// Stats aggregates the counters of one test execution.
type Stats struct {
	Suites   int `json:"suites"`
	Tests    int `json:"tests"`
	Passes   int `json:"passes"`
	Pending  int `json:"pending"`
	Failures int `json:"failures"`
	// Start and End are the wall-clock boundaries of the run, when known.
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`
	// Duration is End minus Start.
	Duration time.Duration `json:"duration,omitempty"`
}

// Report is one complete hierarchical outcome snapshot of a single test
// execution. Reports are created fresh per run and discarded after
// correlation.
type Report struct {
	Stats Stats      `json:"stats"`
	Root  *TestSuite `json:"root"`
}
