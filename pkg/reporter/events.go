// Package reporter accumulates runner lifecycle events into a test report.
//
// A Reporter is an explicit state machine driven by typed events: the host
// captures the runner's session notifications (run begin, suite begin/end,
// test outcomes, run end) and feeds them to Accept. One Reporter serves one
// run; concurrent runs each own their own instance.
package reporter

// EventKind identifies a runner lifecycle notification.
type EventKind string

// The full lifecycle vocabulary. Events with any other kind are rejected.
const (
	// RunBegin opens a session and resets the accumulated counters.
	RunBegin EventKind = "run-begin"
	// SuiteBegin enters a suite scope. The runner signals the implicit
	// root suite with Root set; that signal is ignored.
	SuiteBegin EventKind = "suite-begin"
	// SuiteEnd leaves the current suite scope.
	SuiteEnd EventKind = "suite-end"
	// TestPass reports a passed test.
	TestPass EventKind = "test-pass"
	// TestFail reports a failed test with its error detail.
	TestFail EventKind = "test-fail"
	// TestPending reports a declared but not executed test.
	TestPending EventKind = "test-pending"
	// RunEnd closes the session and triggers report delivery.
	RunEnd EventKind = "run-end"
)

// Event is a single typed lifecycle notification from a test session.
// The wire form is one JSON object per line when streamed from a runner
// reporter plugin.
type Event struct {
	Kind EventKind `json:"kind"`
	// Title is the suite or test display name.
	Title string `json:"title,omitempty"`
	// Root marks the implicit root suite on suite events.
	Root bool `json:"root,omitempty"`
	// Duration is the test run time in milliseconds.
	Duration float64 `json:"duration,omitempty"`
	// Message is the failure message on test-fail events.
	Message string `json:"message,omitempty"`
	// Stack is the failure stack trace on test-fail events.
	Stack string `json:"stack,omitempty"`
}
