package reporter

import (
	"errors"
	"fmt"
	"time"

	"github.com/testlens/core/pkg/domain"
)

var (
	// ErrSuiteMismatch is returned when a suite-end event arrives without a
	// matching suite-begin. Suite events must nest correctly; a mismatch is
	// a protocol violation, not recoverable within the run.
	ErrSuiteMismatch = errors.New("reporter: suite end without matching begin")
	// ErrProtocol is returned for other lifecycle violations: events after
	// run-end, a duplicate run-begin, or an unknown event kind.
	ErrProtocol = errors.New("reporter: lifecycle protocol violation")
)

// Reporter builds a domain.Report from a session's lifecycle events.
//
// The suite stack is explicit mutable state owned by this instance: the
// root suite is pushed at construction, suite-begin pushes, suite-end pops.
// Once any Accept fails the Reporter stays in a permanent error state and
// never delivers a report.
type Reporter struct {
	onReport func(*domain.Report)

	root    *domain.TestSuite
	stack   []*domain.TestSuite
	stats   domain.Stats
	started bool
	done    bool
	err     error
}

// New creates a Reporter for one run. The callback receives the assembled
// report exactly once, when the run-end event arrives. If the session never
// ends, the callback is never invoked; the caller applies its own timeout
// and treats non-delivery as "no result".
func New(onReport func(*domain.Report)) *Reporter {
	root := domain.NewRootSuite()
	return &Reporter{
		onReport: onReport,
		root:     root,
		stack:    []*domain.TestSuite{root},
	}
}

// Accept applies one lifecycle event to the accumulator.
func (r *Reporter) Accept(e Event) error {
	if r.err != nil {
		return fmt.Errorf("permanent error state: %w", r.err)
	}
	if r.done {
		return r.fail(fmt.Errorf("%w: %s after run end", ErrProtocol, e.Kind))
	}

	switch e.Kind {
	case RunBegin:
		if r.started {
			return r.fail(fmt.Errorf("%w: duplicate run begin", ErrProtocol))
		}
		r.started = true
		r.stats = domain.Stats{Start: time.Now()}

	case SuiteBegin:
		if e.Root {
			return nil
		}
		r.stats.Suites++
		child := r.top().AddSuite(e.Title)
		r.stack = append(r.stack, child)

	case SuiteEnd:
		if e.Root {
			return nil
		}
		if len(r.stack) <= 1 {
			return r.fail(ErrSuiteMismatch)
		}
		r.stack = r.stack[:len(r.stack)-1]

	case TestPass:
		r.stats.Tests++
		r.stats.Passes++
		r.addTest(e, domain.TestStatePassed, nil)

	case TestFail:
		r.stats.Tests++
		r.stats.Failures++
		r.addTest(e, domain.TestStateFailed, &domain.TestError{
			Message: e.Message,
			Stack:   e.Stack,
		})

	case TestPending:
		r.stats.Tests++
		r.stats.Pending++
		r.addTest(e, domain.TestStatePending, nil)

	case RunEnd:
		if !r.started {
			return r.fail(fmt.Errorf("%w: run end before run begin", ErrProtocol))
		}
		r.done = true
		r.stats.End = time.Now()
		r.stats.Duration = r.stats.End.Sub(r.stats.Start)
		if r.onReport != nil {
			r.onReport(&domain.Report{Stats: r.stats, Root: r.root})
		}

	default:
		return r.fail(fmt.Errorf("%w: unknown event kind %q", ErrProtocol, e.Kind))
	}

	return nil
}

// Done reports whether the run-end event has been accepted.
func (r *Reporter) Done() bool {
	return r.done
}

func (r *Reporter) top() *domain.TestSuite {
	return r.stack[len(r.stack)-1]
}

func (r *Reporter) addTest(e Event, state domain.TestState, terr *domain.TestError) {
	r.top().AddTest(&domain.Test{
		Title:    e.Title,
		State:    state,
		Duration: time.Duration(e.Duration * float64(time.Millisecond)),
		Err:      terr,
	})
}

func (r *Reporter) fail(err error) error {
	r.err = err
	r.stack = nil
	return err
}
