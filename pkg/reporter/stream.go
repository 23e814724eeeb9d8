package reporter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/testlens/core/pkg/domain"
)

// DecodeStream reads newline-delimited JSON events from r and passes each
// decoded event to accept. Blank lines are skipped; a malformed line stops
// decoding and returns the error, as does the first accept failure.
func DecodeStream(r io.Reader, accept func(Event) error) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var e Event
		if err := json.Unmarshal(line, &e); err != nil {
			return fmt.Errorf("decode event: %w", err)
		}
		if err := accept(e); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// Run drives a fresh Reporter from an event stream and returns the
// delivered report. A stream that ends without a run-end event yields a
// nil report and no error: the caller distinguishes "no result" from a
// decode or protocol failure by the error value. Any decode or protocol
// error suppresses the report, even one already delivered by an earlier
// run-end on the same stream: trailing garbage means the capture cannot
// be trusted.
func Run(ctx context.Context, r io.Reader) (*domain.Report, error) {
	var report *domain.Report
	rep := New(func(rp *domain.Report) { report = rp })

	err := DecodeStream(r, func(e Event) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return rep.Accept(e)
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
