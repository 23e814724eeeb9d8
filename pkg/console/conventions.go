// Package console recovers test results from captured runner console output.
//
// When the runner is driven as an opaque child process, only its stdout and
// stderr text is available. The parser reconstructs a flat map of test title
// to pass/fail result from that text in two independent passes: a result-line
// scan and a failure-block scan.
package console

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Conventions describes the runner's console formatting: the result glyphs,
// the failure-block marker, the path separator inside failure headers, and
// the lines that terminate a failure block. The terminator set depends on
// the runner's current output format and is configuration, not a constant;
// upstream formatting changes only require a conventions update.
type Conventions struct {
	// CheckGlyphs are the glyphs that mark a passed result line. Any other
	// single-glyph token in result position marks a failure.
	CheckGlyphs []string `yaml:"checkGlyphs" json:"checkGlyphs"`
	// FailureMarker opens a failure-detail block, followed by the full
	// separator-joined test path.
	FailureMarker string `yaml:"failureMarker" json:"failureMarker"`
	// PathSeparator splits the full test path in failure headers.
	PathSeparator string `yaml:"pathSeparator" json:"pathSeparator"`
	// FinishedMarker is the line prefix the runner prints when a session
	// completes; it terminates a failure block.
	FinishedMarker string `yaml:"finishedMarker" json:"finishedMarker"`
	// BrowserLabels are the environment names the runner prints per-browser
	// summaries under; a line starting with one terminates a failure block.
	BrowserLabels []string `yaml:"browserLabels" json:"browserLabels"`
}

// DefaultConventions returns the conventions of the current runner output
// format.
func DefaultConventions() Conventions {
	return Conventions{
		CheckGlyphs:    []string{"✓", "✔"},
		FailureMarker:  "❌",
		PathSeparator:  ">",
		FinishedMarker: "Finished",
		BrowserLabels:  []string{"Chromium", "Chrome", "Firefox", "Safari", "Webkit", "Edge"},
	}
}

// LoadConventions reads a YAML conventions file, validates it against the
// embedded schema, and merges it over the defaults. Fields absent from the
// file keep their default values.
func LoadConventions(path string) (Conventions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Conventions{}, fmt.Errorf("read conventions: %w", err)
	}

	if err := validateConventions(data); err != nil {
		return Conventions{}, fmt.Errorf("conventions %s: %w", path, err)
	}

	conv := DefaultConventions()
	if err := yaml.Unmarshal(data, &conv); err != nil {
		return Conventions{}, fmt.Errorf("parse conventions %s: %w", path, err)
	}
	return conv, nil
}
