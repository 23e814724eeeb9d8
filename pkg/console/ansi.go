package console

import "regexp"

// ansiPattern matches CSI sequences (colors, cursor movement) and OSC
// sequences (titles, hyperlinks) terminated by BEL or ST.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)?`)

// StripANSI removes ANSI escape and control sequences from s. Runner output
// is decorated with color codes; stripping happens before any pattern
// matching so glyph and title extraction see plain text.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
