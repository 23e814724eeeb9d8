package console

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Result is the parsed outcome for one test title.
type Result struct {
	// Passed is true when the result line carried a check glyph.
	Passed bool
	// Message is the failure-block body text associated with the title,
	// empty when no block matched.
	Message string
}

// ResultMap maps test display titles (not full paths) to parsed results.
// Keys are not globally unique: a title shared by tests in different suites
// collapses to one entry, the last occurrence winning.
type ResultMap map[string]Result

// Parser recovers a ResultMap from free-form console text. A Parser is
// stateless between calls: Parse is pure, deterministic, and safe to call
// concurrently on independent inputs.
type Parser struct {
	conv Conventions
}

// Option configures a Parser.
type Option func(*Parser)

// WithConventions overrides the runner output conventions.
func WithConventions(conv Conventions) Option {
	return func(p *Parser) {
		p.conv = conv
	}
}

// NewParser creates a parser with the default conventions unless overridden.
func NewParser(opts ...Option) *Parser {
	p := &Parser{conv: DefaultConventions()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse scans text in two independent passes: result lines first, then
// failure-detail blocks whose messages are attached to matching titles.
// Empty or unparseable input yields an empty map, never an error.
func (p *Parser) Parse(text string) ResultMap {
	clean := StripANSI(text)
	lines := strings.Split(clean, "\n")

	results := p.scanResultLines(lines)
	p.attachFailureMessages(lines, results)
	return results
}

// scanResultLines builds the title → pass/fail map. A line contributes only
// if it has the exact shape: leading whitespace, one single-rune glyph
// token, whitespace, title. Indented continuation text never matches, and
// failure-block headers are left to the second pass.
func (p *Parser) scanResultLines(lines []string) ResultMap {
	results := make(ResultMap)
	for _, line := range lines {
		glyph, title, ok := splitResultLine(line)
		if !ok || glyph == p.conv.FailureMarker {
			continue
		}
		results[title] = Result{Passed: p.isCheck(glyph)}
	}
	return results
}

func (p *Parser) isCheck(glyph string) bool {
	for _, check := range p.conv.CheckGlyphs {
		if glyph == check {
			return true
		}
	}
	return false
}

// splitResultLine splits a candidate result line into its glyph token and
// trailing title. The token must be exactly one rune and neither a letter
// nor a digit, so wrapped error detail like "AssertionError: ..." or
// "at foo.js:12" is rejected.
func splitResultLine(line string) (glyph, title string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return "", "", false
	}

	end := strings.IndexAny(trimmed, " \t")
	if end < 0 {
		return "", "", false
	}

	token := trimmed[:end]
	r, size := utf8.DecodeRuneInString(token)
	if size != len(token) || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return "", "", false
	}

	title = strings.TrimSpace(trimmed[end:])
	if title == "" {
		return "", "", false
	}
	return token, title, true
}

// attachFailureMessages scans for failure-detail blocks and attaches each
// block's body to the map entry of its short title. A block opens at a
// failure-marker line carrying the full test path and runs until the next
// failure marker, a browser label, the finished marker, or end of text;
// truncated blocks are still captured. Blocks whose short title has no map
// entry are discarded.
func (p *Parser) attachFailureMessages(lines []string, results ResultMap) {
	for i := 0; i < len(lines); i++ {
		path, ok := p.failureHeader(lines[i])
		if !ok {
			continue
		}

		var body []string
		j := i + 1
		for ; j < len(lines); j++ {
			if p.terminatesBlock(lines[j]) {
				break
			}
			body = append(body, lines[j])
		}

		title := p.shortTitle(path)
		if res, found := results[title]; found {
			if message := strings.TrimSpace(strings.Join(body, "\n")); message != "" {
				res.Message = message
				results[title] = res
			}
		}

		// Resume at the terminator so adjacent blocks never merge.
		i = j - 1
	}
}

func (p *Parser) failureHeader(line string) (path string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, p.conv.FailureMarker) {
		return "", false
	}
	path = strings.TrimSpace(strings.TrimPrefix(trimmed, p.conv.FailureMarker))
	return path, path != ""
}

func (p *Parser) terminatesBlock(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, p.conv.FailureMarker) {
		return true
	}
	if p.conv.FinishedMarker != "" && strings.HasPrefix(trimmed, p.conv.FinishedMarker) {
		return true
	}
	for _, label := range p.conv.BrowserLabels {
		if strings.HasPrefix(trimmed, label) {
			return true
		}
	}
	return false
}

// shortTitle derives the display title from a full failure path: the final
// separator segment, trimmed.
func (p *Parser) shortTitle(path string) string {
	segments := strings.Split(path, p.conv.PathSeparator)
	return strings.TrimSpace(segments[len(segments)-1])
}
