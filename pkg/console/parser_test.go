package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_EmptyInput(t *testing.T) {
	t.Parallel()

	p := NewParser()
	assert.Empty(t, p.Parse(""))
	assert.Empty(t, p.Parse("\n\n\n"))
	assert.Empty(t, p.Parse("noise without any result lines\nmore noise"))
}

func TestParser_PassedLines(t *testing.T) {
	t.Parallel()

	results := NewParser().Parse("   ✓ test one\n   ✓ test two\n")

	require.Len(t, results, 2)
	assert.Equal(t, Result{Passed: true}, results["test one"])
	assert.Equal(t, Result{Passed: true}, results["test two"])
}

func TestParser_FailedLines(t *testing.T) {
	t.Parallel()

	results := NewParser().Parse("   𐄂 test one\n   𐄂 test two\n")

	require.Len(t, results, 2)
	assert.Equal(t, Result{Passed: false}, results["test one"], "no failure block, no message")
	assert.Equal(t, Result{Passed: false}, results["test two"])
}

func TestParser_StripsANSIBeforeMatching(t *testing.T) {
	t.Parallel()

	results := NewParser().Parse("   \x1b[32m✓\x1b[0m test with ANSI\n")

	require.Len(t, results, 1)
	assert.Equal(t, Result{Passed: true}, results["test with ANSI"])
}

func TestParser_FailureBlockAttachesMessage(t *testing.T) {
	t.Parallel()

	text := `
   𐄂 finds all matching cookies

❌ CookieSerializer > loadAllMatching > finds all matching cookies
   AssertionError: expected [] to deeply equal [ Array(1) ]
      at o.<anonymous> (src/cookies.spec.ts:40:31)

Chromium: |██████████████████████████████| 1/1 test files | 1 passed, 1 failed
`

	results := NewParser().Parse(text)

	res, ok := results["finds all matching cookies"]
	require.True(t, ok)
	assert.False(t, res.Passed)
	assert.Contains(t, res.Message, "AssertionError")
	assert.NotContains(t, res.Message, "Chromium", "browser summary terminates the block")
}

func TestParser_AdjacentFailureBlocksDoNotMerge(t *testing.T) {
	t.Parallel()

	text := `
   𐄂 first failing
   𐄂 second failing

❌ Suite > first failing
   error one

❌ Suite > second failing
   error two

Finished running tests!
`

	results := NewParser().Parse(text)

	first := results["first failing"]
	second := results["second failing"]
	assert.Contains(t, first.Message, "error one")
	assert.NotContains(t, first.Message, "error two")
	assert.Contains(t, second.Message, "error two")
	assert.NotContains(t, second.Message, "Finished")
}

func TestParser_TruncatedFailureBlock(t *testing.T) {
	t.Parallel()

	// End of text is a valid terminator for a block that never reaches one.
	text := "   𐄂 breaks\n\n❌ Suite > breaks\n   TypeError: undefined is not a function"

	results := NewParser().Parse(text)
	assert.Contains(t, results["breaks"].Message, "TypeError")
}

func TestParser_UnmatchedFailureBlockDiscarded(t *testing.T) {
	t.Parallel()

	text := "   ✓ something else\n\n❌ Suite > never seen before\n   some error\n"

	results := NewParser().Parse(text)

	_, ok := results["never seen before"]
	assert.False(t, ok, "orphan failure blocks are not retained")
	assert.Equal(t, Result{Passed: true}, results["something else"])
}

func TestParser_FailureHeadersNeverBecomeKeys(t *testing.T) {
	t.Parallel()

	// A capture holding only failure-detail blocks has zero result lines.
	text := "❌ Suite > never listed\n   some error\n\nChromium: 0 passed, 1 failed\n"

	results := NewParser().Parse(text)
	assert.Empty(t, results)

	text = "   𐄂 breaks\n\n❌ Suite > breaks\n   boom\n"
	results = NewParser().Parse(text)
	require.Len(t, results, 1)
	_, ok := results["Suite > breaks"]
	assert.False(t, ok, "header paths stay out of the result map")
}

func TestParser_ContinuationLinesNeverBecomeKeys(t *testing.T) {
	t.Parallel()

	text := `
   ✓ handles deep indentation
         expected true to equal false
         at wrapper (src/spec.ts:3:1)
   ✓ next test
`

	results := NewParser().Parse(text)

	require.Len(t, results, 2)
	_, ok := results["expected true to equal false"]
	assert.False(t, ok)
	_, ok = results["at wrapper (src/spec.ts:3:1)"]
	assert.False(t, ok)
}

func TestParser_LastOccurrenceWins(t *testing.T) {
	t.Parallel()

	results := NewParser().Parse("   ✓ retried test\n   𐄂 retried test\n")

	require.Len(t, results, 1)
	assert.False(t, results["retried test"].Passed)
}

func TestParser_Idempotent(t *testing.T) {
	t.Parallel()

	text := `
   ✓ stable one
   𐄂 stable two

❌ Suite > stable two
   boom

Firefox: all done
`
	p := NewParser()
	assert.Equal(t, p.Parse(text), p.Parse(text))
}

func TestParser_CustomConventions(t *testing.T) {
	t.Parallel()

	conv := DefaultConventions()
	conv.CheckGlyphs = []string{"√"}
	conv.FailureMarker = "✗✗"
	conv.FinishedMarker = "Done"
	conv.BrowserLabels = []string{"HeadlessChrome"}

	text := `
   √ custom pass
   × custom fail

✗✗ Suite > custom fail
   custom error

Done in 2.3s
`

	results := NewParser(WithConventions(conv)).Parse(text)

	assert.True(t, results["custom pass"].Passed)
	res := results["custom fail"]
	assert.False(t, res.Passed)
	assert.Contains(t, res.Message, "custom error")
	assert.NotContains(t, res.Message, "Done")
}

func TestSplitResultLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		line      string
		wantGlyph string
		wantTitle string
		wantOK    bool
	}{
		{
			name:      "check glyph",
			line:      "   ✓ passes fine",
			wantGlyph: "✓",
			wantTitle: "passes fine",
			wantOK:    true,
		},
		{
			name:      "failure glyph",
			line:      "\t𐄂 breaks badly",
			wantGlyph: "𐄂",
			wantTitle: "breaks badly",
			wantOK:    true,
		},
		{
			name:   "blank line",
			line:   "   ",
			wantOK: false,
		},
		{
			name:   "word token is not a glyph",
			line:   "   AssertionError: expected",
			wantOK: false,
		},
		{
			name:   "digit token is not a glyph",
			line:   "   1 passed",
			wantOK: false,
		},
		{
			name:   "glyph without title",
			line:   "   ✓   ",
			wantOK: false,
		},
		{
			name:   "glyph with no trailing text at all",
			line:   "✓",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			glyph, title, ok := splitResultLine(tt.line)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantGlyph, glyph)
				assert.Equal(t, tt.wantTitle, title)
			}
		})
	}
}
