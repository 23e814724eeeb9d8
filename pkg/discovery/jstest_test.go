package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, source, path string) *File {
	t.Helper()
	file, err := parseTestFile(context.Background(), []byte(source), path)
	require.NoError(t, err)
	return file
}

func TestParseTestFile_NestedSuites(t *testing.T) {
	t.Parallel()

	source := `
describe('CookieSerializer', () => {
  describe('loadAllMatching', () => {
    it('finds one cookie', () => {});
    it('finds all matching cookies', () => {});
  });

  it('serializes', () => {});
});
`
	file := parseSource(t, source, "src/cookies.spec.ts")

	require.Len(t, file.Groups, 1)
	outer := file.Groups[0]
	assert.Equal(t, "CookieSerializer", outer.Title)
	require.Len(t, outer.Groups, 1)
	inner := outer.Groups[0]
	assert.Equal(t, "loadAllMatching", inner.Title)
	require.Len(t, inner.Specs, 2)
	assert.Equal(t, "finds one cookie", inner.Specs[0].Title)
	assert.Equal(t, "finds all matching cookies", inner.Specs[1].Title)
	require.Len(t, outer.Specs, 1)
	assert.Equal(t, "serializes", outer.Specs[0].Title)
	assert.Equal(t, 3, file.CountSpecs())
}

func TestParseTestFile_TopLevelTests(t *testing.T) {
	t.Parallel()

	source := `
test('standalone one', () => {});
test('standalone two', () => {});
`
	file := parseSource(t, source, "standalone.test.js")

	assert.Empty(t, file.Groups)
	require.Len(t, file.Specs, 2)
	assert.Equal(t, "standalone one", file.Specs[0].Title)
}

func TestParseTestFile_Modifiers(t *testing.T) {
	t.Parallel()

	source := `
describe('modifiers', () => {
  it.skip('explicitly skipped', () => {});
  it.only('focused', () => {});
  xit('x-skipped', () => {});
  fit('f-focused', () => {});
  it('plain', () => {});
});

xdescribe('whole suite skipped', () => {
  it('inside', () => {});
});
`
	file := parseSource(t, source, "mods.spec.js")

	require.Len(t, file.Groups, 2)
	mods := file.Groups[0]
	require.Len(t, mods.Specs, 5)

	byTitle := make(map[string]*Spec)
	for _, spec := range mods.Specs {
		byTitle[spec.Title] = spec
	}
	assert.True(t, byTitle["explicitly skipped"].Pending)
	assert.False(t, byTitle["focused"].Pending)
	assert.True(t, byTitle["x-skipped"].Pending)
	assert.False(t, byTitle["f-focused"].Pending)
	assert.False(t, byTitle["plain"].Pending)

	skipped := file.Groups[1]
	assert.True(t, skipped.Pending)
	require.Len(t, skipped.Specs, 1)
}

func TestParseTestFile_MochaInterfaces(t *testing.T) {
	t.Parallel()

	source := `
suite('tdd suite', function() {
  specify('tdd test', function() {});
});

context('bdd context', function() {
  it('bdd test', function() {});
});
`
	file := parseSource(t, source, "tdd.spec.js")

	require.Len(t, file.Groups, 2)
	assert.Equal(t, "tdd suite", file.Groups[0].Title)
	assert.Equal(t, "tdd test", file.Groups[0].Specs[0].Title)
	assert.Equal(t, "bdd context", file.Groups[1].Title)
}

func TestParseTestFile_StringForms(t *testing.T) {
	t.Parallel()

	source := `
describe("double quoted", () => {
  it('single \'quoted\'', () => {});
  it(` + "`template literal`" + `, () => {});
});
`
	file := parseSource(t, source, "strings.spec.js")

	require.Len(t, file.Groups, 1)
	group := file.Groups[0]
	assert.Equal(t, "double quoted", group.Title)
	require.Len(t, group.Specs, 2)
	assert.Equal(t, "single 'quoted'", group.Specs[0].Title)
	assert.Equal(t, "template literal", group.Specs[1].Title)
}

func TestParseTestFile_NonStringTitlesIgnored(t *testing.T) {
	t.Parallel()

	source := `
const name = 'dynamic';
describe(name, () => {
  it('inside dynamic suite', () => {});
});
it(42, () => {});
`
	file := parseSource(t, source, "dynamic.spec.js")

	// Dynamic titles cannot be correlated by text, so they are dropped;
	// generic descent still finds the declarations inside the callback.
	assert.Empty(t, file.Groups)
	require.Len(t, file.Specs, 1)
	assert.Equal(t, "inside dynamic suite", file.Specs[0].Title)
}

func TestParseTestFile_EmptySource(t *testing.T) {
	t.Parallel()

	file := parseSource(t, "", "empty.spec.ts")
	assert.Empty(t, file.Groups)
	assert.Empty(t, file.Specs)
	assert.Zero(t, file.CountSpecs())
}

func TestUnquote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "double quotes", input: `"hello"`, want: "hello"},
		{name: "single quotes", input: `'hello'`, want: "hello"},
		{name: "backticks", input: "`hello`", want: "hello"},
		{name: "escaped single quote", input: `'it\'s fine'`, want: "it's fine"},
		{name: "escaped double quote", input: `"say \"hi\""`, want: `say "hi"`},
		{name: "too short", input: "a", want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := unquote(tt.input); got != tt.want {
				t.Errorf("unquote(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
