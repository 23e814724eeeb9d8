package discovery

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// maxTreeDepth bounds AST recursion on pathological input.
const maxTreeDepth = 1000

// Spec is a declared test inside a file.
type Spec struct {
	// Title is the test's display name.
	Title string
	// Pending marks tests declared with skip modifiers (it.skip, xit).
	Pending bool
}

// Group is a declared suite: a describe/context/suite block with nested
// groups and specs.
type Group struct {
	Title   string
	Pending bool
	Groups  []*Group
	Specs   []*Spec
}

// File is the declared test content of one source file.
type File struct {
	// Path is the file path relative to the scan root.
	Path   string
	Groups []*Group
	Specs  []*Spec
}

// CountSpecs returns the total number of declared tests in the file.
func (f *File) CountSpecs() int {
	count := len(f.Specs)
	for _, g := range f.Groups {
		count += g.countSpecs()
	}
	return count
}

func (g *Group) countSpecs() int {
	count := len(g.Specs)
	for _, sub := range g.Groups {
		count += sub.countSpecs()
	}
	return count
}

func languageFor(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".tsx", ".mts", ".cts":
		return typescript.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// parseTestFile extracts the describe/it structure from one source file.
func parseTestFile(ctx context.Context, source []byte, path string) (*File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(languageFor(path))

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	file := &File{Path: path}
	walkNode(tree.RootNode(), source, file, nil, 0)
	return file, nil
}

// walkNode traverses the AST collecting suite and test declarations.
// Handled describe calls consume their callback bodies; everything else is
// descended generically so declarations inside wrappers, loops, and
// conditionals are still found.
func walkNode(node *sitter.Node, source []byte, file *File, group *Group, depth int) {
	if node == nil || depth > maxTreeDepth {
		return
	}

	if node.Type() == "call_expression" && handleCall(node, source, file, group, depth) {
		return
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		walkNode(node.NamedChild(i), source, file, group, depth+1)
	}
}

func handleCall(call *sitter.Node, source []byte, file *File, group *Group, depth int) bool {
	fn := call.ChildByFieldName("function")
	args := call.ChildByFieldName("arguments")
	if fn == nil || args == nil {
		return false
	}

	name, pending, ok := callableName(fn, source)
	if !ok {
		return false
	}

	title := firstStringArg(args, source)
	if title == "" {
		return false
	}

	switch name {
	case "describe", "context", "suite":
		child := &Group{Title: title, Pending: pending}
		if group != nil {
			group.Groups = append(group.Groups, child)
		} else {
			file.Groups = append(file.Groups, child)
		}
		if callback := findCallback(args); callback != nil {
			if body := callback.ChildByFieldName("body"); body != nil {
				walkNode(body, source, file, child, depth+1)
			}
		}
		return true

	case "it", "test", "specify":
		spec := &Spec{Title: title, Pending: pending}
		if group != nil {
			group.Specs = append(group.Specs, spec)
		} else {
			file.Specs = append(file.Specs, spec)
		}
		return true
	}

	return false
}

// skippedAliases maps the x-prefixed declaration forms to their base names.
var skippedAliases = map[string]string{
	"xdescribe": "describe",
	"xcontext":  "context",
	"xit":       "it",
	"xtest":     "test",
	"xspecify":  "specify",
}

// focusedAliases maps the f-prefixed declaration forms to their base names.
var focusedAliases = map[string]string{
	"fdescribe": "describe",
	"fcontext":  "context",
	"fit":       "it",
	"fspecify":  "specify",
}

// callableName resolves a call target to a base declaration name and a
// pending flag. It handles bare identifiers, x/f aliases, and member
// modifiers (it.skip, describe.only, test.todo).
func callableName(fn *sitter.Node, source []byte) (name string, pending, ok bool) {
	switch fn.Type() {
	case "identifier":
		ident := fn.Content(source)
		if base, skipped := skippedAliases[ident]; skipped {
			return base, true, true
		}
		if base, focused := focusedAliases[ident]; focused {
			return base, false, true
		}
		return ident, false, true

	case "member_expression":
		object := fn.ChildByFieldName("object")
		property := fn.ChildByFieldName("property")
		if object == nil || property == nil || object.Type() != "identifier" {
			return "", false, false
		}
		switch property.Content(source) {
		case "skip", "todo":
			return object.Content(source), true, true
		case "only":
			return object.Content(source), false, true
		}
		return "", false, false
	}

	return "", false, false
}

// firstStringArg returns the unquoted first string argument, or "" when the
// call's first argument is not a string or template literal.
func firstStringArg(args *sitter.Node, source []byte) string {
	for i := 0; i < int(args.ChildCount()); i++ {
		child := args.Child(i)
		switch child.Type() {
		case "string", "template_string":
			return unquote(child.Content(source))
		case "(", ")", ",":
			continue
		default:
			return ""
		}
	}
	return ""
}

func findCallback(args *sitter.Node) *sitter.Node {
	for i := 0; i < int(args.ChildCount()); i++ {
		child := args.Child(i)
		switch child.Type() {
		case "arrow_function", "function_expression", "function":
			return child
		}
	}
	return nil
}

// unquote strips JavaScript string delimiters. Template literals lose their
// backticks without interpolation; single-quoted strings are converted to
// Go's double-quoted form before unquoting so escapes survive.
func unquote(text string) string {
	if len(text) < 2 {
		return text
	}

	if text[0] == '`' && text[len(text)-1] == '`' {
		return text[1 : len(text)-1]
	}

	if text[0] == '\'' && text[len(text)-1] == '\'' {
		inner := strings.ReplaceAll(text[1:len(text)-1], `\'`, `'`)
		escaped := strings.ReplaceAll(inner, `"`, `\"`)
		if s, err := strconv.Unquote(`"` + escaped + `"`); err == nil {
			return s
		}
		return text
	}

	if s, err := strconv.Unquote(text); err == nil {
		return s
	}
	return text
}
