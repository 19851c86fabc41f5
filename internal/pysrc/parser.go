package pysrc

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// SyntaxError is the one fatal-to-file condition: the source text does not
// parse. Line points at the first offending node.
type SyntaxError struct {
	Line int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error near line %d", e.Line)
}

// Parse converts Python source text into the tagged node tree. A tree
// containing parse errors yields a *SyntaxError and no declarations.
func Parse(ctx context.Context, src []byte) (*Node, error) {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()
	if root.HasError() {
		return nil, &SyntaxError{Line: firstErrorLine(root)}
	}
	return convert(root, src), nil
}

func firstErrorLine(n *sitter.Node) int {
	if n.Type() == "ERROR" || n.IsMissing() {
		return int(n.StartPoint().Row) + 1
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if line := firstErrorLine(n.Child(i)); line > 0 {
			return line
		}
	}
	if n.Type() == "module" {
		return 1
	}
	return 0
}

func convert(ts *sitter.Node, src []byte) *Node {
	switch ts.Type() {
	case "module":
		n := &Node{Kind: KindModule, Line: 1}
		n.Doc, n.HasDoc = docstring(ts, src)
		n.Children = convertChildren(ts, src)
		return n

	case "decorated_definition":
		if def := ts.ChildByFieldName("definition"); def != nil {
			return convert(def, src)
		}
		return &Node{Kind: KindOther, Line: int(ts.StartPoint().Row) + 1}

	case "class_definition":
		n := &Node{
			Kind: KindClass,
			Name: fieldText(ts, "name", src),
			Line: int(ts.StartPoint().Row) + 1,
		}
		body := ts.ChildByFieldName("body")
		n.Doc, n.HasDoc = docstring(body, src)
		n.Children = convertChildren(body, src)
		return n

	case "function_definition":
		body := ts.ChildByFieldName("body")
		n := &Node{
			Kind:           KindFunction,
			Name:           fieldText(ts, "name", src),
			Line:           int(ts.StartPoint().Row) + 1,
			Params:         paramNames(ts.ChildByFieldName("parameters"), src),
			HasValueReturn: hasValueReturn(body),
		}
		n.Doc, n.HasDoc = docstring(body, src)
		n.Children = convertChildren(body, src)
		return n

	default:
		n := &Node{Kind: KindOther, Line: int(ts.StartPoint().Row) + 1}
		n.Children = convertChildren(ts, src)
		return n
	}
}

func convertChildren(ts *sitter.Node, src []byte) []*Node {
	if ts == nil {
		return nil
	}
	var out []*Node
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		out = append(out, convert(ts.NamedChild(i), src))
	}
	return out
}

func fieldText(ts *sitter.Node, field string, src []byte) string {
	if c := ts.ChildByFieldName(field); c != nil {
		return c.Content(src)
	}
	return ""
}

// paramNames collects declared positional parameter names. A *args,
// **kwargs or bare * / marker ends the list: everything after it is
// keyword-only and the reference convention does not count those.
func paramNames(params *sitter.Node, src []byte) []string {
	if params == nil {
		return nil
	}
	var out []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			out = append(out, p.Content(src))
		case "typed_parameter":
			if id := p.NamedChild(0); id != nil && id.Type() == "identifier" {
				out = append(out, id.Content(src))
			}
		case "default_parameter", "typed_default_parameter":
			if id := p.ChildByFieldName("name"); id != nil && id.Type() == "identifier" {
				out = append(out, id.Content(src))
			}
		case "list_splat_pattern", "dictionary_splat_pattern",
			"keyword_separator", "positional_separator":
			return out
		}
	}
	return out
}

// hasValueReturn scans the statement body, including nested blocks but not
// nested function or class bodies, for a return carrying a value.
func hasValueReturn(body *sitter.Node) bool {
	if body == nil {
		return false
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		switch c.Type() {
		case "function_definition", "class_definition", "decorated_definition":
			continue
		case "return_statement":
			if c.NamedChildCount() > 0 {
				return true
			}
			continue
		}
		if hasValueReturn(c) {
			return true
		}
	}
	return false
}

// docstring extracts the documentation string attached to a block: its first
// statement, when that statement is a bare string expression. A blank
// docstring counts as absent.
func docstring(body *sitter.Node, src []byte) (string, bool) {
	if body == nil || body.NamedChildCount() == 0 {
		return "", false
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return "", false
	}
	str := first.NamedChild(0)
	if str.Type() != "string" {
		return "", false
	}
	text := stringText(str, src)
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

func stringText(str *sitter.Node, src []byte) string {
	var b strings.Builder
	found := false
	for i := 0; i < int(str.NamedChildCount()); i++ {
		c := str.NamedChild(i)
		if c.Type() == "string_content" {
			b.WriteString(c.Content(src))
			found = true
		}
	}
	if found {
		return b.String()
	}
	// Older grammar revisions expose the literal as one token.
	return stripQuotes(str.Content(src))
}

func stripQuotes(s string) string {
prefix:
	for len(s) > 0 {
		switch s[0] {
		case 'r', 'R', 'b', 'B', 'u', 'U', 'f', 'F':
			s = s[1:]
		default:
			break prefix
		}
	}
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if len(s) >= 2*len(q) && strings.HasPrefix(s, q) && strings.HasSuffix(s, q) {
			return s[len(q) : len(s)-len(q)]
		}
	}
	return s
}
