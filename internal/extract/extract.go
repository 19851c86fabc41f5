// Package extract walks a parsed source tree and produces the ordered
// sequence of declarations retained for docstring validation.
package extract

import (
	"strings"

	"github.com/codewithboateng/doclift/internal/ir"
	"github.com/codewithboateng/doclift/internal/pysrc"
)

const privatePrefix = "_"

// alwaysValidated lists the special method names that keep the private
// naming convention but are documented APIs regardless.
var alwaysValidated = map[string]bool{
	"__init__":      true,
	"__post_init__": true,
}

// Declarations visits the tagged tree rooted at n and returns every class and
// function declaration that passes the exclusion policy, in source order.
// Excluded scopes are still traversed so that qualified names of their public
// members stay complete.
func Declarations(file string, root *pysrc.Node) []ir.Declaration {
	var out []ir.Declaration
	visit(root, "", file, &out)
	return out
}

func visit(n *pysrc.Node, prefix, file string, out *[]ir.Declaration) {
	switch n.Kind {
	case pysrc.KindClass:
		if !isPrivate(n.Name) {
			*out = append(*out, ir.Declaration{
				Kind:          ir.DeclClass,
				Name:          n.Name,
				QualifiedName: qualify(prefix, n.Name),
				File:          file,
				Line:          n.Line,
				Docstring:     n.Doc,
				HasDocstring:  n.HasDoc,
			})
		}
	case pysrc.KindFunction:
		if !isPrivate(n.Name) || alwaysValidated[n.Name] {
			*out = append(*out, ir.Declaration{
				Kind:           ir.DeclFunction,
				Name:           n.Name,
				QualifiedName:  qualify(prefix, n.Name),
				File:           file,
				Line:           n.Line,
				Params:         stripReceivers(n.Params),
				HasValueReturn: n.HasValueReturn,
				Docstring:      n.Doc,
				HasDocstring:   n.HasDoc,
			})
		}
	}

	// Only named scopes extend the dotted prefix; Other nodes (if-blocks,
	// try-blocks and so on) pass it through untouched.
	childPrefix := prefix
	if n.Kind == pysrc.KindClass || n.Kind == pysrc.KindFunction {
		childPrefix = qualify(prefix, n.Name)
	}
	for _, c := range n.Children {
		visit(c, childPrefix, file, out)
	}
}

func isPrivate(name string) bool {
	return strings.HasPrefix(name, privatePrefix)
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// stripReceivers drops the implicit self/cls parameters; they are never part
// of the documented signature.
func stripReceivers(params []string) []string {
	var out []string
	for _, p := range params {
		if p == "self" || p == "cls" {
			continue
		}
		out = append(out, p)
	}
	return out
}
