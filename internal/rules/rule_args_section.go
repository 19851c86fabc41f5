package rules

import (
	"fmt"

	"github.com/codewithboateng/doclift/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "DOC-ARGS",
		Summary: "Functions with parameters need an Args: section documenting each one.",
		Order:   3,
		Eval:    evalArgsSection,
	})
}

func evalArgsSection(d *ir.Declaration) []ir.Diagnostic {
	if !d.HasDocstring || d.Kind != ir.DeclFunction || len(d.Params) == 0 {
		return nil
	}
	if !reArgsHeader.MatchString(d.Docstring) {
		return []ir.Diagnostic{{
			Severity: ir.SeverityError,
			Message:  fmt.Sprintf("%s - Missing 'Args:' section for function with arguments", d.QualifiedName),
		}}
	}
	// Header present: each declared parameter must appear as a
	// "name (type):" line somewhere in the docstring.
	var out []ir.Diagnostic
	for _, p := range d.Params {
		if paramDocPattern(p).MatchString(d.Docstring) {
			continue
		}
		out = append(out, ir.Diagnostic{
			Severity: ir.SeverityWarning,
			Message:  fmt.Sprintf("%s - Argument '%s' not documented in Args section", d.QualifiedName, p),
		})
	}
	return out
}
