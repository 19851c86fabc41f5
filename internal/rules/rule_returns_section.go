package rules

import (
	"fmt"

	"github.com/codewithboateng/doclift/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "DOC-RETURNS",
		Summary: "Functions returning a value should document it under Returns:.",
		Order:   4,
		Eval:    evalReturnsSection,
	})
}

func evalReturnsSection(d *ir.Declaration) []ir.Diagnostic {
	if !d.HasDocstring || d.Kind != ir.DeclFunction || !d.HasValueReturn {
		return nil
	}
	if reReturnsHeader.MatchString(d.Docstring) {
		return nil
	}
	// Lenient on purpose: an undocumented return value is worth flagging
	// but does not fail the run.
	return []ir.Diagnostic{{
		Severity: ir.SeverityWarning,
		Message:  fmt.Sprintf("%s - Missing 'Returns:' section for function with return statement", d.QualifiedName),
	}}
}
