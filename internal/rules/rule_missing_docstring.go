package rules

import (
	"fmt"

	"github.com/codewithboateng/doclift/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "DOC-MISSING",
		Summary: "Every validated class and function must carry a docstring.",
		Order:   1,
		Eval:    evalMissingDocstring,
	})
}

func evalMissingDocstring(d *ir.Declaration) []ir.Diagnostic {
	if d.HasDocstring {
		return nil
	}
	noun := "Function"
	if d.Kind == ir.DeclClass {
		noun = "Class"
	}
	return []ir.Diagnostic{{
		Severity: ir.SeverityError,
		Message:  fmt.Sprintf("%s %s missing docstring", noun, d.QualifiedName),
	}}
}
