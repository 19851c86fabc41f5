package rules

import (
	"fmt"
	"strings"

	"github.com/codewithboateng/doclift/internal/ir"
)

func init() {
	Register(Rule{
		ID:      "DOC-SUMMARY",
		Summary: "A docstring must open with a one-line summary.",
		Order:   2,
		Eval:    evalSummaryLine,
	})
}

func evalSummaryLine(d *ir.Declaration) []ir.Diagnostic {
	if !d.HasDocstring {
		return nil
	}
	lines := strings.Split(strings.TrimSpace(d.Docstring), "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) != "" {
		return nil
	}
	return []ir.Diagnostic{{
		Severity: ir.SeverityError,
		Message:  fmt.Sprintf("%s - Docstring must start with summary line", d.QualifiedName),
	}}
}
