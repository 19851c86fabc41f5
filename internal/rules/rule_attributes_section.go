package rules

import "github.com/codewithboateng/doclift/internal/ir"

func init() {
	Register(Rule{
		ID:      "DOC-ATTRIBUTES",
		Summary: "Class docstrings may document fields under Attributes:.",
		Order:   5,
		Eval:    evalAttributesSection,
	})
}

// The Attributes: header is informational only: its presence is checked but
// absence produces no diagnostic until the convention is enforced.
func evalAttributesSection(d *ir.Declaration) []ir.Diagnostic {
	if !d.HasDocstring || d.Kind != ir.DeclClass {
		return nil
	}
	_ = reAttributesHeader.MatchString(d.Docstring)
	return nil
}

// HasAttributesSection is the informational probe behind DOC-ATTRIBUTES,
// surfaced for the HTML report's class table.
func HasAttributesSection(d *ir.Declaration) bool {
	return d.HasDocstring && reAttributesHeader.MatchString(d.Docstring)
}
