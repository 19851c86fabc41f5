package rules

import "github.com/codewithboateng/doclift/internal/ir"

// Rule represents a single docstring check executed over a Declaration.
type Rule struct {
	ID      string
	Summary string
	// Order fixes the evaluation position. Rules are independent — no
	// rule's outcome feeds another — so Order only keeps the reported
	// sequence stable.
	Order int
	// Eval inspects the declaration and its docstring and returns findings.
	Eval func(d *ir.Declaration) []ir.Diagnostic
}
