// Package coverage annotates runs with documented-declaration counts. The
// numbers ride along in reports and storage; they never influence the
// error/warning totals.
package coverage

import "github.com/codewithboateng/doclift/internal/ir"

// Summarize counts documented declarations among decls.
func Summarize(decls []ir.Declaration) ir.Coverage {
	c := ir.Coverage{Total: len(decls)}
	for _, d := range decls {
		if d.HasDocstring {
			c.Documented++
		}
	}
	return withPercent(c)
}

// Merge combines two summaries, recomputing the percentage.
func Merge(a, b ir.Coverage) ir.Coverage {
	return withPercent(ir.Coverage{
		Total:      a.Total + b.Total,
		Documented: a.Documented + b.Documented,
	})
}

func withPercent(c ir.Coverage) ir.Coverage {
	if c.Total > 0 {
		c.Percent = float64(c.Documented) / float64(c.Total) * 100
	}
	return c
}
