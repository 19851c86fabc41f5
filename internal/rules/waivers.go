package rules

import (
	"strings"

	"github.com/codewithboateng/doclift/internal/ir"
	"github.com/codewithboateng/doclift/internal/storage"
)

// ApplyWaivers filters out diagnostics that match any active waiver.
// Returns (kept, waivedCount).
func ApplyWaivers(in []ir.Diagnostic, waivers []storage.Waiver) ([]ir.Diagnostic, int) {
	if len(waivers) == 0 || len(in) == 0 {
		return in, 0
	}
	var out []ir.Diagnostic
	waived := 0
nextDiag:
	for _, d := range in {
		for _, w := range waivers {
			if !eqCI(d.RuleID, w.RuleID) {
				continue
			}
			if w.File != "" && !eqCI(d.File, w.File) {
				continue
			}
			if w.Symbol != "" && !eqCI(d.Symbol, w.Symbol) {
				continue
			}
			if w.PatternSub != "" &&
				!strings.Contains(strings.ToUpper(d.Message), strings.ToUpper(w.PatternSub)) {
				continue
			}
			waived++
			continue nextDiag
		}
		out = append(out, d)
	}
	return out, waived
}

func eqCI(a, b string) bool { return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) }
