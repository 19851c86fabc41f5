package rules

import (
	"fmt"
	"hash/crc32"
	"sort"
	"strings"

	"github.com/codewithboateng/doclift/internal/ir"
)

var (
	registry  []Rule
	ruleIndex = map[string]int{} // UPPER(ruleID) -> index
)

func Register(r Rule) {
	registry = append(registry, r)
	ruleIndex[strings.ToUpper(strings.TrimSpace(r.ID))] = len(registry) - 1
}

// List returns the enabled rules in evaluation order.
func List() []Rule {
	out := make([]Rule, 0, len(registry))
	for _, r := range registry {
		if rsettings.Disabled[strings.ToUpper(r.ID)] {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Evaluate runs every enabled rule over every declaration. All applicable
// rules fire independently; a declaration without a docstring yields exactly
// the presence error because the structural rules no-op without one.
func Evaluate(decls []ir.Declaration) []ir.Diagnostic {
	var all []ir.Diagnostic
	rs := List()

	seen := make(map[string]struct{}) // diagnostic IDs seen in this run
	seq := 0

	put := func(id string) bool {
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
		return true
	}

	for i := range decls {
		d := &decls[i]
		for _, rule := range rs {
			fs := rule.Eval(d)
			for k := range fs {
				if fs[k].RuleID == "" {
					fs[k].RuleID = rule.ID
				}
				if fs[k].File == "" {
					fs[k].File = d.File
				}
				if fs[k].Line == 0 {
					fs[k].Line = d.Line
				}
				if fs[k].Symbol == "" {
					fs[k].Symbol = d.QualifiedName
				}
				// Guarantee a unique ID within the run. Repeated identical
				// findings are kept as separate entries.
				id := fs[k].ID
				if id == "" {
					id = makeID(rule.ID, fs[k].File, fs[k].Line, fs[k].Symbol, fs[k].Message)
				}
				if !put(id) {
					for {
						seq++
						candidate := fmt.Sprintf("%s-%06d", rule.ID, seq)
						if put(candidate) {
							id = candidate
							break
						}
					}
				}
				fs[k].ID = id
			}
			all = append(all, fs...)
		}
	}

	// Stable order for reproducible outputs.
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].File != all[j].File {
			return all[i].File < all[j].File
		}
		if all[i].Line != all[j].Line {
			return all[i].Line < all[j].Line
		}
		if all[i].Severity != all[j].Severity {
			return all[i].Severity == ir.SeverityError
		}
		if all[i].RuleID != all[j].RuleID {
			return all[i].RuleID < all[j].RuleID
		}
		return all[i].Message < all[j].Message
	})
	return all
}

func makeID(ruleID, file string, line int, symbol, message string) string {
	data := fmt.Sprintf("%s|%s|%d|%s|%s", ruleID, file, line, symbol, message)
	sum := crc32.ChecksumIEEE([]byte(data))
	return fmt.Sprintf("%s-%08x", ruleID, sum)
}

// Get returns a rule by ID if registered (used by the HTML report and the
// rules API endpoint).
func Get(id string) (Rule, bool) {
	idx, ok := ruleIndex[strings.ToUpper(strings.TrimSpace(id))]
	if !ok || idx < 0 || idx >= len(registry) {
		return Rule{}, false
	}
	return registry[idx], true
}
