package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codewithboateng/doclift/internal/ir"
)

type diffPayload struct {
	BaseID   string           `json:"base_id"`
	HeadID   string           `json:"head_id"`
	Summary  diffSummary      `json:"summary"`
	New      []diffDiagnostic `json:"new"`
	Resolved []diffDiagnostic `json:"resolved"`
	Changed  []diffChanged    `json:"changed"`
}

type diffSummary struct {
	NewCount      int `json:"new"`
	ResolvedCount int `json:"resolved"`
	ChangedCount  int `json:"changed"`
}

type diffDiagnostic struct {
	RuleID   string `json:"rule_id"`
	File     string `json:"file"`
	Symbol   string `json:"symbol,omitempty"`
	Line     int    `json:"line,omitempty"`
	Severity string `json:"severity,omitempty"`
	Message  string `json:"message,omitempty"`
}

type diffChanged struct {
	Key     string         `json:"key"`
	Base    diffDiagnostic `json:"base"`
	Head    diffDiagnostic `json:"head"`
	Changed []string       `json:"fields_changed"`
}

// WriteDiffJSON compares two stored runs and writes the new, resolved and
// changed diagnostics between them. Identity is (rule, file, symbol,
// message); line moves alone count as changed, not new.
func WriteDiffJSON(baseID, headID, outDir string, base, head *ir.Run) (string, error) {
	path := filepath.Join(outDir, "diff_"+baseID+"__"+headID+".json")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}

	bm := map[string]ir.Diagnostic{}
	hm := map[string]ir.Diagnostic{}
	for _, d := range base.Diagnostics {
		bm[keyOf(d)] = d
	}
	for _, d := range head.Diagnostics {
		hm[keyOf(d)] = d
	}

	var added []diffDiagnostic
	var resolved []diffDiagnostic
	var changed []diffChanged

	for k, hd := range hm {
		bd, ok := bm[k]
		if !ok {
			added = append(added, asDiff(hd))
			continue
		}
		var fields []string
		if bd.Severity != hd.Severity {
			fields = append(fields, "severity")
		}
		if bd.Line != hd.Line {
			fields = append(fields, "line")
		}
		if len(fields) > 0 {
			changed = append(changed, diffChanged{
				Key:     k,
				Base:    asDiff(bd),
				Head:    asDiff(hd),
				Changed: fields,
			})
		}
	}
	for k, bd := range bm {
		if _, ok := hm[k]; !ok {
			resolved = append(resolved, asDiff(bd))
		}
	}

	sort.Slice(added, func(i, j int) bool { return lessDiff(added[i], added[j]) })
	sort.Slice(resolved, func(i, j int) bool { return lessDiff(resolved[i], resolved[j]) })
	sort.Slice(changed, func(i, j int) bool { return changed[i].Key < changed[j].Key })

	payload := diffPayload{
		BaseID: baseID, HeadID: headID,
		Summary: diffSummary{
			NewCount:      len(added),
			ResolvedCount: len(resolved),
			ChangedCount:  len(changed),
		},
		New:      added,
		Resolved: resolved,
		Changed:  changed,
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, b, 0o644)
}

func keyOf(d ir.Diagnostic) string {
	sb := strings.Builder{}
	sb.WriteString(norm(d.RuleID))
	sb.WriteByte('|')
	sb.WriteString(norm(d.File))
	sb.WriteByte('|')
	sb.WriteString(norm(d.Symbol))
	sb.WriteByte('|')
	sb.WriteString(strings.TrimSpace(d.Message))
	return sb.String()
}

func lessDiff(a, b diffDiagnostic) bool {
	if a.File != b.File {
		return a.File < b.File
	}
	if a.RuleID != b.RuleID {
		return a.RuleID < b.RuleID
	}
	return a.Symbol < b.Symbol
}

func asDiff(d ir.Diagnostic) diffDiagnostic {
	return diffDiagnostic{
		RuleID:   d.RuleID,
		File:     d.File,
		Symbol:   d.Symbol,
		Line:     d.Line,
		Severity: string(d.Severity),
		Message:  d.Message,
	}
}

func norm(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
