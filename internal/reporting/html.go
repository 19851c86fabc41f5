package reporting

import (
	"fmt"
	"html"
	"os"
	"path/filepath"

	"github.com/codewithboateng/doclift/internal/ir"
)

func WriteHTML(runID, outDir string, run *ir.Run) (string, error) {
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// Head + styles
	fmt.Fprintf(f, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(f, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace} .err{color:#b00020} .warn{color:#8a6d00}</style>")
	fmt.Fprint(f, "</head><body>")

	// Title + summary
	fmt.Fprintf(f, "<h1>doclift report – <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	fmt.Fprintf(f, "<p>Files: %d &nbsp; Errors: %d &nbsp; Warnings: %d</p>",
		len(run.Files), run.ErrorCount(), run.WarningCount())
	if run.Coverage.Total > 0 {
		fmt.Fprintf(f, "<p><b>Docstring coverage</b>: %.1f%% (%d/%d declarations documented)</p>",
			run.Coverage.Percent, run.Coverage.Documented, run.Coverage.Total)
	}
	if n := len(run.Context.DisabledRules); n > 0 {
		fmt.Fprintf(f, "<p class='dim'>Disabled rules: %d</p>", n)
	}

	// Per-file coverage
	if len(run.Files) > 0 {
		fmt.Fprint(f, "<h2>Files</h2><table><tr><th>Path</th><th>Declarations</th><th>Documented</th><th>Coverage</th></tr>")
		for _, fr := range run.Files {
			cov := "—"
			if fr.ParseFailed {
				cov = "parse failed"
			} else if fr.Coverage.Total > 0 {
				cov = fmt.Sprintf("%.1f%%", fr.Coverage.Percent)
			}
			fmt.Fprintf(f, "<tr><td class='mono'>%s</td><td>%d</td><td>%d</td><td>%s</td></tr>",
				html.EscapeString(fr.Path), fr.Declarations, fr.Coverage.Documented, html.EscapeString(cov))
		}
		fmt.Fprint(f, "</table>")
	}

	// All diagnostics
	if len(run.Diagnostics) > 0 {
		fmt.Fprint(f, "<h2>Diagnostics</h2><table><tr><th>Severity</th><th>Rule</th><th>Location</th><th>Symbol</th><th>Message</th></tr>")
		for _, d := range run.Diagnostics {
			cls := "warn"
			if d.Severity == ir.SeverityError {
				cls = "err"
			}
			fmt.Fprintf(f, "<tr><td class='%s'>%s</td><td>%s</td><td class='mono'>%s:%d</td><td class='mono'>%s</td><td>%s</td></tr>",
				cls,
				html.EscapeString(string(d.Severity)),
				html.EscapeString(d.RuleID),
				html.EscapeString(d.File), d.Line,
				html.EscapeString(d.Symbol),
				html.EscapeString(d.Message),
			)
		}
		fmt.Fprint(f, "</table>")
	} else {
		fmt.Fprint(f, "<h2>Diagnostics</h2><p class='dim'>All docstrings validated successfully.</p>")
	}

	fmt.Fprint(f, "</body></html>")
	return path, nil
}
