package reporting

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/codewithboateng/doclift/internal/ir"
)

var (
	headerErr  = color.New(color.FgRed, color.Bold)
	headerWarn = color.New(color.FgYellow, color.Bold)
	lineOK     = color.New(color.FgGreen)
	lineNotice = color.New(color.FgYellow)
)

// WriteConsole renders the run in the operator format: an Errors block and a
// Warnings block as needed, or a single success line when both are empty.
// Environmental notices print first and never join the counts.
func WriteConsole(w io.Writer, run *ir.Run) {
	for _, n := range run.Notices {
		lineNotice.Fprintf(w, "Warning: %s\n", n)
	}

	var errs, warns []ir.Diagnostic
	for _, d := range run.Diagnostics {
		if d.Severity == ir.SeverityError {
			errs = append(errs, d)
		} else {
			warns = append(warns, d)
		}
	}

	if len(errs) > 0 {
		headerErr.Fprintln(w, "\nDocstring Validation Errors:")
		for _, d := range errs {
			fmt.Fprintf(w, "  %s:%d: %s\n", d.File, d.Line, d.Message)
		}
	}
	if len(warns) > 0 {
		headerWarn.Fprintln(w, "\nDocstring Validation Warnings:")
		for _, d := range warns {
			fmt.Fprintf(w, "  %s:%d: %s\n", d.File, d.Line, d.Message)
		}
	}
	if len(errs) == 0 && len(warns) == 0 {
		lineOK.Fprintln(w, "All docstrings validated successfully!")
	}
}
