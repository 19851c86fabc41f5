package ir

import "time"

const Version = "1.0"

// Severity of a diagnostic. Only errors gate the exit status.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Run is the accumulator for one validation pass over a set of files.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Source    string    `json:"source,omitempty"`
	IRVersion string    `json:"ir_version,omitempty"`

	Context     Context      `json:"context"`
	Files       []FileReport `json:"files"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`

	// Notices are environmental warnings (e.g. a listed path that does not
	// exist). They are shown to the operator but never counted toward the
	// error/warning totals that decide the exit status.
	Notices []string `json:"notices,omitempty"`

	Coverage Coverage `json:"coverage"`
}

type Context struct {
	DisabledRules []string `json:"disabled_rules,omitempty"`
	RulePacks     []string `json:"rule_packs,omitempty"`
}

// FileReport records what happened to a single input file.
type FileReport struct {
	Path         string   `json:"path"`
	Declarations int      `json:"declarations"`
	ParseFailed  bool     `json:"parse_failed,omitempty"`
	Coverage     Coverage `json:"coverage"`
}

// Coverage counts documented declarations against all validated ones.
type Coverage struct {
	Total      int     `json:"total"`
	Documented int     `json:"documented"`
	Percent    float64 `json:"percent"`
}

// DeclKind discriminates the two declaration variants the checker validates.
type DeclKind string

const (
	DeclClass    DeclKind = "class"
	DeclFunction DeclKind = "function"
)

// Declaration is a class or function definition retained for validation.
// Params exclude the implicit self/cls receivers.
type Declaration struct {
	Kind           DeclKind `json:"kind"`
	Name           string   `json:"name"`
	QualifiedName  string   `json:"qualified_name"`
	File           string   `json:"file"`
	Line           int      `json:"line"`
	Params         []string `json:"params,omitempty"`
	HasValueReturn bool     `json:"has_value_return,omitempty"`
	Docstring      string   `json:"-"`
	HasDocstring   bool     `json:"has_docstring"`
}

// Diagnostic is a single immutable finding produced by the rule engine.
type Diagnostic struct {
	ID       string   `json:"id"`
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Symbol   string   `json:"symbol,omitempty"`
	Message  string   `json:"message"`
}

func (r *Run) Append(ds ...Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, ds...)
}

func (r *Run) ErrorCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

func (r *Run) WarningCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// AllValid reports whether the run produced no errors. Warnings and notices
// never affect the result.
func (r *Run) AllValid() bool { return r.ErrorCount() == 0 }
