// Package rulesdsl loads declarative docstring rules from YAML packs and
// registers them alongside the built-in rules. Packs cover project-local
// conventions (extra required sections, naming-scoped checks) without code
// changes.
package rulesdsl

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/doclift/internal/ir"
	"github.com/codewithboateng/doclift/internal/rules"
)

type dslPack struct {
	Rules []dslRule `yaml:"rules"`
}

type dslRule struct {
	ID       string `yaml:"id"`
	Summary  string `yaml:"summary"`
	Severity string `yaml:"severity"` // ERROR|WARNING
	Message  string `yaml:"message"`

	Where struct {
		Kind      string `yaml:"kind"`       // function|class|any (default any)
		NameRegex string `yaml:"name_regex"` // regex on the qualified name (optional)
	} `yaml:"where"`

	Require struct {
		Section        string `yaml:"section"`         // header that must occupy its own line
		DocstringRegex string `yaml:"docstring_regex"` // raw multiline regex (optional)
	} `yaml:"require"`
}

type compiled struct {
	rule   dslRule
	kind   ir.DeclKind // empty = any
	reName *regexp.Regexp
	reDoc  *regexp.Regexp
}

// LoadAndRegister reads a pack and registers every rule in it. Returns the
// number of rules registered.
func LoadAndRegister(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read rules pack: %w", err)
	}
	var pack dslPack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return 0, fmt.Errorf("parse yaml: %w", err)
	}
	var n int
	for _, r := range pack.Rules {
		cr, err := compile(r)
		if err != nil {
			return n, fmt.Errorf("compile rule %q: %w", r.ID, err)
		}
		registerCompiled(*cr)
		n++
	}
	return n, nil
}

func compile(r dslRule) (*compiled, error) {
	if r.ID == "" || r.Severity == "" || r.Message == "" {
		return nil, fmt.Errorf("missing required fields (id/severity/message)")
	}
	sev := strings.ToUpper(strings.TrimSpace(r.Severity))
	if sev != string(ir.SeverityError) && sev != string(ir.SeverityWarning) {
		return nil, fmt.Errorf("severity must be ERROR or WARNING, got %q", r.Severity)
	}
	if r.Require.Section == "" && r.Require.DocstringRegex == "" {
		return nil, fmt.Errorf("nothing required (section/docstring_regex)")
	}
	c := &compiled{rule: r}
	switch strings.ToLower(strings.TrimSpace(r.Where.Kind)) {
	case "", "any":
	case "function":
		c.kind = ir.DeclFunction
	case "class":
		c.kind = ir.DeclClass
	default:
		return nil, fmt.Errorf("kind must be function, class or any, got %q", r.Where.Kind)
	}
	if r.Where.NameRegex != "" {
		re, err := regexp.Compile(r.Where.NameRegex)
		if err != nil {
			return nil, fmt.Errorf("name_regex: %w", err)
		}
		c.reName = re
	}
	if r.Require.DocstringRegex != "" {
		re, err := regexp.Compile("(?m)" + r.Require.DocstringRegex)
		if err != nil {
			return nil, fmt.Errorf("docstring_regex: %w", err)
		}
		c.reDoc = re
	}
	return c, nil
}

func registerCompiled(c compiled) {
	sev := ir.Severity(strings.ToUpper(strings.TrimSpace(c.rule.Severity)))
	rules.Register(rules.Rule{
		ID:      c.rule.ID,
		Summary: c.rule.Summary,
		Order:   100, // packs evaluate after the built-ins
		Eval: func(d *ir.Declaration) []ir.Diagnostic {
			if !d.HasDocstring {
				return nil
			}
			if c.kind != "" && d.Kind != c.kind {
				return nil
			}
			if c.reName != nil && !c.reName.MatchString(d.QualifiedName) {
				return nil
			}
			if c.rule.Require.Section != "" && !rules.HasSection(d.Docstring, c.rule.Require.Section) {
				return []ir.Diagnostic{{
					Severity: sev,
					Message:  fmt.Sprintf("%s - %s", d.QualifiedName, c.rule.Message),
				}}
			}
			if c.reDoc != nil && !c.reDoc.MatchString(d.Docstring) {
				return []ir.Diagnostic{{
					Severity: sev,
					Message:  fmt.Sprintf("%s - %s", d.QualifiedName, c.rule.Message),
				}}
			}
			return nil
		},
	})
}
