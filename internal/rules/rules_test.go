package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithboateng/doclift/internal/ir"
)

func resetSettings(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { SetSettings(Settings{}) })
}

func fn(name string, params []string, doc string, hasReturn bool) ir.Declaration {
	return ir.Declaration{
		Kind:           ir.DeclFunction,
		Name:           name,
		QualifiedName:  name,
		File:           "m.py",
		Line:           10,
		Params:         params,
		HasValueReturn: hasReturn,
		Docstring:      doc,
		HasDocstring:   doc != "",
	}
}

func cls(name, doc string) ir.Declaration {
	return ir.Declaration{
		Kind:          ir.DeclClass,
		Name:          name,
		QualifiedName: name,
		File:          "m.py",
		Line:          3,
		Docstring:     doc,
		HasDocstring:  doc != "",
	}
}

func ruleIDs(ds []ir.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.RuleID)
	}
	return out
}

func TestMissingDocstring(t *testing.T) {
	resetSettings(t)

	ds := Evaluate([]ir.Declaration{cls("Shape", ""), fn("area", nil, "", false)})
	require.Len(t, ds, 2)

	assert.Equal(t, "DOC-MISSING", ds[0].RuleID)
	assert.Equal(t, ir.SeverityError, ds[0].Severity)
	assert.Equal(t, "Class Shape missing docstring", ds[0].Message)
	assert.Equal(t, "Function area missing docstring", ds[1].Message)
}

func TestMissingDocstring_SuppressesStructuralRules(t *testing.T) {
	resetSettings(t)

	// No docstring: the structural rules have nothing to inspect, so the
	// presence error is the only finding even with params and a return.
	ds := Evaluate([]ir.Declaration{fn("calc", []string{"x"}, "", true)})
	require.Len(t, ds, 1)
	assert.Equal(t, "DOC-MISSING", ds[0].RuleID)
}

func TestArgsSection_MissingHeader(t *testing.T) {
	resetSettings(t)

	ds := Evaluate([]ir.Declaration{fn("render", []string{"indent"}, "Render the widget.", false)})
	require.Len(t, ds, 1)
	assert.Equal(t, "DOC-ARGS", ds[0].RuleID)
	assert.Equal(t, ir.SeverityError, ds[0].Severity)
	assert.Equal(t, "render - Missing 'Args:' section for function with arguments", ds[0].Message)
}

func TestArgsSection_UndocumentedParam(t *testing.T) {
	resetSettings(t)

	doc := "Do a thing.\n\nArgs:\n    a (int): First.\n"
	ds := Evaluate([]ir.Declaration{fn("thing", []string{"a", "b"}, doc, false)})
	require.Len(t, ds, 1)
	assert.Equal(t, "DOC-ARGS", ds[0].RuleID)
	assert.Equal(t, ir.SeverityWarning, ds[0].Severity)
	assert.Equal(t, "thing - Argument 'b' not documented in Args section", ds[0].Message)
}

func TestArgsSection_HeaderMustBeOwnLine(t *testing.T) {
	resetSettings(t)

	// "Args:" mid-sentence does not count as the section header.
	doc := "Takes Args: a and b inline."
	ds := Evaluate([]ir.Declaration{fn("g", []string{"a"}, doc, false)})
	require.Len(t, ds, 1)
	assert.Equal(t, ir.SeverityError, ds[0].Severity)
}

func TestArgsSection_NoParamsNoFinding(t *testing.T) {
	resetSettings(t)

	ds := Evaluate([]ir.Declaration{fn("ping", nil, "Ping.", false)})
	assert.Empty(t, ds)
}

func TestReturnsSection(t *testing.T) {
	resetSettings(t)

	ds := Evaluate([]ir.Declaration{fn("pick", nil, "Pick one.", true)})
	require.Len(t, ds, 1)
	assert.Equal(t, "DOC-RETURNS", ds[0].RuleID)
	assert.Equal(t, ir.SeverityWarning, ds[0].Severity)
	assert.Equal(t, "pick - Missing 'Returns:' section for function with return statement", ds[0].Message)

	documented := "Pick one.\n\nReturns:\n    int: The pick.\n"
	assert.Empty(t, Evaluate([]ir.Declaration{fn("pick", nil, documented, true)}))
}

func TestReturnsSection_NoValueReturn(t *testing.T) {
	resetSettings(t)

	assert.Empty(t, Evaluate([]ir.Declaration{fn("setup", nil, "Set up.", false)}))
}

func TestAttributesSection_Informational(t *testing.T) {
	resetSettings(t)

	// Presence or absence of Attributes: never yields a finding.
	assert.Empty(t, Evaluate([]ir.Declaration{cls("Plain", "Plain.")}))

	withAttrs := cls("Rich", "Rich.\n\nAttributes:\n    n (int): Count.\n")
	assert.Empty(t, Evaluate([]ir.Declaration{withAttrs}))
	assert.True(t, HasAttributesSection(&withAttrs))
	plain := cls("Plain", "Plain.")
	assert.False(t, HasAttributesSection(&plain))
}

func TestEvaluate_CombinedScenario(t *testing.T) {
	resetSettings(t)

	// Summary-only docstring on a function with args and a value return:
	// one DOC-ARGS error plus one DOC-RETURNS warning, errors first.
	ds := Evaluate([]ir.Declaration{fn("render", []string{"indent"}, "Render the widget.", true)})
	require.Equal(t, []string{"DOC-ARGS", "DOC-RETURNS"}, ruleIDs(ds))
	assert.Equal(t, ir.SeverityError, ds[0].Severity)
	assert.Equal(t, ir.SeverityWarning, ds[1].Severity)
}

func TestEvaluate_FillsFieldsAndUniqueIDs(t *testing.T) {
	resetSettings(t)

	ds := Evaluate([]ir.Declaration{cls("A", ""), fn("b", nil, "", false)})
	seen := map[string]bool{}
	for _, d := range ds {
		assert.NotEmpty(t, d.ID)
		assert.False(t, seen[d.ID], "duplicate diagnostic id %s", d.ID)
		seen[d.ID] = true
		assert.Equal(t, "m.py", d.File)
		assert.NotZero(t, d.Line)
		assert.NotEmpty(t, d.Symbol)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	resetSettings(t)

	decls := []ir.Declaration{
		fn("z", []string{"q"}, "Z.", true),
		cls("A", ""),
		fn("m", nil, "", false),
	}
	first := Evaluate(decls)
	second := Evaluate(decls)
	assert.Equal(t, first, second)
}

func TestDisabledRules(t *testing.T) {
	resetSettings(t)
	SetSettings(Settings{Disabled: DisabledSet([]string{"doc-returns"})})

	ds := Evaluate([]ir.Declaration{fn("pick", nil, "Pick.", true)})
	assert.Empty(t, ds)

	for _, r := range List() {
		assert.NotEqual(t, "DOC-RETURNS", r.ID)
	}
}

func TestHasSection(t *testing.T) {
	assert.True(t, HasSection("Summary.\n\nRaises:\n    ValueError: bad.\n", "Raises:"))
	assert.True(t, HasSection("    Raises:   \n", "Raises:"))
	assert.False(t, HasSection("It never Raises: anything inline.", "Raises:"))
}

func TestGet(t *testing.T) {
	r, ok := Get("doc-missing")
	require.True(t, ok)
	assert.Equal(t, "DOC-MISSING", r.ID)

	_, ok = Get("NO-SUCH-RULE")
	assert.False(t, ok)
}
