package pysrc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleWidget = `"""Widget helpers."""


class Widget:
    """A drawable widget."""

    def __init__(self, name):
        """Create a widget.

        Args:
            name (str): Display name.
        """
        self.name = name

    def render(self, indent):
        """Render the widget."""
        return " " * indent + self.name
`

// find walks the tree depth-first for the first node of the given kind/name.
func find(n *Node, kind Kind, name string) *Node {
	if n.Kind == kind && n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if got := find(c, kind, name); got != nil {
			return got
		}
	}
	return nil
}

func mustParse(t *testing.T, src string) *Node {
	t.Helper()
	root, err := Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	require.NotNil(t, root)
	return root
}

func TestParse_ModuleAndClass(t *testing.T) {
	root := mustParse(t, sampleWidget)

	assert.Equal(t, KindModule, root.Kind)
	assert.True(t, root.HasDoc)
	assert.Equal(t, "Widget helpers.", root.Doc)

	cls := find(root, KindClass, "Widget")
	require.NotNil(t, cls)
	assert.True(t, cls.HasDoc)
	assert.Equal(t, "A drawable widget.", cls.Doc)
	assert.Equal(t, 4, cls.Line)
}

func TestParse_FunctionFacts(t *testing.T) {
	root := mustParse(t, sampleWidget)

	init := find(root, KindFunction, "__init__")
	require.NotNil(t, init)
	assert.Equal(t, []string{"self", "name"}, init.Params)
	assert.False(t, init.HasValueReturn)
	assert.Contains(t, init.Doc, "Args:")

	render := find(root, KindFunction, "render")
	require.NotNil(t, render)
	assert.Equal(t, []string{"self", "indent"}, render.Params)
	assert.True(t, render.HasValueReturn)
}

func TestParse_ParamKinds(t *testing.T) {
	src := `
def plain(a, b):
    pass

def typed(a: int, b: str = "x") -> int:
    return a

def starred(a, *args, **kwargs):
    pass

def kwonly(a, *, b):
    pass

def posonly(a, /, b):
    pass
`
	root := mustParse(t, src)

	cases := []struct {
		name string
		want []string
	}{
		{"plain", []string{"a", "b"}},
		{"typed", []string{"a", "b"}},
		// everything after * / *args is keyword-only and not counted
		{"starred", []string{"a"}},
		{"kwonly", []string{"a"}},
		{"posonly", []string{"a"}},
	}
	for _, tc := range cases {
		fn := find(root, KindFunction, tc.name)
		require.NotNil(t, fn, tc.name)
		assert.Equal(t, tc.want, fn.Params, tc.name)
	}
}

func TestParse_ValueReturn(t *testing.T) {
	src := `
def bare():
    return

def branchy(flag):
    if flag:
        return 1
    return

def outer():
    def inner():
        return 42
    x = 1
`
	root := mustParse(t, src)

	assert.False(t, find(root, KindFunction, "bare").HasValueReturn)
	assert.True(t, find(root, KindFunction, "branchy").HasValueReturn)
	// inner's return must not leak into outer
	assert.False(t, find(root, KindFunction, "outer").HasValueReturn)
	assert.True(t, find(root, KindFunction, "inner").HasValueReturn)
}

func TestParse_BlankDocstringIsAbsent(t *testing.T) {
	src := `
def noisy():
    """   """
    pass
`
	root := mustParse(t, src)
	fn := find(root, KindFunction, "noisy")
	require.NotNil(t, fn)
	assert.False(t, fn.HasDoc)
	assert.Empty(t, fn.Doc)
}

func TestParse_NonDocstringFirstStatement(t *testing.T) {
	src := `
def busy():
    x = 1
    """not a docstring"""
`
	root := mustParse(t, src)
	fn := find(root, KindFunction, "busy")
	require.NotNil(t, fn)
	assert.False(t, fn.HasDoc)
}

func TestParse_DecoratedDefinition(t *testing.T) {
	src := `
class Box:
    """Container."""

    @property
    def value(self):
        """Current value."""
        return self._value
`
	root := mustParse(t, src)
	fn := find(root, KindFunction, "value")
	require.NotNil(t, fn)
	assert.True(t, fn.HasDoc)
	assert.True(t, fn.HasValueReturn)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse(context.Background(), []byte("def broken(:\n    pass\n"))
	require.Error(t, err)
	var serr *SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.Greater(t, serr.Line, 0)
	assert.Contains(t, err.Error(), "syntax error")
}

func TestStripQuotes(t *testing.T) {
	cases := map[string]string{
		`"""doc"""`:   "doc",
		`'''doc'''`:   "doc",
		`"doc"`:       "doc",
		`'doc'`:       "doc",
		`r"""raw"""`:  "raw",
		`f"formated"`: "formated",
		`no quotes`:   "no quotes",
	}
	for in, want := range cases {
		assert.Equal(t, want, stripQuotes(in), in)
	}
}
