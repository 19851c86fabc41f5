package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codewithboateng/doclift/internal/ir"
)

func TestSummarize(t *testing.T) {
	decls := []ir.Declaration{
		{QualifiedName: "A", HasDocstring: true},
		{QualifiedName: "B", HasDocstring: false},
		{QualifiedName: "C", HasDocstring: true},
		{QualifiedName: "D", HasDocstring: true},
	}
	c := Summarize(decls)
	assert.Equal(t, 4, c.Total)
	assert.Equal(t, 3, c.Documented)
	assert.InDelta(t, 75.0, c.Percent, 0.001)
}

func TestSummarize_Empty(t *testing.T) {
	c := Summarize(nil)
	assert.Zero(t, c.Total)
	assert.Zero(t, c.Percent)
}

func TestMerge(t *testing.T) {
	a := Summarize([]ir.Declaration{{HasDocstring: true}})
	b := Summarize([]ir.Declaration{{HasDocstring: false}, {HasDocstring: true}})
	m := Merge(a, b)
	assert.Equal(t, 3, m.Total)
	assert.Equal(t, 2, m.Documented)
	assert.InDelta(t, 66.666, m.Percent, 0.01)
}
