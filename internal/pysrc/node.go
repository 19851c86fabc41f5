package pysrc

// Kind tags the closed set of syntax-node variants the checker cares about.
// Anything that is not a module, class or function is Other; Other nodes are
// traversed but never validated.
type Kind int

const (
	KindModule Kind = iota
	KindClass
	KindFunction
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	default:
		return "other"
	}
}

// Node is a tagged view over the parsed source tree. Class and Function nodes
// carry the structural facts the rule engine needs; the raw tree-sitter tree
// is discarded once conversion finishes.
type Node struct {
	Kind Kind
	Name string
	Line int // 1-based line of the def/class keyword

	// Doc is the attached docstring with quotes stripped. HasDoc is false
	// when there is no docstring or it is blank, matching the reference
	// behavior of treating an empty docstring as absent.
	Doc    string
	HasDoc bool

	// Params holds declared positional parameter names in order, including
	// self/cls. *args, **kwargs and keyword-only parameters are not counted.
	Params []string

	// HasValueReturn is true when the statement body contains at least one
	// return with a value, not counting nested function or class bodies.
	HasValueReturn bool

	Children []*Node
}
