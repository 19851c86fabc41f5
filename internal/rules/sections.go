package rules

import "regexp"

// Section headers must occupy an entire line (modulo surrounding blanks) so
// that the word appearing mid-sentence never satisfies the check.
var (
	reArgsHeader       = regexp.MustCompile(`(?m)^[ \t]*Args:[ \t]*$`)
	reReturnsHeader    = regexp.MustCompile(`(?m)^[ \t]*Returns:[ \t]*$`)
	reAttributesHeader = regexp.MustCompile(`(?m)^[ \t]*Attributes:[ \t]*$`)
)

// paramDocPattern matches a documented parameter line: the name at the start
// of a line (any indentation), followed by a parenthesized type annotation
// and a colon.
func paramDocPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(name) + `[ \t]*\(.*?\):`)
}

// HasSection reports whether doc contains the given header as its own line.
// Used by the YAML rule packs and the HTML report.
func HasSection(doc, header string) bool {
	re := regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(header) + `[ \t]*$`)
	return re.MatchString(doc)
}
