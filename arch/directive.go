package arch

// Directive identifies one of the four directive keywords.
type Directive int

// Known directives.
const (
	DotData Directive = iota
	DotString
	DotEntry
	DotExtern
)

var directiveNames = [...]string{
	DotData:   ".data",
	DotString: ".string",
	DotEntry:  ".entry",
	DotExtern: ".extern",
}

// DirectiveFromName returns the directive matching name (including the
// leading '.'), and whether it was recognized.
func DirectiveFromName(name string) (Directive, bool) {
	for d, n := range directiveNames {
		if n == name {
			return Directive(d), true
		}
	}
	return -1, false
}

// String returns the canonical spelling of the directive.
func (d Directive) String() string {
	if int(d) >= 0 && int(d) < len(directiveNames) {
		return directiveNames[d]
	}
	return "?"
}

// IsDirectiveKeyword returns true if name (without a leading '.') collides
// with a directive keyword spelled without its dot, e.g. "data" vs ".data".
// Label names never carry a leading dot, so the comparison strips it from
// the directive side.
func IsDirectiveKeyword(name string) bool {
	for _, n := range directiveNames {
		if n[1:] == name {
			return true
		}
	}
	return false
}

// Directives returns the ordered list of every directive keyword (with
// leading dot), used to seed the lexer's keyword-classification trie.
func Directives() []string {
	out := make([]string, len(directiveNames))
	copy(out, directiveNames[:])
	return out
}
