package scanner

import "regexp"

// Pattern compiles a grammar probe. All probes share the same regex
// contract: anchored at the match position, case-insensitive, and dot
// matches newline. Callers compile each pattern once at package init.
func Pattern(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)\A(?:` + expr + `)`)
}

// whitePattern recognizes one whitespace unit: a block comment
// (captured), a line comment, or a whitespace run.
var whitePattern = Pattern(`(/\*.*?\*/)|//[^\n]*|\s+`)
