// Package compiler implements the lexer-driven parser, the path-keyed
// handler table, and the argument extractors that turn theme source text
// into a populated edje.File.
package compiler

import "fmt"

// Kind is the error taxonomy named in spec.md §7. It is not a Go error
// type hierarchy, just a tag carried on every Diagnostic so callers can
// classify a failure without string matching.
type Kind uint8

const (
	KindSyntax Kind = iota
	KindRange
	KindEnumeration
	KindContext
	KindUniqueness
	KindReference
	KindSemantic
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "Syntax"
	case KindRange:
		return "Range"
	case KindEnumeration:
		return "Enumeration"
	case KindContext:
		return "Context"
	case KindUniqueness:
		return "Uniqueness"
	case KindReference:
		return "Reference"
	case KindSemantic:
		return "Semantic"
	case KindResource:
		return "Resource"
	default:
		return "Unknown"
	}
}

// Diagnostic is the compiler's one error shape: every failure, regardless
// of which pass raised it, carries a kind, a file:line, and a message.
// Propagation policy is fatal-on-first (spec.md §7): the driver stops at
// the first Diagnostic it sees.
type Diagnostic struct {
	Kind Kind
	File string
	Line int
	Msg  string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("edjecc: Error. parse error %s:%d. %s", d.File, d.Line, d.Msg)
}

func newDiag(kind Kind, file string, line int, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, File: file, Line: line, Msg: fmt.Sprintf(format, args...)}
}
