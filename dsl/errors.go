package dsl

import "fmt"

// Parse error kinds.
const (
	ErrUnknownSection      = "unknown_section"
	ErrDuplicateSection    = "duplicate_section"
	ErrMalformedSeparator  = "malformed_separator"
	ErrUnterminatedSection = "unterminated_section"
	ErrMalformedSyntax     = "malformed_syntax"
)

// ParseError describes malformed DSL syntax. It pinpoints the offending
// location and, where known, the enclosing section keyword.
type ParseError struct {
	Kind    string
	Section string
	Line    int
	Col     int
	Message string
}

func (e *ParseError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("parse: %s in section %q at %d:%d: %s",
			e.Kind, e.Section, e.Line, e.Col, e.Message)
	}
	return fmt.Sprintf("parse: %s at %d:%d: %s", e.Kind, e.Line, e.Col, e.Message)
}

func parseErrorf(kind, section string, tok Token, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    kind,
		Section: section,
		Line:    tok.Line,
		Col:     tok.Col,
		Message: fmt.Sprintf(format, args...),
	}
}
