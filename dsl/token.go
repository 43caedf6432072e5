// Package dsl implements the attribute-section actor DSL: a lexer, a
// section splitter, per-section parsers, and interpretation of the parsed
// sections into a validated model.Definition.
package dsl

import "fmt"

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenEOF       TokenType = iota
	TokenIdent               // input, Ping, pub, true
	TokenNumber              // 100, -5
	TokenString              // "gopkg.in/yaml.v3"
	TokenColon               // :
	TokenComma               // ,
	TokenSemicolon           // ;
	TokenLParen              // (
	TokenRParen              // )
	TokenArrow               // =>
	TokenBlock               // { ... } captured verbatim, braces stripped
	TokenDoc                 // /// doc-comment line
	TokenPunct               // any other single character ([, ], *, ., ...)
)

// Token represents a single token from the lexer. Offset and End index the
// original source so parsers can recover verbatim spans (types, code).
type Token struct {
	Type    TokenType
	Literal string
	Offset  int
	End     int
	Line    int
	Col     int
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%v, %q, %d:%d}", t.Type, t.Literal, t.Line, t.Col)
}

// describe renders a token for expected-vs-found error messages.
func (t Token) describe() string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenBlock:
		return "code block"
	case TokenDoc:
		return "doc comment"
	default:
		return fmt.Sprintf("%q", t.Literal)
	}
}
