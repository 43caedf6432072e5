package dsl

import (
	"testing"
)

func tokenTypes(t *testing.T, input string) []TokenType {
	t.Helper()
	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestLexerBasicTokens(t *testing.T) {
	tokens, err := Tokenize(`input: Hello, Greet(name string),`)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []struct {
		typ TokenType
		lit string
	}{
		{TokenIdent, "input"},
		{TokenColon, ":"},
		{TokenIdent, "Hello"},
		{TokenComma, ","},
		{TokenIdent, "Greet"},
		{TokenLParen, "("},
		{TokenIdent, "name"},
		{TokenIdent, "string"},
		{TokenRParen, ")"},
		{TokenComma, ","},
		{TokenEOF, ""},
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, w := range want {
		if tokens[i].Type != w.typ || tokens[i].Literal != w.lit {
			t.Errorf("token %d: expected %v %q, got %v %q",
				i, w.typ, w.lit, tokens[i].Type, tokens[i].Literal)
		}
	}
}

func TestLexerBlockCapture(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", `on_init: { x := 1 };`, ` x := 1 `},
		{"nested braces", `on_init: { if a { b() } };`, ` if a { b() } `},
		{"brace in string", `on_init: { s := "}" };`, ` s := "}" `},
		{"brace in backquotes", "on_init: { s := `}` };", " s := `}` "},
		{"brace in rune", `on_init: { c := '}' };`, ` c := '}' `},
		{"brace in comment", "on_init: { // }\nx() };", " // }\nx() "},
		{"brace in block comment", `on_init: { /* } */ x() };`, ` /* } */ x() `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize failed: %v", err)
			}
			var block *Token
			for i := range tokens {
				if tokens[i].Type == TokenBlock {
					block = &tokens[i]
					break
				}
			}
			if block == nil {
				t.Fatalf("no block token in %v", tokens)
			}
			if block.Literal != tt.want {
				t.Errorf("block literal: expected %q, got %q", tt.want, block.Literal)
			}
		})
	}
}

func TestLexerUnterminatedBlock(t *testing.T) {
	_, err := Tokenize(`on_init: { x := 1`)
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Kind != ErrUnterminatedSection {
		t.Errorf("expected %s, got %s", ErrUnterminatedSection, perr.Kind)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	_, err := Tokenize(`imports: "fmt`)
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != ErrUnterminatedSection {
		t.Fatalf("expected unterminated-section error, got %v", err)
	}
}

func TestLexerComments(t *testing.T) {
	types := tokenTypes(t, "// line\n/* block */ input /* mid */ : Hello")
	want := []TokenType{TokenIdent, TokenColon, TokenIdent, TokenEOF}
	if len(types) != len(want) {
		t.Fatalf("expected %v, got %v", want, types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, types)
		}
	}
}

func TestLexerDocComment(t *testing.T) {
	tokens, err := Tokenize("docs:\n/// First line.\n///   indented text\n")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	var docs []string
	for _, tok := range tokens {
		if tok.Type == TokenDoc {
			docs = append(docs, tok.Literal)
		}
	}
	if len(docs) != 2 || docs[0] != "First line." || docs[1] != "  indented text" {
		t.Errorf("unexpected doc literals: %q", docs)
	}
}

func TestLexerNumbersAndArrow(t *testing.T) {
	tokens, err := Tokenize(`tick_interval: -42 => ;`)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if tokens[2].Type != TokenNumber || tokens[2].Literal != "-42" {
		t.Errorf("expected number -42, got %v %q", tokens[2].Type, tokens[2].Literal)
	}
	if tokens[3].Type != TokenArrow {
		t.Errorf("expected arrow, got %v", tokens[3].Type)
	}
	if tokens[4].Type != TokenSemicolon {
		t.Errorf("expected semicolon, got %v", tokens[4].Type)
	}
}

func TestLexerStringEscapes(t *testing.T) {
	tokens, err := Tokenize(`imports: "a\"b\n"`)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if tokens[2].Type != TokenString || tokens[2].Literal != "a\"b\n" {
		t.Errorf("bad string literal: %v %q", tokens[2].Type, tokens[2].Literal)
	}
}

func TestLexerPositions(t *testing.T) {
	tokens, err := Tokenize("a\n  b")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if tokens[0].Line != 1 || tokens[0].Col != 1 {
		t.Errorf("token a at %d:%d, expected 1:1", tokens[0].Line, tokens[0].Col)
	}
	if tokens[1].Line != 2 || tokens[1].Col != 3 {
		t.Errorf("token b at %d:%d, expected 2:3", tokens[1].Line, tokens[1].Col)
	}
}
