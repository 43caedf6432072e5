package dsl

import "unicode"

// Lexer tokenizes actor DSL input. Whitespace and ordinary comments are
// insignificant and skipped; `///` lines survive as doc tokens, and
// balanced-brace regions are captured verbatim as single block tokens.
type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte
	line    int
	col     int

	err *ParseError
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != 0 && l.ch != '\n' {
		l.readChar()
	}
}

func (l *Lexer) skipBlockComment() {
	l.readChar() // consume *
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return
		}
		l.readChar()
	}
}

func (l *Lexer) at() Token {
	return Token{Offset: l.pos, Line: l.line, Col: l.col}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()
		if l.ch == '/' && l.peekChar() == '/' {
			if l.pos+2 < len(l.input) && l.input[l.pos+2] == '/' {
				return l.readDocComment()
			}
			l.skipLineComment()
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			l.readChar()
			l.skipBlockComment()
			continue
		}
		break
	}

	start := l.at()
	tok := func(typ TokenType, lit string) Token {
		start.Type = typ
		start.Literal = lit
		start.End = l.pos
		return start
	}

	switch l.ch {
	case 0:
		return tok(TokenEOF, "")
	case ':':
		l.readChar()
		return tok(TokenColon, ":")
	case ',':
		l.readChar()
		return tok(TokenComma, ",")
	case ';':
		l.readChar()
		return tok(TokenSemicolon, ";")
	case '(':
		l.readChar()
		return tok(TokenLParen, "(")
	case ')':
		l.readChar()
		return tok(TokenRParen, ")")
	case '=':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return tok(TokenArrow, "=>")
		}
		l.readChar()
		return tok(TokenPunct, "=")
	case '{':
		l.readChar() // consume opening brace
		body := l.readBlock(start)
		return tok(TokenBlock, body)
	case '-':
		if isDigit(l.peekChar()) {
			l.readChar()
			return tok(TokenNumber, "-"+l.readNumber())
		}
		l.readChar()
		return tok(TokenPunct, "-")
	case '"':
		l.readChar() // consume opening quote
		return tok(TokenString, l.readString(start))
	default:
		if isDigit(l.ch) {
			return tok(TokenNumber, l.readNumber())
		}
		if isIdentStart(l.ch) {
			return tok(TokenIdent, l.readIdent())
		}
		ch := l.ch
		l.readChar()
		return tok(TokenPunct, string(ch))
	}
}

func (l *Lexer) readIdent() string {
	start := l.pos
	for isIdentChar(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readString(start Token) string {
	var result []byte
	for l.ch != 0 && l.ch != '"' {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				result = append(result, '\n')
			case 't':
				result = append(result, '\t')
			case '\\':
				result = append(result, '\\')
			case '"':
				result = append(result, '"')
			default:
				result = append(result, l.ch)
			}
		} else {
			result = append(result, l.ch)
		}
		l.readChar()
	}
	if l.ch != '"' {
		l.fail(ErrUnterminatedSection, start, "unterminated string literal")
		return string(result)
	}
	l.readChar() // consume closing quote
	return string(result)
}

// readDocComment captures the text of a /// line, leading slashes and
// surrounding whitespace stripped.
func (l *Lexer) readDocComment() Token {
	start := l.at()
	l.readChar()
	l.readChar()
	l.readChar() // consume ///
	if l.ch == ' ' {
		l.readChar()
	}
	textStart := l.pos
	for l.ch != 0 && l.ch != '\n' {
		l.readChar()
	}
	start.Type = TokenDoc
	start.Literal = l.input[textStart:l.pos]
	start.End = l.pos
	return start
}

// readBlock captures a balanced-brace region verbatim. Braces inside string
// literals and comments do not count toward nesting.
func (l *Lexer) readBlock(start Token) string {
	bodyStart := l.pos
	depth := 1 // already consumed opening {
	for l.ch != 0 {
		switch l.ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				body := l.input[bodyStart:l.pos]
				l.readChar() // consume closing brace
				return body
			}
		case '"', '\'', '`':
			l.skipQuoted(l.ch)
			continue
		case '/':
			if l.peekChar() == '/' {
				l.skipLineComment()
				continue
			}
			if l.peekChar() == '*' {
				l.readChar()
				l.skipBlockComment()
				continue
			}
		}
		l.readChar()
	}
	l.fail(ErrUnterminatedSection, start, "unbalanced braces: code block never closed")
	return l.input[bodyStart:l.pos]
}

// skipQuoted consumes a quoted literal inside a code block without
// interpreting it. Raw strings have no escapes.
func (l *Lexer) skipQuoted(quote byte) {
	l.readChar() // consume opening quote
	for l.ch != 0 && l.ch != quote {
		if quote != '`' && l.ch == '\\' {
			l.readChar()
		}
		if l.ch != 0 {
			l.readChar()
		}
	}
	if l.ch == quote {
		l.readChar()
	}
}

func (l *Lexer) fail(kind string, at Token, message string) {
	if l.err == nil {
		l.err = &ParseError{Kind: kind, Line: at.Line, Col: at.Col, Message: message}
	}
}

func isIdentStart(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_'
}

func isIdentChar(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || unicode.IsDigit(rune(ch)) || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns all tokens from the input, ending with an EOF token.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	if l.err != nil {
		return nil, l.err
	}
	return tokens, nil
}
