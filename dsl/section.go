package dsl

// sectionStyle controls separator rules for a section kind.
type sectionStyle int

const (
	styleList   sectionStyle = iota // comma-separated items, trailing comma ok
	styleCode                       // verbatim block(s), optional single semicolon
	styleScalar                     // single literal or identifier
)

// sectionKeywords is the fixed, closed set of attribute keywords. A keyword
// only opens a section when immediately followed by a colon at nesting
// depth zero.
var sectionKeywords = map[string]sectionStyle{
	"input":               styleList,
	"input_derive":        styleList,
	"data":                styleList,
	"imports":             styleList,
	"on_init":             styleCode,
	"on_message":          styleCode,
	"on_tick":             styleCode,
	"on_stop":             styleCode,
	"custom_code":         styleCode,
	"tick_interval":       styleScalar,
	"public_visibility":   styleScalar,
	"spawner":             styleScalar,
	"spawner_return_type": styleScalar,
	"docs":                styleScalar,
}

// Section is one named attribute section: the keyword plus the raw token
// span between it and the next section.
type Section struct {
	Keyword string
	Tokens  []Token
	Line    int
	Col     int
}

// SplitSections groups a token stream into the actor name and its ordered
// attribute sections. Duplicate sections and section-like unknown keywords
// are hard errors.
func SplitSections(tokens []Token) (string, []Section, error) {
	if len(tokens) == 0 || tokens[0].Type == TokenEOF {
		return "", nil, parseErrorf(ErrMalformedSyntax, "", Token{Line: 1, Col: 1},
			"empty actor definition")
	}
	name := tokens[0]
	if name.Type != TokenIdent {
		return "", nil, parseErrorf(ErrMalformedSyntax, "", name,
			"expected actor name identifier, found %s", name.describe())
	}
	if _, reserved := sectionKeywords[name.Literal]; reserved {
		return "", nil, parseErrorf(ErrMalformedSyntax, "", name,
			"actor name %q is a reserved section keyword", name.Literal)
	}

	var sections []Section
	seen := make(map[string]Token)
	current := -1 // index into sections; -1 = before the first section
	depth := 0

	for i := 1; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Type == TokenEOF {
			break
		}
		switch tok.Type {
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
		}

		boundary := false
		if tok.Type == TokenIdent && depth == 0 && i+1 < len(tokens) && tokens[i+1].Type == TokenColon {
			if _, ok := sectionKeywords[tok.Literal]; ok {
				boundary = true
			} else if current < 0 {
				// Before any section only keywords may open a body.
				return "", nil, parseErrorf(ErrUnknownSection, "", tok,
					"unknown section keyword %q", tok.Literal)
			}
		}

		if boundary {
			if prev, dup := seen[tok.Literal]; dup {
				return "", nil, parseErrorf(ErrDuplicateSection, tok.Literal, tok,
					"section %q already declared at %d:%d", tok.Literal, prev.Line, prev.Col)
			}
			seen[tok.Literal] = tok
			sections = append(sections, Section{Keyword: tok.Literal, Line: tok.Line, Col: tok.Col})
			current = len(sections) - 1
			i++ // skip the colon
			continue
		}

		if current < 0 {
			return "", nil, parseErrorf(ErrMalformedSyntax, "", tok,
				"expected a section keyword after the actor name, found %s", tok.describe())
		}
		sections[current].Tokens = append(sections[current].Tokens, tok)
	}

	return name.Literal, sections, nil
}
