package dsl

import (
	"strconv"
	"strings"

	"github.com/stagehand-xyz/go-stagehand/model"
)

// Parse turns DSL text into an ActorNode: the actor name plus one parsed
// sub-model per attribute section. Cross-section validation happens later,
// in Interpret.
func Parse(input string) (*ActorNode, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	name, sections, err := SplitSections(tokens)
	if err != nil {
		return nil, err
	}

	p := &parser{src: input, node: &ActorNode{Name: name}}
	for _, sec := range sections {
		if err := p.parseSection(sec); err != nil {
			return nil, err
		}
	}
	return p.node, nil
}

type parser struct {
	src  string
	node *ActorNode
}

func (p *parser) parseSection(sec Section) error {
	var err error
	switch sec.Keyword {
	case "input":
		err = p.parseMessages(sec)
	case "input_derive":
		err = p.parseDerives(sec)
	case "data":
		err = p.parseFields(sec)
	case "imports":
		err = p.parseImports(sec)
	case "on_message":
		err = p.parseArms(sec)
	case "on_init":
		p.node.OnInit, err = p.parseCode(sec)
	case "on_tick":
		p.node.OnTick, err = p.parseCode(sec)
	case "on_stop":
		p.node.OnStop, err = p.parseCode(sec)
	case "custom_code":
		p.node.CustomCode, err = p.parseCode(sec)
	case "tick_interval":
		err = p.parseTickInterval(sec)
	case "public_visibility":
		err = p.parsePublicVisibility(sec)
	case "spawner":
		p.node.Spawner, err = p.parseVerbatim(sec)
	case "spawner_return_type":
		p.node.SpawnerReturnType, err = p.parseVerbatim(sec)
	case "docs":
		err = p.parseDocs(sec)
	}
	return err
}

// raw recovers the verbatim source span covered by a token run.
func (p *parser) raw(tokens []Token) string {
	if len(tokens) == 0 {
		return ""
	}
	return strings.TrimSpace(p.src[tokens[0].Offset:tokens[len(tokens)-1].End])
}

// splitItems splits a token span on commas outside parentheses. A trailing
// comma yields a final empty item.
func splitItems(tokens []Token) [][]Token {
	var items [][]Token
	var current []Token
	depth := 0
	for _, tok := range tokens {
		switch tok.Type {
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
		case TokenComma:
			if depth == 0 {
				items = append(items, current)
				current = nil
				continue
			}
		}
		current = append(current, tok)
	}
	items = append(items, current)
	return items
}

// trimListItems drops a trailing empty item (optional trailing comma) and
// rejects empty items anywhere else.
func trimListItems(sec Section, items [][]Token) ([][]Token, error) {
	if len(items) > 0 && len(items[len(items)-1]) == 0 {
		items = items[:len(items)-1]
	}
	for _, item := range items {
		if len(item) == 0 {
			return nil, parseErrorf(ErrMalformedSeparator, sec.Keyword, Token{Line: sec.Line, Col: sec.Col},
				"empty item: consecutive commas")
		}
	}
	return items, nil
}

func (p *parser) parseMessages(sec Section) error {
	if len(sec.Tokens) == 0 {
		return nil
	}
	items, err := trimListItems(sec, splitItems(sec.Tokens))
	if err != nil {
		return err
	}
	for _, item := range items {
		msg, err := p.parseVariant(sec, item)
		if err != nil {
			return err
		}
		p.node.Messages = append(p.node.Messages, msg)
	}
	return nil
}

// parseVariant parses `Name` or `Name(field Type, ...)`.
func (p *parser) parseVariant(sec Section, item []Token) (model.Message, error) {
	if item[0].Type != TokenIdent {
		return model.Message{}, parseErrorf(ErrMalformedSyntax, sec.Keyword, item[0],
			"expected message variant name, found %s", item[0].describe())
	}
	msg := model.Message{Name: item[0].Literal}
	if len(item) == 1 {
		return msg, nil
	}
	if item[1].Type != TokenLParen || item[len(item)-1].Type != TokenRParen {
		return model.Message{}, parseErrorf(ErrMalformedSyntax, sec.Keyword, item[1],
			"expected parenthesized payload list after variant %q, found %s", msg.Name, item[1].describe())
	}
	params := item[2 : len(item)-1]
	if len(params) == 0 {
		return msg, nil
	}
	fields, err := trimListItems(sec, splitItems(params))
	if err != nil {
		return model.Message{}, err
	}
	for _, f := range fields {
		if f[0].Type != TokenIdent {
			return model.Message{}, parseErrorf(ErrMalformedSyntax, sec.Keyword, f[0],
				"expected payload field name, found %s", f[0].describe())
		}
		if len(f) < 2 {
			return model.Message{}, parseErrorf(ErrMalformedSyntax, sec.Keyword, f[0],
				"payload field %q has no type", f[0].Literal)
		}
		msg.Payload = append(msg.Payload, model.PayloadField{
			Name: f[0].Literal,
			Type: p.raw(f[1:]),
		})
	}
	return msg, nil
}

func (p *parser) parseFields(sec Section) error {
	if len(sec.Tokens) == 0 {
		return nil
	}
	items, err := trimListItems(sec, splitItems(sec.Tokens))
	if err != nil {
		return err
	}
	for _, item := range items {
		field := model.StateField{}
		rest := item
		if rest[0].Type == TokenIdent && rest[0].Literal == "pub" && len(rest) > 1 && rest[1].Type == TokenIdent {
			field.Pub = true
			rest = rest[1:]
		}
		if rest[0].Type != TokenIdent {
			return parseErrorf(ErrMalformedSyntax, sec.Keyword, rest[0],
				"expected field name, found %s", rest[0].describe())
		}
		field.Name = rest[0].Literal
		if len(rest) < 2 || rest[1].Type != TokenColon {
			return parseErrorf(ErrMalformedSyntax, sec.Keyword, rest[0],
				"expected %q after field name %q", ":", field.Name)
		}
		if len(rest) < 3 {
			return parseErrorf(ErrMalformedSyntax, sec.Keyword, rest[1],
				"field %q has no type", field.Name)
		}
		field.Type = p.raw(rest[2:])
		p.node.Fields = append(p.node.Fields, field)
	}
	return nil
}

func (p *parser) parseDerives(sec Section) error {
	if len(sec.Tokens) == 0 {
		return nil
	}
	items, err := trimListItems(sec, splitItems(sec.Tokens))
	if err != nil {
		return err
	}
	for _, item := range items {
		if item[0].Type != TokenIdent {
			return parseErrorf(ErrMalformedSyntax, sec.Keyword, item[0],
				"expected derive name, found %s", item[0].describe())
		}
		p.node.Derives = append(p.node.Derives, p.raw(item))
	}
	return nil
}

func (p *parser) parseImports(sec Section) error {
	if len(sec.Tokens) == 0 {
		return nil
	}
	items, err := trimListItems(sec, splitItems(sec.Tokens))
	if err != nil {
		return err
	}
	for _, item := range items {
		if len(item) != 1 || item[0].Type != TokenString {
			return parseErrorf(ErrMalformedSyntax, sec.Keyword, item[0],
				"expected quoted import path, found %s", item[0].describe())
		}
		p.node.Imports = append(p.node.Imports, item[0].Literal)
	}
	return nil
}

// parseCode parses a code-style section: one verbatim block, optionally
// terminated by a single semicolon. A trailing comma is malformed.
func (p *parser) parseCode(sec Section) (string, error) {
	at := Token{Line: sec.Line, Col: sec.Col}
	if len(sec.Tokens) == 0 {
		return "", parseErrorf(ErrMalformedSyntax, sec.Keyword, at,
			"expected a braced code block")
	}
	if sec.Tokens[0].Type != TokenBlock {
		return "", parseErrorf(ErrMalformedSyntax, sec.Keyword, sec.Tokens[0],
			"expected a braced code block, found %s", sec.Tokens[0].describe())
	}
	body := strings.TrimRight(sec.Tokens[0].Literal, " \t\n")
	rest := sec.Tokens[1:]
	switch {
	case len(rest) == 0:
	case len(rest) == 1 && rest[0].Type == TokenSemicolon:
	case rest[0].Type == TokenComma:
		return "", parseErrorf(ErrMalformedSeparator, sec.Keyword, rest[0],
			"code sections end with a single semicolon or nothing, not a comma")
	case rest[0].Type == TokenSemicolon && rest[1].Type == TokenSemicolon:
		return "", parseErrorf(ErrMalformedSeparator, sec.Keyword, rest[1],
			"more than one trailing separator")
	default:
		return "", parseErrorf(ErrMalformedSyntax, sec.Keyword, rest[0],
			"unexpected %s after code block", rest[0].describe())
	}
	return body, nil
}

// parseArms parses on_message: comma-separated `pattern => { block }` arms
// with an optional single trailing semicolon.
func (p *parser) parseArms(sec Section) error {
	tokens := sec.Tokens
	if len(tokens) == 0 {
		p.node.Handlers = []model.Handler{}
		return nil
	}
	if last := tokens[len(tokens)-1]; last.Type == TokenSemicolon {
		tokens = tokens[:len(tokens)-1]
		if len(tokens) == 0 {
			return parseErrorf(ErrMalformedSeparator, sec.Keyword, last,
				"separator with no match arms")
		}
		if tokens[len(tokens)-1].Type == TokenSemicolon {
			return parseErrorf(ErrMalformedSeparator, sec.Keyword, last,
				"more than one trailing separator")
		}
	}
	items := splitItems(tokens)
	if len(items) > 0 && len(items[len(items)-1]) == 0 {
		return parseErrorf(ErrMalformedSeparator, sec.Keyword, tokens[len(tokens)-1],
			"code sections end with a single semicolon or nothing, not a comma")
	}
	for _, item := range items {
		h, err := p.parseArm(sec, item)
		if err != nil {
			return err
		}
		p.node.Handlers = append(p.node.Handlers, h)
	}
	return nil
}

func (p *parser) parseArm(sec Section, item []Token) (model.Handler, error) {
	if len(item) == 0 {
		return model.Handler{}, parseErrorf(ErrMalformedSeparator, sec.Keyword,
			Token{Line: sec.Line, Col: sec.Col}, "empty match arm: consecutive commas")
	}
	arrow := -1
	for i, tok := range item {
		if tok.Type == TokenArrow {
			arrow = i
			break
		}
	}
	if arrow < 0 {
		return model.Handler{}, parseErrorf(ErrMalformedSyntax, sec.Keyword, item[0],
			"match arm has no %q", "=>")
	}

	h, err := p.parsePattern(sec, item[:arrow])
	if err != nil {
		return model.Handler{}, err
	}

	body := item[arrow+1:]
	if len(body) == 0 {
		return model.Handler{}, parseErrorf(ErrMalformedSyntax, sec.Keyword, item[arrow],
			"expected a braced code block after %q", "=>")
	}
	if body[0].Type != TokenBlock || len(body) > 1 {
		return model.Handler{}, parseErrorf(ErrMalformedSyntax, sec.Keyword, body[0],
			"expected a single braced code block after %q, found %s", "=>", body[0].describe())
	}
	h.Body = strings.TrimRight(body[0].Literal, " \t\n")
	return h, nil
}

// parsePattern parses `Variant`, `Variant(bind, ...)` or the catch-all `_`.
func (p *parser) parsePattern(sec Section, pattern []Token) (model.Handler, error) {
	if len(pattern) == 0 {
		return model.Handler{}, parseErrorf(ErrMalformedSyntax, sec.Keyword,
			Token{Line: sec.Line, Col: sec.Col}, "match arm has an empty pattern")
	}
	if pattern[0].Type != TokenIdent {
		return model.Handler{}, parseErrorf(ErrMalformedSyntax, sec.Keyword, pattern[0],
			"expected message variant pattern, found %s", pattern[0].describe())
	}
	if pattern[0].Literal == "_" {
		if len(pattern) > 1 {
			return model.Handler{}, parseErrorf(ErrMalformedSyntax, sec.Keyword, pattern[1],
				"catch-all pattern takes no payload binds")
		}
		return model.Handler{CatchAll: true}, nil
	}
	h := model.Handler{Variant: pattern[0].Literal}
	if len(pattern) == 1 {
		return h, nil
	}
	if pattern[1].Type != TokenLParen || pattern[len(pattern)-1].Type != TokenRParen {
		return model.Handler{}, parseErrorf(ErrMalformedSyntax, sec.Keyword, pattern[1],
			"expected parenthesized binds after pattern %q, found %s", h.Variant, pattern[1].describe())
	}
	binds, err := trimListItems(sec, splitItems(pattern[2:len(pattern)-1]))
	if err != nil {
		return model.Handler{}, err
	}
	for _, b := range binds {
		if len(b) != 1 || b[0].Type != TokenIdent {
			return model.Handler{}, parseErrorf(ErrMalformedSyntax, sec.Keyword, b[0],
				"expected bind identifier, found %s", b[0].describe())
		}
		h.Binds = append(h.Binds, b[0].Literal)
	}
	return h, nil
}

func (p *parser) parseTickInterval(sec Section) error {
	tokens, err := p.scalarTokens(sec)
	if err != nil {
		return err
	}
	if len(tokens) != 1 || tokens[0].Type != TokenNumber {
		at := Token{Line: sec.Line, Col: sec.Col}
		if len(tokens) > 0 {
			at = tokens[0]
		}
		return parseErrorf(ErrMalformedSyntax, sec.Keyword, at,
			"expected an integer number of milliseconds, found %s", at.describe())
	}
	n, err := strconv.Atoi(tokens[0].Literal)
	if err != nil {
		return parseErrorf(ErrMalformedSyntax, sec.Keyword, tokens[0],
			"invalid integer %q", tokens[0].Literal)
	}
	p.node.TickInterval = &n
	return nil
}

func (p *parser) parsePublicVisibility(sec Section) error {
	tokens, err := p.scalarTokens(sec)
	if err != nil {
		return err
	}
	if len(tokens) != 1 || tokens[0].Type != TokenIdent ||
		(tokens[0].Literal != "true" && tokens[0].Literal != "false") {
		at := Token{Line: sec.Line, Col: sec.Col}
		if len(tokens) > 0 {
			at = tokens[0]
		}
		return parseErrorf(ErrMalformedSyntax, sec.Keyword, at,
			"expected %q or %q, found %s", "true", "false", at.describe())
	}
	public := tokens[0].Literal == "true"
	p.node.Public = &public
	return nil
}

// parseVerbatim captures a scalar section's raw source, used for the
// spawner expression and its return type.
func (p *parser) parseVerbatim(sec Section) (string, error) {
	tokens, err := p.scalarTokens(sec)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", parseErrorf(ErrMalformedSyntax, sec.Keyword, Token{Line: sec.Line, Col: sec.Col},
			"section %q has no value", sec.Keyword)
	}
	return p.raw(tokens), nil
}

func (p *parser) parseDocs(sec Section) error {
	for _, tok := range sec.Tokens {
		if tok.Type != TokenDoc {
			return parseErrorf(ErrMalformedSyntax, sec.Keyword, tok,
				"expected /// doc-comment lines, found %s", tok.describe())
		}
		p.node.Docs = append(p.node.Docs, tok.Literal)
	}
	return nil
}

// scalarTokens strips the optional trailing comma from a scalar section.
func (p *parser) scalarTokens(sec Section) ([]Token, error) {
	tokens := sec.Tokens
	if len(tokens) > 0 && tokens[len(tokens)-1].Type == TokenComma {
		tokens = tokens[:len(tokens)-1]
		if len(tokens) > 0 && tokens[len(tokens)-1].Type == TokenComma {
			return nil, parseErrorf(ErrMalformedSeparator, sec.Keyword, tokens[len(tokens)-1],
				"more than one trailing separator")
		}
	}
	return tokens, nil
}
