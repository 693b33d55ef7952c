package parser

import (
	"github.com/seen-lang/seen/internal/compiler/ast"
	"github.com/seen-lang/seen/internal/compiler/token"
)

// parsePattern parses the pattern grammar: literals, identifiers,
// `[…]`, `(…)`, struct patterns with an optional type-name prefix,
// `.Variant(pat)` enum patterns, and the wildcard. Identifier patterns
// are recorded by the caller, never eagerly resolved.
func (p *Parser) parsePattern() ast.Pattern {
	tok := p.cur()
	switch tok.Kind {
	case token.BOOL_LIT, token.INT_LIT, token.FLOAT_LIT, token.CHAR_LIT, token.STRING_LIT:
		p.next()
		return &ast.LitPattern{Tok: tok}
	case token.MINUS:
		// negative literal pattern
		p.next()
		lit := p.cur()
		if lit.Kind != token.INT_LIT && lit.Kind != token.FLOAT_LIT {
			p.errorAt(lit, "expected a numeric literal after `-` in pattern")
			return nil
		}
		p.next()
		lit.Lit = "-" + lit.Lit
		lit.Start = tok.Start
		return &ast.LitPattern{Tok: lit}
	case token.UNDERSCORE:
		p.next()
		return &ast.WildcardPattern{Tok: tok}
	case token.ID:
		p.next()
		switch p.cur().Kind {
		case token.LBRACE:
			if pat := p.parseStructPattern(); pat != nil {
				pat.Name = &tok
				return pat
			}
			return nil
		case token.DOT:
			return p.parseEnumPattern(&tok)
		}
		return &ast.IdPattern{Tok: tok}
	case token.DOT:
		return p.parseEnumPattern(nil)
	case token.LBRACKET:
		p.next()
		pat := &ast.ListPattern{}
		pat.Elems = p.parsePatternList(token.RBRACKET)
		p.require(token.RBRACKET, "list pattern")
		return pat
	case token.LPAREN:
		p.next()
		pat := &ast.TuplePattern{}
		pat.Elems = p.parsePatternList(token.RPAREN)
		p.require(token.RPAREN, "tuple pattern")
		return pat
	case token.LBRACE:
		return p.parseStructPattern()
	}
	p.errorAt(tok, "bad pattern starting with `%s`", tok.Kind)
	return nil
}

func (p *Parser) parsePatternList(close token.Kind) []ast.Pattern {
	var list []ast.Pattern
	p.skipNL()
	for !p.at(close) && !p.at(token.EOF) {
		pat := p.parsePattern()
		if pat == nil {
			return list
		}
		list = append(list, pat)
		p.skipNL()
		if _, ok := p.maybe(token.COMMA); !ok {
			break
		}
		p.skipNL()
	}
	return list
}

// parseStructPattern parses `{ name [: pattern], … }`; the optional
// leading type name is attached by the caller.
func (p *Parser) parseStructPattern() *ast.StructPattern {
	p.next() // {
	pat := &ast.StructPattern{}
	p.skipNL()
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		name, ok := p.require(token.ID, "struct pattern")
		if !ok {
			return nil
		}
		field := &ast.FieldPattern{Name: name}
		if _, ok := p.maybe(token.COLON); ok {
			field.Pat = p.parsePattern()
			if field.Pat == nil {
				return nil
			}
		}
		pat.Fields = append(pat.Fields, field)
		p.skipNL()
		if _, ok := p.maybe(token.COMMA); !ok {
			break
		}
		p.skipNL()
	}
	if _, ok := p.require(token.RBRACE, "struct pattern"); !ok {
		return nil
	}
	return pat
}

// parseEnumPattern parses `.Variant[(pattern)]` with typeName already
// consumed when present.
func (p *Parser) parseEnumPattern(typeName *token.Token) ast.Pattern {
	p.next() // .
	var variant token.Token
	switch p.cur().Kind {
	case token.ID, token.OK, token.ERR, token.SOME, token.NONE:
		variant = p.next()
	default:
		p.errorAt(p.cur(), "bad pattern: expected a variant name, found `%s`", p.cur().Kind)
		return nil
	}
	pat := &ast.EnumPattern{TypeName: typeName, Variant: variant}
	if _, ok := p.maybe(token.LPAREN); ok {
		pat.Inner = p.parsePattern()
		if pat.Inner == nil {
			return nil
		}
		p.require(token.RPAREN, "enum pattern")
	}
	return pat
}
