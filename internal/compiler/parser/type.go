package parser

import (
	"github.com/seen-lang/seen/internal/compiler/ast"
	"github.com/seen-lang/seen/internal/compiler/token"
)

// primTypes maps both dialects' primitive-type spellings onto the
// primitive kinds. The parsed node keeps the source lexeme so either
// dialect round-trips.
var primTypes = map[string]ast.PrimKind{
	"bool":   ast.PrimBool,
	"int":    ast.PrimInt,
	"float":  ast.PrimFloat,
	"char":   ast.PrimChar,
	"string": ast.PrimString,
	"منطق":   ast.PrimBool,
	"صحيح":   ast.PrimInt,
	"عائم":   ast.PrimFloat,
	"محرف":   ast.PrimChar,
	"نص":     ast.PrimString,
}

// resultTypeNames are the spellings of the two-parameter result type.
var resultTypeNames = map[string]bool{
	"Res":   true,
	"حصيلة": true,
}

// parseType parses the type grammar: unit, primitives, named types,
// `[T]` lists, tuples, `Res<T, E>` results, and any number of `?`
// option suffixes.
func (p *Parser) parseType() ast.Type {
	base := p.parseBaseType()
	if base == nil {
		return nil
	}
	for p.at(token.QUESTION) {
		p.next()
		base = &ast.OptionType{Inner: base}
	}
	return base
}

func (p *Parser) parseBaseType() ast.Type {
	tok := p.cur()
	switch tok.Kind {
	case token.LPAREN:
		p.next()
		if _, ok := p.maybe(token.RPAREN); ok {
			return &ast.UnitType{Tok: tok}
		}
		tuple := &ast.TupleType{}
		for !p.at(token.RPAREN) && !p.at(token.EOF) {
			t := p.parseType()
			if t == nil {
				return nil
			}
			tuple.Elems = append(tuple.Elems, t)
			if _, ok := p.maybe(token.COMMA); !ok {
				break
			}
		}
		p.require(token.RPAREN, "tuple type")
		return tuple
	case token.LBRACKET:
		p.next()
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		p.require(token.RBRACKET, "list type")
		return &ast.ListType{Elem: elem}
	case token.ID:
		p.next()
		if kind, ok := primTypes[tok.Lit]; ok {
			return &ast.PrimType{Tok: tok, Kind: kind}
		}
		if resultTypeNames[tok.Lit] && p.at(token.LT) {
			p.next()
			okType := p.parseType()
			if okType == nil {
				return nil
			}
			if _, ok := p.require(token.COMMA, "result type"); !ok {
				return nil
			}
			errType := p.parseType()
			if errType == nil {
				return nil
			}
			p.require(token.GT, "result type")
			return &ast.ResultType{Ok: okType, Err: errType}
		}
		return &ast.NamedType{Tok: tok}
	}
	p.errorAt(tok, "expected a type, found `%s`", tok.Kind)
	return nil
}
