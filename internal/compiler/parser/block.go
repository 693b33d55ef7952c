package parser

import (
	"github.com/seen-lang/seen/internal/compiler/ast"
	"github.com/seen-lang/seen/internal/compiler/token"
)

// parseBlock parses `{ … }` or a single statement one-liner, inside a
// fresh scope.
func (p *Parser) parseBlock() *ast.Block {
	p.tab.Push()
	defer p.tab.Pop()
	return p.parseBlockInScope()
}

// parseBlockInScope parses a block without opening a scope of its own;
// function bodies use it so parameters and body share one scope.
func (p *Parser) parseBlockInScope() *ast.Block {
	block := &ast.Block{}

	if p.at(token.LBRACE) && !p.structLitAhead() {
		p.next()
		p.skipNL()
		for !p.at(token.RBRACE) && !p.at(token.EOF) {
			if el := p.parseStatement(); el != nil {
				block.Elements = append(block.Elements, el)
			}
			p.skipNL()
		}
		p.require(token.RBRACE, "block")
		return block
	}

	// one-liner body
	if el := p.parseStatement(); el != nil {
		block.Elements = append(block.Elements, el)
	}
	return block
}

// parseStatement parses one block element: a declaration, a return, or
// an expression.
func (p *Parser) parseStatement() ast.BlockElement {
	switch p.cur().Kind {
	case token.LET:
		if decl, ok := p.parseLetDecl(nil).(*ast.LetDecl); ok {
			return &ast.DeclElement{Decl: decl}
		}
		return nil
	case token.RETURN:
		tok := p.next()
		ret := &ast.ReturnElement{Tok: tok}
		if !p.atTerminator() {
			ret.X = p.parseExpr()
		}
		return ret
	}

	if p.shortDeclAhead() {
		pat := p.parsePattern()
		if pat == nil {
			p.skipToTerminator()
			return nil
		}
		if decl, ok := p.parseShortDecl(nil, pat).(*ast.LetDecl); ok {
			return &ast.DeclElement{Decl: decl}
		}
		return nil
	}

	expr := p.parseExpr()
	if expr == nil {
		p.skipToTerminator()
		return nil
	}
	if !p.at(token.RBRACE) {
		p.requireTerminator()
	}
	return &ast.ExprElement{X: expr}
}

// shortDeclAhead reports whether the cursor starts a `pattern := expr`
// statement: a plain identifier, or a bracketed pattern whose matching
// close is followed by `:=`.
func (p *Parser) shortDeclAhead() bool {
	switch p.cur().Kind {
	case token.ID, token.UNDERSCORE:
		return p.peek(1).Kind == token.DECL_ASSIGN
	case token.LPAREN, token.LBRACKET, token.LBRACE:
		return p.afterGroup().Kind == token.DECL_ASSIGN
	}
	return false
}
