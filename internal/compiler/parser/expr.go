package parser

import (
	"github.com/seen-lang/seen/internal/compiler/ast"
	"github.com/seen-lang/seen/internal/compiler/token"
)

// parseExpr parses a full expression: a primary followed by any run of
// binary, postfix and application operators, combined by precedence.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinary(0)
}

// parseBinary implements precedence climbing over the static operator
// tables. Application kinds (`(`, `[` and the struct-literal opener)
// participate as the tightest binary operators and produce call, index
// and struct-initialisation nodes.
func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}

	for {
		k := p.cur().Kind

		if token.IsPostfix(k) && token.UnaryPrec(k) >= minPrec {
			op := p.next()
			left = attachPostfix(left, op)
			continue
		}

		if !token.IsBinary(k) {
			return left
		}
		prec := token.BinaryPrec(k)
		if prec < minPrec {
			return left
		}

		if token.IsApplication(k) {
			applied, ok := p.parseApplication(left)
			if !ok {
				return left
			}
			left = applied
			continue
		}

		op := p.next()
		p.skipNL()
		nextMin := prec + 1
		if token.RightAssoc(k) {
			nextMin = prec
		}
		if k == token.DOT || k == token.DOUBLE_COLON {
			p.suppressRef = true
		}
		right := p.parseBinary(nextMin)
		if right == nil {
			return left
		}
		left = &ast.BinOp{Left: left, Op: op, Right: right}
	}
}

// attachPostfix wraps left in a postfix application. When left is a
// prefix-unary application whose operator binds looser than the
// incoming postfix, the postfix attaches to the operand instead, so
// `-x?` reads `-(x?)`.
func attachPostfix(left ast.Expr, op token.Token) ast.Expr {
	if pre, ok := left.(*ast.PreUnaOp); ok && token.UnaryPrec(pre.Op.Kind) < token.UnaryPrec(op.Kind) {
		pre.X = attachPostfix(pre.X, op)
		return pre
	}
	return &ast.PostUnaOp{Op: op, X: left}
}

// parseUnary parses an optional prefix operator applied to a primary.
func (p *Parser) parseUnary() ast.Expr {
	if token.IsPrefix(p.cur().Kind) {
		op := p.next()
		x := p.parseBinary(token.UnaryPrec(op.Kind))
		if x == nil {
			return nil
		}
		return &ast.PreUnaOp{Op: op, X: x}
	}
	return p.parsePrim()
}

// parseApplication turns `left(args)`, `left[idx]` and `left { f: v }`
// into call, index and struct-literal nodes. ok is false when the
// brace does not open a struct literal; the caller stops combining.
func (p *Parser) parseApplication(left ast.Expr) (ast.Expr, bool) {
	switch p.cur().Kind {
	case token.LPAREN:
		p.next()
		args := p.parseExprList(token.RPAREN)
		p.require(token.RPAREN, "call arguments")
		return &ast.Call{Callee: left, Args: args}, true
	case token.LBRACKET:
		p.next()
		p.skipNL()
		idx := p.parseExpr()
		p.skipNL()
		p.require(token.RBRACKET, "index expression")
		return &ast.Index{Coll: left, Idx: idx}, true
	case token.LBRACE:
		ref, isRef := left.(*ast.Ref)
		if !isRef || !p.structLitAhead() {
			return nil, false
		}
		lit := p.parseStructLiteral()
		if lit == nil {
			return nil, false
		}
		lit.Name = &ref.Tok
		return lit, true
	}
	return nil, false
}

// parseExprList parses a comma-separated, newline-tolerant expression
// list up to (not consuming) the closing kind.
func (p *Parser) parseExprList(close token.Kind) []ast.Expr {
	var list []ast.Expr
	p.skipNL()
	for !p.at(close) && !p.at(token.EOF) {
		e := p.parseExpr()
		if e == nil {
			p.skipToTerminator()
			return list
		}
		list = append(list, e)
		p.skipNL()
		if _, ok := p.maybe(token.COMMA); !ok {
			break
		}
		p.skipNL()
	}
	return list
}

// parsePrim parses literals, references, parenthesised forms, list
// literals, struct literals and the control forms usable as
// expressions.
func (p *Parser) parsePrim() ast.Expr {
	suppress := p.suppressRef
	p.suppressRef = false
	tok := p.cur()
	switch tok.Kind {
	case token.BOOL_LIT, token.INT_LIT, token.FLOAT_LIT, token.CHAR_LIT, token.STRING_LIT:
		p.next()
		return &ast.Lit{Tok: tok}
	case token.CODE:
		p.next()
		return &ast.Code{Tok: tok}
	case token.ID:
		p.next()
		if !suppress {
			p.tab.AddRef(tok)
		}
		return &ast.Ref{Tok: tok}
	case token.OK, token.ERR, token.SOME:
		return p.parseConstructor()
	case token.NONE:
		p.next()
		return &ast.NoneExpr{Tok: tok}
	case token.LPAREN:
		return p.parseParenForm()
	case token.LBRACKET:
		p.next()
		elems := p.parseExprList(token.RBRACKET)
		p.require(token.RBRACKET, "list literal")
		return &ast.List{Elems: elems}
	case token.LBRACE:
		if p.structLitAhead() {
			return p.parseStructLiteral()
		}
	case token.MATCH:
		return p.parseMatch()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.IF:
		return p.parseIf()
	}
	p.errorAt(tok, "expected an expression, found `%s`", tok.Kind)
	return nil
}

// parseConstructor parses the hard-coded Ok/Err/Some forms, which take
// exactly one parenthesised operand.
func (p *Parser) parseConstructor() ast.Expr {
	tok := p.next()
	if _, ok := p.require(token.LPAREN, "constructor"); !ok {
		return nil
	}
	inner := p.parseExpr()
	p.require(token.RPAREN, "constructor")
	switch tok.Kind {
	case token.OK:
		return &ast.OkExpr{Tok: tok, X: inner}
	case token.ERR:
		return &ast.ErrExpr{Tok: tok, X: inner}
	default:
		return &ast.SomeExpr{Tok: tok, X: inner}
	}
}

// parseParenForm disambiguates a parenthesised expression: a lambda
// when the matching close paren is followed by `->`, else unit,
// grouping, or a tuple.
func (p *Parser) parseParenForm() ast.Expr {
	if p.afterGroup().Kind == token.THIN_ARROW {
		fn := p.parseFnTail(nil, false, nil)
		if fn == nil {
			return nil
		}
		return &ast.Lambda{Fn: fn}
	}

	open := p.next()
	p.skipNL()
	if _, ok := p.maybe(token.RPAREN); ok {
		return &ast.Unit{Tok: open}
	}
	elems := p.parseExprList(token.RPAREN)
	p.require(token.RPAREN, "parenthesised expression")
	switch len(elems) {
	case 0:
		return &ast.Unit{Tok: open}
	case 1:
		return elems[0]
	}
	return &ast.Tuple{Elems: elems}
}

// parseStructLiteral parses `{ name: value, … }`; the caller attaches
// the optional type name.
func (p *Parser) parseStructLiteral() *ast.StructLiteral {
	p.next() // {
	lit := &ast.StructLiteral{}
	p.skipNL()
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		name, ok := p.require(token.ID, "struct literal")
		if !ok {
			p.skipToTerminator()
			return nil
		}
		if _, ok := p.require(token.COLON, "struct literal"); !ok {
			p.skipToTerminator()
			return nil
		}
		p.skipNL()
		value := p.parseExpr()
		if value == nil {
			p.skipToTerminator()
			return nil
		}
		lit.Fields = append(lit.Fields, &ast.FieldInit{Name: name, Value: value})
		p.skipNL()
		if _, ok := p.maybe(token.COMMA); !ok {
			break
		}
		p.skipNL()
	}
	if _, ok := p.require(token.RBRACE, "struct literal"); !ok {
		return nil
	}
	return lit
}

// parseMatch parses `match subject { pattern => body … }`. Each arm
// opens a scope for its pattern bindings.
func (p *Parser) parseMatch() ast.Expr {
	tok := p.next()
	subject := p.parseExpr()
	if subject == nil {
		return nil
	}
	m := &ast.Match{Tok: tok, Subject: subject}
	if _, ok := p.require(token.LBRACE, "match expression"); !ok {
		return nil
	}
	p.skipNL()
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		p.tab.Push()
		pat := p.parsePattern()
		if pat == nil {
			p.tab.Pop()
			p.skipToTerminator()
			continue
		}
		p.bindDecl(pat)
		if _, ok := p.require(token.ARROW, "match arm"); !ok {
			p.tab.Pop()
			p.skipToTerminator()
			continue
		}
		p.skipNL()
		body := p.parseArmBody()
		p.tab.Pop()
		m.Arms = append(m.Arms, &ast.MatchArm{Pat: pat, Body: body})
		p.skipNL()
	}
	p.require(token.RBRACE, "match expression")
	return m
}

// parseArmBody parses a match arm's value: a braced block, or a bare
// expression that ends wherever the expression does, so several arms
// may share a line.
func (p *Parser) parseArmBody() *ast.Block {
	if p.at(token.LBRACE) && !p.structLitAhead() {
		return p.parseBlockInScope()
	}
	body := &ast.Block{}
	if expr := p.parseExpr(); expr != nil {
		body.Elements = append(body.Elements, &ast.ExprElement{X: expr})
	}
	return body
}

// parseFor parses `for pattern in iterable body`; the pattern binds
// inside the body's scope.
func (p *Parser) parseFor() ast.Expr {
	tok := p.next()
	pat := p.parsePattern()
	if pat == nil {
		return nil
	}
	if _, ok := p.require(token.IN, "for expression"); !ok {
		return nil
	}
	iter := p.parseExpr()
	if iter == nil {
		return nil
	}
	p.tab.Push()
	p.bindDecl(pat)
	body := p.parseBlockInScope()
	p.tab.Pop()
	return &ast.For{Tok: tok, Pat: pat, Iter: iter, Body: body}
}

// parseWhile parses `while cond body`.
func (p *Parser) parseWhile() ast.Expr {
	tok := p.next()
	cond := p.parseExpr()
	if cond == nil {
		return nil
	}
	body := p.parseBlock()
	return &ast.While{Tok: tok, Cond: cond, Body: body}
}

// parseIf parses an if chain with an optional trailing else branch.
func (p *Parser) parseIf() ast.Expr {
	tok := p.next()
	out := &ast.If{Tok: tok}
	for {
		cond := p.parseExpr()
		if cond == nil {
			return nil
		}
		body := p.parseBlock()
		out.Branches = append(out.Branches, &ast.IfBranch{Cond: cond, Body: body})
		if p.at(token.NL) && p.peekNonNL(0).Kind == token.ELSE {
			p.skipNL()
		}
		if _, ok := p.maybe(token.ELSE); !ok {
			return out
		}
		if _, ok := p.maybe(token.IF); !ok {
			out.Else = p.parseBlock()
			return out
		}
	}
}
