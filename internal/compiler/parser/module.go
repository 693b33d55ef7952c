package parser

import (
	"github.com/seen-lang/seen/internal/compiler/ast"
	"github.com/seen-lang/seen/internal/compiler/errors"
	"github.com/seen-lang/seen/internal/compiler/symtab"
	"github.com/seen-lang/seen/internal/compiler/token"
)

// Parse consumes the token vector and returns the module elements, the
// symbol table built in lockstep, and the error vector.
func (p *Parser) Parse() ([]ast.ModElement, *symtab.SymTab, []errors.Error) {
	var elements []ast.ModElement
	for {
		p.skipNL()
		if p.at(token.EOF) {
			break
		}
		el := p.parseModElement()
		if el != nil {
			elements = append(elements, el)
		}
	}
	return elements, p.tab, p.errs
}

func (p *Parser) parseModElement() ast.ModElement {
	attrs := p.parseAttrs()

	switch p.cur().Kind {
	case token.LET:
		return p.parseLetDecl(attrs)
	case token.LPAREN:
		return p.parseLambdaOrDecl(attrs)
	case token.TRAIT:
		return p.parseTrait()
	case token.ENUM:
		return p.parseEnum()
	case token.ID:
		return p.parseIdElement(attrs)
	}
	p.errorAt(p.cur(), "unknown top-level form starting with `%s`", p.cur().Kind)
	p.skipToTerminator()
	return nil
}

// parseAttrs consumes a run of `@name` decorations, newline-separated
// or not.
func (p *Parser) parseAttrs() []*ast.Attr {
	var attrs []*ast.Attr
	for p.at(token.AT) {
		p.next()
		name, ok := p.require(token.ID, "attribute")
		if !ok {
			p.skipToTerminator()
			return attrs
		}
		attrs = append(attrs, &ast.Attr{Name: name})
		p.skipNL()
	}
	return attrs
}

// parseLetDecl parses `let pattern [: type] [= expr]` up to its
// terminator, binding the pattern in the active scope.
func (p *Parser) parseLetDecl(attrs []*ast.Attr) ast.ModElement {
	p.next() // let
	pat := p.parsePattern()
	if pat == nil {
		p.skipToTerminator()
		return nil
	}
	decl := &ast.LetDecl{Attrs: attrs, Pat: pat}
	if _, ok := p.maybe(token.COLON); ok {
		decl.Type = p.parseType()
	}
	if _, ok := p.maybe(token.ASSIGN); ok {
		decl.Value = p.parseExpr()
	}
	p.bindDecl(pat)
	p.requireTerminator()
	return decl
}

// parseShortDecl parses `pattern := expr` with the pattern already
// consumed.
func (p *Parser) parseShortDecl(attrs []*ast.Attr, pat ast.Pattern) ast.ModElement {
	p.next() // :=
	value := p.parseExpr()
	p.bindDecl(pat)
	p.requireTerminator()
	return &ast.LetDecl{Attrs: attrs, Short: true, Pat: pat, Value: value}
}

// bindDecl records a declaration pattern and its identifier bindings in
// the active scope.
func (p *Parser) bindDecl(pat ast.Pattern) {
	p.errs = append(p.errs, p.tab.BindPattern(pat)...)
}

// parseLambdaOrDecl disambiguates a top-level parenthesised form: it is
// the main entry when the token after the matching close paren is `->`,
// a declaration LHS when it is `:=`.
func (p *Parser) parseLambdaOrDecl(attrs []*ast.Attr) ast.ModElement {
	switch p.afterGroup().Kind {
	case token.THIN_ARROW:
		fn := p.parseMainFn(attrs)
		if fn == nil {
			return nil
		}
		return &ast.MainFn{Fn: fn}
	case token.DECL_ASSIGN:
		pat := p.parsePattern()
		if pat == nil {
			p.skipToTerminator()
			return nil
		}
		return p.parseShortDecl(attrs, pat)
	}
	p.errorAt(p.cur(), "unknown top-level form after attributes")
	p.skipToTerminator()
	return nil
}

// parseIdElement handles the `Id …` top-level alternatives: named
// function, struct definition, impl block, or short declaration.
func (p *Parser) parseIdElement(attrs []*ast.Attr) ast.ModElement {
	switch p.peek(1).Kind {
	case token.LPAREN:
		name := p.next()
		p.define(symtab.Entry{Kind: symtab.Fn, Tok: name})
		fn := p.parseFnTail(&name, false, attrs)
		if fn == nil {
			return nil
		}
		if fnEntry := p.fnEntryOf(name); fnEntry != nil {
			fnEntry.Params = fn.Params
		}
		return &ast.NamedFn{Fn: fn}
	case token.LBRACE:
		return p.parseStructDef()
	case token.DOUBLE_COLON:
		return p.parseImpl(attrs)
	case token.DECL_ASSIGN:
		pat := p.parsePattern()
		if pat == nil {
			p.skipToTerminator()
			return nil
		}
		return p.parseShortDecl(attrs, pat)
	}
	p.errorAt(p.cur(), "unknown top-level form starting with `%s`", p.cur().Lit)
	p.skipToTerminator()
	return nil
}

// fnEntryOf finds the just-defined Fn entry for name in the active
// scope, so its parameter list can be attached after the signature is
// parsed.
func (p *Parser) fnEntryOf(name token.Token) *symtab.Entry {
	s := p.tab.Current()
	if i, ok := s.Defs[name.Lit]; ok && s.Entries[i].Kind == symtab.Fn {
		return &s.Entries[i]
	}
	return nil
}

// parseFnTail parses `(params) [: type] -> block` for a function whose
// name (if any) was consumed by the caller. The function body gets its
// own scope; parameters bind inside it. The block's final expression is
// rewritten into an explicit return.
func (p *Parser) parseFnTail(name *token.Token, method bool, attrs []*ast.Attr) *ast.Fn {
	if _, ok := p.require(token.LPAREN, "function signature"); !ok {
		p.skipToTerminator()
		return nil
	}
	fn := &ast.Fn{Attrs: attrs, Method: method, Name: name}

	p.skipNL()
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		pat := p.parsePattern()
		if pat == nil {
			p.skipToTerminator()
			return nil
		}
		param := &ast.Param{Pat: pat}
		if _, ok := p.maybe(token.COLON); ok {
			param.Type = p.parseType()
		}
		fn.Params = append(fn.Params, param)
		p.skipNL()
		if _, ok := p.maybe(token.COMMA); !ok {
			break
		}
		p.skipNL()
	}
	if _, ok := p.require(token.RPAREN, "function signature"); !ok {
		p.skipToTerminator()
		return nil
	}

	if _, ok := p.maybe(token.COLON); ok {
		fn.Ret = p.parseType()
	}
	if _, ok := p.require(token.THIN_ARROW, "function declaration"); !ok {
		p.skipToTerminator()
		return nil
	}

	p.tab.Push()
	if method {
		for _, spelling := range selfSpellings {
			p.define(symtab.Entry{Kind: symtab.Bind, Tok: selfToken(p.cur(), spelling)})
		}
	}
	for _, param := range fn.Params {
		p.bindDecl(param.Pat)
	}
	fn.Body = p.parseBlockInScope()
	p.tab.Pop()
	rewriteTrailingExpr(fn.Body)
	return fn
}

// parseMainFn parses the anonymous entry function. Its parameter, when
// present, is main's argv binding: a placeholder element marks where
// the binding is materialised.
func (p *Parser) parseMainFn(attrs []*ast.Attr) *ast.Fn {
	at := p.cur()
	fn := p.parseFnTail(nil, false, attrs)
	if fn == nil {
		return nil
	}
	if len(fn.Params) > 0 {
		fn.Body.Elements = append([]ast.BlockElement{&ast.MainArgs{Tok: at}}, fn.Body.Elements...)
	}
	return fn
}

// selfSpellings are the receiver names a method body may use, one per
// dialect.
var selfSpellings = []string{"self", "ذات"}

// selfToken synthesises the receiver binding for a method body; the
// location borrows the current token so diagnostics stay anchored.
func selfToken(at token.Token, spelling string) token.Token {
	return token.Token{Kind: token.ID, Lit: spelling, Start: at.Start, End: at.Start}
}

// rewriteTrailingExpr turns the final expression of a function block
// into an explicit return marker.
func rewriteTrailingExpr(b *ast.Block) {
	if b == nil || len(b.Elements) == 0 {
		return
	}
	last := len(b.Elements) - 1
	if e, ok := b.Elements[last].(*ast.ExprElement); ok {
		b.Elements[last] = &ast.ReturnElement{X: e.X}
	}
}

// parseStructDef parses `Name { field: type, … }`.
func (p *Parser) parseStructDef() ast.ModElement {
	name := p.next()
	p.define(symtab.Entry{Kind: symtab.TypeDef, Tok: name})
	def := &ast.StructDef{Name: name}
	p.next() // {
	p.tab.Push()
	defer p.tab.Pop()
	p.skipNL()
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		fieldName, ok := p.require(token.ID, "struct field")
		if !ok {
			p.skipToTerminator()
			return nil
		}
		if _, ok := p.require(token.COLON, "struct field"); !ok {
			p.skipToTerminator()
			return nil
		}
		fieldType := p.parseType()
		def.Fields = append(def.Fields, &ast.StructField{Name: fieldName, Type: fieldType})
		p.skipNL()
		if _, ok := p.maybe(token.COMMA); !ok {
			break
		}
		p.skipNL()
	}
	if _, ok := p.require(token.RBRACE, "struct definition"); !ok {
		return nil
	}
	p.requireTerminator()
	return def
}

// parseImpl parses `Type::method(params) [: type] -> block`. Whether it
// is a struct or an enum impl depends on what Type was defined as; the
// enum names recorded so far in the file decide.
func (p *Parser) parseImpl(attrs []*ast.Attr) ast.ModElement {
	typeName := p.next()
	p.next() // ::
	methodName, ok := p.require(token.ID, "impl block")
	if !ok {
		p.skipToTerminator()
		return nil
	}
	fn := p.parseFnTail(&methodName, true, attrs)
	if fn == nil {
		return nil
	}
	if p.isEnumName(typeName.Lit) {
		return &ast.EnumImpl{TypeName: typeName, Fn: fn}
	}
	return &ast.StructImpl{TypeName: typeName, Fn: fn}
}

// isEnumName reports whether an enum of that name was defined earlier in
// the file (p.enums), so impl blocks can be classified without a second
// pass.
func (p *Parser) isEnumName(name string) bool {
	for _, el := range p.enums {
		if el == name {
			return true
		}
	}
	return false
}

// parseTrait parses `trait Name { fn signatures… }`.
func (p *Parser) parseTrait() ast.ModElement {
	p.next() // trait
	name, ok := p.require(token.ID, "trait declaration")
	if !ok {
		p.skipToTerminator()
		return nil
	}
	p.define(symtab.Entry{Kind: symtab.TypeDef, Tok: name})
	def := &ast.TraitDef{Name: name}
	if _, ok := p.require(token.LBRACE, "trait declaration"); !ok {
		p.skipToTerminator()
		return nil
	}
	p.tab.Push()
	defer p.tab.Pop()
	p.skipNL()
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		fnName, ok := p.require(token.ID, "trait function")
		if !ok {
			p.skipToTerminator()
			return nil
		}
		fn := p.parseFnTail(&fnName, true, nil)
		if fn == nil {
			return nil
		}
		def.Fns = append(def.Fns, fn)
		p.skipNL()
	}
	p.require(token.RBRACE, "trait declaration")
	p.requireTerminator()
	return def
}

// parseEnum parses `enum Name { Variant[(type)], … }`.
func (p *Parser) parseEnum() ast.ModElement {
	p.next() // enum
	name, ok := p.require(token.ID, "enum declaration")
	if !ok {
		p.skipToTerminator()
		return nil
	}
	p.define(symtab.Entry{Kind: symtab.TypeDef, Tok: name})
	p.enums = append(p.enums, name.Lit)
	def := &ast.EnumDef{Name: name}
	if _, ok := p.require(token.LBRACE, "enum declaration"); !ok {
		p.skipToTerminator()
		return nil
	}
	p.skipNL()
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		variantName, ok := p.require(token.ID, "enum variant")
		if !ok {
			p.skipToTerminator()
			return nil
		}
		variant := &ast.EnumVariant{Name: variantName}
		if _, ok := p.maybe(token.LPAREN); ok {
			variant.Inner = p.parseType()
			p.require(token.RPAREN, "enum variant")
		}
		def.Variants = append(def.Variants, variant)
		p.skipNL()
		if _, ok := p.maybe(token.COMMA); !ok {
			break
		}
		p.skipNL()
	}
	p.require(token.RBRACE, "enum declaration")
	p.requireTerminator()
	return def
}
