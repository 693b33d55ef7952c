package rust

import (
	"fmt"
	"strings"

	"github.com/seen-lang/seen/internal/compiler/ast"
	"github.com/seen-lang/seen/internal/compiler/token"
)

func ind(n int) string {
	return strings.Repeat("    ", n)
}

// printMacro maps the runtime print functions, in either dialect, onto
// their Rust macros. Empty for ordinary calls.
func printMacro(name string) string {
	switch name {
	case "println", "اطبع_سطر":
		return "println!"
	case "print", "اطبع":
		return "print!"
	}
	return ""
}

// genBlock lowers a block's elements as statements at the given indent
// level. fn provides the context for main's argv placeholder and for
// deciding whether the trailing return keeps its keyword.
func (g *Generator) genBlock(block *ast.Block, fn *ast.Fn, level int) string {
	if block == nil {
		return ""
	}
	var b strings.Builder
	for _, el := range block.Elements {
		switch el := el.(type) {
		case *ast.DeclElement:
			b.WriteString(g.genLet(el.Decl, level))
		case *ast.ExprElement:
			b.WriteString(ind(level))
			b.WriteString(g.genExpr(el.X, level))
			b.WriteString(";\n")
		case *ast.ReturnElement:
			b.WriteString(g.genReturn(el, fn, level))
		case *ast.MainArgs:
			b.WriteString(g.genMainArgs(fn, level))
		}
	}
	return b.String()
}

func (g *Generator) genReturn(ret *ast.ReturnElement, fn *ast.Fn, level int) string {
	if ret.X == nil {
		return ind(level) + "return;\n"
	}
	expr := g.genExpr(ret.X, level)
	// the entry function and value-less functions drop the keyword so
	// trailing print calls stay plain statements
	if fn != nil && fn.Ret == nil && (fn == g.mainFn || !fnReturnsValue(fn)) {
		return ind(level) + expr + ";\n"
	}
	return ind(level) + "return " + expr + ";\n"
}

// genMainArgs materialises main's argv binding from the entry
// function's parameter pattern.
func (g *Generator) genMainArgs(fn *ast.Fn, level int) string {
	if fn == nil || len(fn.Params) == 0 {
		return ""
	}
	name := g.genPattern(fn.Params[0].Pat)
	return fmt.Sprintf("%slet %s: Vec<String> = std::env::args().collect();\n", ind(level), name)
}

func (g *Generator) genLet(decl *ast.LetDecl, level int) string {
	var b strings.Builder
	b.WriteString(ind(level))
	b.WriteString("let ")
	b.WriteString(g.genPattern(decl.Pat))
	if decl.Type != nil {
		b.WriteString(": " + g.genType(decl.Type))
	}
	if decl.Value != nil {
		b.WriteString(" = " + g.genExpr(decl.Value, level))
	}
	b.WriteString(";\n")
	return b.String()
}

// genExpr lowers one expression; level is the statement indent the
// expression started at, so multi-line forms indent their bodies.
func (g *Generator) genExpr(e ast.Expr, level int) string {
	switch e := e.(type) {
	case *ast.Unit:
		return "()"
	case *ast.Lit:
		return g.genLit(e.Tok)
	case *ast.Ref:
		return g.genRef(e)
	case *ast.List:
		return "vec![" + g.genExprList(e.Elems, level) + "]"
	case *ast.Tuple:
		return "(" + g.genExprList(e.Elems, level) + ")"
	case *ast.StructLiteral:
		return g.genStructLiteral(e, level)
	case *ast.BinOp:
		return g.genBinOp(e, level)
	case *ast.PreUnaOp:
		if e.Op.Kind == token.MINUS {
			return "-(" + g.genExpr(e.X, level) + ")"
		}
		return "!(" + g.genExpr(e.X, level) + ")"
	case *ast.PostUnaOp:
		if e.Op.Kind == token.QUESTION {
			return "(" + g.genExpr(e.X, level) + ")?"
		}
		return "(" + g.genExpr(e.X, level) + ").unwrap()"
	case *ast.Call:
		return g.genCall(e, level)
	case *ast.Index:
		return g.genExpr(e.Coll, level) + "[" + g.genExpr(e.Idx, level) + "]"
	case *ast.Lambda:
		return g.genLambda(e.Fn, level)
	case *ast.Match:
		return g.genMatch(e, level)
	case *ast.For:
		return g.genFor(e, level)
	case *ast.While:
		return g.genWhile(e, level)
	case *ast.If:
		return g.genIf(e, level)
	case *ast.Code:
		return e.Tok.Lit
	case *ast.OkExpr:
		return "Ok(" + g.genExpr(e.X, level) + ")"
	case *ast.ErrExpr:
		return "Err(" + g.genExpr(e.X, level) + ")"
	case *ast.SomeExpr:
		return "Some(" + g.genExpr(e.X, level) + ")"
	case *ast.NoneExpr:
		return "None"
	}
	return ""
}

func (g *Generator) genExprList(list []ast.Expr, level int) string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = g.genExpr(e, level)
	}
	return strings.Join(parts, ", ")
}

var boolSpellings = map[string]string{
	"true": "true", "صواب": "true",
	"false": "false", "خطا": "false",
}

func (g *Generator) genLit(tok token.Token) string {
	switch tok.Kind {
	case token.BOOL_LIT:
		return boolSpellings[tok.Lit]
	case token.INT_LIT, token.FLOAT_LIT:
		return toWesternNum(tok.Lit)
	case token.CHAR_LIT:
		return "'" + escapeRust(tok.Lit, '\'') + "'"
	case token.STRING_LIT:
		return "String::from(\"" + escapeRust(tok.Lit, '"') + "\")"
	}
	return tok.Lit
}

// escapeRust re-escapes a decoded literal payload for Rust source. The
// source-language escapes were translated by the lexer; only the
// target language's rules matter here.
func escapeRust(s string, quote rune) string {
	var b strings.Builder
	for _, ch := range s {
		switch ch {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\\':
			b.WriteString(`\\`)
		case quote:
			b.WriteRune('\\')
			b.WriteRune(quote)
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// genRef emits a reference verbatim, mapping the receiver spelling and
// imported module bindings.
func (g *Generator) genRef(ref *ast.Ref) string {
	if ref.Tok.Lit == "ذات" {
		return "self"
	}
	if stem, ok := g.imports[ref.Tok.Lit]; ok {
		return stem
	}
	return ref.Tok.Lit
}

// genBinOp lowers a binary operation. Dot accesses on imported modules
// rewrite to `::`; the set operators lower to their Rust glyphs; the
// pipe-forward applies its left operand to the right.
func (g *Generator) genBinOp(e *ast.BinOp, level int) string {
	switch e.Op.Kind {
	case token.DOT:
		if ref, ok := e.Left.(*ast.Ref); ok {
			if _, imported := g.imports[ref.Tok.Lit]; imported {
				return g.genRef(ref) + "::" + g.genExpr(e.Right, level)
			}
		}
		return g.genExpr(e.Left, level) + "." + g.genExpr(e.Right, level)
	case token.DOUBLE_COLON:
		return g.genExpr(e.Left, level) + "::" + g.genExpr(e.Right, level)
	case token.PIPE:
		return g.genExpr(e.Right, level) + "(" + g.genExpr(e.Left, level) + ")"
	case token.BIT_AND:
		return g.genExpr(e.Left, level) + " & " + g.genExpr(e.Right, level)
	case token.BIT_OR:
		return g.genExpr(e.Left, level) + " | " + g.genExpr(e.Right, level)
	case token.BIT_XOR:
		return g.genExpr(e.Left, level) + " ^ " + g.genExpr(e.Right, level)
	}
	return g.genExpr(e.Left, level) + " " + string(e.Op.Kind) + " " + g.genExpr(e.Right, level)
}

// genCall lowers a call; the runtime print functions become their
// macros with one format slot per argument.
func (g *Generator) genCall(call *ast.Call, level int) string {
	if ref, ok := call.Callee.(*ast.Ref); ok {
		if macro := printMacro(ref.Tok.Lit); macro != "" {
			if len(call.Args) == 0 {
				return macro + "()"
			}
			slots := strings.TrimSuffix(strings.Repeat("{} ", len(call.Args)), " ")
			return fmt.Sprintf("%s(\"%s\", %s)", macro, slots, g.genExprList(call.Args, level))
		}
	}
	return g.genExpr(call.Callee, level) + "(" + g.genExprList(call.Args, level) + ")"
}

func (g *Generator) genStructLiteral(lit *ast.StructLiteral, level int) string {
	parts := make([]string, len(lit.Fields))
	for i, f := range lit.Fields {
		parts[i] = f.Name.Lit + ": " + g.genExpr(f.Value, level)
	}
	body := "{ " + strings.Join(parts, ", ") + " }"
	if lit.Name != nil {
		return lit.Name.Lit + " " + body
	}
	return body
}

func (g *Generator) genLambda(fn *ast.Fn, level int) string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = g.genPattern(p.Pat)
	}
	body := g.genInlineBlock(fn.Body, fn, level)
	return "|" + strings.Join(params, ", ") + "| " + body
}

// genInlineBlock renders a block as a braced expression, collapsing a
// single trailing value to its bare expression.
func (g *Generator) genInlineBlock(block *ast.Block, fn *ast.Fn, level int) string {
	if block == nil || len(block.Elements) == 0 {
		return "{}"
	}
	if len(block.Elements) == 1 {
		switch el := block.Elements[0].(type) {
		case *ast.ExprElement:
			return g.genExpr(el.X, level)
		case *ast.ReturnElement:
			if el.X != nil {
				return g.genExpr(el.X, level)
			}
		}
	}
	return "{\n" + g.genBlock(block, fn, level+1) + ind(level) + "}"
}

func (g *Generator) genMatch(m *ast.Match, level int) string {
	var b strings.Builder
	b.WriteString("match " + g.genExpr(m.Subject, level) + " {\n")
	for _, arm := range m.Arms {
		b.WriteString(ind(level + 1))
		b.WriteString(g.genPattern(arm.Pat))
		b.WriteString(" => ")
		b.WriteString(g.genArmBody(arm.Body, level+1))
		b.WriteString(",\n")
	}
	b.WriteString(ind(level) + "}")
	return b.String()
}

func (g *Generator) genArmBody(block *ast.Block, level int) string {
	if block == nil || len(block.Elements) == 0 {
		return "{}"
	}
	if len(block.Elements) == 1 {
		if el, ok := block.Elements[0].(*ast.ExprElement); ok {
			return g.genExpr(el.X, level)
		}
	}
	return "{\n" + g.genBlock(block, nil, level+1) + ind(level) + "}"
}

func (g *Generator) genFor(f *ast.For, level int) string {
	var b strings.Builder
	b.WriteString("for " + g.genPattern(f.Pat) + " in " + g.genExpr(f.Iter, level) + " {\n")
	b.WriteString(g.genBlock(f.Body, nil, level+1))
	b.WriteString(ind(level) + "}")
	return b.String()
}

func (g *Generator) genWhile(w *ast.While, level int) string {
	var b strings.Builder
	b.WriteString("while " + g.genExpr(w.Cond, level) + " {\n")
	b.WriteString(g.genBlock(w.Body, nil, level+1))
	b.WriteString(ind(level) + "}")
	return b.String()
}

func (g *Generator) genIf(e *ast.If, level int) string {
	var b strings.Builder
	for i, branch := range e.Branches {
		if i > 0 {
			b.WriteString(" else ")
		}
		b.WriteString("if " + g.genExpr(branch.Cond, level) + " {\n")
		b.WriteString(g.genBlock(branch.Body, nil, level+1))
		b.WriteString(ind(level) + "}")
	}
	if e.Else != nil {
		b.WriteString(" else {\n")
		b.WriteString(g.genBlock(e.Else, nil, level+1))
		b.WriteString(ind(level) + "}")
	}
	return b.String()
}

// constructorPatterns maps the hard-coded constructor spellings used in
// patterns onto their Rust names.
var constructorPatterns = map[string]string{
	"تم": "Ok", "خلل": "Err", "بعض": "Some", "عدم": "None",
}

// genPattern lowers a pattern. Literal lexemes normalise like
// expression literals, except strings stay borrowed.
func (g *Generator) genPattern(p ast.Pattern) string {
	switch p := p.(type) {
	case *ast.LitPattern:
		if p.Tok.Kind == token.STRING_LIT {
			return "\"" + escapeRust(p.Tok.Lit, '"') + "\""
		}
		return g.genLit(p.Tok)
	case *ast.IdPattern:
		return p.Tok.Lit
	case *ast.WildcardPattern:
		return "_"
	case *ast.ListPattern:
		parts := make([]string, len(p.Elems))
		for i, e := range p.Elems {
			parts[i] = g.genPattern(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.TuplePattern:
		parts := make([]string, len(p.Elems))
		for i, e := range p.Elems {
			parts[i] = g.genPattern(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *ast.StructPattern:
		parts := make([]string, len(p.Fields))
		for i, f := range p.Fields {
			if f.Pat == nil {
				parts[i] = f.Name.Lit
			} else {
				parts[i] = f.Name.Lit + ": " + g.genPattern(f.Pat)
			}
		}
		body := "{ " + strings.Join(parts, ", ") + " }"
		if p.Name != nil {
			return p.Name.Lit + " " + body
		}
		return body
	case *ast.EnumPattern:
		variant := p.Variant.Lit
		if mapped, ok := constructorPatterns[variant]; ok {
			variant = mapped
		}
		out := variant
		if p.TypeName != nil {
			out = p.TypeName.Lit + "::" + out
		}
		if p.Inner != nil {
			out += "(" + g.genPattern(p.Inner) + ")"
		}
		return out
	}
	return "_"
}

// genTypeOrDefault falls back to i32 for unannotated positions until
// inference lands.
func (g *Generator) genTypeOrDefault(t ast.Type) string {
	if t == nil {
		return "i32"
	}
	return g.genType(t)
}

// genType applies the dialect-independent primitive mapping.
func (g *Generator) genType(t ast.Type) string {
	switch t := t.(type) {
	case *ast.UnitType:
		return "()"
	case *ast.PrimType:
		switch t.Kind {
		case ast.PrimBool:
			return "bool"
		case ast.PrimInt:
			return "i32"
		case ast.PrimFloat:
			return "f32"
		case ast.PrimChar:
			return "char"
		case ast.PrimString:
			return "String"
		}
	case *ast.NamedType:
		return t.Tok.Lit
	case *ast.ListType:
		return "Vec<" + g.genType(t.Elem) + ">"
	case *ast.TupleType:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = g.genType(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *ast.OptionType:
		return "Option<" + g.genType(t.Inner) + ">"
	case *ast.ResultType:
		return "Result<" + g.genType(t.Ok) + ", " + g.genType(t.Err) + ">"
	}
	return "i32"
}
