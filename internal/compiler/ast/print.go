package ast

import (
	"fmt"
	"strings"
)

// Print renders a module element tree as an indented debug listing for
// the SEEN_LOG dumps. The format is stable but for human eyes only.
func Print(elements []ModElement) string {
	p := &printer{}
	for _, el := range elements {
		p.modElement(el)
	}
	return p.b.String()
}

type printer struct {
	b      strings.Builder
	indent int
}

func (p *printer) line(format string, args ...any) {
	p.b.WriteString(strings.Repeat("  ", p.indent))
	fmt.Fprintf(&p.b, format, args...)
	p.b.WriteString("\n")
}

func (p *printer) nested(f func()) {
	p.indent++
	f()
	p.indent--
}

func (p *printer) modElement(el ModElement) {
	switch el := el.(type) {
	case *LetDecl:
		kw := "let"
		if el.Short {
			kw = "decl"
		}
		p.line("%s %s", kw, PatternString(el.Pat))
		if el.Value != nil {
			p.nested(func() { p.expr(el.Value) })
		}
	case *MainFn:
		p.line("main")
		p.nested(func() { p.fn(el.Fn) })
	case *NamedFn:
		p.line("fn %s", el.Fn.Name.Lit)
		p.nested(func() { p.fn(el.Fn) })
	case *StructDef:
		p.line("struct %s (%d fields)", el.Name.Lit, len(el.Fields))
	case *StructImpl:
		p.line("impl %s::%s", el.TypeName.Lit, el.Fn.Name.Lit)
		p.nested(func() { p.fn(el.Fn) })
	case *EnumDef:
		p.line("enum %s (%d variants)", el.Name.Lit, len(el.Variants))
	case *EnumImpl:
		p.line("impl %s::%s", el.TypeName.Lit, el.Fn.Name.Lit)
		p.nested(func() { p.fn(el.Fn) })
	case *TraitDef:
		p.line("trait %s (%d fns)", el.Name.Lit, len(el.Fns))
	}
}

func (p *printer) fn(fn *Fn) {
	for _, param := range fn.Params {
		p.line("param %s", PatternString(param.Pat))
	}
	p.block(fn.Body)
}

func (p *printer) block(b *Block) {
	if b == nil {
		return
	}
	for _, el := range b.Elements {
		switch el := el.(type) {
		case *DeclElement:
			p.line("decl %s", PatternString(el.Decl.Pat))
			if el.Decl.Value != nil {
				p.nested(func() { p.expr(el.Decl.Value) })
			}
		case *ExprElement:
			p.expr(el.X)
		case *ReturnElement:
			p.line("return")
			if el.X != nil {
				p.nested(func() { p.expr(el.X) })
			}
		case *MainArgs:
			p.line("argv")
		}
	}
}

func (p *printer) expr(e Expr) {
	switch e := e.(type) {
	case *Unit:
		p.line("unit")
	case *Lit:
		p.line("lit %q", e.Tok.Lit)
	case *Ref:
		p.line("ref %s", e.Tok.Lit)
	case *List:
		p.line("list (%d)", len(e.Elems))
		p.nested(func() {
			for _, el := range e.Elems {
				p.expr(el)
			}
		})
	case *Tuple:
		p.line("tuple (%d)", len(e.Elems))
		p.nested(func() {
			for _, el := range e.Elems {
				p.expr(el)
			}
		})
	case *StructLiteral:
		name := ""
		if e.Name != nil {
			name = " " + e.Name.Lit
		}
		p.line("struct-lit%s", name)
		p.nested(func() {
			for _, f := range e.Fields {
				p.line("field %s", f.Name.Lit)
				p.nested(func() { p.expr(f.Value) })
			}
		})
	case *BinOp:
		p.line("binop %s", e.Op.Kind)
		p.nested(func() {
			p.expr(e.Left)
			p.expr(e.Right)
		})
	case *PreUnaOp:
		p.line("prefix %s", e.Op.Kind)
		p.nested(func() { p.expr(e.X) })
	case *PostUnaOp:
		p.line("postfix %s", e.Op.Kind)
		p.nested(func() { p.expr(e.X) })
	case *Call:
		p.line("call (%d args)", len(e.Args))
		p.nested(func() {
			p.expr(e.Callee)
			for _, a := range e.Args {
				p.expr(a)
			}
		})
	case *Index:
		p.line("index")
		p.nested(func() {
			p.expr(e.Coll)
			p.expr(e.Idx)
		})
	case *Lambda:
		p.line("lambda")
		p.nested(func() { p.fn(e.Fn) })
	case *Match:
		p.line("match (%d arms)", len(e.Arms))
		p.nested(func() {
			p.expr(e.Subject)
			for _, arm := range e.Arms {
				p.line("arm %s", PatternString(arm.Pat))
				p.nested(func() { p.block(arm.Body) })
			}
		})
	case *For:
		p.line("for %s", PatternString(e.Pat))
		p.nested(func() {
			p.expr(e.Iter)
			p.block(e.Body)
		})
	case *While:
		p.line("while")
		p.nested(func() {
			p.expr(e.Cond)
			p.block(e.Body)
		})
	case *If:
		p.line("if (%d branches)", len(e.Branches))
		p.nested(func() {
			for _, br := range e.Branches {
				p.expr(br.Cond)
				p.block(br.Body)
			}
			if e.Else != nil {
				p.line("else")
				p.nested(func() { p.block(e.Else) })
			}
		})
	case *Code:
		p.line("code (%d bytes)", len(e.Tok.Lit))
	case *OkExpr:
		p.line("Ok")
		p.nested(func() { p.expr(e.X) })
	case *ErrExpr:
		p.line("Err")
		p.nested(func() { p.expr(e.X) })
	case *SomeExpr:
		p.line("Some")
		p.nested(func() { p.expr(e.X) })
	case *NoneExpr:
		p.line("None")
	}
}

// PatternString renders a pattern on one line for dumps and
// diagnostics.
func PatternString(pat Pattern) string {
	switch pat := pat.(type) {
	case *LitPattern:
		return pat.Tok.Lit
	case *IdPattern:
		return pat.Tok.Lit
	case *WildcardPattern:
		return "_"
	case *ListPattern:
		parts := make([]string, len(pat.Elems))
		for i, e := range pat.Elems {
			parts[i] = PatternString(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *TuplePattern:
		parts := make([]string, len(pat.Elems))
		for i, e := range pat.Elems {
			parts[i] = PatternString(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *StructPattern:
		parts := make([]string, len(pat.Fields))
		for i, f := range pat.Fields {
			if f.Pat == nil {
				parts[i] = f.Name.Lit
			} else {
				parts[i] = f.Name.Lit + ": " + PatternString(f.Pat)
			}
		}
		out := "{" + strings.Join(parts, ", ") + "}"
		if pat.Name != nil {
			return pat.Name.Lit + " " + out
		}
		return out
	case *EnumPattern:
		out := "." + pat.Variant.Lit
		if pat.TypeName != nil {
			out = pat.TypeName.Lit + out
		}
		if pat.Inner != nil {
			out += "(" + PatternString(pat.Inner) + ")"
		}
		return out
	}
	return "?"
}
