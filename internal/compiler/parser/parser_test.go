package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seen-lang/seen/internal/compiler/ast"
	"github.com/seen-lang/seen/internal/compiler/errors"
	"github.com/seen-lang/seen/internal/compiler/lexer"
	"github.com/seen-lang/seen/internal/compiler/script"
	"github.com/seen-lang/seen/internal/compiler/symtab"
)

func parseSrc(t *testing.T, src string) ([]ast.ModElement, *symtab.SymTab, []errors.Error) {
	t.Helper()
	toks, lexErrs := lexer.New(script.New("test.seen", src)).Lex()
	require.Empty(t, lexErrs, "lex errors for %q", src)
	return New(toks).Parse()
}

func parseOK(t *testing.T, src string) ([]ast.ModElement, *symtab.SymTab) {
	t.Helper()
	elements, tab, errs := parseSrc(t, src)
	require.Empty(t, errs, "parse errors for %q", src)
	return elements, tab
}

// sexpr renders an expression as a compact prefix form, enough to pin
// down shapes in tests.
func sexpr(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Unit:
		return "()"
	case *ast.Lit:
		return e.Tok.Lit
	case *ast.Ref:
		return e.Tok.Lit
	case *ast.BinOp:
		return fmt.Sprintf("(%s %s %s)", e.Op.Kind, sexpr(e.Left), sexpr(e.Right))
	case *ast.PreUnaOp:
		return fmt.Sprintf("(pre%s %s)", e.Op.Kind, sexpr(e.X))
	case *ast.PostUnaOp:
		return fmt.Sprintf("(post%s %s)", e.Op.Kind, sexpr(e.X))
	case *ast.Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = sexpr(a)
		}
		return fmt.Sprintf("(call %s %s)", sexpr(e.Callee), strings.Join(args, " "))
	case *ast.Index:
		return fmt.Sprintf("(index %s %s)", sexpr(e.Coll), sexpr(e.Idx))
	case *ast.Tuple:
		parts := make([]string, len(e.Elems))
		for i, el := range e.Elems {
			parts[i] = sexpr(el)
		}
		return "(tuple " + strings.Join(parts, " ") + ")"
	case *ast.List:
		parts := make([]string, len(e.Elems))
		for i, el := range e.Elems {
			parts[i] = sexpr(el)
		}
		return "(list " + strings.Join(parts, " ") + ")"
	case *ast.StructLiteral:
		name := ""
		if e.Name != nil {
			name = e.Name.Lit
		}
		return "(struct " + name + ")"
	case *ast.Match:
		return fmt.Sprintf("(match %s %d)", sexpr(e.Subject), len(e.Arms))
	case *ast.Lambda:
		return "(lambda)"
	}
	return fmt.Sprintf("%T", e)
}

// declValue digs the value expression out of the single declaration a
// test source produces.
func declValue(t *testing.T, src string) ast.Expr {
	t.Helper()
	elements, _ := parseOK(t, src)
	require.Len(t, elements, 1)
	decl, ok := elements[0].(*ast.LetDecl)
	require.True(t, ok, "want LetDecl, got %T", elements[0])
	return decl.Value
}

func TestParse_OperatorPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`v := a + b * c`, `(+ a (* b c))`},
		{`v := a * b + c`, `(+ (* a b) c)`},
		{`v := a + b - c`, `(- (+ a b) c)`},
		{`v := a == b + c`, `(== a (+ b c))`},
		{`v := a && b || c`, `(|| (&& a b) c)`},
		{`v := a = b = c`, `(= a (= b c))`},
		{`v := a |> f`, `(|> a f)`},
		{`v := a /\ b \/ c`, `(\/ (/\ a b) c)`},
		{`v := -a * b`, `(* (pre- a) b)`},
		{`v := a - -b`, `(- a (pre- b))`},
		{`v := a + b?`, `(+ a (post? b))`},
		{`v := f(x) + g(y)`, `(+ (call f x) (call g y))`},
		{`v := xs[0] + 1`, `(+ (index xs 0) 1)`},
		{`v := p.x + dx`, `(+ (. p x) dx)`},
	}
	for _, tt := range tests {
		got := sexpr(declValue(t, tt.src))
		assert.Equal(t, tt.want, got, "src %q", tt.src)
	}
}

func TestParse_ParenForms(t *testing.T) {
	assert.Equal(t, "()", sexpr(declValue(t, `v := ()`)))
	assert.Equal(t, "(+ a b)", sexpr(declValue(t, `v := (a + b)`)))
	assert.Equal(t, "(tuple a b)", sexpr(declValue(t, `v := (a, b)`)))
	assert.Equal(t, "(lambda)", sexpr(declValue(t, `v := (x) -> x + 1`)))
	assert.Equal(t, "(list 1 2 3)", sexpr(declValue(t, `v := [1, 2, 3]`)))
}

func TestParse_StructLiteralDisambiguation(t *testing.T) {
	// `{ Id :` after the brace is a struct literal
	v := declValue(t, `v := { x: 1, y: 2 }`)
	lit, ok := v.(*ast.StructLiteral)
	require.True(t, ok, "want StructLiteral, got %T", v)
	assert.Nil(t, lit.Name)
	require.Len(t, lit.Fields, 2)
	assert.Equal(t, "x", lit.Fields[0].Name.Lit)

	// a named struct literal keeps its type name
	v = declValue(t, `v := Point { x: 1, y: 2 }`)
	lit, ok = v.(*ast.StructLiteral)
	require.True(t, ok)
	require.NotNil(t, lit.Name)
	assert.Equal(t, "Point", lit.Name.Lit)

	// anything else after `{` is a block, not a struct literal
	elements, _ := parseOK(t, "f() -> {\n    g()\n}\n")
	fn := elements[0].(*ast.NamedFn)
	require.Len(t, fn.Fn.Body.Elements, 1)
	_, isRet := fn.Fn.Body.Elements[0].(*ast.ReturnElement)
	assert.True(t, isRet)
}

func TestParse_MainEntry(t *testing.T) {
	elements, _ := parseOK(t, `() -> println("hello")`)
	require.Len(t, elements, 1)
	main, ok := elements[0].(*ast.MainFn)
	require.True(t, ok)
	assert.Nil(t, main.Fn.Name)
	assert.Empty(t, main.Fn.Params)
	require.Len(t, main.Fn.Body.Elements, 1)
	ret, ok := main.Fn.Body.Elements[0].(*ast.ReturnElement)
	require.True(t, ok, "trailing expression is rewritten into a return")
	assert.Equal(t, "(call println hello)", sexpr(ret.X))
}

func TestParse_MainArgs(t *testing.T) {
	elements, _ := parseOK(t, `(args) -> println(args)`)
	main := elements[0].(*ast.MainFn)
	require.Len(t, main.Fn.Params, 1)
	_, isPlaceholder := main.Fn.Body.Elements[0].(*ast.MainArgs)
	assert.True(t, isPlaceholder, "argv placeholder leads the body")
}

func TestParse_Fibonacci(t *testing.T) {
	src := "fib(n) -> match n { 0 => 0  1 => 1  n => fib(n-1) + fib(n-2) }\n\n() -> println(fib(3))\n"
	elements, tab := parseOK(t, src)
	require.Len(t, elements, 2)

	fn := elements[0].(*ast.NamedFn)
	assert.Equal(t, "fib", fn.Fn.Name.Lit)
	require.Len(t, fn.Fn.Params, 1)

	ret := fn.Fn.Body.Elements[0].(*ast.ReturnElement)
	m := ret.X.(*ast.Match)
	require.Len(t, m.Arms, 3)
	assert.True(t, m.Arms[0].Pat.Refutable())
	assert.False(t, m.Arms[2].Pat.Refutable())

	// scope discipline: only the module scope stays active
	assert.Equal(t, 1, tab.Depth())
}

func TestParse_DuplicateIdentifier(t *testing.T) {
	_, _, errs := parseSrc(t, "let x = 1\nlet x = 2\n")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Msg, "duplicate identifier")
}

func TestParse_StructDef(t *testing.T) {
	elements, _ := parseOK(t, "Point { x: int, y: int }\n")
	def := elements[0].(*ast.StructDef)
	assert.Equal(t, "Point", def.Name.Lit)
	require.Len(t, def.Fields, 2)
	_, isPrim := def.Fields[0].Type.(*ast.PrimType)
	assert.True(t, isPrim)
}

func TestParse_StructImpl(t *testing.T) {
	src := "Point { x: int, y: int }\n" +
		"Point::translate(dx: int, dy: int): Point -> Point { x: self.x + dx, y: self.y + dy }\n"
	elements, _ := parseOK(t, src)
	require.Len(t, elements, 2)
	impl := elements[1].(*ast.StructImpl)
	assert.Equal(t, "Point", impl.TypeName.Lit)
	assert.Equal(t, "translate", impl.Fn.Name.Lit)
	assert.True(t, impl.Fn.Method)
	require.Len(t, impl.Fn.Params, 2)
	_, isNamed := impl.Fn.Ret.(*ast.NamedType)
	assert.True(t, isNamed)
}

func TestParse_EnumAndImpl(t *testing.T) {
	src := "enum Shade { Light, Dark(int) }\n" +
		"Shade::flip() -> self\n"
	elements, _ := parseOK(t, src)
	require.Len(t, elements, 2)
	def := elements[0].(*ast.EnumDef)
	require.Len(t, def.Variants, 2)
	assert.Nil(t, def.Variants[0].Inner)
	assert.NotNil(t, def.Variants[1].Inner)
	_, isEnumImpl := elements[1].(*ast.EnumImpl)
	assert.True(t, isEnumImpl, "impl on an enum name classifies as enum impl")
}

func TestParse_Trait(t *testing.T) {
	elements, _ := parseOK(t, "trait Greet {\ngreet(): string -> \"hi\"\n}\n")
	def := elements[0].(*ast.TraitDef)
	assert.Equal(t, "Greet", def.Name.Lit)
	require.Len(t, def.Fns, 1)
}

func TestParse_Patterns(t *testing.T) {
	src := "f(p) -> match p {\n" +
		"Point { x: 0, y } => 0\n" +
		"(a, b) => a\n" +
		"[h, _] => h\n" +
		".Some(v) => v\n" +
		"_ => 1\n" +
		"}\n"
	elements, _ := parseOK(t, src)
	fn := elements[0].(*ast.NamedFn)
	m := fn.Fn.Body.Elements[0].(*ast.ReturnElement).X.(*ast.Match)
	require.Len(t, m.Arms, 5)

	sp := m.Arms[0].Pat.(*ast.StructPattern)
	require.NotNil(t, sp.Name)
	assert.Equal(t, "Point", sp.Name.Lit)
	require.Len(t, sp.Fields, 2)
	assert.NotNil(t, sp.Fields[0].Pat, "x binds a nested literal pattern")
	assert.Nil(t, sp.Fields[1].Pat, "y binds by field name")
	assert.True(t, sp.Refutable())

	_, isTuple := m.Arms[1].Pat.(*ast.TuplePattern)
	assert.True(t, isTuple)
	_, isList := m.Arms[2].Pat.(*ast.ListPattern)
	assert.True(t, isList)

	ep := m.Arms[3].Pat.(*ast.EnumPattern)
	assert.Nil(t, ep.TypeName)
	assert.Equal(t, "Some", ep.Variant.Lit)
	assert.NotNil(t, ep.Inner)
	assert.True(t, ep.Refutable())

	_, isWild := m.Arms[4].Pat.(*ast.WildcardPattern)
	assert.True(t, isWild)
}

func TestParse_PatternBindingsRecurse(t *testing.T) {
	_, tab := parseOK(t, "(a, (b, c)) := f()\n")
	scope := tab.Scopes[0]
	for _, name := range []string{"a", "b", "c"} {
		_, ok := scope.Names[name]
		assert.True(t, ok, "pattern binding %q recorded in module scope", name)
	}
}

func TestParse_Types(t *testing.T) {
	elements, _ := parseOK(t, "let x: Res<[int], string>? = y\n")
	decl := elements[0].(*ast.LetDecl)
	opt, ok := decl.Type.(*ast.OptionType)
	require.True(t, ok)
	res, ok := opt.Inner.(*ast.ResultType)
	require.True(t, ok)
	list, ok := res.Ok.(*ast.ListType)
	require.True(t, ok)
	prim := list.Elem.(*ast.PrimType)
	assert.Equal(t, ast.PrimInt, prim.Kind)
	assert.Equal(t, ast.PrimString, res.Err.(*ast.PrimType).Kind)
}

func TestParse_ControlForms(t *testing.T) {
	src := "f(xs) -> {\n" +
		"total := 0\n" +
		"for x in xs {\n    total = total + x\n}\n" +
		"while total > 100 {\n    total = total - 1\n}\n" +
		"if total == 0 {\n    println(\"zero\")\n} else if total == 1 {\n    println(\"one\")\n} else {\n    println(\"many\")\n}\n" +
		"total\n" +
		"}\n"
	elements, tab := parseOK(t, src)
	fn := elements[0].(*ast.NamedFn)
	body := fn.Fn.Body.Elements
	require.Len(t, body, 5)
	_, isFor := body[1].(*ast.ExprElement).X.(*ast.For)
	assert.True(t, isFor)
	_, isWhile := body[2].(*ast.ExprElement).X.(*ast.While)
	assert.True(t, isWhile)
	ifx, isIf := body[3].(*ast.ExprElement).X.(*ast.If)
	require.True(t, isIf)
	assert.Len(t, ifx.Branches, 2)
	assert.NotNil(t, ifx.Else)
	_, isRet := body[4].(*ast.ReturnElement)
	assert.True(t, isRet)
	assert.Equal(t, 1, tab.Depth())
}

func TestParse_ReturnStatement(t *testing.T) {
	elements, _ := parseOK(t, "f(x) -> {\nreturn x + 1\n}\n")
	fn := elements[0].(*ast.NamedFn)
	ret, ok := fn.Fn.Body.Elements[0].(*ast.ReturnElement)
	require.True(t, ok)
	assert.Equal(t, "(+ x 1)", sexpr(ret.X))
}

func TestParse_Constructors(t *testing.T) {
	assert.Equal(t, "*ast.OkExpr", fmt.Sprintf("%T", declValue(t, "v := Ok(1)\n")))
	assert.Equal(t, "*ast.ErrExpr", fmt.Sprintf("%T", declValue(t, "v := Err(e)\n")))
	assert.Equal(t, "*ast.SomeExpr", fmt.Sprintf("%T", declValue(t, "v := Some(1)\n")))
	assert.Equal(t, "*ast.NoneExpr", fmt.Sprintf("%T", declValue(t, "v := None\n")))
}

func TestParse_UnknownTopLevelForm(t *testing.T) {
	_, _, errs := parseSrc(t, "+ 1\n")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Msg, "unknown top-level form")
}

func TestParse_ArabicProgram(t *testing.T) {
	src := "() -> اطبع_سطر(«مرحبا»)\n"
	toks, lexErrs := lexer.New(script.New("test.س", src)).Lex()
	require.Empty(t, lexErrs)
	elements, tab, errs := New(toks).Parse()
	require.Empty(t, errs)
	require.Len(t, elements, 1)
	_, ok := elements[0].(*ast.MainFn)
	assert.True(t, ok)
	assert.Equal(t, 1, tab.Depth())
}
