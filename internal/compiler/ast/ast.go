package ast

import "github.com/seen-lang/seen/internal/compiler/token"

// The syntax tree is a set of closed sums: module elements, block
// elements, expressions, patterns and types. Nodes own their children;
// tokens are carried by value so locations and dialect lexemes survive
// all the way to code generation.

// ModElement is a top-level element of a module.
type ModElement interface {
	modElement()
}

// Attr is a decoration such as @web_server applied to a declaration.
type Attr struct {
	Name token.Token
}

// LetDecl is a value declaration, either `let pat [: type] [= expr]` or
// the short form `pat := expr`.
type LetDecl struct {
	Attrs []*Attr
	Short bool
	Pat   Pattern
	Type  Type
	Value Expr
}

// MainFn is the anonymous entry function `() -> …` that becomes the
// program's main.
type MainFn struct {
	Fn *Fn
}

// NamedFn is a top-level named function.
type NamedFn struct {
	Fn *Fn
}

// StructDef is `Name { field: type, … }`.
type StructDef struct {
	Name   token.Token
	Fields []*StructField
}

// StructField is one named, typed field of a struct definition.
type StructField struct {
	Name token.Token
	Type Type
}

// StructImpl attaches a method to a struct: `Name::method(…) -> …`.
type StructImpl struct {
	TypeName token.Token
	Fn       *Fn
}

// TraitDef declares a trait and its function signatures.
type TraitDef struct {
	Name token.Token
	Fns  []*Fn
}

// EnumDef is `enum Name { Variant, Variant(type), … }`.
type EnumDef struct {
	Name     token.Token
	Variants []*EnumVariant
}

// EnumVariant is one case of an enum; Inner is nil for bare variants.
type EnumVariant struct {
	Name  token.Token
	Inner Type
}

// EnumImpl attaches a method to an enum.
type EnumImpl struct {
	TypeName token.Token
	Fn       *Fn
}

func (*LetDecl) modElement()    {}
func (*MainFn) modElement()     {}
func (*NamedFn) modElement()    {}
func (*StructDef) modElement()  {}
func (*StructImpl) modElement() {}
func (*TraitDef) modElement()   {}
func (*EnumDef) modElement()    {}
func (*EnumImpl) modElement()   {}

// Fn is a function: named or anonymous, free or method.
type Fn struct {
	Attrs  []*Attr
	Method bool
	Name   *token.Token // nil for the main entry and lambdas
	Params []*Param
	Ret    Type // nil when unannotated
	Body   *Block
}

// Param is a pattern with an optional type annotation.
type Param struct {
	Pat  Pattern
	Type Type
}

// Block is a sequence of block elements. The parser rewrites the last
// expression of a function block into an explicit Return element.
type Block struct {
	Elements []BlockElement
}

// BlockElement is a statement position inside a block.
type BlockElement interface {
	blockElement()
}

// DeclElement is a declaration in statement position.
type DeclElement struct {
	Decl *LetDecl
}

// ExprElement is an expression in statement position.
type ExprElement struct {
	X Expr
}

// ReturnElement is `return expr` or the rewritten final expression of a
// function block.
type ReturnElement struct {
	Tok token.Token
	X   Expr
}

// MainArgs marks where main's argv binding is materialised.
type MainArgs struct {
	Tok token.Token
}

func (*DeclElement) blockElement()   {}
func (*ExprElement) blockElement()   {}
func (*ReturnElement) blockElement() {}
func (*MainArgs) blockElement()      {}
