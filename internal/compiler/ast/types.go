package ast

import "github.com/seen-lang/seen/internal/compiler/token"

// Type is the parsed-type sum. No inference is performed; types carry
// their source lexeme so either dialect round-trips.
type Type interface {
	typeNode()
}

// PrimKind enumerates the primitive types.
type PrimKind int

const (
	PrimBool PrimKind = iota
	PrimInt
	PrimFloat
	PrimChar
	PrimString
)

// UnitType is `()`.
type UnitType struct {
	Tok token.Token
}

// PrimType is one of bool/int/float/char/string, keeping the dialect
// spelling in Tok.
type PrimType struct {
	Tok  token.Token
	Kind PrimKind
}

// NamedType refers to a struct, trait or enum by name.
type NamedType struct {
	Tok token.Token
}

// ListType is `[T]`.
type ListType struct {
	Elem Type
}

// TupleType is `(T1, …, Tn)`.
type TupleType struct {
	Elems []Type
}

// OptionType is the question suffix `T?`.
type OptionType struct {
	Inner Type
}

// ResultType is `Res<T, E>`.
type ResultType struct {
	Ok  Type
	Err Type
}

func (*UnitType) typeNode()   {}
func (*PrimType) typeNode()   {}
func (*NamedType) typeNode()  {}
func (*ListType) typeNode()   {}
func (*TupleType) typeNode()  {}
func (*OptionType) typeNode() {}
func (*ResultType) typeNode() {}
