package ast

import "github.com/seen-lang/seen/internal/compiler/token"

// Pattern is the pattern sum. A pattern is refutable iff it contains a
// primitive-literal or enum-variant sub-pattern.
type Pattern interface {
	patternNode()
	Refutable() bool
}

// LitPattern matches a primitive literal.
type LitPattern struct {
	Tok token.Token
}

// IdPattern binds an identifier.
type IdPattern struct {
	Tok token.Token
}

// ListPattern is `[p, …]`.
type ListPattern struct {
	Elems []Pattern
}

// TuplePattern is `(p, …)`.
type TuplePattern struct {
	Elems []Pattern
}

// StructPattern is `{ name [: pat], … }` with an optional type name.
type StructPattern struct {
	Name   *token.Token
	Fields []*FieldPattern
}

// FieldPattern is one field of a struct pattern. Pat is nil when the
// field binds by its own name.
type FieldPattern struct {
	Name token.Token
	Pat  Pattern
}

// EnumPattern is `.Variant(pat)` with an optional type name prefix.
type EnumPattern struct {
	TypeName *token.Token
	Variant  token.Token
	Inner    Pattern // nil for bare variants
}

// WildcardPattern is `_`.
type WildcardPattern struct {
	Tok token.Token
}

func (*LitPattern) patternNode()      {}
func (*IdPattern) patternNode()       {}
func (*ListPattern) patternNode()     {}
func (*TuplePattern) patternNode()    {}
func (*StructPattern) patternNode()   {}
func (*EnumPattern) patternNode()     {}
func (*WildcardPattern) patternNode() {}

func (*LitPattern) Refutable() bool { return true }
func (*IdPattern) Refutable() bool  { return false }

func (p *ListPattern) Refutable() bool {
	for _, e := range p.Elems {
		if e.Refutable() {
			return true
		}
	}
	return false
}

func (p *TuplePattern) Refutable() bool {
	for _, e := range p.Elems {
		if e.Refutable() {
			return true
		}
	}
	return false
}

func (p *StructPattern) Refutable() bool {
	for _, f := range p.Fields {
		if f.Pat != nil && f.Pat.Refutable() {
			return true
		}
	}
	return false
}

func (*EnumPattern) Refutable() bool     { return true }
func (*WildcardPattern) Refutable() bool { return false }

// Bindings appends every identifier bound by p, in source order.
func Bindings(p Pattern, out []token.Token) []token.Token {
	switch pat := p.(type) {
	case *IdPattern:
		out = append(out, pat.Tok)
	case *ListPattern:
		for _, e := range pat.Elems {
			out = Bindings(e, out)
		}
	case *TuplePattern:
		for _, e := range pat.Elems {
			out = Bindings(e, out)
		}
	case *StructPattern:
		for _, f := range pat.Fields {
			if f.Pat == nil {
				out = append(out, f.Name)
			} else {
				out = Bindings(f.Pat, out)
			}
		}
	case *EnumPattern:
		if pat.Inner != nil {
			out = Bindings(pat.Inner, out)
		}
	}
	return out
}
