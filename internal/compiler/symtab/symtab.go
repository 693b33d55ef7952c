package symtab

import (
	"fmt"

	"github.com/seen-lang/seen/internal/compiler/ast"
	"github.com/seen-lang/seen/internal/compiler/errors"
	"github.com/seen-lang/seen/internal/compiler/token"
)

// EntryKind discriminates the records a scope can hold.
type EntryKind int

const (
	// Ref is a reference use of a name.
	Ref EntryKind = iota
	// Bind is an identifier-pattern binding.
	Bind
	// Decl carries a whole declaration pattern.
	Decl
	// Fn is a function definition.
	Fn
	// TypeDef is a struct, trait or enum definition.
	TypeDef
	// ScopePtr points at a nested child scope.
	ScopePtr
)

// Entry is one record in a scope. Ordering within a scope matters:
// resolution walks left from the use, then up to the parent.
type Entry struct {
	Kind   EntryKind
	Tok    token.Token  // Ref, Bind, Fn, TypeDef
	Pat    ast.Pattern  // Decl
	Params []*ast.Param // Fn
	Child  int          // ScopePtr
}

// Name returns the symbol the entry defines or references, empty for
// Decl and ScopePtr entries.
func (e Entry) Name() string {
	switch e.Kind {
	case Ref, Bind, Fn, TypeDef:
		return e.Tok.Lit
	}
	return ""
}

// Defines reports whether the entry introduces a name into its scope.
func (e Entry) Defines() bool {
	switch e.Kind {
	case Bind, Fn, TypeDef:
		return true
	}
	return false
}

// NoParent marks the module scope's parent id.
const NoParent = -1

// Scope is one node of the lexical region tree. The name set mirrors
// the definition map's keys; both exist so duplicate detection stays a
// set test while resolution keeps positional entries.
type Scope struct {
	ID      int
	Parent  int
	Names   map[string]struct{}
	Defs    map[string]int
	Entries []Entry
}

func newScope(id, parent int) *Scope {
	return &Scope{
		ID:     id,
		Parent: parent,
		Names:  make(map[string]struct{}),
		Defs:   make(map[string]int),
	}
}

// SymTab owns the flat vector of scopes plus the stack of active scope
// ids. Scopes refer to each other by id only, never by pointer, so the
// structure is trivially relocatable.
type SymTab struct {
	Scopes []*Scope
	stack  []int
}

// New creates a table holding the module scope, already active.
func New() *SymTab {
	t := &SymTab{}
	t.Scopes = append(t.Scopes, newScope(0, NoParent))
	t.stack = append(t.stack, 0)
	return t
}

// Current returns the active scope.
func (t *SymTab) Current() *Scope {
	return t.Scopes[t.stack[len(t.stack)-1]]
}

// Depth reports how many scopes are active. At end of parse this must
// be exactly one (the module scope).
func (t *SymTab) Depth() int {
	return len(t.stack)
}

// Push opens a child of the current scope, records a ScopePtr entry in
// the parent, and makes the child active.
func (t *SymTab) Push() *Scope {
	parent := t.Current()
	child := newScope(len(t.Scopes), parent.ID)
	t.Scopes = append(t.Scopes, child)
	parent.Entries = append(parent.Entries, Entry{Kind: ScopePtr, Child: child.ID})
	t.stack = append(t.stack, child.ID)
	return child
}

// Pop closes the active scope. Push and Pop are always paired; the
// module scope is never popped.
func (t *SymTab) Pop() {
	if len(t.stack) > 1 {
		t.stack = t.stack[:len(t.stack)-1]
	}
}

// Add appends a non-defining entry (Ref, Decl) to the active scope.
func (t *SymTab) Add(e Entry) {
	s := t.Current()
	s.Entries = append(s.Entries, e)
}

// Define appends a defining entry (Bind, Fn, TypeDef) to the active
// scope, failing when the name already exists there.
func (t *SymTab) Define(e Entry) *errors.Error {
	s := t.Current()
	name := e.Name()
	if _, dup := s.Names[name]; dup {
		err := errors.At(e.Tok, fmt.Sprintf("duplicate identifier `%s`", name))
		return &err
	}
	s.Names[name] = struct{}{}
	s.Defs[name] = len(s.Entries)
	s.Entries = append(s.Entries, e)
	return nil
}

// AddRef records a reference use of tok in the active scope.
func (t *SymTab) AddRef(tok token.Token) {
	t.Add(Entry{Kind: Ref, Tok: tok})
}

// BindPattern records the declaration pattern and then every identifier
// it binds, recursing into list/tuple/struct/enum sub-patterns.
func (t *SymTab) BindPattern(pat ast.Pattern) []errors.Error {
	t.Add(Entry{Kind: Decl, Pat: pat})
	var errs []errors.Error
	for _, tok := range ast.Bindings(pat, nil) {
		if err := t.Define(Entry{Kind: Bind, Tok: tok}); err != nil {
			errs = append(errs, *err)
		}
	}
	return errs
}
