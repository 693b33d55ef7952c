package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seen-lang/seen/internal/compiler/ast"
	"github.com/seen-lang/seen/internal/compiler/token"
)

func idTok(name string) token.Token {
	return token.Token{Kind: token.ID, Lit: name}
}

func TestSymTab_PushPopPairing(t *testing.T) {
	tab := New()
	assert.Equal(t, 1, tab.Depth())

	child := tab.Push()
	assert.Equal(t, 2, tab.Depth())
	assert.Equal(t, 0, child.Parent)

	// the parent gained a scope-pointer entry
	parent := tab.Scopes[0]
	require.Len(t, parent.Entries, 1)
	assert.Equal(t, ScopePtr, parent.Entries[0].Kind)
	assert.Equal(t, child.ID, parent.Entries[0].Child)

	tab.Pop()
	assert.Equal(t, 1, tab.Depth())

	// the module scope is never popped
	tab.Pop()
	assert.Equal(t, 1, tab.Depth())
}

func TestSymTab_DuplicateDetection(t *testing.T) {
	tab := New()
	require.Nil(t, tab.Define(Entry{Kind: Bind, Tok: idTok("x")}))
	err := tab.Define(Entry{Kind: Bind, Tok: idTok("x")})
	require.NotNil(t, err)
	assert.Contains(t, err.Msg, "duplicate identifier")

	// shadowing in a child scope is fine
	tab.Push()
	assert.Nil(t, tab.Define(Entry{Kind: Bind, Tok: idTok("x")}))
}

func TestSymTab_NamesMirrorDefs(t *testing.T) {
	tab := New()
	require.Nil(t, tab.Define(Entry{Kind: Fn, Tok: idTok("f")}))
	require.Nil(t, tab.Define(Entry{Kind: TypeDef, Tok: idTok("T")}))
	tab.AddRef(idTok("f"))

	scope := tab.Current()
	assert.Len(t, scope.Names, 2)
	assert.Len(t, scope.Defs, 2)
	for name := range scope.Names {
		_, ok := scope.Defs[name]
		assert.True(t, ok, "name set mirrors definition map")
	}
	// refs occupy positions but never define
	assert.Len(t, scope.Entries, 3)
	assert.False(t, scope.Entries[2].Defines())
}

func TestSymTab_BindPatternRecurses(t *testing.T) {
	tab := New()
	pat := &ast.TuplePattern{Elems: []ast.Pattern{
		&ast.IdPattern{Tok: idTok("a")},
		&ast.StructPattern{Fields: []*ast.FieldPattern{
			{Name: idTok("b")},
			{Name: idTok("ignored"), Pat: &ast.IdPattern{Tok: idTok("c")}},
		}},
	}}
	errs := tab.BindPattern(pat)
	assert.Empty(t, errs)

	scope := tab.Current()
	for _, name := range []string{"a", "b", "c"} {
		_, ok := scope.Names[name]
		assert.True(t, ok, "binding %q", name)
	}
	// the declaration entry precedes its bindings
	assert.Equal(t, Decl, scope.Entries[0].Kind)
}

func TestSymTab_BindPatternDuplicate(t *testing.T) {
	tab := New()
	pat := &ast.TuplePattern{Elems: []ast.Pattern{
		&ast.IdPattern{Tok: idTok("x")},
		&ast.IdPattern{Tok: idTok("x")},
	}}
	errs := tab.BindPattern(pat)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Msg, "duplicate identifier")
}
