package resolver

import (
	"fmt"

	"github.com/seen-lang/seen/internal/compiler/errors"
	"github.com/seen-lang/seen/internal/compiler/symtab"
)

// EntryRef identifies one entry inside one scope.
type EntryRef struct {
	Scope int
	Index int
}

// ResTab maps every resolved reference occurrence to the entry that
// defines it: one mapping per resolved use.
type ResTab map[EntryRef]EntryRef

// Resolver walks the scope tree and binds each reference use to the
// nearest preceding definition: left from the use inside its own scope,
// then up through the parents. Scopes are persistent and ordered, so
// resolution is a pure function of the tree.
type Resolver struct {
	tab  *symtab.SymTab
	res  ResTab
	errs []errors.Error
}

func New(tab *symtab.SymTab) *Resolver {
	return &Resolver{tab: tab, res: make(ResTab)}
}

// Resolve scans the scope tree in pre-order, entries in insertion
// order, and returns the resolution table plus an error per reference
// that no declaration matches.
func (r *Resolver) Resolve() (ResTab, []errors.Error) {
	if len(r.tab.Scopes) > 0 {
		r.resolveScope(0)
	}
	return r.res, r.errs
}

func (r *Resolver) resolveScope(id int) {
	scope := r.tab.Scopes[id]
	for i, entry := range scope.Entries {
		switch entry.Kind {
		case symtab.Ref:
			r.resolveRef(EntryRef{Scope: id, Index: i}, entry)
		case symtab.ScopePtr:
			r.resolveScope(entry.Child)
		}
	}
}

// resolveRef looks leftwards from the use for a defining entry with the
// same name, recursing into the parent from the child's position when
// the scope runs out.
func (r *Resolver) resolveRef(use EntryRef, entry symtab.Entry) {
	name := entry.Tok.Lit
	scopeID := use.Scope
	from := use.Index

	for scopeID != symtab.NoParent {
		scope := r.tab.Scopes[scopeID]
		for i := from - 1; i >= 0; i-- {
			if scope.Entries[i].Defines() && scope.Entries[i].Name() == name {
				r.res[use] = EntryRef{Scope: scopeID, Index: i}
				return
			}
		}
		from = r.childPosition(scope.Parent, scopeID)
		scopeID = scope.Parent
	}

	r.errs = append(r.errs, errors.At(entry.Tok, fmt.Sprintf("could not resolve `%s`", name)))
}

// childPosition finds the index of the ScopePtr entry for child inside
// parent, so the upward walk keeps scanning left of the nested scope.
func (r *Resolver) childPosition(parent, child int) int {
	if parent == symtab.NoParent {
		return 0
	}
	for i, e := range r.tab.Scopes[parent].Entries {
		if e.Kind == symtab.ScopePtr && e.Child == child {
			return i
		}
	}
	return len(r.tab.Scopes[parent].Entries)
}
