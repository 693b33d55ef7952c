package compiler

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/seen-lang/seen/internal/compiler/ast"
	"github.com/seen-lang/seen/internal/compiler/script"
	"github.com/seen-lang/seen/internal/compiler/symtab"
	"github.com/seen-lang/seen/internal/compiler/token"
)

// LogEnv controls the debug dumps: set to `debug` or `trace` to print
// tokens and the symbol table after each phase. It never affects
// correctness.
const LogEnv = "SEEN_LOG"

func dumpEnabled() bool {
	switch os.Getenv(LogEnv) {
	case "debug", "trace":
		return true
	}
	return false
}

var dumpHeader = color.New(color.FgYellow, color.Bold)

// DumpTokens prints the token vector of a file when dumps are enabled.
func DumpTokens(sc *script.Script, toks []token.Token) {
	if !dumpEnabled() {
		return
	}
	dumpHeader.Fprintf(os.Stderr, "-- tokens %s --\n", sc.Path)
	for _, t := range toks {
		if t.Lit != "" && string(t.Kind) != t.Lit {
			fmt.Fprintf(os.Stderr, "%3d:%-3d %-12s %q\n", t.Start.Line, t.Start.Column, t.Kind, t.Lit)
		} else {
			fmt.Fprintf(os.Stderr, "%3d:%-3d %s\n", t.Start.Line, t.Start.Column, t.Kind)
		}
	}
}

// DumpAST prints the parsed module elements when dumps are enabled.
func DumpAST(sc *script.Script, elements []ast.ModElement) {
	if !dumpEnabled() {
		return
	}
	dumpHeader.Fprintf(os.Stderr, "-- ast %s --\n", sc.Path)
	fmt.Fprint(os.Stderr, ast.Print(elements))
}

var entryKindNames = map[symtab.EntryKind]string{
	symtab.Ref:      "ref",
	symtab.Bind:     "bind",
	symtab.Decl:     "decl",
	symtab.Fn:       "fn",
	symtab.TypeDef:  "type",
	symtab.ScopePtr: "scope",
}

// DumpSymTab prints the scope tree when dumps are enabled.
func DumpSymTab(sc *script.Script, tab *symtab.SymTab) {
	if !dumpEnabled() || tab == nil {
		return
	}
	dumpHeader.Fprintf(os.Stderr, "-- symtab %s --\n", sc.Path)
	for _, scope := range tab.Scopes {
		fmt.Fprintf(os.Stderr, "scope %d (parent %d)\n", scope.ID, scope.Parent)
		for i, e := range scope.Entries {
			if e.Kind == symtab.ScopePtr {
				fmt.Fprintf(os.Stderr, "  %2d %s -> %d\n", i, entryKindNames[e.Kind], e.Child)
			} else {
				fmt.Fprintf(os.Stderr, "  %2d %-5s %s\n", i, entryKindNames[e.Kind], e.Name())
			}
		}
	}
}
