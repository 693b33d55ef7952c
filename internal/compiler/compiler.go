// Package compiler drives the per-file pipeline: lex, parse, resolve,
// the scaffolded inference and type-check passes, then code generation
// into the build directory plus the top-level manifest. Files are
// processed independently; a file with errors is excluded from code
// generation without stopping the others.
package compiler

import (
	"fmt"
	"os"

	"github.com/seen-lang/seen/internal/compiler/ast"
	"github.com/seen-lang/seen/internal/compiler/errors"
	"github.com/seen-lang/seen/internal/compiler/inference"
	"github.com/seen-lang/seen/internal/compiler/lexer"
	"github.com/seen-lang/seen/internal/compiler/parser"
	"github.com/seen-lang/seen/internal/compiler/resolver"
	"github.com/seen-lang/seen/internal/compiler/script"
	"github.com/seen-lang/seen/internal/compiler/symtab"
	"github.com/seen-lang/seen/internal/compiler/token"
	"github.com/seen-lang/seen/internal/compiler/typecheck"
	"github.com/seen-lang/seen/internal/project/conf"
	"github.com/seen-lang/seen/internal/target/build"
	"github.com/seen-lang/seen/internal/target/rust"
)

// Module is one source file carried through the pipeline with
// everything the phases produced for it.
type Module struct {
	Script  *script.Script
	Tokens  []token.Token
	AST     []ast.ModElement
	SymTab  *symtab.SymTab
	ResTab  resolver.ResTab
	Errors  []errors.Error
	IsEntry bool
}

// HasErrors reports whether any phase recorded an error for this file.
func (m *Module) HasErrors() bool {
	return len(m.Errors) > 0
}

// Compiler owns one compilation run: the project configuration parsed
// first, the per-file modules, and the output layout.
type Compiler struct {
	Root     string
	Conf     *conf.Conf
	Modules  []*Module
	MainMods []string
}

func New(root string) *Compiler {
	return &Compiler{Root: root}
}

// LoadConf locates and parses the configuration program to seed the
// manifest. Configuration errors are fatal to the run.
func (c *Compiler) LoadConf() error {
	path, err := conf.Locate(c.Root)
	if err != nil {
		return err
	}
	sc, err := script.Load(path)
	if err != nil {
		return err
	}
	cfg, errs := conf.Load(sc)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, errors.Render(sc, e))
		}
		return fmt.Errorf("%d error(s) in %s", len(errs), path)
	}
	c.Conf = cfg
	return nil
}

// Front runs lexing, parsing, resolution and the scaffolded passes
// over one script, accumulating errors in the module.
func Front(sc *script.Script) *Module {
	m := &Module{Script: sc}

	toks, lexErrs := lexer.New(sc).Lex()
	m.Tokens = toks
	m.Errors = append(m.Errors, lexErrs...)
	DumpTokens(sc, toks)

	elements, tab, parseErrs := parser.New(toks).Parse()
	m.AST = elements
	m.SymTab = tab
	m.Errors = append(m.Errors, parseErrs...)
	DumpAST(sc, elements)
	DumpSymTab(sc, tab)

	res, resErrs := resolver.New(tab).Resolve()
	m.Errors = append(m.Errors, resErrs...)

	elements, res, infErrs := inference.New().Infer(elements, res)
	m.Errors = append(m.Errors, infErrs...)
	elements, res, checkErrs := typecheck.New().Check(elements, res)
	m.Errors = append(m.Errors, checkErrs...)

	m.AST = elements
	m.ResTab = res
	m.IsEntry = hasMainEntry(elements)
	return m
}

func hasMainEntry(elements []ast.ModElement) bool {
	for _, el := range elements {
		if _, ok := el.(*ast.MainFn); ok {
			return true
		}
	}
	return false
}

// Compile runs the whole pipeline over the given source files. The
// configuration program must have been loaded first. It returns the
// number of files skipped because of errors.
func (c *Compiler) Compile(paths []string) (int, error) {
	for _, path := range paths {
		sc, err := script.Load(path)
		if err != nil {
			return 0, err
		}
		c.Modules = append(c.Modules, Front(sc))
	}

	skipped := 0
	for _, m := range c.Modules {
		if m.HasErrors() {
			fmt.Fprintln(os.Stderr, errors.RenderAll(m.Script, m.Errors))
			skipped++
		}
	}

	if err := c.generate(); err != nil {
		return skipped, err
	}
	return skipped, nil
}

// generate emits one target file per error-free module plus the
// manifest. The entry file is renamed to main.
func (c *Compiler) generate() error {
	dialect := script.English
	if c.Conf != nil {
		dialect = c.Conf.Dialect
	}
	dir := build.New(c.Root, dialect)
	if err := dir.EnsureLayout(); err != nil {
		return err
	}

	manifest := rust.NewCargoToml(c.projectName())
	if c.Conf != nil && c.Conf.Rust != nil {
		for _, dep := range c.Conf.Rust.Deps {
			manifest.AddDep(dep)
		}
	}

	for _, m := range c.Modules {
		if m.HasErrors() {
			continue
		}
		gen := rust.New(m.Script.Dialect())
		if m.IsEntry {
			gen.SetMainModules(c.MainMods)
		}
		src := gen.Generate(m.AST, m.IsEntry)

		out := dir.SrcPath(m.Script.Stem())
		if m.IsEntry {
			out = dir.MainPath()
		}
		if err := os.WriteFile(out, []byte(src), 0o644); err != nil {
			return err
		}

		if page := gen.Page(); page != nil {
			if err := dir.EnsurePages(); err != nil {
				return err
			}
			if err := page.Write(dir.PagesPath()); err != nil {
				return err
			}
		}
		for _, crate := range gen.ExtraCrates() {
			manifest.AddCrate(crate)
		}
	}

	return manifest.Write(dir.ManifestPath())
}

func (c *Compiler) projectName() string {
	if c.Conf != nil && c.Conf.Name != "" {
		return c.Conf.Name
	}
	return "seen-project"
}
