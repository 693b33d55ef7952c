package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/seen-lang/seen/internal/compiler/ast"
	"github.com/seen-lang/seen/internal/compiler/errors"
	"github.com/seen-lang/seen/internal/compiler/lexer"
	"github.com/seen-lang/seen/internal/compiler/parser"
	"github.com/seen-lang/seen/internal/compiler/script"
	"github.com/seen-lang/seen/internal/transl"
)

// Dep is one declared dependency of a target. Version and Features
// come from the short or long key spellings; the python-only fields
// stay empty for Rust targets.
type Dep struct {
	ID       string
	Version  string
	Features []string
	PyPath   string
	PkgMan   string
	Install  string
}

// Target is the manifest data of one backend: its settings plus its
// dependency list.
type Target struct {
	Settings map[string]string
	Deps     []*Dep
}

// Conf is the project configuration extracted from the configuration
// program.
type Conf struct {
	Name    string
	Dialect script.Dialect
	Rust    *Target
	Python  *Target
}

// Locate finds the configuration file under root: `conf.seen` or
// `هيئة.س`.
func Locate(root string) (string, error) {
	for _, candidate := range []string{
		script.ConfStemEnglish + "." + script.ExtEnglish,
		script.ConfStemArabic + "." + script.ExtArabic,
	} {
		path := filepath.Join(root, candidate)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no configuration file under %s", root)
}

// Load parses the configuration program and inspects its top-level
// elements structurally: the main entry yields project metadata, a
// named target function yields that target's settings and dependency
// list. Unknown keys are fatal.
func Load(sc *script.Script) (*Conf, []errors.Error) {
	toks, errs := lexer.New(sc).Lex()
	if len(errs) > 0 {
		return nil, errs
	}
	elements, _, errs := parser.New(toks).Parse()
	if len(errs) > 0 {
		return nil, errs
	}

	c := &Conf{Dialect: sc.Dialect()}
	var out []errors.Error
	for _, el := range elements {
		switch el := el.(type) {
		case *ast.MainFn:
			out = append(out, c.loadMeta(el.Fn)...)
		case *ast.NamedFn:
			out = append(out, c.loadTarget(el.Fn)...)
		default:
			out = append(out, errors.Error{Msg: "unexpected element in configuration"})
		}
	}
	return c, out
}

// loadMeta reads the main entry's struct literal: currently only the
// project name.
func (c *Conf) loadMeta(fn *ast.Fn) []errors.Error {
	lit, err := returnedStructLiteral(fn)
	if err != nil {
		return []errors.Error{*err}
	}
	var out []errors.Error
	for _, field := range lit.Fields {
		key, ok := transl.Canon(field.Name.Lit)
		if !ok {
			out = append(out, errors.At(field.Name, fmt.Sprintf("unknown configuration key `%s`", field.Name.Lit)))
			continue
		}
		switch key {
		case "name":
			c.Name = stringValue(field.Value)
		default:
			out = append(out, errors.At(field.Name, fmt.Sprintf("unknown configuration key `%s`", field.Name.Lit)))
		}
	}
	return out
}

// loadTarget reads a named target function: rust/rs or python/py in
// either dialect, returning a struct literal of settings plus a `deps`
// list.
func (c *Conf) loadTarget(fn *ast.Fn) []errors.Error {
	name, ok := transl.Canon(fn.Name.Lit)
	if !ok {
		return []errors.Error{errors.At(*fn.Name, fmt.Sprintf("unexpected element `%s` in configuration", fn.Name.Lit))}
	}
	lit, err := returnedStructLiteral(fn)
	if err != nil {
		return []errors.Error{*err}
	}

	target := &Target{Settings: make(map[string]string)}
	var out []errors.Error
	for _, field := range lit.Fields {
		key, ok := transl.Canon(field.Name.Lit)
		if !ok {
			out = append(out, errors.At(field.Name, fmt.Sprintf("unknown configuration key `%s`", field.Name.Lit)))
			continue
		}
		if key == "deps" {
			deps, depErrs := loadDeps(field.Value)
			target.Deps = deps
			out = append(out, depErrs...)
			continue
		}
		target.Settings[key] = stringValue(field.Value)
	}

	switch name {
	case "rust":
		c.Rust = target
	case "python":
		c.Python = target
	default:
		out = append(out, errors.At(*fn.Name, fmt.Sprintf("unexpected element `%s` in configuration", fn.Name.Lit)))
	}
	return out
}

// loadDeps reads a dependency list: each element is a struct literal
// carrying id, version (short: v) and optional features (short: f),
// plus the python-only py_path/pkg_man/install.
func loadDeps(value ast.Expr) ([]*Dep, []errors.Error) {
	list, ok := value.(*ast.List)
	if !ok {
		return nil, []errors.Error{{Msg: "unexpected element in configuration: deps must be a list"}}
	}
	var deps []*Dep
	var out []errors.Error
	for _, elem := range list.Elems {
		lit, ok := elem.(*ast.StructLiteral)
		if !ok {
			out = append(out, errors.Error{Msg: "unexpected element in configuration: dependency must be a struct literal"})
			continue
		}
		dep := &Dep{}
		for _, field := range lit.Fields {
			key, ok := transl.Canon(field.Name.Lit)
			if !ok {
				out = append(out, errors.At(field.Name, fmt.Sprintf("unknown configuration key `%s`", field.Name.Lit)))
				continue
			}
			switch key {
			case "id":
				dep.ID = stringValue(field.Value)
			case "version":
				dep.Version = stringValue(field.Value)
			case "features":
				dep.Features = stringListValue(field.Value)
			case "py_path":
				dep.PyPath = stringValue(field.Value)
			case "pkg_man":
				dep.PkgMan = stringValue(field.Value)
			case "install":
				dep.Install = stringValue(field.Value)
			default:
				out = append(out, errors.At(field.Name, fmt.Sprintf("unknown configuration key `%s`", field.Name.Lit)))
			}
		}
		deps = append(deps, dep)
	}
	return deps, out
}

// returnedStructLiteral digs the struct literal out of a configuration
// function's body: the single returned expression.
func returnedStructLiteral(fn *ast.Fn) (*ast.StructLiteral, *errors.Error) {
	if fn.Body != nil {
		for _, el := range fn.Body.Elements {
			ret, ok := el.(*ast.ReturnElement)
			if !ok {
				continue
			}
			if lit, ok := ret.X.(*ast.StructLiteral); ok {
				return lit, nil
			}
		}
	}
	err := errors.Error{Msg: "unexpected element in configuration: expected a struct literal"}
	return nil, &err
}

func stringValue(e ast.Expr) string {
	if lit, ok := e.(*ast.Lit); ok {
		return lit.Tok.Lit
	}
	return ""
}

func stringListValue(e ast.Expr) []string {
	list, ok := e.(*ast.List)
	if !ok {
		return nil
	}
	var out []string
	for _, elem := range list.Elems {
		out = append(out, stringValue(elem))
	}
	return out
}
