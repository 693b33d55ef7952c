package rust

import (
	"fmt"
	"strings"

	"github.com/seen-lang/seen/internal/compiler/ast"
	"github.com/seen-lang/seen/internal/compiler/script"
	"github.com/seen-lang/seen/internal/target/html"
	"github.com/seen-lang/seen/internal/transl"
)

// Generator lowers one parsed module into Rust source. It carries the
// import table (binding name → module stem) so dot accesses on
// imported names lower to path separators, and the web-template state
// when the entry function is decorated.
type Generator struct {
	dialect  script.Dialect
	imports  map[string]string
	mainMods []string

	page     *html.Page
	crates   []Crate
	hostname string
	port     string
	mainFn   *ast.Fn
}

func New(dialect script.Dialect) *Generator {
	return &Generator{
		dialect: dialect,
		imports: make(map[string]string),
	}
}

// SetMainModules records the file stems re-exported alongside the main
// entry; the driver supplies them.
func (g *Generator) SetMainModules(stems []string) {
	g.mainMods = stems
}

// Page returns the homepage to write when the web-server template
// fired, nil otherwise.
func (g *Generator) Page() *html.Page {
	return g.page
}

// ExtraCrates returns the dependencies templates injected.
func (g *Generator) ExtraCrates() []Crate {
	return g.crates
}

// Generate lowers the module elements into one Rust source file.
// isEntry marks the file holding the program's main.
func (g *Generator) Generate(elements []ast.ModElement, isEntry bool) string {
	var b strings.Builder

	if isEntry {
		for _, stem := range g.mainMods {
			b.WriteString(fmt.Sprintf("pub mod %s;\n", stem))
		}
		if len(g.mainMods) > 0 {
			b.WriteString("\n")
		}
	}

	for i, el := range elements {
		src := g.genModElement(el)
		if src == "" {
			continue
		}
		b.WriteString(src)
		if i < len(elements)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (g *Generator) genModElement(el ast.ModElement) string {
	switch el := el.(type) {
	case *ast.LetDecl:
		if mod := g.maybeImport(el); mod != "" {
			return mod
		}
		return g.genTopLet(el)
	case *ast.MainFn:
		return g.genMain(el)
	case *ast.NamedFn:
		return g.genNamedFn(el.Fn)
	case *ast.StructDef:
		return g.genStruct(el)
	case *ast.StructImpl:
		return g.genImpl(el.TypeName.Lit, el.Fn)
	case *ast.EnumDef:
		return g.genEnum(el)
	case *ast.EnumImpl:
		return g.genImpl(el.TypeName.Lit, el.Fn)
	case *ast.TraitDef:
		return g.genTrait(el)
	}
	return ""
}

// maybeImport rewrites `x := import("file")` into a module
// declaration, recording the binding so later dot accesses on it lower
// to `::`. The argument strips a recognised source suffix.
func (g *Generator) maybeImport(decl *ast.LetDecl) string {
	call, ok := decl.Value.(*ast.Call)
	if !ok {
		return ""
	}
	callee, ok := call.Callee.(*ast.Ref)
	if !ok || !isImportName(callee.Tok.Lit) || len(call.Args) != 1 {
		return ""
	}
	lit, ok := call.Args[0].(*ast.Lit)
	if !ok {
		return ""
	}
	stem := strings.TrimSuffix(lit.Tok.Lit, "."+script.ExtEnglish)
	stem = strings.TrimSuffix(stem, "."+script.ExtArabic)
	if id, ok := decl.Pat.(*ast.IdPattern); ok {
		g.imports[id.Tok.Lit] = stem
	}
	return fmt.Sprintf("mod %s;\n", stem)
}

func isImportName(name string) bool {
	return name == "import" || name == "احضر"
}

func (g *Generator) genTopLet(decl *ast.LetDecl) string {
	return g.genLet(decl, 0)
}

// genNamedFn emits a public free function. An unannotated return type
// defaults to i32 unless the body plainly produces no value.
func (g *Generator) genNamedFn(fn *ast.Fn) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("pub fn %s(", fn.Name.Lit))
	b.WriteString(g.genParams(fn, false))
	b.WriteString(")")
	if ret := g.genRetType(fn); ret != "" {
		b.WriteString(" -> " + ret)
	}
	b.WriteString(" {\n")
	b.WriteString(g.genBlock(fn.Body, fn, 1))
	b.WriteString("}\n")
	return b.String()
}

func (g *Generator) genParams(fn *ast.Fn, method bool) string {
	parts := make([]string, 0, len(fn.Params)+1)
	if method {
		parts = append(parts, "&mut self")
	}
	for _, p := range fn.Params {
		parts = append(parts, fmt.Sprintf("%s: %s", g.genPattern(p.Pat), g.genTypeOrDefault(p.Type)))
	}
	return strings.Join(parts, ", ")
}

func (g *Generator) genRetType(fn *ast.Fn) string {
	if fn.Ret != nil {
		return g.genType(fn.Ret)
	}
	if fnReturnsValue(fn) {
		return "i32"
	}
	return ""
}

// fnReturnsValue reports whether the rewritten trailing return carries
// a value expression rather than a bare print call or unit.
func fnReturnsValue(fn *ast.Fn) bool {
	if fn.Body == nil || len(fn.Body.Elements) == 0 {
		return false
	}
	ret, ok := fn.Body.Elements[len(fn.Body.Elements)-1].(*ast.ReturnElement)
	if !ok || ret.X == nil {
		return false
	}
	switch x := ret.X.(type) {
	case *ast.Unit:
		return false
	case *ast.Call:
		if callee, ok := x.Callee.(*ast.Ref); ok && printMacro(callee.Tok.Lit) != "" {
			return false
		}
	case *ast.For, *ast.While:
		return false
	}
	return true
}

// genMain emits the program's entry. A `@web_server` decoration
// switches to the web-server template instead of lowering the body.
func (g *Generator) genMain(main *ast.MainFn) string {
	for _, attr := range main.Fn.Attrs {
		if transl.Is(attr.Name.Lit, "web_server") {
			return g.genWebServerMain(main.Fn)
		}
	}

	g.mainFn = main.Fn
	var b strings.Builder
	b.WriteString("fn main() {\n")
	b.WriteString(g.genBlock(main.Fn.Body, main.Fn, 1))
	b.WriteString("}\n")
	return b.String()
}

// genStruct emits a debug-derived structural type plus a Display
// implementation forwarding to the debug printer. All generated items
// are public.
func (g *Generator) genStruct(def *ast.StructDef) string {
	var b strings.Builder
	b.WriteString("#[derive(Debug)]\n")
	b.WriteString(fmt.Sprintf("pub struct %s {\n", def.Name.Lit))
	for _, field := range def.Fields {
		b.WriteString(fmt.Sprintf("    pub %s: %s,\n", field.Name.Lit, g.genTypeOrDefault(field.Type)))
	}
	b.WriteString("}\n\n")
	b.WriteString(fmt.Sprintf("impl std::fmt::Display for %s {\n", def.Name.Lit))
	b.WriteString("    fn fmt(&self, f: &mut std::fmt::Formatter) -> std::fmt::Result {\n")
	b.WriteString("        write!(f, \"{:?}\", self)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

// genImpl emits an impl block containing one method.
func (g *Generator) genImpl(typeName string, fn *ast.Fn) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("impl %s {\n", typeName))
	b.WriteString(fmt.Sprintf("    pub fn %s(", fn.Name.Lit))
	b.WriteString(g.genParams(fn, true))
	b.WriteString(")")
	if ret := g.genRetType(fn); ret != "" {
		b.WriteString(" -> " + ret)
	}
	b.WriteString(" {\n")
	b.WriteString(g.genBlock(fn.Body, fn, 2))
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

func (g *Generator) genEnum(def *ast.EnumDef) string {
	var b strings.Builder
	b.WriteString("#[derive(Debug)]\n")
	b.WriteString(fmt.Sprintf("pub enum %s {\n", def.Name.Lit))
	for _, v := range def.Variants {
		if v.Inner != nil {
			b.WriteString(fmt.Sprintf("    %s(%s),\n", v.Name.Lit, g.genType(v.Inner)))
		} else {
			b.WriteString(fmt.Sprintf("    %s,\n", v.Name.Lit))
		}
	}
	b.WriteString("}\n")
	return b.String()
}

func (g *Generator) genTrait(def *ast.TraitDef) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("pub trait %s {\n", def.Name.Lit))
	for _, fn := range def.Fns {
		b.WriteString(fmt.Sprintf("    fn %s(", fn.Name.Lit))
		b.WriteString(g.genParams(fn, true))
		b.WriteString(")")
		if ret := g.genRetType(fn); ret != "" {
			b.WriteString(" -> " + ret)
		}
		if fn.Body != nil && len(fn.Body.Elements) > 0 {
			b.WriteString(" {\n")
			b.WriteString(g.genBlock(fn.Body, fn, 2))
			b.WriteString("    }\n")
		} else {
			b.WriteString(";\n")
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// genWebServerMain splits the entry's struct literal into settings and
// homepage sections, stages the index page, injects the framework
// crates, and emits a main that serves the static pages directory.
func (g *Generator) genWebServerMain(fn *ast.Fn) string {
	g.hostname = "localhost"
	g.port = "8080"
	page := &html.Page{RTL: g.dialect == script.Arabic}

	if lit := trailingStructLiteral(fn); lit != nil {
		for _, field := range lit.Fields {
			section, _ := transl.Canon(field.Name.Lit)
			inner, ok := field.Value.(*ast.StructLiteral)
			if !ok {
				continue
			}
			switch section {
			case "settings":
				for _, f := range inner.Fields {
					switch key, _ := transl.Canon(f.Name.Lit); key {
					case "hostname":
						g.hostname = rawString(f.Value)
					case "port":
						g.port = rawNumber(f.Value)
					}
				}
			case "homepage":
				for _, f := range inner.Fields {
					switch key, _ := transl.Canon(f.Name.Lit); key {
					case "title":
						page.Title = rawString(f.Value)
					case "content":
						page.Content = rawString(f.Value)
					}
				}
			}
		}
	}

	g.page = page
	g.crates = WebServerCrates()

	var b strings.Builder
	b.WriteString("use actix_web::{App, HttpServer};\n")
	b.WriteString("use actix_files::Files;\n\n")
	b.WriteString("#[actix_web::main]\n")
	b.WriteString("async fn main() -> std::io::Result<()> {\n")
	b.WriteString("    HttpServer::new(|| {\n")
	b.WriteString("        App::new().service(Files::new(\"/\", \"./res/pages\").index_file(\"index.html\"))\n")
	b.WriteString("    })\n")
	b.WriteString(fmt.Sprintf("    .bind((%q, %s))?\n", g.hostname, g.port))
	b.WriteString("    .run()\n")
	b.WriteString("    .await\n")
	b.WriteString("}\n")
	return b.String()
}

func trailingStructLiteral(fn *ast.Fn) *ast.StructLiteral {
	if fn.Body == nil {
		return nil
	}
	for _, el := range fn.Body.Elements {
		if ret, ok := el.(*ast.ReturnElement); ok {
			if lit, ok := ret.X.(*ast.StructLiteral); ok {
				return lit
			}
		}
	}
	return nil
}

func rawString(e ast.Expr) string {
	if lit, ok := e.(*ast.Lit); ok {
		return lit.Tok.Lit
	}
	return ""
}

func rawNumber(e ast.Expr) string {
	if lit, ok := e.(*ast.Lit); ok {
		return toWesternNum(lit.Tok.Lit)
	}
	return "8080"
}
