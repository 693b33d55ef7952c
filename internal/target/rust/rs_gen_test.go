package rust

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seen-lang/seen/internal/compiler/ast"
	"github.com/seen-lang/seen/internal/compiler/lexer"
	"github.com/seen-lang/seen/internal/compiler/parser"
	"github.com/seen-lang/seen/internal/compiler/script"
)

func parseFile(t *testing.T, path, src string) ([]ast.ModElement, script.Dialect) {
	t.Helper()
	sc := script.New(path, src)
	toks, lexErrs := lexer.New(sc).Lex()
	require.Empty(t, lexErrs)
	elements, _, parseErrs := parser.New(toks).Parse()
	require.Empty(t, parseErrs)
	return elements, sc.Dialect()
}

func generate(t *testing.T, path, src string) (string, *Generator) {
	t.Helper()
	elements, dialect := parseFile(t, path, src)
	g := New(dialect)
	return g.Generate(elements, true), g
}

func TestGen_HelloWorld(t *testing.T) {
	out, _ := generate(t, "main.seen", `() -> println("hello")`)
	assert.Equal(t, "fn main() {\n    println!(\"{}\", String::from(\"hello\"));\n}\n", out)
}

func TestGen_Fibonacci(t *testing.T) {
	src := "fib(n) -> match n { 0 => 0  1 => 1  n => fib(n-1) + fib(n-2) }\n\n() -> println(fib(3))\n"
	out, _ := generate(t, "main.seen", src)

	want := "pub fn fib(n: i32) -> i32 {\n" +
		"    return match n {\n" +
		"        0 => 0,\n" +
		"        1 => 1,\n" +
		"        n => fib(n - 1) + fib(n - 2),\n" +
		"    };\n" +
		"}\n" +
		"\n" +
		"fn main() {\n" +
		"    println!(\"{}\", fib(3));\n" +
		"}\n"
	assert.Equal(t, want, out)
}

func TestGen_StructWithMethod(t *testing.T) {
	src := "Point { x: int, y: int }\n" +
		"Point::translate(dx: int, dy: int): Point -> Point { x: self.x + dx, y: self.y + dy }\n"
	out, _ := generate(t, "point.seen", src)

	assert.Contains(t, out, "#[derive(Debug)]\npub struct Point {\n    pub x: i32,\n    pub y: i32,\n}\n")
	assert.Contains(t, out, "impl std::fmt::Display for Point {\n"+
		"    fn fmt(&self, f: &mut std::fmt::Formatter) -> std::fmt::Result {\n"+
		"        write!(f, \"{:?}\", self)\n"+
		"    }\n"+
		"}\n")
	assert.Contains(t, out, "impl Point {\n    pub fn translate(&mut self, dx: i32, dy: i32) -> Point {\n")
	assert.Contains(t, out, "        return Point { x: self.x + dx, y: self.y + dy };\n")
}

func TestGen_ArabicNormalisation(t *testing.T) {
	src := "ليكن عدد = ٤٢\n\n() -> اطبع_سطر(«مرحبا», عدد)\n"
	out, _ := generate(t, "البداية.س", src)

	assert.Contains(t, out, "let عدد = 42;")
	assert.Contains(t, out, "println!(\"{} {}\", String::from(\"مرحبا\"), عدد);")
	assert.NotContains(t, out, "٤")
}

func TestGen_EasternFloat(t *testing.T) {
	out, _ := generate(t, "x.س", "ليكن ع = ٣,١٤\n")
	assert.Contains(t, out, "let ع = 3.14;")
}

func TestGen_Enum(t *testing.T) {
	out, _ := generate(t, "x.seen", "enum Shade { Light, Dark(int) }\n")
	assert.Contains(t, out, "#[derive(Debug)]\npub enum Shade {\n    Light,\n    Dark(i32),\n}\n")
}

func TestGen_Imports(t *testing.T) {
	src := "u := import(\"util.seen\")\n\n() -> u.helper(1)\n"
	out, _ := generate(t, "main.seen", src)
	assert.Contains(t, out, "mod util;\n")
	assert.Contains(t, out, "util::helper(1);")
}

func TestGen_MainModulesReexported(t *testing.T) {
	elements, _ := parseFile(t, "main.seen", `() -> println("x")`)
	g := New(script.English)
	g.SetMainModules([]string{"util", "extra"})
	out := g.Generate(elements, true)
	assert.True(t, strings.HasPrefix(out, "pub mod util;\npub mod extra;\n\n"))
}

func TestGen_Operators(t *testing.T) {
	src := "f(a, b) -> {\n" +
		"c := a /\\ b\n" +
		"d := a \\/ b\n" +
		"e := a (+) b\n" +
		"g := a |> f\n" +
		"h := a? \n" +
		"i := b!\n" +
		"-(a)\n" +
		"}\n"
	out, _ := generate(t, "x.seen", src)
	assert.Contains(t, out, "let c = a & b;")
	assert.Contains(t, out, "let d = a | b;")
	assert.Contains(t, out, "let e = a ^ b;")
	assert.Contains(t, out, "let g = f(a);")
	assert.Contains(t, out, "let h = (a)?;")
	assert.Contains(t, out, "let i = (b).unwrap();")
}

func TestGen_ControlForms(t *testing.T) {
	src := "f(xs) -> {\n" +
		"total := 0\n" +
		"for x in xs {\n    total = total + x\n}\n" +
		"if total == 0 {\n    println(\"zero\")\n} else {\n    println(\"more\")\n}\n" +
		"total\n" +
		"}\n"
	out, _ := generate(t, "x.seen", src)
	assert.Contains(t, out, "    for x in xs {\n        total = total + x;\n    };\n")
	assert.Contains(t, out, "    if total == 0 {\n        println!(\"{}\", String::from(\"zero\"));\n    } else {\n        println!(\"{}\", String::from(\"more\"));\n    };\n")
	assert.Contains(t, out, "    return total;\n")
}

func TestGen_TypesMapping(t *testing.T) {
	src := "Inventory { flag: bool, count: int, ratio: float, tag: char, label: string, items: [int], pair: (int, string), maybe: int?, result: Res<int, string> }\n"
	out, _ := generate(t, "x.seen", src)
	assert.Contains(t, out, "pub flag: bool,")
	assert.Contains(t, out, "pub count: i32,")
	assert.Contains(t, out, "pub ratio: f32,")
	assert.Contains(t, out, "pub tag: char,")
	assert.Contains(t, out, "pub label: String,")
	assert.Contains(t, out, "pub items: Vec<i32>,")
	assert.Contains(t, out, "pub pair: (i32, String),")
	assert.Contains(t, out, "pub maybe: Option<i32>,")
	assert.Contains(t, out, "pub result: Result<i32, String>,")
}

func TestGen_WebServerTemplate(t *testing.T) {
	src := "@web_server\n" +
		"() -> {\n" +
		"    settings: { hostname: \"localhost\", port: 8080 },\n" +
		"    homepage: { title: \"Hi\", content: \"hello\" }\n" +
		"}\n"
	out, g := generate(t, "main.seen", src)

	assert.Contains(t, out, "use actix_web::{App, HttpServer};")
	assert.Contains(t, out, "use actix_files::Files;")
	assert.Contains(t, out, "Files::new(\"/\", \"./res/pages\").index_file(\"index.html\")")
	assert.Contains(t, out, ".bind((\"localhost\", 8080))?")

	page := g.Page()
	require.NotNil(t, page)
	rendered := page.Render()
	assert.Contains(t, rendered, "<title>Hi</title>")
	assert.Contains(t, rendered, "<body>hello</body>")
	assert.NotContains(t, rendered, "rtl")

	crates := g.ExtraCrates()
	require.Len(t, crates, 2)
	assert.Equal(t, "actix-web", crates[0].ID())
	assert.Equal(t, "4", crates[0].Version())
	assert.Equal(t, "actix-files", crates[1].ID())
	assert.Equal(t, "0.6.2", crates[1].Version())
}

func TestGen_WebServerTemplateArabicIsRTL(t *testing.T) {
	src := "@مخدم_شع\n" +
		"() -> {\n" +
		"    اعدادات: { مضيف: «localhost», منفذ: ٨٠٨٠ },\n" +
		"    رئيسية: { عنوان: «اهلا», محتوى: «مرحبا» }\n" +
		"}\n"
	out, g := generate(t, "البداية.س", src)
	assert.Contains(t, out, ".bind((\"localhost\", 8080))?")
	require.NotNil(t, g.Page())
	assert.Contains(t, g.Page().Render(), "dir=\"rtl\"")
	assert.Contains(t, g.Page().Render(), "<title>اهلا</title>")
}

// regenerating from the same AST produces byte-identical output
func TestGen_Idempotence(t *testing.T) {
	src := "fib(n) -> match n { 0 => 0  n => fib(n-1) }\n\n() -> println(fib(9))\n"
	elements, dialect := parseFile(t, "main.seen", src)
	first := New(dialect).Generate(elements, true)
	second := New(dialect).Generate(elements, true)
	assert.Equal(t, first, second)
}

func TestCargoToml_Render(t *testing.T) {
	c := NewCargoToml("myapp")
	c.AddCrate(actixWeb{})
	c.AddCrate(actixFiles{})
	c.AddCrate(actixWeb{}) // duplicates collapse
	out := c.Render()

	assert.Contains(t, out, "[package]\nname = \"myapp\"\nversion = \"0.1.0\"\nedition = \"2021\"\n")
	assert.Contains(t, out, "[[bin]]\nname = \"myapp\"\npath = \"src/main.rs\"\n")
	assert.Contains(t, out, "[profile.release]\nlto = true\nopt-level = 1\nstrip = true\n")
	assert.Contains(t, out, "actix-web = \"4\"\n")
	assert.Contains(t, out, "actix-files = \"0.6.2\"\n")
	assert.Equal(t, 1, strings.Count(out, "actix-web = "))
}

func TestToWesternNum(t *testing.T) {
	assert.Equal(t, "42", toWesternNum("٤٢"))
	assert.Equal(t, "3.14", toWesternNum("٣,١٤"))
	assert.Equal(t, "123", toWesternNum("123"))
}
