package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seen-lang/seen/internal/compiler/script"
)

func writeFile(t *testing.T, root, name, src string) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestCompile_EndToEnd(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "conf.seen", "() -> { name: \"fib\" }\n")
	main := writeFile(t, root, "main.seen",
		"fib(n) -> match n { 0 => 0  1 => 1  n => fib(n-1) + fib(n-2) }\n\n() -> println(fib(3))\n")

	c := New(root)
	require.NoError(t, c.LoadConf())
	assert.Equal(t, "fib", c.Conf.Name)

	skipped, err := c.Compile([]string{main})
	require.NoError(t, err)
	assert.Zero(t, skipped)

	// the entry file is renamed to main
	out, err := os.ReadFile(filepath.Join(root, "build", "src", "main.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "pub fn fib(n: i32) -> i32 {")
	assert.Contains(t, string(out), "fn main() {")

	manifest, err := os.ReadFile(filepath.Join(root, "build", "Cargo.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "name = \"fib\"")
	assert.Contains(t, string(manifest), "[profile.release]")
}

func TestCompile_NonEntryFileKeepsStem(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "conf.seen", "() -> { name: \"app\" }\n")
	util := writeFile(t, root, "util.seen", "double(x) -> x * 2\n")
	main := writeFile(t, root, "main.seen", "u := import(\"util.seen\")\n\n() -> println(u.double(4))\n")

	c := New(root)
	require.NoError(t, c.LoadConf())
	skipped, err := c.Compile([]string{util, main})
	require.NoError(t, err)
	assert.Zero(t, skipped)

	_, err = os.Stat(filepath.Join(root, "build", "src", "util.rs"))
	assert.NoError(t, err)
	out, err := os.ReadFile(filepath.Join(root, "build", "src", "main.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "mod util;")
	assert.Contains(t, string(out), "util::double(4)")
}

func TestCompile_SkipsFilesWithErrors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "conf.seen", "() -> { name: \"app\" }\n")
	bad := writeFile(t, root, "bad.seen", "x := 12٣\n")
	good := writeFile(t, root, "main.seen", "() -> println(\"ok\")\n")

	c := New(root)
	require.NoError(t, c.LoadConf())
	skipped, err := c.Compile([]string{bad, good})
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)

	// the bad file produced nothing, the good one still generated, and
	// the manifest was emitted
	_, err = os.Stat(filepath.Join(root, "build", "src", "bad.rs"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "build", "src", "main.rs"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "build", "Cargo.toml"))
	assert.NoError(t, err)
}

func TestCompile_WebServerLayout(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "conf.seen", "() -> { name: \"site\" }\n")
	main := writeFile(t, root, "main.seen",
		"@web_server\n() -> {\n    settings: { hostname: \"localhost\", port: 8080 },\n    homepage: { title: \"Hi\", content: \"hello\" }\n}\n")

	c := New(root)
	require.NoError(t, c.LoadConf())
	skipped, err := c.Compile([]string{main})
	require.NoError(t, err)
	assert.Zero(t, skipped)

	page, err := os.ReadFile(filepath.Join(root, "build", "res", "pages", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>Hi</title>")

	manifest, err := os.ReadFile(filepath.Join(root, "build", "Cargo.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "actix-web = \"4\"")
	assert.Contains(t, string(manifest), "actix-files = \"0.6.2\"")
}

func TestFront_CollectsPhaseErrors(t *testing.T) {
	m := Front(script.New("x.seen", "() -> println(zzz)\n"))
	require.True(t, m.HasErrors())
	assert.Contains(t, m.Errors[0].Msg, "could not resolve")
}

func TestConfDeps_FlowIntoManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "conf.seen",
		"() -> { name: \"app\" }\nrust() -> { deps: [ { id: \"serde\", v: \"1.0\", f: [\"derive\"] } ] }\n")
	main := writeFile(t, root, "main.seen", "() -> println(\"x\")\n")

	c := New(root)
	require.NoError(t, c.LoadConf())
	_, err := c.Compile([]string{main})
	require.NoError(t, err)

	manifest, err := os.ReadFile(filepath.Join(root, "build", "Cargo.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "serde = { version = \"1.0\", features = [\"derive\"] }")
}
