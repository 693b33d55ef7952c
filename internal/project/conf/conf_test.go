package conf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seen-lang/seen/internal/compiler/script"
)

func TestLoad_English(t *testing.T) {
	src := "() -> { name: \"myapp\" }\n" +
		"rust() -> { deps: [ { id: \"serde\", v: \"1.0\", f: [\"derive\"] }, { id: \"rand\", version: \"0.8\" } ] }\n"
	c, errs := Load(script.New("conf.seen", src))
	require.Empty(t, errs)
	assert.Equal(t, "myapp", c.Name)
	require.NotNil(t, c.Rust)

	want := []*Dep{
		{ID: "serde", Version: "1.0", Features: []string{"derive"}},
		{ID: "rand", Version: "0.8"},
	}
	if diff := cmp.Diff(want, c.Rust.Deps); diff != "" {
		t.Errorf("deps mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Arabic(t *testing.T) {
	src := "() -> { اسم: «تطبيق» }\n"
	c, errs := Load(script.New("هيئة.س", src))
	require.Empty(t, errs)
	assert.Equal(t, "تطبيق", c.Name)
	assert.Equal(t, script.Arabic, c.Dialect)
}

func TestLoad_PythonDeps(t *testing.T) {
	src := "() -> { name: \"x\" }\n" +
		"py() -> { deps: [ { id: \"requests\", v: \"2\", pkg_man: \"pip\", install: \"requests\" } ] }\n"
	c, errs := Load(script.New("conf.seen", src))
	require.Empty(t, errs)
	require.NotNil(t, c.Python)
	require.Len(t, c.Python.Deps, 1)
	assert.Equal(t, "pip", c.Python.Deps[0].PkgMan)
	assert.Equal(t, "requests", c.Python.Deps[0].Install)
}

func TestLoad_UnknownKeyIsFatal(t *testing.T) {
	_, errs := Load(script.New("conf.seen", "() -> { nom: \"x\" }\n"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Msg, "unknown configuration key")
}

func TestLoad_UnexpectedElement(t *testing.T) {
	_, errs := Load(script.New("conf.seen", "let x = 1\n"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Msg, "unexpected element in configuration")
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	_, err := Locate(dir)
	assert.Error(t, err)
}
