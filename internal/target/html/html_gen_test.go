package html

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_LTR(t *testing.T) {
	page := &Page{Title: "Hi", Content: "hello"}
	out := page.Render()
	assert.Contains(t, out, "<html lang=\"en\">")
	assert.Contains(t, out, "<title>Hi</title>")
	assert.Contains(t, out, "<body>hello</body>")
	assert.NotContains(t, out, "rtl")
}

func TestRender_RTL(t *testing.T) {
	page := &Page{Title: "اهلا", Content: "مرحبا", RTL: true}
	out := page.Render()
	assert.Contains(t, out, "<html lang=\"ar\" dir=\"rtl\">")
	assert.Contains(t, out, "<title>اهلا</title>")
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	page := &Page{Title: "Hi", Content: "hello"}
	require.NoError(t, page.Write(dir))
	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, page.Render(), string(data))
}
