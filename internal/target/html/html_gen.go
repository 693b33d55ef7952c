package html

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Page is the homepage emitted by the web-server template. RTL selects
// the Arabic reading direction.
type Page struct {
	Title   string
	Content string
	RTL     bool
}

// Render produces the index document.
func (p *Page) Render() string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	if p.RTL {
		b.WriteString("<html lang=\"ar\" dir=\"rtl\">\n")
	} else {
		b.WriteString("<html lang=\"en\">\n")
	}
	b.WriteString("<head>\n")
	b.WriteString("    <meta charset=\"utf-8\">\n")
	b.WriteString(fmt.Sprintf("    <title>%s</title>\n", p.Title))
	b.WriteString("</head>\n")
	b.WriteString(fmt.Sprintf("<body>%s</body>\n", p.Content))
	b.WriteString("</html>\n")
	return b.String()
}

// Write renders the page into pagesDir as index.html.
func (p *Page) Write(pagesDir string) error {
	return os.WriteFile(filepath.Join(pagesDir, "index.html"), []byte(p.Render()), 0o644)
}
