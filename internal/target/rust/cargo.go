package rust

import (
	"fmt"
	"os"
	"strings"

	"github.com/seen-lang/seen/internal/project/conf"
)

// CargoToml assembles the build manifest: package metadata, the binary
// entry, a stripped release profile, and the dependencies aggregated
// from the configuration plus any crates auto-added by templates.
type CargoToml struct {
	Name   string
	deps   []depLine
	seen   map[string]bool
}

type depLine struct {
	id       string
	version  string
	features []string
}

func NewCargoToml(name string) *CargoToml {
	return &CargoToml{Name: name, seen: make(map[string]bool)}
}

// AddDep records a configured dependency; duplicates by id collapse to
// the first occurrence.
func (c *CargoToml) AddDep(d *conf.Dep) {
	c.add(d.ID, d.Version, d.Features)
}

// AddCrate records a template-injected dependency.
func (c *CargoToml) AddCrate(cr Crate) {
	c.add(cr.ID(), cr.Version(), cr.Features())
}

func (c *CargoToml) add(id, version string, features []string) {
	if id == "" || c.seen[id] {
		return
	}
	c.seen[id] = true
	c.deps = append(c.deps, depLine{id: id, version: version, features: features})
}

// Render produces the manifest text. The output is deterministic for a
// given configuration: dependencies keep insertion order.
func (c *CargoToml) Render() string {
	var b strings.Builder
	b.WriteString("[package]\n")
	b.WriteString(fmt.Sprintf("name = %q\n", c.Name))
	b.WriteString("version = \"0.1.0\"\n")
	b.WriteString("edition = \"2021\"\n")
	b.WriteString("\n[[bin]]\n")
	b.WriteString(fmt.Sprintf("name = %q\n", c.Name))
	b.WriteString("path = \"src/main.rs\"\n")
	b.WriteString("\n[profile.release]\n")
	b.WriteString("lto = true\n")
	b.WriteString("opt-level = 1\n")
	b.WriteString("strip = true\n")
	b.WriteString("\n[dependencies]\n")
	for _, d := range c.deps {
		if len(d.features) == 0 {
			b.WriteString(fmt.Sprintf("%s = %q\n", d.id, d.version))
			continue
		}
		quoted := make([]string, len(d.features))
		for i, f := range d.features {
			quoted[i] = fmt.Sprintf("%q", f)
		}
		b.WriteString(fmt.Sprintf("%s = { version = %q, features = [%s] }\n", d.id, d.version, strings.Join(quoted, ", ")))
	}
	return b.String()
}

// Write emits the manifest to path.
func (c *CargoToml) Write(path string) error {
	return os.WriteFile(path, []byte(c.Render()), 0o644)
}
