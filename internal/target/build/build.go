package build

import (
	"os"
	"path/filepath"

	"github.com/seen-lang/seen/internal/compiler/script"
)

// Project directory names, one spelling per dialect. `new` scaffolds
// the res subdirectories listed by ResDirs; code generation writes into
// src and res/pages.
const (
	ConfDirEn = "conf"
	ConfDirAr = "هيئة"

	ResDirEn = "res"
	ResDirAr = "موارد"

	PagesDirEn = "pages"
	PagesDirAr = "صفحات"

	AudioDirEn = "audio"
	AudioDirAr = "صوتي"

	ImagesDirEn = "images"
	ImagesDirAr = "صور"

	VideosDirEn = "videos"
	VideosDirAr = "مرئي"

	SrcDir   = "src"
	MainFile = "main.rs"

	Manifest = "Cargo.toml"
)

// Dir is the generated-output layout rooted at the build directory.
type Dir struct {
	Root    string
	Dialect script.Dialect
}

// New places the build directory under the project root.
func New(projectRoot string, dialect script.Dialect) *Dir {
	return &Dir{Root: filepath.Join(projectRoot, "build"), Dialect: dialect}
}

// SrcPath is the target-source path for a file stem.
func (d *Dir) SrcPath(stem string) string {
	return filepath.Join(d.Root, SrcDir, stem+".rs")
}

// MainPath is the renamed entry file.
func (d *Dir) MainPath() string {
	return filepath.Join(d.Root, SrcDir, MainFile)
}

// PagesPath is where the web-server template's static pages go.
func (d *Dir) PagesPath() string {
	return filepath.Join(d.Root, ResDirEn, PagesDirEn)
}

// ManifestPath is the top-level build manifest.
func (d *Dir) ManifestPath() string {
	return filepath.Join(d.Root, Manifest)
}

// EnsureLayout creates the src directory; the pages directory is
// created on demand by the web-server template.
func (d *Dir) EnsureLayout() error {
	return os.MkdirAll(filepath.Join(d.Root, SrcDir), 0o755)
}

// EnsurePages creates the static-pages directory.
func (d *Dir) EnsurePages() error {
	return os.MkdirAll(d.PagesPath(), 0o755)
}

// ResDirs lists the resource directories `new` scaffolds for a
// dialect, relative to the project root.
func ResDirs(dialect script.Dialect) []string {
	if dialect == script.Arabic {
		return []string{
			filepath.Join(ResDirAr, PagesDirAr),
			filepath.Join(ResDirAr, AudioDirAr),
			filepath.Join(ResDirAr, ImagesDirAr),
			filepath.Join(ResDirAr, VideosDirAr),
		}
	}
	return []string{
		filepath.Join(ResDirEn, PagesDirEn),
		filepath.Join(ResDirEn, AudioDirEn),
		filepath.Join(ResDirEn, ImagesDirEn),
		filepath.Join(ResDirEn, VideosDirEn),
	}
}
