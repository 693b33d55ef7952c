package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dialect selects one of the two surface syntaxes. It is derived from the
// file extension alone; every pass downstream of the lexer is
// dialect-agnostic.
type Dialect int

const (
	English Dialect = iota
	Arabic
)

// Source file extensions, without the leading dot.
const (
	ExtEnglish = "seen"
	ExtArabic  = "س"
)

// Configuration file stems, one per dialect.
const (
	ConfStemEnglish = "conf"
	ConfStemArabic  = "هيئة"
)

func (d Dialect) String() string {
	if d == Arabic {
		return "arabic"
	}
	return "english"
}

// Script is a source buffer: path plus full text, immutable once loaded.
type Script struct {
	Path string
	Src  string
}

// New wraps an in-memory buffer, typically for tests.
func New(path, src string) *Script {
	return &Script{Path: path, Src: src}
}

// Load reads the whole file at path into memory.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &Script{Path: path, Src: string(data)}, nil
}

// DialectOf derives the dialect from the file extension. ok is false for
// unrecognised extensions.
func DialectOf(path string) (Dialect, bool) {
	switch strings.TrimPrefix(filepath.Ext(path), ".") {
	case ExtEnglish:
		return English, true
	case ExtArabic:
		return Arabic, true
	}
	return English, false
}

// Dialect returns the script's dialect, defaulting to English for
// unrecognised extensions.
func (s *Script) Dialect() Dialect {
	d, _ := DialectOf(s.Path)
	return d
}

// Stem is the file name without directory or extension; the generated
// target file reuses it.
func (s *Script) Stem() string {
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Line returns the 1-origin line n of the buffer, without its newline.
func (s *Script) Line(n int) (string, bool) {
	lines := strings.Split(s.Src, "\n")
	if n < 1 || n > len(lines) {
		return "", false
	}
	return lines[n-1], true
}

// LineCount reports how many lines the buffer holds.
func (s *Script) LineCount() int {
	return strings.Count(s.Src, "\n") + 1
}
