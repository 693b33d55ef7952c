package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/seen-lang/seen/internal/compiler/script"
	"github.com/seen-lang/seen/internal/compiler/token"
)

// Error is the unified error record carried by every phase: two
// locations bounding the offending range plus a message. Errors are
// accumulated into per-file lists and never thrown.
type Error struct {
	Start token.Location
	End   token.Location
	Msg   string
}

func New(start, end token.Location, msg string) Error {
	return Error{Start: start, End: end, Msg: msg}
}

// At builds an error spanning a single token.
func At(tok token.Token, msg string) Error {
	return Error{Start: tok.Start, End: tok.End, Msg: msg}
}

func (e Error) Error() string {
	return e.Msg
}

// snippetContext is how many lines around the error are shown before the
// range collapses with an ellipsis.
const snippetContext = 6

var (
	headerColor = color.New(color.FgRed, color.Bold)
	locColor    = color.New(color.FgCyan)
	gutterColor = color.New(color.FgHiBlack)
)

// Render formats a single error against its source buffer:
//
//	error: <message>
//	<path>:<line>:<column>
//	<snippet>
//
// The snippet shows up to six lines around the error; longer ranges
// collapse their middle with an ellipsis line.
func Render(sc *script.Script, e Error) string {
	var b strings.Builder
	b.WriteString(headerColor.Sprintf("error: %s", e.Msg))
	b.WriteString("\n")
	b.WriteString(locColor.Sprintf("%s:%d:%d", sc.Path, e.Start.Line, e.Start.Column))
	b.WriteString("\n")
	b.WriteString(snippet(sc, e))
	return b.String()
}

// RenderAll renders a file's error list, separating errors with two
// blank indented lines.
func RenderAll(sc *script.Script, errs []Error) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, Render(sc, e))
	}
	return strings.Join(parts, "\n  \n  \n")
}

func snippet(sc *script.Script, e Error) string {
	first := e.Start.Line
	last := e.End.Line
	if last < first {
		last = first
	}
	if last > sc.LineCount() {
		last = sc.LineCount()
	}

	var b strings.Builder
	if last-first+1 <= snippetContext {
		writeLines(&b, sc, first, last)
	} else {
		head := snippetContext / 2
		writeLines(&b, sc, first, first+head-1)
		b.WriteString(gutterColor.Sprint("     …"))
		b.WriteString("\n")
		writeLines(&b, sc, last-head+1, last)
	}
	return b.String()
}

func writeLines(b *strings.Builder, sc *script.Script, from, to int) {
	for n := from; n <= to; n++ {
		line, ok := sc.Line(n)
		if !ok {
			continue
		}
		b.WriteString(gutterColor.Sprintf("%4d | ", n))
		b.WriteString(line)
		b.WriteString("\n")
	}
}

// Sprint is a convenience for driver output: message plus bare location
// when no script is at hand.
func Sprint(path string, e Error) string {
	return fmt.Sprintf("error: %s\n%s:%d:%d", e.Msg, path, e.Start.Line, e.Start.Column)
}
