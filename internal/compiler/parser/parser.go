package parser

import (
	"fmt"

	"github.com/seen-lang/seen/internal/compiler/errors"
	"github.com/seen-lang/seen/internal/compiler/symtab"
	"github.com/seen-lang/seen/internal/compiler/token"
)

// Parser is a recursive-descent parser over the lexer's token vector.
// It produces the module element vector, builds the symbol table in
// lockstep, and accumulates errors instead of stopping.
type Parser struct {
	toks  []token.Token
	pos   int
	tab   *symtab.SymTab
	errs  []errors.Error
	enums []string

	// suppressRef is armed while parsing the member after `.` or `::`:
	// field and path segments are not reference uses.
	suppressRef bool
}

// builtins are seeded into the module scope before parsing so
// references to the runtime print functions and the import pseudo-call
// resolve in either dialect.
var builtins = []string{
	"println", "print", "import",
	"اطبع_سطر", "اطبع", "احضر",
}

func New(toks []token.Token) *Parser {
	if len(toks) == 0 {
		toks = []token.Token{{Kind: token.EOF}}
	}
	tab := symtab.New()
	for _, name := range builtins {
		// seeding cannot collide in a fresh scope
		_ = tab.Define(symtab.Entry{Kind: symtab.Fn, Tok: token.Token{Kind: token.ID, Lit: name}})
	}
	return &Parser{
		toks: toks,
		tab:  tab,
	}
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

// peek returns the token n positions ahead without consuming.
func (p *Parser) peek(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) next() token.Token {
	tok := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.cur().Kind == k
}

// skipNL consumes newline tokens.
func (p *Parser) skipNL() {
	for p.at(token.NL) {
		p.next()
	}
}

// peekNonNL returns the nth non-newline token at or after the cursor
// (n=0 is the first one).
func (p *Parser) peekNonNL(n int) token.Token {
	seen := 0
	for i := p.pos; i < len(p.toks); i++ {
		if p.toks[i].Kind == token.NL {
			continue
		}
		if seen == n {
			return p.toks[i]
		}
		seen++
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) errorAt(tok token.Token, format string, args ...any) {
	p.errs = append(p.errs, errors.New(tok.Start, tok.End, fmt.Sprintf(format, args...)))
}

// maybe consumes and returns the current token when it has the wanted
// kind; ok is false and nothing is consumed otherwise.
func (p *Parser) maybe(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.next(), true
	}
	return token.Token{}, false
}

// require consumes a token of kind k or records an error naming what
// was being parsed.
func (p *Parser) require(k token.Kind, what string) (token.Token, bool) {
	if p.at(k) {
		return p.next(), true
	}
	p.errorAt(p.cur(), "expected %s in %s, found `%s`", k, what, p.cur().Kind)
	return token.Token{}, false
}

func (p *Parser) atTerminator() bool {
	switch p.cur().Kind {
	case token.NL, token.SEMICOLON, token.EOF:
		return true
	}
	return false
}

// requireTerminator consumes a statement terminator: newline, semicolon
// or end of file. A closing brace also ends a statement but is left for
// the block parser to consume.
func (p *Parser) requireTerminator() {
	if p.at(token.RBRACE) {
		return
	}
	if p.atTerminator() {
		if !p.at(token.EOF) {
			p.next()
		}
		return
	}
	p.errorAt(p.cur(), "expected end of statement, found `%s`", p.cur().Kind)
	p.skipToTerminator()
}

// skipToTerminator resynchronises at the next statement boundary.
func (p *Parser) skipToTerminator() {
	for !p.atTerminator() {
		p.next()
	}
	if !p.at(token.EOF) {
		p.next()
	}
}

// matchingClose returns the index of the token closing the group opened
// at index open, or -1 when the group never closes. Parens, brackets
// and braces all nest.
func (p *Parser) matchingClose(open int) int {
	depth := 0
	for i := open; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			depth--
			if depth == 0 {
				return i
			}
		case token.EOF:
			return -1
		}
	}
	return -1
}

// afterGroup returns the token immediately after the group opened at
// the cursor, without consuming anything.
func (p *Parser) afterGroup() token.Token {
	close := p.matchingClose(p.pos)
	if close < 0 || close+1 >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[close+1]
}

// structLitAhead reports whether the cursor sits on a `{ Id :` window,
// newline-insensitive, which distinguishes a struct literal from a
// block.
func (p *Parser) structLitAhead() bool {
	if !p.at(token.LBRACE) {
		return false
	}
	seen := 0
	var win [2]token.Token
	for i := p.pos + 1; i < len(p.toks) && seen < 2; i++ {
		if p.toks[i].Kind == token.NL {
			continue
		}
		win[seen] = p.toks[i]
		seen++
	}
	return seen == 2 && win[0].Kind == token.ID && win[1].Kind == token.COLON
}

// define routes a defining symbol-table entry and records any duplicate
// error.
func (p *Parser) define(e symtab.Entry) {
	if err := p.tab.Define(e); err != nil {
		p.errs = append(p.errs, *err)
	}
}
