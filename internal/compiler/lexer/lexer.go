package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/seen-lang/seen/internal/compiler/errors"
	"github.com/seen-lang/seen/internal/compiler/script"
	"github.com/seen-lang/seen/internal/compiler/token"
)

// Lexer turns a source buffer into a token vector terminated by EOF,
// accumulating errors instead of stopping. It is parameterised over the
// dialect derived from the script's extension.
type Lexer struct {
	sc      *script.Script
	arabic  bool
	g       glyphs
	input   string
	position     int  // current offset in input (bytes)
	readPosition int  // next reading position (bytes)
	ch           rune // current character
	line         int
	column       int
	tokens []token.Token
	errs   []errors.Error
}

func New(sc *script.Script) *Lexer {
	l := &Lexer{
		sc:     sc,
		arabic: sc.Dialect() == script.Arabic,
		g:      glyphsFor(sc.Dialect()),
		input:  sc.Src,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// peekAt decodes the nth rune after the current one (peekAt(1) is
// peekChar).
func (l *Lexer) peekAt(n int) rune {
	pos := l.readPosition
	var r rune
	for i := 0; i < n; i++ {
		if pos >= len(l.input) {
			return 0
		}
		var size int
		r, size = utf8.DecodeRuneInString(l.input[pos:])
		pos += size
	}
	return r
}

func (l *Lexer) loc() token.Location {
	return token.Location{Line: l.line, Column: l.column}
}

func (l *Lexer) errorAt(start token.Location, format string, args ...any) {
	l.errs = append(l.errs, errors.New(start, l.loc(), fmt.Sprintf(format, args...)))
}

func (l *Lexer) emit(kind token.Kind, lit string, start token.Location) {
	l.tokens = append(l.tokens, token.Token{Kind: kind, Lit: lit, Start: start, End: l.loc()})
}

// emitSingle emits a token for the current character and consumes it.
func (l *Lexer) emitSingle(kind token.Kind) {
	start := l.loc()
	lit := string(l.ch)
	l.readChar()
	l.emit(kind, lit, start)
}

// emitDouble emits a two-character token, consuming both.
func (l *Lexer) emitDouble(kind token.Kind) {
	start := l.loc()
	lit := string(l.ch)
	l.readChar()
	lit += string(l.ch)
	l.readChar()
	l.emit(kind, lit, start)
}

// Lex scans the whole buffer. The token vector always ends with EOF;
// consecutive newlines collapse to a single NL token.
func (l *Lexer) Lex() ([]token.Token, []errors.Error) {
	for l.ch != 0 {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '\n':
			l.lexNewline()
		case l.ch == l.g.slash && l.peekChar() == l.g.slash:
			l.skipLineComment()
		case l.ch == l.g.slash && l.peekChar() == '*':
			l.skipBlockComment()
		case l.ch == l.g.stringOpen:
			l.lexString()
		case l.ch == l.g.charOpen:
			l.lexChar()
		case l.ch == '#':
			l.lexCode()
		case isAnyDigit(l.ch):
			l.lexNumber()
		case l.ch == '.' && isAnyDigit(l.peekChar()) && !l.arabic:
			l.lexNumber()
		case isIdentStart(l.ch):
			l.lexIdentifier()
		default:
			l.lexOperator()
		}
	}
	l.emit(token.EOF, "", l.loc())
	return l.tokens, l.errs
}

func (l *Lexer) lexNewline() {
	start := l.loc()
	l.readChar()
	if n := len(l.tokens); n > 0 && l.tokens[n-1].Kind == token.NL {
		return
	}
	l.emit(token.NL, "\n", start)
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// skipBlockComment consumes a nesting block comment. The closer mirrors
// the opener per dialect. An unterminated comment reports the opening
// location.
func (l *Lexer) skipBlockComment() {
	start := l.loc()
	l.readChar() // opener first glyph
	l.readChar() // '*'
	depth := 1
	for depth > 0 {
		switch {
		case l.ch == 0:
			l.errs = append(l.errs, errors.New(start, start, "unclosed block comment"))
			return
		case l.ch == l.g.slash && l.peekChar() == '*':
			depth++
			l.readChar()
			l.readChar()
		case l.ch == '*' && l.peekChar() == l.g.slash:
			depth--
			l.readChar()
			l.readChar()
		default:
			l.readChar()
		}
	}
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func (l *Lexer) isIdentPart(ch rune) bool {
	if l.arabic && ch == tatweel {
		return true
	}
	return unicode.IsLetter(ch) || unicode.IsNumber(ch) || ch == '_'
}

func (l *Lexer) lexIdentifier() {
	start := l.loc()
	var b strings.Builder
	for l.isIdentPart(l.ch) {
		if !(l.arabic && l.ch == tatweel) {
			b.WriteRune(l.ch)
		}
		l.readChar()
	}
	lit := b.String()
	l.emit(token.LookupIdent(lit, l.arabic), lit, start)
}

// lexNumber scans an integer or float. The two decimal-digit ranges may
// not mix inside one literal, a postfix letter is an error, and the
// fractional part is triggered by the dialect's decimal separator. The
// lexeme keeps the source digits; normalisation to Western digits is
// the code generator's business.
func (l *Lexer) lexNumber() {
	start := l.loc()
	var b strings.Builder
	eastern := isEasternDigit(l.ch)

	// leading separator form: .5
	if l.ch == '.' {
		b.WriteRune('.')
		l.readChar()
		eastern = isEasternDigit(l.ch)
	}

	sameRange := func(ch rune) bool {
		if eastern {
			return isEasternDigit(ch)
		}
		return isWesternDigit(ch)
	}

	mixed := false
	scanDigits := func() {
		for isAnyDigit(l.ch) {
			if !sameRange(l.ch) {
				mixed = true
			}
			b.WriteRune(l.ch)
			l.readChar()
		}
	}

	scanDigits()
	isFloat := strings.HasPrefix(b.String(), ".")
	if l.ch == l.g.decimalSep && sameRange(l.peekChar()) {
		isFloat = true
		b.WriteRune(l.ch)
		l.readChar()
		scanDigits()
	}

	if mixed {
		l.errorAt(start, "numbers are written with Eastern (٠..٩) or Western (0..9) digits; not a mix")
		l.resyncLexeme()
		return
	}
	if unicode.IsLetter(l.ch) {
		l.errorAt(start, "invalid postfix `%c` after number", l.ch)
		l.resyncLexeme()
		return
	}

	kind := token.INT_LIT
	if isFloat {
		kind = token.FLOAT_LIT
	}
	l.emit(kind, b.String(), start)
}

// resyncLexeme consumes the rest of a malformed identifier or number so
// lexing resumes at a clean boundary. No token is produced.
func (l *Lexer) resyncLexeme() {
	for l.isIdentPart(l.ch) {
		l.readChar()
	}
}

// readEscape decodes one escape sequence after the introducer has been
// seen. Recognised: n, r, t and the dialect's quote glyphs. Unknown
// escapes report an error and yield the raw character.
func (l *Lexer) readEscape() rune {
	start := l.loc()
	l.readChar() // introducer
	ch := l.ch
	l.readChar()
	switch ch {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case l.g.stringOpen, l.g.stringClose, l.g.charOpen, l.g.charClose:
		return ch
	}
	l.errorAt(start, "invalid escape `%c%c`", l.g.escape, ch)
	return ch
}

func (l *Lexer) lexString() {
	start := l.loc()
	if l.peekChar() == l.g.stringOpen && l.peekAt(2) == l.g.stringOpen {
		l.lexMultilineString(start)
		return
	}
	l.readChar() // opener
	var b strings.Builder
	for {
		switch {
		case l.ch == l.g.stringClose:
			l.readChar()
			l.emit(token.STRING_LIT, b.String(), start)
			return
		case l.ch == 0 || l.ch == '\n':
			l.errs = append(l.errs, errors.New(start, l.loc(), "unclosed string literal"))
			return
		case l.ch == l.g.escape:
			b.WriteRune(l.readEscape())
		default:
			b.WriteRune(l.ch)
			l.readChar()
		}
	}
}

// lexMultilineString handles the tripled-opener form: all content up to
// the tripled closer is literal, including newlines, except escapes.
func (l *Lexer) lexMultilineString(start token.Location) {
	l.readChar()
	l.readChar()
	l.readChar()
	var b strings.Builder
	for {
		switch {
		case l.ch == l.g.stringClose && l.peekChar() == l.g.stringClose && l.peekAt(2) == l.g.stringClose:
			l.readChar()
			l.readChar()
			l.readChar()
			l.emit(token.STRING_LIT, b.String(), start)
			return
		case l.ch == 0:
			l.errs = append(l.errs, errors.New(start, l.loc(), "unclosed string literal"))
			return
		case l.ch == l.g.escape:
			b.WriteRune(l.readEscape())
		default:
			b.WriteRune(l.ch)
			l.readChar()
		}
	}
}

func (l *Lexer) lexChar() {
	start := l.loc()
	l.readChar() // opener
	var ch rune
	switch {
	case l.ch == 0 || l.ch == '\n':
		l.errs = append(l.errs, errors.New(start, l.loc(), "unclosed character literal"))
		return
	case l.ch == l.g.escape:
		ch = l.readEscape()
	default:
		ch = l.ch
		l.readChar()
	}
	if l.ch != l.g.charClose {
		l.errs = append(l.errs, errors.New(start, l.loc(), "unclosed character literal"))
		l.resyncLexeme()
		return
	}
	l.readChar()
	l.emit(token.CHAR_LIT, string(ch), start)
}

// lexCode scans an embedded-code literal. `#` followed by non-blank
// text on the same line is a single-line literal; otherwise the literal
// runs until a line whose trimmed content equals the dialect's
// terminator word at or left of the `#` column.
func (l *Lexer) lexCode() {
	start := l.loc()
	hashCol := l.column
	l.readChar() // '#'

	var first strings.Builder
	for l.ch != '\n' && l.ch != 0 {
		first.WriteRune(l.ch)
		l.readChar()
	}
	if strings.TrimSpace(first.String()) != "" {
		l.emit(token.CODE, strings.TrimSpace(first.String()), start)
		return
	}

	var lines []string
	for {
		if l.ch == 0 {
			l.errs = append(l.errs, errors.New(start, start, "unclosed code block"))
			return
		}
		l.readChar() // newline
		var line strings.Builder
		indent := -1
		for l.ch != '\n' && l.ch != 0 {
			if indent < 0 && l.ch != ' ' && l.ch != '\t' {
				indent = l.column
			}
			line.WriteRune(l.ch)
			l.readChar()
		}
		if strings.TrimSpace(line.String()) == l.g.endWord && indent >= 0 && indent <= hashCol {
			l.emit(token.CODE, strings.Join(lines, "\n"), start)
			return
		}
		lines = append(lines, line.String())
	}
}

// lexOperator handles the punctuation and operator set, including the
// dialect-mirrored slash pair.
func (l *Lexer) lexOperator() {
	switch l.ch {
	case '=':
		switch l.peekChar() {
		case '=':
			l.emitDouble(token.EQ)
		case '>':
			l.emitDouble(token.ARROW)
		default:
			l.emitSingle(token.ASSIGN)
		}
	case '-':
		switch l.peekChar() {
		case '>':
			l.emitDouble(token.THIN_ARROW)
		default:
			l.emitSingle(token.MINUS)
		}
	case ':':
		switch l.peekChar() {
		case ':':
			l.emitDouble(token.DOUBLE_COLON)
		case '=':
			l.emitDouble(token.DECL_ASSIGN)
		default:
			l.emitSingle(token.COLON)
		}
	case '|':
		switch l.peekChar() {
		case '|':
			l.emitDouble(token.OR)
		case '>':
			l.emitDouble(token.PIPE)
		default:
			l.emitSingle(token.BAR)
		}
	case '.':
		l.emitSingle(token.DOT)
	case '+':
		if l.peekChar() == '=' {
			l.emitDouble(token.PLUS_ASSIGN)
		} else {
			l.emitSingle(token.PLUS)
		}
	case '*':
		if l.peekChar() == '=' {
			l.emitDouble(token.STAR_ASSIGN)
		} else {
			l.emitSingle(token.STAR)
		}
	case l.g.slash:
		switch l.peekChar() {
		case '=':
			l.emitDouble(token.SLASH_ASSIGN)
		case l.g.backslash:
			l.emitDouble(token.BIT_AND)
		default:
			l.emitSingle(token.SLASH)
		}
	case l.g.backslash:
		if l.peekChar() == l.g.slash {
			l.emitDouble(token.BIT_OR)
		} else {
			l.unrecognised()
		}
	case '%':
		l.emitSingle(token.PERCENT)
	case '<':
		if l.peekChar() == '=' {
			l.emitDouble(token.LT_EQ)
		} else {
			l.emitSingle(token.LT)
		}
	case '>':
		if l.peekChar() == '=' {
			l.emitDouble(token.GT_EQ)
		} else {
			l.emitSingle(token.GT)
		}
	case '!':
		if l.peekChar() == '=' {
			l.emitDouble(token.NOT_EQ)
		} else {
			l.emitSingle(token.NOT)
		}
	case '&':
		if l.peekChar() == '&' {
			l.emitDouble(token.AND)
		} else {
			l.unrecognised()
		}
	case '?':
		l.emitSingle(token.QUESTION)
	case '@':
		l.emitSingle(token.AT)
	case ',':
		l.emitSingle(token.COMMA)
	case ';':
		l.emitSingle(token.SEMICOLON)
	case '(':
		if l.peekChar() == '+' && l.peekAt(2) == ')' {
			start := l.loc()
			l.readChar()
			l.readChar()
			l.readChar()
			l.emit(token.BIT_XOR, "(+)", start)
		} else {
			l.emitSingle(token.LPAREN)
		}
	case ')':
		l.emitSingle(token.RPAREN)
	case '{':
		l.emitSingle(token.LBRACE)
	case '}':
		l.emitSingle(token.RBRACE)
	case '[':
		l.emitSingle(token.LBRACKET)
	case ']':
		l.emitSingle(token.RBRACKET)
	default:
		l.unrecognised()
	}
}

func (l *Lexer) unrecognised() {
	start := l.loc()
	ch := l.ch
	l.readChar()
	l.errorAt(start, "unrecognised character `%c`", ch)
}
