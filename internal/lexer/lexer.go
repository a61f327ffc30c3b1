// Package lexer turns source text into a lazy stream of tokens, tracking
// location as it goes and emitting indentation tokens at the start of every
// non-blank line.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/AshTS/CLRSPseudocode/internal/diag"
	"github.com/AshTS/CLRSPseudocode/internal/token"
)

// Lexer is a one-shot, forward-only tokenizer over a source string.
type Lexer struct {
	filename string
	src      []rune
	pos      int
	byteIdx  int // byte offset of src[pos] in the original string
	line     int
	col      int
	diags    diag.List
	atStart  bool // true until the first token has been produced
	done     bool
}

// New creates a Lexer over source, attributed to filename in locations.
func New(filename, source string) *Lexer {
	return &Lexer{
		filename: filename,
		src:      []rune(source),
		atStart:  true,
	}
}

// Diagnostics returns every diagnostic accumulated so far (unrecognized
// characters are reported here rather than aborting the scan).
func (l *Lexer) Diagnostics() diag.List {
	return l.diags
}

func (l *Lexer) loc() token.Location {
	return token.Location{Filename: l.filename, Line: l.line, Column: l.col, Index: l.byteIdx, Source: string(l.src)}
}

func (l *Lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *Lexer) peekAt(offset int) (rune, bool) {
	idx := l.pos + offset
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	l.byteIdx += utf8.RuneLen(r)
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return r
}

func isIdentStart(r rune) bool { return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isIdentCont(r rune) bool  { return isIdentStart(r) || isDigit(r) }
func isDigit(r rune) bool      { return r >= '0' && r <= '9' }

// Next produces the next token. Once an EndOfFile token has been produced,
// every subsequent call returns another EndOfFile token at the same
// location.
func (l *Lexer) Next() token.Token {
	if l.done {
		return token.Token{Loc: l.loc(), Kind: token.EOF}
	}

	firstToken := l.atStart
	l.atStart = false

	for {
		r, ok := l.peek()
		if !ok {
			l.done = true
			return token.Token{Loc: l.loc(), Kind: token.EOF}
		}

		switch {
		case r == ' ' || r == '\r':
			l.advance()
			continue
		case r == '\n':
			start := l.loc()
			l.advance()
			indent := l.consumeBlankRunsAndMeasureIndent()
			if firstToken {
				// No Indentation token is ever emitted before the first
				// token of the file.
				continue
			}
			if indent < 0 {
				// Ran off the end of the file: nothing to report.
				continue
			}
			return token.Token{Loc: start, Kind: token.Indentation, Text: strings.Repeat(" ", indent)}
		case r == '/' && l.peekIsCommentStart():
			l.skipLineComment()
			continue
		case isIdentStart(r):
			return l.scanIdentifier()
		case isDigit(r):
			return l.scanNumber()
		case strings.ContainsRune("=<>!", r):
			return l.scanCompoundSymbol()
		case strings.ContainsRune("()[].,+-*/", r):
			return l.scanSingleSymbol()
		default:
			start := l.loc()
			l.advance()
			l.diags.Add(diag.Errorf(nil, "unrecognized character '%c' at %s", r, start).WithHelp("the character was replaced by a synthetic symbol token so parsing can continue"))
			return token.Token{Loc: start, Kind: token.Symbol, Text: string(r)}
		}
	}
}

func (l *Lexer) peekIsCommentStart() bool {
	n, ok := l.peekAt(1)
	return ok && n == '/'
}

func (l *Lexer) skipLineComment() {
	for {
		r, ok := l.peek()
		if !ok || r == '\n' {
			return
		}
		l.advance()
	}
}

// consumeBlankRunsAndMeasureIndent consumes every following run of
// newlines/spaces/carriage-returns, returning the indentation (count of
// leading spaces) of the last non-blank line it lands on, or -1 if the file
// ends inside the run.
func (l *Lexer) consumeBlankRunsAndMeasureIndent() int {
	for {
		indent := 0
		for {
			r, ok := l.peek()
			if !ok {
				return -1
			}
			if r == ' ' {
				indent++
				l.advance()
				continue
			}
			if r == '\r' {
				l.advance()
				continue
			}
			break
		}
		r, ok := l.peek()
		if !ok {
			return -1
		}
		if r == '\n' {
			l.advance()
			continue
		}
		return indent
	}
}

func (l *Lexer) scanIdentifier() token.Token {
	start := l.loc()
	var b strings.Builder
	for {
		r, ok := l.peek()
		if !ok || !isIdentCont(r) {
			break
		}
		b.WriteRune(l.advance())
	}
	return token.Token{Loc: start, Kind: token.Identifier, Text: b.String()}
}

func (l *Lexer) scanNumber() token.Token {
	start := l.loc()
	var b strings.Builder
	for {
		r, ok := l.peek()
		if !ok || !isDigit(r) {
			break
		}
		b.WriteRune(l.advance())
	}
	if r, ok := l.peek(); ok && r == '.' {
		b.WriteRune(l.advance())
		for {
			r, ok := l.peek()
			if !ok || !isDigit(r) {
				break
			}
			b.WriteRune(l.advance())
		}
	}
	return token.Token{Loc: start, Kind: token.Number, Text: b.String()}
}

func (l *Lexer) scanCompoundSymbol() token.Token {
	start := l.loc()
	first := l.advance()
	if n, ok := l.peek(); ok && n == '=' {
		l.advance()
		return token.Token{Loc: start, Kind: token.Symbol, Text: string(first) + "="}
	}
	return token.Token{Loc: start, Kind: token.Symbol, Text: string(first)}
}

func (l *Lexer) scanSingleSymbol() token.Token {
	start := l.loc()
	r := l.advance()
	return token.Token{Loc: start, Kind: token.Symbol, Text: string(r)}
}
