// Package token defines the lexical tokens produced by the tokenizer and the
// source locations attached to them.
package token

import "fmt"

// Location pins a single position in a source file: the byte index, and the
// 0-based line/column derived from it. Source optionally carries the full
// text of the file it was produced from, so that diagnostics can quote the
// offending line without re-opening the file.
type Location struct {
	Filename string
	Line     int
	Column   int
	Index    int
	Source   string
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line+1, l.Column+1)
}

// Kind identifies the lexical class of a Token.
type Kind int

const (
	Identifier Kind = iota
	Number
	Symbol
	Indentation
	EOF
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case Number:
		return "number"
	case Symbol:
		return "symbol"
	case Indentation:
		return "indentation"
	case EOF:
		return "end of file"
	default:
		return "unknown"
	}
}

// Token is a single lexeme together with the location it was read from.
type Token struct {
	Loc  Location
	Kind Kind
	Text string
}

// ExtractText returns the token's literal text, the way the reference
// implementation's Token::extract_text does.
func (t Token) ExtractText() string {
	return t.Text
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Text, t.Loc)
}

// IsIdentifierValue reports whether t is an identifier whose text equals s.
// Keyword recognition throughout the parser is purely by identifier text, so
// this is the single predicate every keyword check funnels through.
func (t Token) IsIdentifierValue(s string) bool {
	return t.Kind == Identifier && t.Text == s
}
