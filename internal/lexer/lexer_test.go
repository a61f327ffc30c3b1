package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AshTS/CLRSPseudocode/internal/lexer"
	"github.com/AshTS/CLRSPseudocode/internal/token"
)

func allTokens(t *testing.T, source string) []token.Token {
	t.Helper()
	lex := lexer.New("test.pseudo", source)
	var toks []token.Token
	for {
		tok := lex.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestNoIndentationBeforeFirstToken(t *testing.T) {
	toks := allTokens(t, "  foo")
	require.NotEmpty(t, toks)
	assert.Equal(t, token.Identifier, toks[0].Kind)
}

func TestIndentationOnlyMeasuresLastNonBlankLine(t *testing.T) {
	toks := allTokens(t, "a\n\n\n    b")
	var indentTexts []string
	for _, tok := range toks {
		if tok.Kind == token.Indentation {
			indentTexts = append(indentTexts, tok.Text)
		}
	}
	require.Len(t, indentTexts, 1)
	assert.Equal(t, "    ", indentTexts[0])
}

func TestCompoundSymbolsExtendWithEquals(t *testing.T) {
	toks := allTokens(t, "a <= b >= c == d != e")
	var syms []string
	for _, tok := range toks {
		if tok.Kind == token.Symbol {
			syms = append(syms, tok.Text)
		}
	}
	assert.Equal(t, []string{"<=", ">=", "==", "!="}, syms)
}

func TestUnrecognizedCharacterRecoversInsteadOfAborting(t *testing.T) {
	lex := lexer.New("test.pseudo", "a @ b")
	first := lex.Next()
	assert.Equal(t, token.Identifier, first.Kind)

	bad := lex.Next()
	assert.Equal(t, token.Symbol, bad.Kind)
	assert.Equal(t, "@", bad.Text)

	next := lex.Next()
	assert.Equal(t, token.Identifier, next.Kind, "scanning must continue past the unrecognized character")
	assert.Equal(t, "b", next.Text)

	require.Len(t, lex.Diagnostics(), 1)
}
