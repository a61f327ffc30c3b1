// Package parser implements the recursive-descent, indentation-sensitive
// parser: a precedence cascade for expressions and an explicit indentation
// stack for blocks, accumulating diagnostics as it goes rather than
// aborting on the first error — the same posture as the teacher's
// asm.Parser, generalized from a flat token stream to one with indentation
// tokens.
package parser

import (
	"github.com/AshTS/CLRSPseudocode/internal/ast"
	"github.com/AshTS/CLRSPseudocode/internal/diag"
	"github.com/AshTS/CLRSPseudocode/internal/lexer"
	"github.com/AshTS/CLRSPseudocode/internal/token"
)

// Parser holds the one-token lookahead, the diagnostics accumulated so far,
// and the indentation bookkeeping described in §4.2.
type Parser struct {
	lex           *lexer.Lexer
	current       token.Token
	queued        []token.Token // buffered tokens already read past current
	diagnostics   diag.List
	failed        bool
	currentIndent int
	indentStack   []int
	knownNames    []string // identifiers seen so far; no diagnostic reads them
}

// New creates a Parser reading from lex.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex}
	p.current = lex.Next()
	return p
}

func (p *Parser) addError(d diag.Diagnostic) {
	d.Severity = diag.Error
	p.diagnostics.Add(d)
	p.failed = true
}

func (p *Parser) addWarning(d diag.Diagnostic) {
	d.Severity = diag.Warning
	p.diagnostics.Add(d)
}

func (p *Parser) advance() token.Token {
	tok := p.current
	if len(p.queued) > 0 {
		p.current = p.queued[0]
		p.queued = p.queued[1:]
	} else {
		p.current = p.lex.Next()
	}
	return tok
}

// peekAhead returns the token n positions after current (n=1 is the token
// immediately following current) without consuming anything.
func (p *Parser) peekAhead(n int) token.Token {
	for len(p.queued) < n {
		p.queued = append(p.queued, p.lex.Next())
	}
	return p.queued[n-1]
}

func (p *Parser) expectToken() (token.Token, bool) {
	if p.current.Kind == token.EOF {
		return token.Token{}, false
	}
	return p.current, true
}

func (p *Parser) consumeIf(pred func(token.Token) bool) (token.Token, bool) {
	if pred(p.current) {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *Parser) optionalConsumeSymbol(sym string) (token.Token, bool) {
	return p.consumeIf(func(t token.Token) bool { return t.Kind == token.Symbol && t.Text == sym })
}

func (p *Parser) optionalConsumeIdentifierValue(name string) (token.Token, bool) {
	return p.consumeIf(func(t token.Token) bool { return t.IsIdentifierValue(name) })
}

func (p *Parser) optionalConsumeIdentifier() (token.Token, bool) {
	return p.consumeIf(func(t token.Token) bool { return t.Kind == token.Identifier })
}

func (p *Parser) optionalConsumeNumber() (token.Token, bool) {
	return p.consumeIf(func(t token.Token) bool { return t.Kind == token.Number })
}

func (p *Parser) enforceConsumeSymbol(sym string) (token.Token, bool) {
	if t, ok := p.optionalConsumeSymbol(sym); ok {
		return t, true
	}
	if tok, ok := p.expectToken(); ok {
		p.addError(diag.Errorf(&tok, "expected '%s', found '%s'", sym, tok.Text))
	} else {
		p.addError(diag.Errorf(nil, "expected '%s', found end of file", sym))
	}
	return token.Token{}, false
}

func (p *Parser) enforceConsumeIdentifier() (token.Token, bool) {
	if t, ok := p.optionalConsumeIdentifier(); ok {
		return t, true
	}
	if tok, ok := p.expectToken(); ok {
		p.addError(diag.Errorf(&tok, "expected identifier, found '%s'", tok.Text))
	} else {
		p.addError(diag.Errorf(nil, "expected identifier, found end of file"))
	}
	return token.Token{}, false
}

func (p *Parser) enforceConsumeIdentifierValue(name string) (token.Token, bool) {
	if t, ok := p.optionalConsumeIdentifierValue(name); ok {
		return t, true
	}
	if tok, ok := p.expectToken(); ok {
		p.addError(diag.Errorf(&tok, "expected '%s', found '%s'", name, tok.Text))
	} else {
		p.addError(diag.Errorf(nil, "expected '%s', found end of file", name))
	}
	return token.Token{}, false
}

// enforceMoreIndentation implements block rule 1: the next token must be an
// Indentation strictly deeper than currentIndent; on success it pushes
// currentIndent and adopts the new level.
func (p *Parser) enforceMoreIndentation() bool {
	if p.current.Kind != token.Indentation || len(p.current.Text) <= p.currentIndent {
		tok := p.current
		p.addError(diag.Errorf(&tok, "expected an indented block").WithHelp("the block's body must be indented further than its header"))
		return false
	}
	tok := p.advance()
	p.indentStack = append(p.indentStack, p.currentIndent)
	p.currentIndent = len(tok.Text)
	return true
}

// indentOrLess implements block rule 2's decision: true if the next token is
// an Indentation of exactly currentIndent (block continues, token consumed);
// false and the stack popped/level restored if the block has ended (no
// token consumed in that case unless it was a too-deep Indentation, which is
// an error but still ends the block after reporting it).
func (p *Parser) indentOrLess() bool {
	if p.current.Kind == token.Indentation {
		n := len(p.current.Text)
		if n == p.currentIndent {
			p.advance()
			return true
		}
		if n > p.currentIndent {
			tok := p.current
			p.addError(diag.Errorf(&tok, "unexpected additional indentation"))
			p.advance()
		}
	}
	p.currentIndent = p.popIndent()
	return false
}

func (p *Parser) popIndent() int {
	if len(p.indentStack) == 0 {
		return 0
	}
	last := p.indentStack[len(p.indentStack)-1]
	p.indentStack = p.indentStack[:len(p.indentStack)-1]
	return last
}

func (p *Parser) rememberName(t token.Token) {
	if t.Kind == token.Identifier {
		p.knownNames = append(p.knownNames, t.Text)
	}
}

// ParseDocument parses a whole source file into a Program, following
// §4.2 rule 4: a sequence of function definitions.
func ParseDocument(lex *lexer.Lexer) (*ast.Program, diag.List, error) {
	p := New(lex)
	prog := &ast.Program{}

	for {
		if _, ok := p.expectToken(); !ok {
			break
		}
		// Function definitions start at column 0, so each one after the
		// first is preceded by a zero-width Indentation token.
		if p.current.Kind == token.Indentation && len(p.current.Text) == 0 {
			p.advance()
			continue
		}
		fn := p.parseFunction()
		if fn != nil {
			prog.Functions = append(prog.Functions, fn)
		} else if p.current.Kind != token.EOF {
			// Avoid an infinite loop on unrecoverable input.
			p.advance()
		}
	}

	for _, d := range lex.Diagnostics() {
		p.diagnostics.Add(d)
		if d.Severity == diag.Error {
			p.failed = true
		}
	}

	if p.failed {
		return nil, p.diagnostics, errFailed{p.diagnostics}
	}
	return prog, p.diagnostics, nil
}

type errFailed struct{ diags diag.List }

func (e errFailed) Error() string { return "parse failed:\n" + e.diags.String() }

func (p *Parser) parseFunction() *ast.Function {
	name, ok := p.enforceConsumeIdentifier()
	if !ok {
		return nil
	}
	p.rememberName(name)

	if _, ok := p.enforceConsumeSymbol("("); !ok {
		return nil
	}

	var params []token.Token
	if _, ok := p.optionalConsumeSymbol(")"); !ok {
		for {
			param, ok := p.enforceConsumeIdentifier()
			if !ok {
				return nil
			}
			p.rememberName(param)
			params = append(params, param)
			if _, ok := p.optionalConsumeSymbol(","); !ok {
				break
			}
		}
		if _, ok := p.enforceConsumeSymbol(")"); !ok {
			return nil
		}
	}

	body := p.parseBlock()
	if body == nil {
		return nil
	}

	return &ast.Function{Name: name, Parameters: params, Body: body}
}

// parseBlock implements block rules 1 and 2.
func (p *Parser) parseBlock() *ast.Block {
	if !p.enforceMoreIndentation() {
		return nil
	}

	block := &ast.Block{}
	for {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if !p.indentOrLess() {
			break
		}
	}
	return block
}

func (p *Parser) parseStatement() ast.Node {
	switch {
	case p.current.IsIdentifierValue("return"):
		return p.parseReturn()
	case p.current.IsIdentifierValue("while"):
		return p.parseWhile()
	case p.current.IsIdentifierValue("for"):
		return p.parseFor()
	case p.current.IsIdentifierValue("if"):
		return p.parseIf()
	default:
		return p.parseExpression()
	}
}

func (p *Parser) parseReturn() ast.Node {
	tok := p.advance()
	// A bare return (immediately followed by an Indentation/EOF) has no
	// expression.
	if p.current.Kind == token.Indentation || p.current.Kind == token.EOF {
		return &ast.Return{Token: tok}
	}
	expr := p.parseExpression()
	return &ast.Return{Token: tok, Expression: expr}
}

func (p *Parser) parseWhile() ast.Node {
	tok := p.advance()
	cond := p.parseExpression()
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &ast.While{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseFor() ast.Node {
	tok := p.advance()
	loopVar, ok := p.enforceConsumeIdentifier()
	if !ok {
		return nil
	}
	p.rememberName(loopVar)
	if _, ok := p.enforceConsumeSymbol("="); !ok {
		return nil
	}
	bound0 := p.parseExpression()
	reverse := false
	if _, ok := p.optionalConsumeIdentifierValue("down"); ok {
		reverse = true
	}
	if _, ok := p.enforceConsumeIdentifierValue("to"); !ok {
		return nil
	}
	bound1 := p.parseExpression()
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &ast.For{Token: tok, LoopVar: loopVar, Bound0: bound0, Bound1: bound1, Reverse: reverse, Body: body}
}

// parseIf implements block rule 3: elseif/else are consumed only when the
// next indentation matches the outer level the if itself started at.
func (p *Parser) parseIf() ast.Node {
	outerIndent := p.currentIndent
	tok := p.advance()
	cond := p.parseExpression()
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	node := &ast.If{Clauses: []ast.IfClause{{Keyword: tok, Condition: cond, Body: body}}}

outer:
	for {
		if p.current.Kind != token.Indentation || len(p.current.Text) != outerIndent {
			break
		}
		// Peek past the indentation without committing, so a same-level
		// statement that is not elseif/else still sees it untouched.
		next := p.peekAhead(1)
		switch {
		case next.IsIdentifierValue("elseif"):
			p.advance() // indentation
			kw := p.advance()
			cond := p.parseExpression()
			clauseBody := p.parseBlock()
			if clauseBody == nil {
				return nil
			}
			node.Clauses = append(node.Clauses, ast.IfClause{Keyword: kw, Condition: cond, Body: clauseBody})
		case next.IsIdentifierValue("else"):
			p.advance() // indentation
			p.advance() // else
			elseBody := p.parseBlock()
			if elseBody == nil {
				return nil
			}
			node.Else = elseBody
			break outer
		default:
			break outer
		}
	}

	return node
}

func (p *Parser) parseExpression() ast.Node {
	n := p.parseAssignment()
	if n == nil {
		return nil
	}
	return n
}
