package parser

import (
	"strconv"

	"github.com/AshTS/CLRSPseudocode/internal/ast"
	"github.com/AshTS/CLRSPseudocode/internal/diag"
	"github.com/AshTS/CLRSPseudocode/internal/token"
)

func (p *Parser) parseValue() ast.Node {
	if id, ok := p.optionalConsumeIdentifier(); ok {
		p.rememberName(id)
		return &ast.IdentifierValue{Token: id}
	}
	if num, ok := p.optionalConsumeNumber(); ok {
		v, err := strconv.ParseFloat(num.Text, 64)
		if err != nil {
			p.addError(diag.Errorf(&num, "unable to parse number from '%s'", num.Text))
			v = 0
		}
		return &ast.NumericValue{Token: num, Value: v}
	}
	if _, ok := p.optionalConsumeSymbol("("); ok {
		value := p.parseExpression()
		p.enforceConsumeSymbol(")")
		return value
	}
	if tok, ok := p.expectToken(); ok {
		p.addError(diag.Errorf(&tok, "expected value, found '%s'", tok.Text).
			WithArrow("expected value").
			WithHelp("a value can be any of the following:\n  a numeric literal\n  an identifier"))
		return nil
	}
	return nil
}

// parsePostfix implements the left-associative `.ident | [expr] | (expr,...)`
// chain on top of a primary value.
func (p *Parser) parsePostfix() ast.Node {
	inner := p.parseValue()
	if inner == nil {
		return nil
	}

	for {
		if sym, ok := p.optionalConsumeSymbol("."); ok {
			member := p.parseValue()
			if member == nil {
				return nil
			}
			inner = &ast.Expression{Kind: ast.MemberAccess, Symbols: []token.Token{sym}, Children: []ast.Node{inner, member}}
		} else if sym, ok := p.optionalConsumeSymbol("["); ok {
			index := p.parseExpression()
			if index == nil {
				return nil
			}
			closeSym, ok := p.enforceConsumeSymbol("]")
			if !ok {
				return nil
			}
			inner = &ast.Expression{Kind: ast.Indexing, Symbols: []token.Token{sym, closeSym}, Children: []ast.Node{inner, index}}
		} else if sym, ok := p.optionalConsumeSymbol("("); ok {
			children := []ast.Node{inner}
			if _, ok := p.optionalConsumeSymbol(")"); ok {
				inner = &ast.Expression{Kind: ast.FunctionCall, Symbols: []token.Token{sym, {}}, Children: children}
				continue
			}
			for {
				arg := p.parseExpression()
				if arg == nil {
					return nil
				}
				children = append(children, arg)
				if _, ok := p.optionalConsumeSymbol(","); !ok {
					break
				}
			}
			closeSym, ok := p.enforceConsumeSymbol(")")
			if !ok {
				return nil
			}
			inner = &ast.Expression{Kind: ast.FunctionCall, Symbols: []token.Token{sym, closeSym}, Children: children}
		} else {
			break
		}
	}

	return inner
}

func (p *Parser) parseMultiplicative() ast.Node {
	left := p.parsePostfix()
	if left == nil {
		return nil
	}
	if sym, ok := p.optionalConsumeSymbol("*"); ok {
		right := p.parseMultiplicative()
		if right == nil {
			return nil
		}
		return &ast.Expression{Kind: ast.Multiply, Symbols: []token.Token{sym}, Children: []ast.Node{left, right}}
	}
	if sym, ok := p.optionalConsumeSymbol("/"); ok {
		right := p.parseMultiplicative()
		if right == nil {
			return nil
		}
		return &ast.Expression{Kind: ast.Divide, Symbols: []token.Token{sym}, Children: []ast.Node{left, right}}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Node {
	left := p.parseMultiplicative()
	if left == nil {
		return nil
	}
	if sym, ok := p.optionalConsumeSymbol("+"); ok {
		right := p.parseAdditive()
		if right == nil {
			return nil
		}
		return &ast.Expression{Kind: ast.Add, Symbols: []token.Token{sym}, Children: []ast.Node{left, right}}
	}
	if sym, ok := p.optionalConsumeSymbol("-"); ok {
		right := p.parseAdditive()
		if right == nil {
			return nil
		}
		return &ast.Expression{Kind: ast.Subtract, Symbols: []token.Token{sym}, Children: []ast.Node{left, right}}
	}
	return left
}

func (p *Parser) parseComparison() ast.Node {
	left := p.parseAdditive()
	if left == nil {
		return nil
	}
	switch {
	case p.peekSymbol("<="):
		sym, _ := p.optionalConsumeSymbol("<=")
		right := p.parseComparison()
		if right == nil {
			return nil
		}
		return &ast.Expression{Kind: ast.LessThanEqual, Symbols: []token.Token{sym}, Children: []ast.Node{left, right}}
	case p.peekSymbol(">="):
		sym, _ := p.optionalConsumeSymbol(">=")
		right := p.parseComparison()
		if right == nil {
			return nil
		}
		return &ast.Expression{Kind: ast.GreaterThanEqual, Symbols: []token.Token{sym}, Children: []ast.Node{left, right}}
	case p.peekSymbol("<"):
		sym, _ := p.optionalConsumeSymbol("<")
		right := p.parseComparison()
		if right == nil {
			return nil
		}
		return &ast.Expression{Kind: ast.LessThan, Symbols: []token.Token{sym}, Children: []ast.Node{left, right}}
	case p.peekSymbol(">"):
		sym, _ := p.optionalConsumeSymbol(">")
		right := p.parseComparison()
		if right == nil {
			return nil
		}
		return &ast.Expression{Kind: ast.GreaterThan, Symbols: []token.Token{sym}, Children: []ast.Node{left, right}}
	default:
		return left
	}
}

func (p *Parser) peekSymbol(sym string) bool {
	return p.current.Kind == token.Symbol && p.current.Text == sym
}

func (p *Parser) parseEquality() ast.Node {
	left := p.parseComparison()
	if left == nil {
		return nil
	}
	if sym, ok := p.optionalConsumeSymbol("=="); ok {
		right := p.parseEquality()
		if right == nil {
			return nil
		}
		return &ast.Expression{Kind: ast.Equality, Symbols: []token.Token{sym}, Children: []ast.Node{left, right}}
	}
	if sym, ok := p.optionalConsumeSymbol("!="); ok {
		right := p.parseEquality()
		if right == nil {
			return nil
		}
		return &ast.Expression{Kind: ast.Inequality, Symbols: []token.Token{sym}, Children: []ast.Node{left, right}}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Node {
	left := p.parseEquality()
	if left == nil {
		return nil
	}
	if sym, ok := p.optionalConsumeIdentifierValue("and"); ok {
		right := p.parseLogicalAnd()
		if right == nil {
			return nil
		}
		return &ast.Expression{Kind: ast.LogicalAnd, Symbols: []token.Token{sym}, Children: []ast.Node{left, right}}
	}
	return left
}

func (p *Parser) parseLogicalOr() ast.Node {
	left := p.parseLogicalAnd()
	if left == nil {
		return nil
	}
	if sym, ok := p.optionalConsumeIdentifierValue("or"); ok {
		right := p.parseLogicalOr()
		if right == nil {
			return nil
		}
		return &ast.Expression{Kind: ast.LogicalOr, Symbols: []token.Token{sym}, Children: []ast.Node{left, right}}
	}
	return left
}

func (p *Parser) parseAssignment() ast.Node {
	left := p.parseLogicalOr()
	if left == nil {
		return nil
	}
	if sym, ok := p.optionalConsumeSymbol("="); ok {
		right := p.parseAssignment()
		if right == nil {
			return nil
		}
		return &ast.Expression{Kind: ast.Assignment, Symbols: []token.Token{sym}, Children: []ast.Node{left, right}}
	}
	return left
}
