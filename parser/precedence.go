package parser

import (
	"github.com/questlang/questlang/ast"
	"github.com/questlang/questlang/internal/token"
)

// Precedence order for operators. All binary operators are left
// associative.
const (
	_ int = iota
	LOWEST
	OR          // or
	AND         // and
	EQUALS      // ==, != or has
	LESSGREATER // > or <
	RANGE       // ..
	SUM         // + or -
	PRODUCT     // *, / or %
	PREFIX      // -X or not X
	CALL        // f(X) or x.f(X)
	INDEX       // array[index], array[low..high]
)

// Precedences for each token type
var precedences = map[token.Type]int{
	token.OR:        OR,
	token.AND:       AND,
	token.EQ:        EQUALS,
	token.NOT_EQ:    EQUALS,
	token.HAS:       EQUALS,
	token.LT:        LESSGREATER,
	token.LT_EQUALS: LESSGREATER,
	token.GT:        LESSGREATER,
	token.GT_EQUALS: LESSGREATER,
	token.RANGE:     RANGE,
	token.PLUS:      SUM,
	token.MINUS:     SUM,
	token.ASTERISK:  PRODUCT,
	token.SLASH:     PRODUCT,
	token.MOD:       PRODUCT,
	token.LPAREN:    CALL,
	token.PERIOD:    CALL,
	token.LBRACKET:  INDEX,
}

// peekPrecedence returns the binding power of the next token when it
// follows left. Calls apply only to identifiers and indexing only to
// addressable expressions; otherwise "(" and "[" begin a new statement.
func (p *Parser) peekPrecedence(left ast.Expr) int {
	switch p.peekToken.Type {
	case token.LPAREN:
		if _, ok := left.(*ast.Ident); !ok {
			return LOWEST
		}
	case token.LBRACKET:
		if !ast.Addressable(left) {
			return LOWEST
		}
	}
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}
