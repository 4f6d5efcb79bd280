package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/questlang/questlang/ast"
	"github.com/questlang/questlang/errors"
	"github.com/questlang/questlang/internal/token"
)

func (p *Parser) newIdent(tok token.Token) *ast.Ident {
	return &ast.Ident{NamePos: tok.StartPosition, Name: tok.Literal}
}

func (p *Parser) newString(tok token.Token) *ast.String {
	return &ast.String{ValuePos: tok.StartPosition, EndPos: tok.EndPosition, Value: tok.Literal}
}

func (p *Parser) parseIdent() ast.Expr {
	return p.newIdent(p.curToken)
}

func (p *Parser) parseString() ast.Expr {
	return p.newString(p.curToken)
}

func (p *Parser) parseBoolean() ast.Expr {
	return &ast.Bool{
		ValuePos: p.curToken.StartPosition,
		Literal:  p.curToken.Literal,
		Value:    p.curTokenIs(token.TRUE),
	}
}

func (p *Parser) parseNumber() ast.Expr {
	tok := p.curToken
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.errorAt(errors.E1008, tok, fmt.Sprintf("invalid number literal: %s", tok.Literal), "")
		return nil
	}
	return &ast.Num{ValuePos: tok.StartPosition, Literal: tok.Literal, Value: value}
}

func (p *Parser) parseDice() ast.Expr {
	tok := p.curToken
	count, faces, ok := strings.Cut(tok.Literal, "d")
	if !ok {
		p.errorAt(errors.E1008, tok, fmt.Sprintf("invalid dice literal: %s", tok.Literal), "")
		return nil
	}
	n, err := strconv.Atoi(count)
	if err != nil {
		p.errorAt(errors.E1008, tok, fmt.Sprintf("invalid dice count: %s", count), "")
		return nil
	}
	m, err := strconv.Atoi(faces)
	if err != nil {
		p.errorAt(errors.E1008, tok, fmt.Sprintf("invalid dice faces: %s", faces), "")
		return nil
	}
	return &ast.Dice{ValuePos: tok.StartPosition, Literal: tok.Literal, Count: n, Faces: m}
}
