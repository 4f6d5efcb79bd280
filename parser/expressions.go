package parser

import (
	"fmt"

	"github.com/questlang/questlang/ast"
	"github.com/questlang/questlang/errors"
	"github.com/questlang/questlang/internal/token"
)

// parseExpression parses an expression whose operators bind tighter than
// precedence. curToken is the first token of the expression on entry and
// its last token on return. It returns nil if and only if an error was
// recorded.
func (p *Parser) parseExpression(precedence int) ast.Expr {
	defer p.leave()
	if !p.enter() {
		return nil
	}
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}
	return p.continueExpression(left, precedence)
}

// continueExpression runs the infix loop from an already parsed left
// operand.
func (p *Parser) continueExpression(left ast.Expr, precedence int) ast.Expr {
	for precedence < p.peekPrecedence(left) {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		if left = infix(left); left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	op := p.curToken
	p.nextToken()
	right := p.parseExpression(PREFIX)
	if right == nil {
		return nil
	}
	return &ast.Prefix{OpPos: op.StartPosition, Op: op.Literal, X: right}
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	op := p.curToken
	precedence := precedences[op.Type]
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.Infix{X: left, OpPos: op.StartPosition, Op: op.Literal, Y: right}
}

func (p *Parser) parseHas(left ast.Expr) ast.Expr {
	hasPos := p.curToken.StartPosition
	p.nextToken()
	right := p.parseExpression(EQUALS)
	if right == nil {
		return nil
	}
	return &ast.Has{X: left, HasPos: hasPos, Y: right}
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	lparen := p.curToken.StartPosition
	p.nextToken()
	x := p.parseExpression(LOWEST)
	if x == nil {
		return nil
	}
	if !p.expectPeek("grouped expression", token.RPAREN) {
		return nil
	}
	return &ast.Paren{Lparen: lparen, X: x, Rparen: p.curToken.StartPosition}
}

// parseCall parses the arguments of a function call. peekPrecedence only
// lets "(" through when left is an identifier.
func (p *Parser) parseCall(left ast.Expr) ast.Expr {
	call := &ast.Call{Fun: left.(*ast.Ident), Lparen: p.curToken.StartPosition}
	args, ok := p.parseExprList("argument list", token.RPAREN, false)
	if !ok {
		return nil
	}
	call.Args = args
	call.Rparen = p.curToken.StartPosition
	return call
}

// parseMethodCall parses ".name(args)". Receivers are restricted to
// identifiers and method calls.
func (p *Parser) parseMethodCall(left ast.Expr) ast.Expr {
	period := p.curToken
	switch left.(type) {
	case *ast.Ident, *ast.MethodCall:
	default:
		p.errorAt(errors.E1011, period,
			fmt.Sprintf("invalid method receiver: cannot call a method on %s", describe(left)),
			"assign the value to a variable first, then call the method on the variable")
		return nil
	}
	call := &ast.MethodCall{X: left, Period: period.StartPosition}
	if !p.expectPeek("method call", token.IDENT) {
		return nil
	}
	call.Method = p.newIdent(p.curToken)
	if !p.expectPeek("method call", token.LPAREN) {
		return nil
	}
	call.Lparen = p.curToken.StartPosition
	args, ok := p.parseExprList("argument list", token.RPAREN, false)
	if !ok {
		return nil
	}
	call.Args = args
	call.Rparen = p.curToken.StartPosition
	return call
}

// parseExprList parses a comma-separated expression list. curToken is the
// opening delimiter on entry and the closing one on success.
func (p *Parser) parseExprList(context string, end token.Type, trailingComma bool) ([]ast.Expr, bool) {
	var list []ast.Expr
	if p.peekTokenIs(end) {
		p.nextToken()
		return list, true
	}
	for {
		p.nextToken()
		item := p.parseExpression(LOWEST)
		if item == nil {
			return nil, false
		}
		list = append(list, item)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
		if trailingComma && p.peekTokenIs(end) {
			break
		}
	}
	if !p.expectPeek(context, end) {
		return nil, false
	}
	return list, true
}

// parseIndexOrSlice parses "[index]" or "[low..high]" after an addressable
// expression. The first operand is parsed above range precedence so that a
// following ".." marks a slice; any other operator continues the operand
// as an ordinary index expression.
func (p *Parser) parseIndexOrSlice(left ast.Expr) ast.Expr {
	lbrack := p.curToken.StartPosition
	if p.peekTokenIs(token.RANGE) {
		p.nextToken()
		return p.parseSliceEnd(left, lbrack, nil)
	}
	p.nextToken()
	first := p.parseExpression(RANGE)
	if first == nil {
		return nil
	}
	switch {
	case p.peekTokenIs(token.RANGE):
		p.nextToken()
		return p.parseSliceEnd(left, lbrack, first)
	case !p.peekTokenIs(token.RBRACKET):
		if first = p.continueExpression(first, LOWEST); first == nil {
			return nil
		}
	}
	if !p.expectPeek("index expression", token.RBRACKET) {
		return nil
	}
	return &ast.Index{X: left, Lbrack: lbrack, Index: first, Rbrack: p.curToken.StartPosition}
}

// parseSliceEnd finishes a slice. curToken is ".." on entry.
func (p *Parser) parseSliceEnd(left ast.Expr, lbrack token.Position, low ast.Expr) ast.Expr {
	slice := &ast.Slice{X: left, Lbrack: lbrack, Low: low, Range: p.curToken.StartPosition}
	if !p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		high := p.parseExpression(LOWEST)
		if high == nil {
			return nil
		}
		slice.High = high
	}
	if !p.expectPeek("slice expression", token.RBRACKET) {
		return nil
	}
	slice.Rbrack = p.curToken.StartPosition
	return slice
}

func (p *Parser) parseArray() ast.Expr {
	array := &ast.Array{Lbrack: p.curToken.StartPosition}
	items, ok := p.parseExprList("array literal", token.RBRACKET, true)
	if !ok {
		return nil
	}
	array.Items = items
	array.Rbrack = p.curToken.StartPosition
	return array
}

// parseLambda parses "fn(params) { ... }" or "fn(params) => expr". The
// arrow body is parsed at the lowest precedence, so it extends as far
// right as possible.
func (p *Parser) parseLambda() ast.Expr {
	lambda := &ast.Lambda{Fn: p.curToken.StartPosition}
	if !p.expectPeek("lambda", token.LPAREN) {
		return nil
	}
	lambda.Lparen = p.curToken.StartPosition
	params, ok := p.parseParams()
	if !ok {
		return nil
	}
	lambda.Params = params
	lambda.Rparen = p.curToken.StartPosition
	switch {
	case p.peekTokenIs(token.ARROW):
		p.nextToken()
		lambda.Arrow = p.curToken.StartPosition
		p.nextToken()
		x := p.parseExpression(LOWEST)
		if x == nil {
			return nil
		}
		lambda.Body = &ast.ExprBody{X: x}
	case p.peekTokenIs(token.LBRACE):
		p.nextToken()
		block := p.parseBlock()
		if block == nil {
			return nil
		}
		lambda.Body = block
	default:
		p.errorAt(errors.E1001, p.peekToken,
			fmt.Sprintf("unexpected %s while parsing lambda (expected '=>' or '{')", tokenDescription(p.peekToken)), "")
		return nil
	}
	return lambda
}

// parseBody parses the body of a dialogue choice or check clause: a block
// if curToken is "{", otherwise an expression.
func (p *Parser) parseBody() ast.Body {
	if p.curTokenIs(token.LBRACE) {
		block := p.parseBlock()
		if block == nil {
			return nil
		}
		return block
	}
	x := p.parseExpression(LOWEST)
	if x == nil {
		return nil
	}
	return &ast.ExprBody{X: x}
}

// parseDialogue parses say "prompt" { "option" => body, ... }.
func (p *Parser) parseDialogue() ast.Expr {
	dialogue := &ast.Dialogue{Say: p.curToken.StartPosition}
	if !p.expectPeek("dialogue", token.STRING) {
		return nil
	}
	dialogue.Prompt = p.newString(p.curToken)
	if !p.expectPeek("dialogue", token.LBRACE) {
		return nil
	}
	lbrace := p.curToken
	dialogue.Lbrace = lbrace.StartPosition
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if p.stopped() {
			break
		}
		choice := p.parseDialogueChoice()
		if choice == nil {
			return nil
		}
		dialogue.Choices = append(dialogue.Choices, choice)
		p.nextToken()
	}
	if !p.curTokenIs(token.RBRACE) {
		p.unclosed(lbrace, "dialogue")
		return nil
	}
	dialogue.Rbrace = p.curToken.StartPosition
	return dialogue
}

// parseDialogueChoice parses one "option" => body choice and its optional
// trailing comma. A string starts a choice only when the next token is
// "=>"; otherwise it is parsed as an expression and rejected, since a
// dialogue holds nothing but choices.
func (p *Parser) parseDialogueChoice() *ast.DialogueChoice {
	if !p.curTokenIs(token.STRING) {
		p.errorAt(errors.E1013,
			p.curToken,
			fmt.Sprintf("invalid dialogue choice: expected an option string, found %s", tokenDescription(p.curToken)),
			`each choice has the form "option" => body`)
		return nil
	}
	if !p.peekTokenIs(token.ARROW) {
		x := p.parseExpression(LOWEST)
		if x == nil {
			return nil
		}
		p.errorAtNode(errors.E1013, x,
			"invalid dialogue choice: expected '=>' after the option string",
			`each choice has the form "option" => body`)
		return nil
	}
	choice := &ast.DialogueChoice{Option: p.newString(p.curToken)}
	p.nextToken()
	choice.Arrow = p.curToken.StartPosition
	p.nextToken()
	if choice.Body = p.parseBody(); choice.Body == nil {
		return nil
	}
	if p.peekTokenIs(token.COMMA) {
		p.nextToken()
	}
	return choice
}

// parseSkillCheck parses
// check skill vs difficulty { success => body [,] failure => body [,] }.
func (p *Parser) parseSkillCheck() ast.Expr {
	check := &ast.SkillCheck{Check: p.curToken.StartPosition}
	p.nextToken()
	if check.Skill = p.parseExpression(LOWEST); check.Skill == nil {
		return nil
	}
	if !p.expectPeek("skill check", token.VS) {
		return nil
	}
	check.Vs = p.curToken.StartPosition
	p.nextToken()
	if check.Difficulty = p.parseExpression(LOWEST); check.Difficulty == nil {
		return nil
	}
	if !p.expectPeek("skill check", token.LBRACE) {
		return nil
	}
	check.Lbrace = p.curToken.StartPosition
	if check.Success = p.parseCheckClause(token.SUCCESS, token.FAILURE); check.Success == nil {
		return nil
	}
	if check.Failure = p.parseCheckClause(token.FAILURE, token.SUCCESS); check.Failure == nil {
		return nil
	}
	if !p.expectPeek("skill check", token.RBRACE) {
		return nil
	}
	check.Rbrace = p.curToken.StartPosition
	return check
}

// parseCheckClause parses "keyword => body [,]" where the next token must
// be the given keyword.
func (p *Parser) parseCheckClause(keyword, other token.Type) *ast.CheckClause {
	if p.peekTokenIs(other) {
		p.errorAt(errors.E1014, p.peekToken,
			fmt.Sprintf("invalid skill check: expected '%s' clause, found '%s'", keyword.Spelling(), other.Spelling()),
			"a skill check has exactly one success clause followed by one failure clause")
		return nil
	}
	if !p.expectPeek("skill check", keyword) {
		return nil
	}
	clause := &ast.CheckClause{KeywordPos: p.curToken.StartPosition, Keyword: p.curToken.Literal}
	if !p.expectPeek("skill check", token.ARROW) {
		return nil
	}
	clause.Arrow = p.curToken.StartPosition
	p.nextToken()
	if clause.Body = p.parseBody(); clause.Body == nil {
		return nil
	}
	if p.peekTokenIs(token.COMMA) {
		p.nextToken()
	}
	return clause
}

// describe names the kind of an expression for error messages.
func describe(x ast.Expr) string {
	switch x.(type) {
	case *ast.Ident:
		return "an identifier"
	case *ast.Index:
		return "an index expression"
	case *ast.Slice:
		return "a slice expression"
	case *ast.Call:
		return "the result of a function call"
	case *ast.MethodCall:
		return "the result of a method call"
	case *ast.String, *ast.Num, *ast.Dice, *ast.Bool:
		return "a literal"
	case *ast.Array:
		return "an array literal"
	case *ast.Paren:
		return "a grouped expression"
	case *ast.Infix, *ast.Has:
		return "a binary expression"
	case *ast.Prefix:
		return "a unary expression"
	case *ast.Lambda:
		return "a lambda"
	case *ast.Dialogue:
		return "a dialogue"
	case *ast.SkillCheck:
		return "a skill check"
	}
	return "this expression"
}
