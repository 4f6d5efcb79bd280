package parser

import (
	"fmt"

	"github.com/questlang/questlang/ast"
	"github.com/questlang/questlang/errors"
	"github.com/questlang/questlang/internal/token"
)

// parseStatements parses statements until end of input or, for a nested
// list, the "}" closing it. level is the brace depth of the list: 0 at top
// level, otherwise the depth while the list's "{" is the current token.
// A statement that fails is replaced by an *ast.BadStmt and parsing resumes
// at the next boundary.
func (p *Parser) parseStatements(level int) []ast.Stmt {
	var stmts []ast.Stmt
	for !p.curTokenIs(token.EOF) && !(level > 0 && p.curTokenIs(token.RBRACE)) {
		if p.stopped() {
			break
		}
		start := p.curToken
		stmt := p.parseStatement()
		if stmt == nil {
			stmts = append(stmts, p.synchronize(start, level))
			continue
		}
		stmts = append(stmts, stmt)
		p.nextToken()
	}
	return stmts
}

// parseStatement parses the statement beginning at curToken and leaves
// curToken on its last token. It returns nil if and only if an error was
// recorded.
func (p *Parser) parseStatement() ast.Stmt {
	defer p.leave()
	if !p.enter() {
		return nil
	}
	var stmt ast.Stmt
	switch p.curToken.Type {
	case token.VAR:
		stmt = p.parseVar()
	case token.FN:
		if !p.peekTokenIs(token.IDENT) {
			return p.parseExpressionStatement()
		}
		stmt = p.parseFuncDef()
	case token.HERO, token.ENEMY, token.ITEM:
		stmt = p.parseEntity()
	case token.QUEST:
		stmt = p.parseQuest()
	case token.ENCOUNTER:
		stmt = p.parseEncounter()
	case token.GIVE:
		stmt = p.parseGive()
	case token.TAKE:
		stmt = p.parseTake()
	case token.SPAWN:
		stmt = p.parseSpawn()
	case token.STRIKE:
		stmt = p.parseStrike()
	case token.IF:
		stmt = p.parseIf()
	case token.WHILE:
		stmt = p.parseWhile()
	case token.FOR:
		stmt = p.parseForIn()
	case token.RETURN:
		stmt = p.parseReturn()
	case token.LBRACE:
		if block := p.parseBlock(); block != nil {
			stmt = block
		}
	case token.RBRACE:
		p.errorAt(errors.E1001, p.curToken, "unexpected '}' (no open block to close)", "")
	case token.IDENT:
		if p.peekTokenIs(token.ASSIGN) {
			stmt = p.parseAssign()
		} else {
			stmt = p.parseExpressionStatement()
		}
	default:
		stmt = p.parseExpressionStatement()
	}
	return stmt
}

func (p *Parser) parseVar() ast.Stmt {
	stmt := &ast.Var{VarPos: p.curToken.StartPosition}
	if !p.expectPeek("variable declaration", token.IDENT) {
		return nil
	}
	stmt.Name = p.newIdent(p.curToken)
	if !p.expectPeek("variable declaration", token.ASSIGN) {
		return nil
	}
	p.nextToken()
	if stmt.Value = p.parseExpression(LOWEST); stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseAssign() ast.Stmt {
	stmt := &ast.Assign{Name: p.newIdent(p.curToken)}
	p.nextToken()
	stmt.TokPos = p.curToken.StartPosition
	p.nextToken()
	if stmt.Value = p.parseExpression(LOWEST); stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Stmt {
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.errorAtNode(errors.E1005, expr,
			fmt.Sprintf("cannot assign to %s", describe(expr)),
			"only a plain identifier can be reassigned")
		return nil
	}
	return &ast.ExprStmt{X: expr}
}

func (p *Parser) parseFuncDef() ast.Stmt {
	stmt := &ast.FuncDef{Fn: p.curToken.StartPosition}
	p.nextToken()
	stmt.Name = p.newIdent(p.curToken)
	if !p.expectPeek("function definition", token.LPAREN) {
		return nil
	}
	stmt.Lparen = p.curToken.StartPosition
	params, ok := p.parseParams()
	if !ok {
		return nil
	}
	stmt.Params = params
	stmt.Rparen = p.curToken.StartPosition
	if !p.expectPeek("function definition", token.LBRACE) {
		return nil
	}
	if stmt.Body = p.parseBlock(); stmt.Body == nil {
		return nil
	}
	return stmt
}

// parseParams parses an identifier list. curToken is "(" on entry and ")"
// on success.
func (p *Parser) parseParams() ([]*ast.Ident, bool) {
	var params []*ast.Ident
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}
	for {
		if !p.expectPeek("parameter list", token.IDENT) {
			return nil, false
		}
		params = append(params, p.newIdent(p.curToken))
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek("parameter list", token.RPAREN) {
		return nil, false
	}
	return params, true
}

// parseBlock parses "{ statements }". curToken is "{" on entry and the
// closing "}" on success.
func (p *Parser) parseBlock() *ast.Block {
	lbrace := p.curToken
	level := p.openBraces
	block := &ast.Block{Lbrace: lbrace.StartPosition}
	p.nextToken()
	block.Stmts = p.parseStatements(level)
	if !p.curTokenIs(token.RBRACE) {
		p.unclosed(lbrace, "block")
		return nil
	}
	block.Rbrace = p.curToken.StartPosition
	return block
}

func (p *Parser) parseEntity() ast.Stmt {
	keyword := p.curToken
	context := keyword.Literal + " declaration"
	if !p.expectPeek(context, token.STRING) {
		return nil
	}
	entity := ast.Entity{KeywordPos: keyword.StartPosition, Name: p.newString(p.curToken)}
	if !p.expectPeek(context, token.LBRACE) {
		return nil
	}
	if entity.Stats = p.parseStatBlock(); entity.Stats == nil {
		return nil
	}
	switch keyword.Type {
	case token.HERO:
		return &ast.HeroDecl{Entity: entity}
	case token.ENEMY:
		return &ast.EnemyDecl{Entity: entity}
	default:
		return &ast.ItemDecl{Entity: entity}
	}
}

// parseStatBlock parses "{ name: value, ... }" with an optional trailing
// comma. curToken is "{" on entry and "}" on success.
func (p *Parser) parseStatBlock() *ast.StatBlock {
	block := &ast.StatBlock{Lbrace: p.curToken.StartPosition}
	for !p.peekTokenIs(token.RBRACE) {
		if !p.expectPeek("stat block", token.IDENT) {
			return nil
		}
		entry := &ast.StatEntry{Key: p.newIdent(p.curToken)}
		if !p.expectPeek("stat entry", token.COLON) {
			return nil
		}
		entry.Colon = p.curToken.StartPosition
		p.nextToken()
		if entry.Value = p.parseExpression(LOWEST); entry.Value == nil {
			return nil
		}
		block.Entries = append(block.Entries, entry)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek("stat block", token.RBRACE) {
		return nil
	}
	block.Rbrace = p.curToken.StartPosition
	return block
}

func (p *Parser) parseQuest() ast.Stmt {
	stmt := &ast.QuestDecl{Quest: p.curToken.StartPosition}
	if !p.expectPeek("quest declaration", token.STRING) {
		return nil
	}
	stmt.Name = p.newString(p.curToken)
	if !p.expectPeek("quest declaration", token.LBRACE) {
		return nil
	}
	lbrace := p.curToken
	level := p.openBraces
	stmt.Lbrace = lbrace.StartPosition
	p.nextToken()
	for !p.curTokenIs(token.EOF) && !p.curTokenIs(token.RBRACE) {
		if p.stopped() {
			break
		}
		start := p.curToken
		var item ast.Node
		if p.curTokenIs(token.PHASE) {
			if phase := p.parsePhase(); phase != nil {
				item = phase
			}
		} else if s := p.parseStatement(); s != nil {
			item = s
		}
		if item == nil {
			stmt.Items = append(stmt.Items, p.synchronize(start, level))
			continue
		}
		stmt.Items = append(stmt.Items, item)
		p.nextToken()
	}
	if !p.curTokenIs(token.RBRACE) {
		p.unclosed(lbrace, "quest")
		return nil
	}
	stmt.Rbrace = p.curToken.StartPosition
	return stmt
}

func (p *Parser) parsePhase() *ast.Phase {
	phase := &ast.Phase{PhasePos: p.curToken.StartPosition}
	if !p.expectPeek("phase", token.STRING) {
		return nil
	}
	phase.Name = p.newString(p.curToken)
	if !p.expectPeek("phase", token.LBRACE) {
		return nil
	}
	if phase.Body = p.parseBlock(); phase.Body == nil {
		return nil
	}
	return phase
}

func (p *Parser) parseEncounter() ast.Stmt {
	stmt := &ast.Encounter{Encounter: p.curToken.StartPosition}
	if !p.expectPeek("encounter", token.STRING) {
		return nil
	}
	stmt.Name = p.newString(p.curToken)
	if !p.expectPeek("encounter", token.LBRACE) {
		return nil
	}
	if stmt.Body = p.parseBlock(); stmt.Body == nil {
		return nil
	}
	return stmt
}

// parseOperands parses "expr keyword expr" following the current keyword
// token, as used by give, take and strike.
func (p *Parser) parseOperands(context string, sep token.Type) (ast.Expr, token.Position, ast.Expr, bool) {
	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil, token.NoPos, nil, false
	}
	if !p.expectPeek(context, sep) {
		return nil, token.NoPos, nil, false
	}
	sepPos := p.curToken.StartPosition
	p.nextToken()
	second := p.parseExpression(LOWEST)
	if second == nil {
		return nil, token.NoPos, nil, false
	}
	return first, sepPos, second, true
}

func (p *Parser) parseGive() ast.Stmt {
	stmt := &ast.Give{Give: p.curToken.StartPosition}
	var ok bool
	if stmt.Item, stmt.To, stmt.Target, ok = p.parseOperands("give statement", token.TO); !ok {
		return nil
	}
	return stmt
}

func (p *Parser) parseTake() ast.Stmt {
	stmt := &ast.Take{Take: p.curToken.StartPosition}
	var ok bool
	if stmt.Item, stmt.From, stmt.Source, ok = p.parseOperands("take statement", token.FROM); !ok {
		return nil
	}
	return stmt
}

func (p *Parser) parseStrike() ast.Stmt {
	stmt := &ast.Strike{Strike: p.curToken.StartPosition}
	var ok bool
	if stmt.Target, stmt.With, stmt.Weapon, ok = p.parseOperands("strike statement", token.WITH); !ok {
		return nil
	}
	return stmt
}

func (p *Parser) parseSpawn() ast.Stmt {
	stmt := &ast.Spawn{Spawn: p.curToken.StartPosition}
	if !p.expectPeek("spawn statement", token.STRING) {
		return nil
	}
	stmt.Name = p.newString(p.curToken)
	if !p.peekTokenIs(token.WITH) {
		return stmt
	}
	p.nextToken()
	stmt.With = p.curToken.StartPosition
	if !p.expectPeek("spawn statement", token.LBRACE) {
		return nil
	}
	if stmt.Overrides = p.parseStatBlock(); stmt.Overrides == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseIf() ast.Stmt {
	stmt := &ast.If{If: p.curToken.StartPosition}
	p.nextToken()
	if stmt.Cond = p.parseExpression(LOWEST); stmt.Cond == nil {
		return nil
	}
	if !p.expectPeek("if statement", token.LBRACE) {
		return nil
	}
	if stmt.Consequence = p.parseBlock(); stmt.Consequence == nil {
		return nil
	}
	if !p.peekTokenIs(token.ELSE) {
		return stmt
	}
	p.nextToken()
	stmt.Else = p.curToken.StartPosition
	switch {
	case p.peekTokenIs(token.IF):
		p.nextToken()
		if stmt.Alternative = p.parseIf(); stmt.Alternative == nil {
			return nil
		}
	case p.peekTokenIs(token.LBRACE):
		p.nextToken()
		block := p.parseBlock()
		if block == nil {
			return nil
		}
		stmt.Alternative = block
	default:
		p.errorAt(errors.E1001, p.peekToken,
			fmt.Sprintf("unexpected %s after 'else' (expected 'if' or '{')", tokenDescription(p.peekToken)), "")
		return nil
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Stmt {
	stmt := &ast.While{While: p.curToken.StartPosition}
	p.nextToken()
	if stmt.Cond = p.parseExpression(LOWEST); stmt.Cond == nil {
		return nil
	}
	if !p.expectPeek("while statement", token.LBRACE) {
		return nil
	}
	if stmt.Body = p.parseBlock(); stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseForIn() ast.Stmt {
	stmt := &ast.ForIn{For: p.curToken.StartPosition}
	if !p.expectPeek("for statement", token.IDENT) {
		return nil
	}
	stmt.Var = p.newIdent(p.curToken)
	if !p.expectPeek("for statement", token.IN) {
		return nil
	}
	stmt.In = p.curToken.StartPosition
	p.nextToken()
	if stmt.Iterable = p.parseExpression(LOWEST); stmt.Iterable == nil {
		return nil
	}
	if !p.expectPeek("for statement", token.LBRACE) {
		return nil
	}
	if stmt.Body = p.parseBlock(); stmt.Body == nil {
		return nil
	}
	return stmt
}

// parseReturn parses "return [expr]". The value is only parsed when the
// next token can begin an expression, so a following statement is never
// taken as the return value.
func (p *Parser) parseReturn() ast.Stmt {
	stmt := &ast.Return{Return: p.curToken.StartPosition}
	if _, ok := p.prefixParseFns[p.peekToken.Type]; !ok {
		return stmt
	}
	p.nextToken()
	if stmt.Value = p.parseExpression(LOWEST); stmt.Value == nil {
		return nil
	}
	return stmt
}
