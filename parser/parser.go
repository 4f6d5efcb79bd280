// Package parser builds the abstract syntax tree for QuestLang source.
//
// Statements and declarations are parsed by recursive descent and
// expressions by a Pratt parser. A syntax error does not stop the parse:
// the parser records it, skips ahead to the next statement boundary and
// leaves an *ast.BadStmt in place of the statement it could not parse.
package parser

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/questlang/questlang/ast"
	"github.com/questlang/questlang/errors"
	"github.com/questlang/questlang/internal/lexer"
	"github.com/questlang/questlang/internal/token"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// TokenStream is the pull-based source of tokens consumed by the parser.
// *lexer.Lexer implements it.
type TokenStream interface {
	Next() (token.Token, error)
	Filename() string
	GetLineText(tok token.Token) string
}

// statementKeywords are the tokens that begin a statement. Error recovery
// resumes at one of these when it is found at the nesting level of the
// statement list being recovered.
var statementKeywords = map[token.Type]bool{
	token.VAR:       true,
	token.FN:        true,
	token.HERO:      true,
	token.ENEMY:     true,
	token.ITEM:      true,
	token.QUEST:     true,
	token.PHASE:     true,
	token.ENCOUNTER: true,
	token.GIVE:      true,
	token.TAKE:      true,
	token.SPAWN:     true,
	token.STRIKE:    true,
	token.IF:        true,
	token.WHILE:     true,
	token.FOR:       true,
	token.RETURN:    true,
}

// Parse the provided input as QuestLang source code and return the AST.
// This is a shorthand way to create a Lexer and Parser and then call Parse
// on that.
func Parse(ctx context.Context, input string, options ...Option) (*ast.SourceFile, error) {
	// Resolve the filename first so that lexer errors in the first tokens
	// carry it.
	var probe Parser
	for _, opt := range options {
		opt(&probe)
	}
	l := lexer.New(input, lexer.WithFile(probe.filename))
	return New(l, options...).Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in errors.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// WithMaxErrors sets the number of errors collected before the parser
// gives up. The default is MaxErrors. A value of zero or less removes the
// limit.
func WithMaxErrors(n int) Option {
	return func(p *Parser) {
		if n < 0 {
			n = 0
		}
		p.maxErrors = n
	}
}

// WithLogger sets the logger that receives error recovery events at debug
// level. The default discards them.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// MaxErrors is the default maximum number of errors to collect before
// stopping.
const MaxErrors = 10

// Parser object
type Parser struct {
	// the Context supplied in the Parse() call
	ctx context.Context

	// l supplies the tokens
	l TokenStream

	// prevToken holds the previous token, which we already processed.
	prevToken token.Token

	// curToken holds the current token from the lexer.
	curToken token.Token

	// peekToken holds the next token from the lexer.
	peekToken token.Token

	// parsing errors collected during parsing
	errors []ParserError

	// lexFailed is set once the lexer reports an error. The token stream
	// ends there and errors caused by the truncation are not reported.
	lexFailed bool

	// lexStart and lexEnd span the input the lexer rejected.
	lexStart, lexEnd token.Position

	// capped is set once maxErrors has been reached. Zero means no limit.
	capped bool

	// openBraces counts the "{" tokens not yet closed, as of curToken.
	openBraces int

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn

	// The filename of the input
	filename string

	// Current recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int

	maxErrors int

	logger zerolog.Logger
}

// New returns a Parser for the program provided by the given token stream.
func New(l TokenStream, options ...Option) *Parser {
	p := &Parser{
		l:              l,
		prefixParseFns: map[token.Type]prefixParseFn{},
		infixParseFns:  map[token.Type]infixParseFn{},
		maxDepth:       DefaultMaxDepth,
		maxErrors:      MaxErrors,
		logger:         zerolog.Nop(),
	}
	for _, opt := range options {
		opt(p)
	}

	p.registerPrefix(token.CHECK, p.parseSkillCheck)
	p.registerPrefix(token.DICE, p.parseDice)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.FN, p.parseLambda)
	p.registerPrefix(token.IDENT, p.parseIdent)
	p.registerPrefix(token.LBRACKET, p.parseArray)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpr)
	p.registerPrefix(token.MINUS, p.parsePrefixExpr)
	p.registerPrefix(token.NOT, p.parsePrefixExpr)
	p.registerPrefix(token.NUMBER, p.parseNumber)
	p.registerPrefix(token.SAY, p.parseDialogue)
	p.registerPrefix(token.STRING, p.parseString)
	p.registerPrefix(token.TRUE, p.parseBoolean)

	p.registerInfix(token.AND, p.parseInfixExpr)
	p.registerInfix(token.ASTERISK, p.parseInfixExpr)
	p.registerInfix(token.EQ, p.parseInfixExpr)
	p.registerInfix(token.GT_EQUALS, p.parseInfixExpr)
	p.registerInfix(token.GT, p.parseInfixExpr)
	p.registerInfix(token.HAS, p.parseHas)
	p.registerInfix(token.LBRACKET, p.parseIndexOrSlice)
	p.registerInfix(token.LPAREN, p.parseCall)
	p.registerInfix(token.LT_EQUALS, p.parseInfixExpr)
	p.registerInfix(token.LT, p.parseInfixExpr)
	p.registerInfix(token.MINUS, p.parseInfixExpr)
	p.registerInfix(token.MOD, p.parseInfixExpr)
	p.registerInfix(token.NOT_EQ, p.parseInfixExpr)
	p.registerInfix(token.OR, p.parseInfixExpr)
	p.registerInfix(token.PERIOD, p.parseMethodCall)
	p.registerInfix(token.PLUS, p.parseInfixExpr)
	p.registerInfix(token.RANGE, p.parseInfixExpr)
	p.registerInfix(token.SLASH, p.parseInfixExpr)

	// Prime the token pump
	p.nextToken() // makes curToken=<empty>, peekToken=token[0]
	p.nextToken() // makes curToken=token[0], peekToken=token[1]
	return p
}

// nextToken moves to the next token from the lexer, updating all of
// prevToken, curToken, and peekToken.
func (p *Parser) nextToken() {
	p.prevToken = p.curToken
	p.curToken = p.peekToken
	switch p.curToken.Type {
	case token.LBRACE:
		p.openBraces++
	case token.RBRACE:
		if p.openBraces > 0 {
			p.openBraces--
		}
	}
	if p.lexFailed {
		end := p.curToken.EndPosition
		p.peekToken = token.Token{Type: token.EOF, StartPosition: end, EndPosition: end}
		return
	}
	tok, err := p.l.Next()
	if err != nil {
		p.lexerError(tok, err)
		tok = token.Token{Type: token.EOF, StartPosition: tok.StartPosition, EndPosition: tok.StartPosition}
	}
	p.peekToken = tok
}

// lexerError records a lexer failure. All lexer errors end the token
// stream.
func (p *Parser) lexerError(tok token.Token, err error) {
	var le *lexer.Error
	if stderrors.As(err, &le) {
		p.addError(NewLexError(le, p.file(), p.l.GetLineText(tok)))
	} else {
		p.addError(NewSyntaxError(ErrorOpts{
			Cause:         err,
			File:          p.file(),
			StartPosition: tok.StartPosition,
			EndPosition:   tok.EndPosition,
			SourceCode:    p.l.GetLineText(tok),
		}))
	}
	p.lexFailed = true
	p.lexStart, p.lexEnd = tok.StartPosition, tok.EndPosition
	p.logger.Debug().
		Str("file", p.file()).
		Int("line", tok.StartPosition.LineNumber()).
		Err(err).
		Msg("lexing stopped")
}

// Parse the program that is provided via the token stream.
// It returns the AST together with any errors encountered. On syntax
// errors the AST is partial: statements that failed are represented by
// *ast.BadStmt nodes. If ctx is cancelled, Parse returns nil and the
// context's error.
func (p *Parser) Parse(ctx context.Context) (*ast.SourceFile, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	p.ctx = ctx
	stmts := p.parseStatements(0)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	eof := p.curToken.EndPosition
	if p.lexFailed {
		stmts = p.coverUnlexed(stmts)
		if eof.Before(p.lexEnd) {
			eof = p.lexEnd
		}
	}
	file := &ast.SourceFile{Stmts: stmts, EOF: eof}
	if len(p.errors) > 0 {
		return file, NewErrors(p.errors)
	}
	return file, nil
}

// coverUnlexed makes the last top-level placeholder span the input the
// lexer rejected, appending a new one if the last statement parsed cleanly.
func (p *Parser) coverUnlexed(stmts []ast.Stmt) []ast.Stmt {
	if n := len(stmts); n > 0 {
		if bad, ok := stmts[n-1].(*ast.BadStmt); ok {
			if bad.To.Before(p.lexEnd) {
				bad.To = p.lexEnd
			}
			return stmts
		}
	}
	return append(stmts, &ast.BadStmt{From: p.lexStart, To: p.lexEnd})
}

// registerPrefix registers a function for handling a prefix-based expression.
func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

// registerInfix registers a function for handling an infix-based expression.
func (p *Parser) registerInfix(tokenType token.Type, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) file() string {
	if p.filename != "" {
		return p.filename
	}
	return p.l.Filename()
}

// addError appends an error to the errors slice.
func (p *Parser) addError(err ParserError) {
	if p.lexFailed {
		return
	}
	if p.limitReached() {
		if !p.capped {
			p.capped = true
			p.logger.Debug().Str("file", p.file()).Int("max", p.maxErrors).Msg("error limit reached")
		}
		return
	}
	p.errors = append(p.errors, err)
}

// stopped reports whether parsing should end early, either because the
// error limit was reached or the context was cancelled.
func (p *Parser) stopped() bool {
	if p.limitReached() {
		return true
	}
	if p.ctx == nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		return true
	default:
		return false
	}
}

// limitReached reports whether the error limit, if any, has been reached.
func (p *Parser) limitReached() bool {
	return p.maxErrors > 0 && len(p.errors) >= p.maxErrors
}

// enter increments the nesting depth, reporting an error when it exceeds
// the maximum. Callers must call leave when done, whatever the result.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > p.maxDepth {
		p.errorAt(errors.E1009, p.curToken,
			fmt.Sprintf("maximum nesting depth of %d exceeded", p.maxDepth), "")
		return false
	}
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// synchronize skips tokens after a failed statement that began at start,
// stopping at the next statement boundary of the list at the given brace
// level. It returns the placeholder covering the skipped region.
func (p *Parser) synchronize(start token.Token, level int) *ast.BadStmt {
	if p.curToken.StartPosition == start.StartPosition && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
	skipped := 0
	for !p.atBoundary(level) {
		p.nextToken()
		skipped++
	}
	to := p.prevToken.EndPosition
	if to.Char < start.EndPosition.Char {
		to = start.EndPosition
	}
	p.logger.Debug().
		Str("file", p.file()).
		Int("line", start.StartPosition.LineNumber()).
		Int("skipped", skipped).
		Str("resume", string(p.curToken.Type)).
		Msg("recovered from syntax error")
	return &ast.BadStmt{From: start.StartPosition, To: to}
}

// atBoundary reports whether curToken may begin the next statement of a
// statement list at the given brace level, or closes that list.
func (p *Parser) atBoundary(level int) bool {
	switch {
	case p.curTokenIs(token.EOF):
		return true
	case p.curTokenIs(token.RBRACE):
		return p.openBraces == level-1
	case statementKeywords[p.curToken.Type]:
		return p.openBraces == level
	}
	return false
}

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

// expectPeek advances if the next token has the given type and otherwise
// records an error. The context describes the construct being parsed.
func (p *Parser) expectPeek(context string, t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(context, t, p.peekToken)
	return false
}

// peekError raises an error if the next token is not the expected type.
func (p *Parser) peekError(context string, expected token.Type, got token.Token) {
	code := errors.E1001
	switch {
	case expected == token.IDENT:
		code = errors.E1006
	case got.Type == token.EOF && isCloser(expected):
		code = errors.E1007
	}
	hint := ""
	if expected.IsKeyword() && got.Type == token.IDENT {
		hint = errors.FormatSuggestions(errors.SuggestSimilar(got.Literal, []string{expected.Spelling()}))
	}
	p.errorAt(code, got, fmt.Sprintf("unexpected %s while parsing %s (expected %s)",
		tokenDescription(got), context, tokenTypeDescription(expected)), hint)
}

func isCloser(t token.Type) bool {
	return t == token.RBRACE || t == token.RPAREN || t == token.RBRACKET
}

// errorAt records a syntax error spanning tok.
func (p *Parser) errorAt(code errors.ErrorCode, tok token.Token, msg, hint string) {
	p.addError(NewSyntaxError(ErrorOpts{
		Code:          code,
		Message:       msg,
		Hint:          hint,
		File:          p.file(),
		StartPosition: tok.StartPosition,
		EndPosition:   tok.EndPosition,
		SourceCode:    p.l.GetLineText(tok),
	}))
}

// errorAtNode records a syntax error spanning node.
func (p *Parser) errorAtNode(code errors.ErrorCode, node ast.Node, msg, hint string) {
	p.errorAt(code, token.Token{StartPosition: node.Pos(), EndPosition: node.End()}, msg, hint)
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	switch t.Type {
	case token.EOF, token.RBRACE, token.RPAREN, token.RBRACKET, token.COMMA:
		p.errorAt(errors.E1004, t, fmt.Sprintf("expected an expression, found %s", tokenDescription(t)), "")
	case token.PHASE:
		p.errorAt(errors.E1003, t, "a phase can only appear directly inside a quest", "")
	default:
		p.errorAt(errors.E1003, t, fmt.Sprintf("invalid syntax (unexpected %s)", tokenDescription(t)), "")
	}
}

// unclosed reports a "{" that was never closed.
func (p *Parser) unclosed(open token.Token, context string) {
	p.errorAt(errors.E1007, open,
		fmt.Sprintf("unclosed '%s' in %s", open.Literal, context),
		fmt.Sprintf("expected a matching '}' before %s", tokenDescription(p.curToken)))
}
