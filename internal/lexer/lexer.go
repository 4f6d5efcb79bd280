// Package lexer converts source text into a stream of tokens.
//
// The lexer is pull based: each call to Next produces one token, skipping
// whitespace, line continuations (a backslash immediately followed by a
// newline) and comments along the way. Lexing stops at the first error.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/questlang/questlang/errors"
	"github.com/questlang/questlang/internal/token"
)

// Error is returned when the input contains text that cannot be tokenized.
type Error struct {
	Code    errors.ErrorCode
	Message string
	Pos     token.Position // start of the offending text
	End     token.Position // position after the offending text
}

func (e *Error) Error() string {
	return e.Message
}

// Lexer holds our object-state.
type Lexer struct {
	// The input being tokenized
	input string

	// Byte offset of the next character to read
	pos int

	// 0-indexed line number of pos
	line int

	// Byte offset of the start of the current line
	lineStart int

	// The filename of the input, if any
	file string

	// Set once an error has been returned; Next keeps returning it
	err *Error
}

// Option is a configuration function for a Lexer.
type Option func(*Lexer)

// WithFile sets the file name for the Lexer.
func WithFile(file string) Option {
	return func(l *Lexer) {
		l.file = file
	}
}

// New creates a Lexer instance from the given input.
func New(input string, options ...Option) *Lexer {
	l := &Lexer{input: input}
	for _, opt := range options {
		opt(l)
	}
	return l
}

// Tokenize lexes the entire input. The returned slice always ends with an
// EOF token unless an error occurred, in which case the tokens lexed before
// the error are returned along with it.
func Tokenize(input string, options ...Option) ([]token.Token, error) {
	l := New(input, options...)
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// Filename returns the name of the file being lexed.
func (l *Lexer) Filename() string {
	return l.file
}

// SetFilename sets the name of the file being lexed.
func (l *Lexer) SetFilename(file string) {
	l.file = file
}

// Input returns the complete source text.
func (l *Lexer) Input() string {
	return l.input
}

// Position returns the current position of the lexer.
func (l *Lexer) Position() token.Position {
	return l.positionAt(l.pos)
}

// State captures the lexer's position so that it can be restored later.
type State struct {
	pos       int
	line      int
	lineStart int
}

// SaveState returns the current lexer state.
func (l *Lexer) SaveState() State {
	return State{pos: l.pos, line: l.line, lineStart: l.lineStart}
}

// RestoreState rewinds the lexer to a previously saved state.
func (l *Lexer) RestoreState(s State) {
	l.pos = s.pos
	l.line = s.line
	l.lineStart = s.lineStart
	l.err = nil
}

// Next returns the next token from the input. After the end of the input
// is reached, every call returns an EOF token.
func (l *Lexer) Next() (token.Token, error) {
	if l.err != nil {
		return l.illegal(l.err.Pos, l.err.End), l.err
	}
	if err := l.skipTrivia(); err != nil {
		return l.fail(err)
	}
	start := l.pos
	if start >= len(l.input) {
		pos := l.positionAt(start)
		return token.Token{Type: token.EOF, StartPosition: pos, EndPosition: pos}, nil
	}
	ch := l.input[start]
	switch {
	case ch == '"':
		return l.readString()
	case isDigit(ch):
		return l.readNumber()
	case isLetter(ch):
		return l.readIdentifier()
	}
	if start+1 < len(l.input) {
		if typ, ok := twoCharOperators[l.input[start:start+2]]; ok {
			return l.emit(typ, start, start+2, l.input[start:start+2]), nil
		}
	}
	if typ, ok := oneCharOperators[ch]; ok {
		return l.emit(typ, start, start+1, string(ch)), nil
	}
	r, size := utf8.DecodeRuneInString(l.input[start:])
	return l.fail(&Error{
		Code:    errors.E1012,
		Message: fmt.Sprintf("unexpected character: %q", r),
		Pos:     l.positionAt(start),
		End:     l.positionAt(start + size),
	})
}

var twoCharOperators = map[string]token.Type{
	"==": token.EQ,
	"!=": token.NOT_EQ,
	"<=": token.LT_EQUALS,
	">=": token.GT_EQUALS,
	"=>": token.ARROW,
	"..": token.RANGE,
}

var oneCharOperators = map[byte]token.Type{
	'{': token.LBRACE,
	'}': token.RBRACE,
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACKET,
	']': token.RBRACKET,
	',': token.COMMA,
	':': token.COLON,
	'.': token.PERIOD,
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.ASTERISK,
	'/': token.SLASH,
	'%': token.MOD,
	'<': token.LT,
	'>': token.GT,
	'=': token.ASSIGN,
}

// skipTrivia consumes whitespace, line continuations and comments.
func (l *Lexer) skipTrivia() *Error {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case isWhitespace(ch):
			l.advanceTo(l.pos + 1)
		case ch == '\\' && l.lineBreakAt(l.pos+1) > 0:
			l.advanceTo(l.pos + 1 + l.lineBreakAt(l.pos+1))
		case strings.HasPrefix(l.input[l.pos:], "//"):
			l.skipLineComment()
		case strings.HasPrefix(l.input[l.pos:], "/*"):
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// skipLineComment consumes a // comment. A backslash escapes the character
// that follows it, so a backslash at the end of a line continues the
// comment onto the next line.
func (l *Lexer) skipLineComment() {
	i := l.pos + 2
	for i < len(l.input) {
		ch := l.input[i]
		if ch == '\n' {
			break
		}
		if ch == '\\' {
			if n := l.lineBreakAt(i + 1); n > 0 {
				i += 1 + n
				continue
			}
			if i+1 < len(l.input) {
				i += 2
				continue
			}
		}
		i++
	}
	l.advanceTo(i)
}

// skipBlockComment consumes a /* ... */ comment, which ends at the first
// "*/" following the opening delimiter.
func (l *Lexer) skipBlockComment() *Error {
	start := l.pos
	end := strings.Index(l.input[start+2:], "*/")
	if end < 0 {
		return &Error{
			Code:    errors.E1010,
			Message: "unterminated block comment",
			Pos:     l.positionAt(start),
			End:     l.positionAt(start + 2),
		}
	}
	l.advanceTo(start + 2 + end + 2)
	return nil
}

// readString reads a double-quoted string. There are no escape sequences,
// so the literal ends at the next double quote, which may be on a later line.
func (l *Lexer) readString() (token.Token, error) {
	start := l.pos
	end := strings.IndexByte(l.input[start+1:], '"')
	if end < 0 {
		return l.fail(&Error{
			Code:    errors.E1002,
			Message: "unterminated string literal",
			Pos:     l.positionAt(start),
			End:     l.positionAt(start + 1),
		})
	}
	stop := start + 1 + end + 1
	return l.emit(token.STRING, start, stop, l.input[start+1:stop-1]), nil
}

// readNumber reads a number or a dice literal. Dice literals (2d6) share
// their digit prefix with numbers, so they are tried first.
func (l *Lexer) readNumber() (token.Token, error) {
	start := l.pos
	i := l.scanDigits(start)
	if i+1 < len(l.input) && l.input[i] == 'd' && isDigit(l.input[i+1]) {
		stop := l.scanDigits(i + 1)
		return l.emit(token.DICE, start, stop, l.input[start:stop]), nil
	}
	if i+1 < len(l.input) && l.input[i] == '.' && isDigit(l.input[i+1]) {
		i = l.scanDigits(i + 1)
	}
	return l.emit(token.NUMBER, start, i, l.input[start:i]), nil
}

func (l *Lexer) readIdentifier() (token.Token, error) {
	start := l.pos
	i := start + 1
	for i < len(l.input) && (isLetter(l.input[i]) || isDigit(l.input[i])) {
		i++
	}
	lit := l.input[start:i]
	return l.emit(token.LookupIdentifier(lit), start, i, lit), nil
}

func (l *Lexer) scanDigits(i int) int {
	for i < len(l.input) && isDigit(l.input[i]) {
		i++
	}
	return i
}

// emit builds a token spanning input[start:stop] and moves past it.
func (l *Lexer) emit(typ token.Type, start, stop int, literal string) token.Token {
	startPos := l.positionAt(start)
	l.advanceTo(stop)
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: startPos,
		EndPosition:   l.positionAt(stop),
	}
}

func (l *Lexer) fail(err *Error) (token.Token, error) {
	l.err = err
	return l.illegal(err.Pos, err.End), err
}

func (l *Lexer) illegal(start, end token.Position) token.Token {
	lit := ""
	if start.Char < end.Char && end.Char <= len(l.input) {
		lit = l.input[start.Char:end.Char]
	}
	return token.Token{Type: token.ILLEGAL, Literal: lit, StartPosition: start, EndPosition: end}
}

// advanceTo moves the read position forward to i, tracking line starts.
func (l *Lexer) advanceTo(i int) {
	for ; l.pos < i; l.pos++ {
		if l.input[l.pos] == '\n' {
			l.line++
			l.lineStart = l.pos + 1
		}
	}
}

// positionAt returns the position of byte offset i, which must not be
// before the current read position's line.
func (l *Lexer) positionAt(i int) token.Position {
	line, lineStart := l.line, l.lineStart
	for j := l.pos; j < i && j < len(l.input); j++ {
		if l.input[j] == '\n' {
			line++
			lineStart = j + 1
		}
	}
	return token.Position{
		Char:      i,
		LineStart: lineStart,
		Line:      line,
		Column:    i - lineStart,
		File:      l.file,
	}
}

// lineBreakAt returns the length of the line break starting at i (1 for
// "\n", 2 for "\r\n") or 0 if there is none.
func (l *Lexer) lineBreakAt(i int) int {
	if i < len(l.input) && l.input[i] == '\n' {
		return 1
	}
	if i+1 < len(l.input) && l.input[i] == '\r' && l.input[i+1] == '\n' {
		return 2
	}
	return 0
}

// GetLineText returns the full line of source text containing the token.
// For an EOF token on an empty final line, the previous line is returned.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start > len(l.input) {
		return ""
	}
	if tok.Type == token.EOF && start == len(l.input) && start > 0 {
		prev := strings.LastIndexByte(l.input[:start-1], '\n')
		return strings.TrimSuffix(l.input[prev+1:start-1], "\r")
	}
	end := strings.IndexByte(l.input[start:], '\n')
	if end < 0 {
		return strings.TrimSuffix(l.input[start:], "\r")
	}
	return strings.TrimSuffix(l.input[start:start+end], "\r")
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}
