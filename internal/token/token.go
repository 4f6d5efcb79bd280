// Package token defines language keywords and tokens used when lexing source code.
package token

import "sort"

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char      int    // byte offset within the file
	LineStart int    // byte offset of the start of the current line
	Line      int    // 0-indexed line number
	Column    int    // 0-indexed column number
	File      string // filename
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n bytes.
// Used for computing End positions from a start position.
// Note: This assumes the advance does not cross line boundaries.
func (p Position) Advance(n int) Position {
	return Position{
		Char:      p.Char + n,
		LineStart: p.LineStart,
		Line:      p.Line,
		Column:    p.Column + n,
		File:      p.File,
	}
}

// IsValid returns true if this position has been set.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line > 0 || p.Column > 0 || p.Char > 0
}

// Before reports whether p comes strictly before q in the same input.
func (p Position) Before(q Position) bool {
	return p.Char < q.Char
}

// NoPos is the zero value Position, representing an invalid/unset position.
var NoPos = Position{}

// Token represents one token lexed from the input source code.
//
// For STRING tokens the Literal holds the text between the quotes. The
// EndPosition is always the position immediately after the last byte of the
// token, including any closing quote.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position
}

// Token types
const (
	EOF     Type = "EOF"
	ILLEGAL Type = "ILLEGAL"

	// Literals
	IDENT  Type = "IDENT"
	STRING Type = "STRING"
	NUMBER Type = "NUMBER"
	DICE   Type = "DICE"
	TRUE   Type = "TRUE"
	FALSE  Type = "FALSE"

	// Operators and punctuation
	ARROW     Type = "=>"
	ASSIGN    Type = "="
	ASTERISK  Type = "*"
	COLON     Type = ":"
	COMMA     Type = ","
	EQ        Type = "=="
	GT        Type = ">"
	GT_EQUALS Type = ">="
	LBRACE    Type = "{"
	LBRACKET  Type = "["
	LPAREN    Type = "("
	LT        Type = "<"
	LT_EQUALS Type = "<="
	MINUS     Type = "-"
	MOD       Type = "%"
	NOT_EQ    Type = "!="
	PERIOD    Type = "."
	PLUS      Type = "+"
	RANGE     Type = ".."
	RBRACE    Type = "}"
	RBRACKET  Type = "]"
	RPAREN    Type = ")"
	SLASH     Type = "/"

	// Keywords
	AND       Type = "AND"
	CHECK     Type = "CHECK"
	ELSE      Type = "ELSE"
	ENCOUNTER Type = "ENCOUNTER"
	ENEMY     Type = "ENEMY"
	FAILURE   Type = "FAILURE"
	FN        Type = "FN"
	FOR       Type = "FOR"
	FROM      Type = "FROM"
	GIVE      Type = "GIVE"
	HAS       Type = "HAS"
	HERO      Type = "HERO"
	IF        Type = "IF"
	IN        Type = "IN"
	ITEM      Type = "ITEM"
	NOT       Type = "NOT"
	OR        Type = "OR"
	PHASE     Type = "PHASE"
	QUEST     Type = "QUEST"
	RETURN    Type = "RETURN"
	SAY       Type = "SAY"
	SPAWN     Type = "SPAWN"
	STRIKE    Type = "STRIKE"
	SUCCESS   Type = "SUCCESS"
	TAKE      Type = "TAKE"
	TO        Type = "TO"
	VAR       Type = "VAR"
	VS        Type = "VS"
	WHILE     Type = "WHILE"
	WITH      Type = "WITH"
)

// Reserved keywords
var keywords = map[string]Type{
	"and":       AND,
	"check":     CHECK,
	"else":      ELSE,
	"encounter": ENCOUNTER,
	"enemy":     ENEMY,
	"failure":   FAILURE,
	"false":     FALSE,
	"fn":        FN,
	"for":       FOR,
	"from":      FROM,
	"give":      GIVE,
	"has":       HAS,
	"hero":      HERO,
	"if":        IF,
	"in":        IN,
	"item":      ITEM,
	"not":       NOT,
	"or":        OR,
	"phase":     PHASE,
	"quest":     QUEST,
	"return":    RETURN,
	"say":       SAY,
	"spawn":     SPAWN,
	"strike":    STRIKE,
	"success":   SUCCESS,
	"take":      TAKE,
	"to":        TO,
	"true":      TRUE,
	"var":       VAR,
	"vs":        VS,
	"while":     WHILE,
	"with":      WITH,
}

// keywordSpelling is the inverse of keywords.
var keywordSpelling = func() map[Type]string {
	m := make(map[Type]string, len(keywords))
	for word, typ := range keywords {
		m[typ] = word
	}
	return m
}()

// LookupIdentifier used to determinate whether identifier is keyword nor not
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether t is a reserved word, including true and false.
func (t Type) IsKeyword() bool {
	_, ok := keywordSpelling[t]
	return ok
}

// Spelling returns the source text of a keyword or operator type. For
// literal types (IDENT, STRING, ...) it returns the type name itself.
func (t Type) Spelling() string {
	if word, ok := keywordSpelling[t]; ok {
		return word
	}
	return string(t)
}

// Keywords returns all reserved words in sorted order.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for word := range keywords {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// Kind is the coarse lexical class of a token type.
type Kind string

const (
	KindKeyword     Kind = "keyword"
	KindIdentifier  Kind = "identifier"
	KindString      Kind = "string"
	KindNumber      Kind = "number"
	KindDice        Kind = "dice"
	KindBoolean     Kind = "boolean"
	KindOperator    Kind = "operator"
	KindPunctuation Kind = "punctuation"
	KindEOF         Kind = "eof"
	KindIllegal     Kind = "illegal"
)

var operators = map[Type]bool{
	ARROW: true, ASSIGN: true, ASTERISK: true, EQ: true, GT: true,
	GT_EQUALS: true, LT: true, LT_EQUALS: true, MINUS: true, MOD: true,
	NOT_EQ: true, PERIOD: true, PLUS: true, RANGE: true, SLASH: true,
}

// Kind returns the lexical class of the token type.
func (t Type) Kind() Kind {
	switch t {
	case EOF:
		return KindEOF
	case ILLEGAL:
		return KindIllegal
	case IDENT:
		return KindIdentifier
	case STRING:
		return KindString
	case NUMBER:
		return KindNumber
	case DICE:
		return KindDice
	case TRUE, FALSE:
		return KindBoolean
	}
	if operators[t] {
		return KindOperator
	}
	if t.IsKeyword() {
		return KindKeyword
	}
	return KindPunctuation
}
