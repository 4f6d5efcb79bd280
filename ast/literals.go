package ast

import (
	"strconv"

	"github.com/questlang/questlang/internal/token"
)

// Ident is an expression node that refers to a variable by name.
type Ident struct {
	NamePos token.Position
	Name    string
}

func (x *Ident) exprNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }
func (x *Ident) End() token.Position { return x.NamePos.Advance(len(x.Name)) }
func (x *Ident) String() string      { return x.Name }

// Bool is a literal true or false.
type Bool struct {
	ValuePos token.Position
	Literal  string
	Value    bool
}

func (x *Bool) exprNode() {}

func (x *Bool) Pos() token.Position { return x.ValuePos }
func (x *Bool) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }
func (x *Bool) String() string      { return x.Literal }

// Num is a number literal such as 42 or 3.5. Literal keeps the source text.
type Num struct {
	ValuePos token.Position
	Literal  string
	Value    float64
}

func (x *Num) exprNode() {}

func (x *Num) Pos() token.Position { return x.ValuePos }
func (x *Num) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }
func (x *Num) String() string      { return x.Literal }

// IsInteger reports whether the literal was written without a fraction.
func (x *Num) IsInteger() bool {
	_, err := strconv.ParseInt(x.Literal, 10, 64)
	return err == nil
}

// Dice is a dice literal NdM: Count dice with Faces faces each.
type Dice struct {
	ValuePos token.Position
	Literal  string
	Count    int
	Faces    int
}

func (x *Dice) exprNode() {}

func (x *Dice) Pos() token.Position { return x.ValuePos }
func (x *Dice) End() token.Position { return x.ValuePos.Advance(len(x.Literal)) }
func (x *Dice) String() string      { return x.Literal }

// String is a double-quoted string literal. Strings have no escapes and may
// span lines, so the end position is recorded rather than computed.
type String struct {
	ValuePos token.Position
	EndPos   token.Position
	Value    string // text between the quotes
}

func (x *String) exprNode() {}

func (x *String) Pos() token.Position { return x.ValuePos }
func (x *String) End() token.Position { return x.EndPos }
func (x *String) String() string      { return `"` + x.Value + `"` }

// Array is an array literal: [a, b, c].
type Array struct {
	Lbrack token.Position
	Items  []Expr
	Rbrack token.Position
}

func (x *Array) exprNode() {}

func (x *Array) Pos() token.Position { return x.Lbrack }
func (x *Array) End() token.Position { return x.Rbrack.Advance(1) }
func (x *Array) String() string      { return "[" + joinExprs(x.Items) + "]" }
