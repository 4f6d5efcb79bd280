package ast

import (
	"bytes"

	"github.com/questlang/questlang/internal/token"
)

// Block is a brace-delimited sequence of statements. A block is both a
// statement and a Body.
type Block struct {
	Lbrace token.Position
	Stmts  []Stmt
	Rbrace token.Position
}

func (x *Block) stmtNode() {}
func (x *Block) bodyNode() {}

func (x *Block) Pos() token.Position { return x.Lbrace }
func (x *Block) End() token.Position { return x.Rbrace.Advance(1) }

func (x *Block) String() string {
	if len(x.Stmts) == 0 {
		return "{}"
	}
	return "{ " + joinStmts(x.Stmts, " ") + " }"
}

// ExprStmt is a statement consisting of a single expression.
type ExprStmt struct {
	X Expr
}

func (x *ExprStmt) stmtNode() {}

func (x *ExprStmt) Pos() token.Position { return x.X.Pos() }
func (x *ExprStmt) End() token.Position { return x.X.End() }
func (x *ExprStmt) String() string      { return x.X.String() }

// Var declares a new binding: var name = value.
type Var struct {
	VarPos token.Position
	Name   *Ident
	Value  Expr
}

func (x *Var) stmtNode() {}

func (x *Var) Pos() token.Position { return x.VarPos }
func (x *Var) End() token.Position { return x.Value.End() }
func (x *Var) String() string      { return "var " + x.Name.Name + " = " + x.Value.String() }

// Assign rebinds an existing name: name = value.
type Assign struct {
	Name   *Ident
	TokPos token.Position // position of "="
	Value  Expr
}

func (x *Assign) stmtNode() {}

func (x *Assign) Pos() token.Position { return x.Name.Pos() }
func (x *Assign) End() token.Position { return x.Value.End() }
func (x *Assign) String() string      { return x.Name.Name + " = " + x.Value.String() }

// FuncDef is a named function definition: fn name(a, b) { ... }.
type FuncDef struct {
	Fn     token.Position
	Name   *Ident
	Lparen token.Position
	Params []*Ident
	Rparen token.Position
	Body   *Block
}

func (x *FuncDef) stmtNode() {}

func (x *FuncDef) Pos() token.Position { return x.Fn }
func (x *FuncDef) End() token.Position { return x.Body.End() }

func (x *FuncDef) String() string {
	return "fn " + x.Name.Name + "(" + joinIdents(x.Params) + ") " + x.Body.String()
}

// If is an if statement. Alternative is nil, an *If for "else if", or a
// *Block for "else".
type If struct {
	If          token.Position
	Cond        Expr
	Consequence *Block
	Else        token.Position // position of "else"; unset without an alternative
	Alternative Stmt
}

func (x *If) stmtNode() {}

func (x *If) Pos() token.Position { return x.If }

func (x *If) End() token.Position {
	if x.Alternative != nil {
		return x.Alternative.End()
	}
	return x.Consequence.End()
}

func (x *If) String() string {
	var out bytes.Buffer
	out.WriteString("if ")
	out.WriteString(x.Cond.String())
	out.WriteString(" ")
	out.WriteString(x.Consequence.String())
	if x.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(x.Alternative.String())
	}
	return out.String()
}

// While is a while loop.
type While struct {
	While token.Position
	Cond  Expr
	Body  *Block
}

func (x *While) stmtNode() {}

func (x *While) Pos() token.Position { return x.While }
func (x *While) End() token.Position { return x.Body.End() }
func (x *While) String() string      { return "while " + x.Cond.String() + " " + x.Body.String() }

// ForIn iterates a single variable over an iterable: for x in expr { ... }.
type ForIn struct {
	For      token.Position
	Var      *Ident
	In       token.Position
	Iterable Expr
	Body     *Block
}

func (x *ForIn) stmtNode() {}

func (x *ForIn) Pos() token.Position { return x.For }
func (x *ForIn) End() token.Position { return x.Body.End() }

func (x *ForIn) String() string {
	return "for " + x.Var.Name + " in " + x.Iterable.String() + " " + x.Body.String()
}

// Return is a return statement with an optional value.
type Return struct {
	Return token.Position
	Value  Expr // nil for a bare return
}

func (x *Return) stmtNode() {}

func (x *Return) Pos() token.Position { return x.Return }

func (x *Return) End() token.Position {
	if x.Value != nil {
		return x.Value.End()
	}
	return x.Return.Advance(len("return"))
}

func (x *Return) String() string {
	if x.Value == nil {
		return "return"
	}
	return "return " + x.Value.String()
}
