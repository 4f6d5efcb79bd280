package ast

import (
	"bytes"
	"strings"

	"github.com/questlang/questlang/internal/token"
)

// Paren is a parenthesized expression. It is kept in the tree so that the
// canonical form reproduces the grouping written in the source.
type Paren struct {
	Lparen token.Position
	X      Expr
	Rparen token.Position
}

func (x *Paren) exprNode() {}

func (x *Paren) Pos() token.Position { return x.Lparen }
func (x *Paren) End() token.Position { return x.Rparen.Advance(1) }
func (x *Paren) String() string      { return "(" + x.X.String() + ")" }

// Prefix is an operator expression where the operator precedes the operand.
// Examples include "-x" and "not done".
type Prefix struct {
	OpPos token.Position // position of operator
	Op    string         // operator: "-" or "not"
	X     Expr           // operand
}

func (x *Prefix) exprNode() {}

func (x *Prefix) Pos() token.Position { return x.OpPos }
func (x *Prefix) End() token.Position { return x.X.End() }

func (x *Prefix) String() string {
	if x.Op == "not" {
		return "not " + x.X.String()
	}
	return x.Op + x.X.String()
}

// Infix is an operator expression where the operator is between the operands.
// Examples include "x + y", "hp <= 0" and "1 .. 10".
type Infix struct {
	X     Expr           // left operand
	OpPos token.Position // position of operator
	Op    string         // operator: "+", "-", "==", "and", "..", etc.
	Y     Expr           // right operand
}

func (x *Infix) exprNode() {}

func (x *Infix) Pos() token.Position { return x.X.Pos() }
func (x *Infix) End() token.Position { return x.Y.End() }
func (x *Infix) String() string      { return x.X.String() + " " + x.Op + " " + x.Y.String() }

// Has tests inventory membership: "owner has item".
type Has struct {
	X      Expr           // owner
	HasPos token.Position // position of "has"
	Y      Expr           // item
}

func (x *Has) exprNode() {}

func (x *Has) Pos() token.Position { return x.X.Pos() }
func (x *Has) End() token.Position { return x.Y.End() }
func (x *Has) String() string      { return x.X.String() + " has " + x.Y.String() }

// Call is a call of a named function: name(args...).
type Call struct {
	Fun    *Ident
	Lparen token.Position
	Args   []Expr
	Rparen token.Position
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Fun.Pos() }
func (x *Call) End() token.Position { return x.Rparen.Advance(1) }
func (x *Call) String() string      { return x.Fun.Name + "(" + joinExprs(x.Args) + ")" }

// MethodCall is a call of a method on a receiver: x.name(args...).
// The receiver is an *Ident or another *MethodCall.
type MethodCall struct {
	X      Expr           // receiver
	Period token.Position // position of "."
	Method *Ident
	Lparen token.Position
	Args   []Expr
	Rparen token.Position
}

func (x *MethodCall) exprNode() {}

func (x *MethodCall) Pos() token.Position { return x.X.Pos() }
func (x *MethodCall) End() token.Position { return x.Rparen.Advance(1) }

func (x *MethodCall) String() string {
	return x.X.String() + "." + x.Method.Name + "(" + joinExprs(x.Args) + ")"
}

// Index is an index expression: x[index].
type Index struct {
	X      Expr
	Lbrack token.Position
	Index  Expr
	Rbrack token.Position
}

func (x *Index) exprNode() {}

func (x *Index) Pos() token.Position { return x.X.Pos() }
func (x *Index) End() token.Position { return x.Rbrack.Advance(1) }
func (x *Index) String() string      { return x.X.String() + "[" + x.Index.String() + "]" }

// Slice is a slice expression: x[low..high]. Either bound may be nil.
type Slice struct {
	X      Expr
	Lbrack token.Position
	Low    Expr // nil means from the start
	Range  token.Position
	High   Expr // nil means to the end
	Rbrack token.Position
}

func (x *Slice) exprNode() {}

func (x *Slice) Pos() token.Position { return x.X.Pos() }
func (x *Slice) End() token.Position { return x.Rbrack.Advance(1) }

func (x *Slice) String() string {
	var out bytes.Buffer
	out.WriteString(x.X.String())
	out.WriteString("[")
	if x.Low != nil {
		out.WriteString(x.Low.String())
	}
	out.WriteString("..")
	if x.High != nil {
		out.WriteString(x.High.String())
	}
	out.WriteString("]")
	return out.String()
}

// Addressable reports whether x may be indexed, sliced or used as the
// receiver chain of an index: identifiers, calls, method calls, index and
// slice expressions.
func Addressable(x Expr) bool {
	switch x.(type) {
	case *Ident, *Call, *MethodCall, *Index, *Slice:
		return true
	}
	return false
}

// Lambda is an anonymous function. Body is a *Block for "fn(x) { ... }"
// or an *ExprBody for "fn(x) => expr".
type Lambda struct {
	Fn     token.Position
	Lparen token.Position
	Params []*Ident
	Rparen token.Position
	Arrow  token.Position // position of "=>"; unset for block bodies
	Body   Body
}

func (x *Lambda) exprNode() {}

func (x *Lambda) Pos() token.Position { return x.Fn }
func (x *Lambda) End() token.Position { return x.Body.End() }

func (x *Lambda) String() string {
	var out bytes.Buffer
	out.WriteString("fn(")
	out.WriteString(joinIdents(x.Params))
	out.WriteString(")")
	if _, ok := x.Body.(*ExprBody); ok {
		out.WriteString(" =>")
	}
	out.WriteString(" ")
	out.WriteString(x.Body.String())
	return out.String()
}

// ExprBody is a Body consisting of a single expression.
type ExprBody struct {
	X Expr
}

func (x *ExprBody) bodyNode() {}

func (x *ExprBody) Pos() token.Position { return x.X.Pos() }
func (x *ExprBody) End() token.Position { return x.X.End() }
func (x *ExprBody) String() string      { return x.X.String() }

// Dialogue is a branching dialogue: say "prompt" { "option" => body, ... }.
type Dialogue struct {
	Say     token.Position
	Prompt  *String
	Lbrace  token.Position
	Choices []*DialogueChoice
	Rbrace  token.Position
}

func (x *Dialogue) exprNode() {}

func (x *Dialogue) Pos() token.Position { return x.Say }
func (x *Dialogue) End() token.Position { return x.Rbrace.Advance(1) }

func (x *Dialogue) String() string {
	if len(x.Choices) == 0 {
		return "say " + x.Prompt.String() + " {}"
	}
	choices := make([]string, 0, len(x.Choices))
	for _, c := range x.Choices {
		choices = append(choices, c.String())
	}
	return "say " + x.Prompt.String() + " { " + strings.Join(choices, ", ") + " }"
}

// DialogueChoice is one option of a dialogue. Option is always a string
// literal.
type DialogueChoice struct {
	Option *String
	Arrow  token.Position
	Body   Body
}

func (x *DialogueChoice) Pos() token.Position { return x.Option.Pos() }
func (x *DialogueChoice) End() token.Position { return x.Body.End() }
func (x *DialogueChoice) String() string      { return x.Option.String() + " => " + x.Body.String() }

// SkillCheck compares a skill against a difficulty and branches:
// check skill vs difficulty { success => body failure => body }.
type SkillCheck struct {
	Check      token.Position
	Skill      Expr
	Vs         token.Position
	Difficulty Expr
	Lbrace     token.Position
	Success    *CheckClause
	Failure    *CheckClause
	Rbrace     token.Position
}

func (x *SkillCheck) exprNode() {}

func (x *SkillCheck) Pos() token.Position { return x.Check }
func (x *SkillCheck) End() token.Position { return x.Rbrace.Advance(1) }

func (x *SkillCheck) String() string {
	return "check " + x.Skill.String() + " vs " + x.Difficulty.String() +
		" { " + x.Success.String() + ", " + x.Failure.String() + " }"
}

// CheckClause is the success or failure branch of a skill check.
type CheckClause struct {
	KeywordPos token.Position
	Keyword    string // "success" or "failure"
	Arrow      token.Position
	Body       Body
}

func (x *CheckClause) Pos() token.Position { return x.KeywordPos }
func (x *CheckClause) End() token.Position { return x.Body.End() }
func (x *CheckClause) String() string      { return x.Keyword + " => " + x.Body.String() }

func joinIdents(idents []*Ident) string {
	names := make([]string, 0, len(idents))
	for _, id := range idents {
		names = append(names, id.Name)
	}
	return strings.Join(names, ", ")
}
