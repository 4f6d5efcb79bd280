// Package ast defines the abstract syntax tree representation of QuestLang
// source code.
package ast

import (
	"strings"

	"github.com/questlang/questlang/internal/token"
)

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// End returns the position of the first character immediately after the node.
	End() token.Position

	// String returns the canonical source form of the node. Parsing the
	// result yields a structurally identical node.
	String() string
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node. Expressions may be embedded within
// other expressions.
type Expr interface {
	Node
	exprNode()
}

// Body is the branch body of a dialogue choice or a skill check clause:
// either a *Block or an *ExprBody.
type Body interface {
	Node
	bodyNode()
}

// BadStmt marks a region of tokens skipped while recovering from a syntax
// error. The parser emits one in place of the statement that failed.
type BadStmt struct {
	From token.Position // start of bad statement
	To   token.Position // end of bad statement
}

func (x *BadStmt) stmtNode() {}

func (x *BadStmt) Pos() token.Position { return x.From }
func (x *BadStmt) End() token.Position { return x.To }
func (x *BadStmt) String() string      { return "<bad statement>" }

// SourceFile is the root node: the ordered top-level statements of one
// input buffer.
type SourceFile struct {
	Stmts []Stmt
	EOF   token.Position // position of the end of input
}

func (x *SourceFile) Pos() token.Position { return token.Position{File: x.EOF.File} }
func (x *SourceFile) End() token.Position { return x.EOF }

func (x *SourceFile) String() string {
	return joinStmts(x.Stmts, "\n")
}

func joinStmts(stmts []Stmt, sep string) string {
	parts := make([]string, 0, len(stmts))
	for _, s := range stmts {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, sep)
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}
