package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/questlang/questlang/ast"
)

// parseOK parses input and fails the test on any error.
func parseOK(t *testing.T, input string) *ast.SourceFile {
	t.Helper()
	file, err := Parse(context.Background(), input)
	require.NoError(t, err, "input: %s", input)
	require.NotNil(t, file)
	return file
}

// parseErrors parses input that is expected to fail and returns the errors.
func parseErrors(t *testing.T, input string, opts ...Option) (*ast.SourceFile, *Errors) {
	t.Helper()
	file, err := Parse(context.Background(), input, opts...)
	require.Error(t, err, "input: %s", input)
	errs, ok := err.(*Errors)
	require.True(t, ok, "expected *Errors, got %T", err)
	require.NotNil(t, file)
	return file, errs
}

// parseExpr parses input as a single expression statement.
func parseExpr(t *testing.T, input string) ast.Expr {
	t.Helper()
	file := parseOK(t, input)
	require.Len(t, file.Stmts, 1, "input: %s", input)
	stmt, ok := file.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok, "expected *ast.ExprStmt, got %T", file.Stmts[0])
	return stmt.X
}

// sexpr renders the structure of a node as an s-expression so tests can
// check grouping independently of the canonical source form.
func sexpr(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Ident:
		return n.Name
	case *ast.Num:
		return n.Literal
	case *ast.Dice:
		return n.Literal
	case *ast.Bool:
		return n.Literal
	case *ast.String:
		return fmt.Sprintf("%q", n.Value)
	case *ast.Paren:
		return "(paren " + sexpr(n.X) + ")"
	case *ast.Prefix:
		return "(" + n.Op + " " + sexpr(n.X) + ")"
	case *ast.Infix:
		return "(" + n.Op + " " + sexpr(n.X) + " " + sexpr(n.Y) + ")"
	case *ast.Has:
		return "(has " + sexpr(n.X) + " " + sexpr(n.Y) + ")"
	case *ast.Call:
		return "(call " + n.Fun.Name + exprs(n.Args) + ")"
	case *ast.MethodCall:
		return "(method " + sexpr(n.X) + " " + n.Method.Name + exprs(n.Args) + ")"
	case *ast.Index:
		return "(index " + sexpr(n.X) + " " + sexpr(n.Index) + ")"
	case *ast.Slice:
		return "(slice " + sexpr(n.X) + " " + optional(n.Low) + " " + optional(n.High) + ")"
	case *ast.Array:
		items := make([]string, 0, len(n.Items))
		for _, item := range n.Items {
			items = append(items, sexpr(item))
		}
		return "[" + strings.Join(items, " ") + "]"
	case *ast.Lambda:
		params := make([]string, 0, len(n.Params))
		for _, param := range n.Params {
			params = append(params, param.Name)
		}
		return "(fn (" + strings.Join(params, " ") + ") " + sexpr(n.Body) + ")"
	case *ast.ExprBody:
		return sexpr(n.X)
	case *ast.Block:
		stmts := make([]string, 0, len(n.Stmts))
		for _, s := range n.Stmts {
			stmts = append(stmts, s.String())
		}
		return "{" + strings.Join(stmts, "; ") + "}"
	case *ast.Dialogue:
		var b strings.Builder
		b.WriteString("(say " + sexpr(n.Prompt))
		for _, c := range n.Choices {
			b.WriteString(" (" + sexpr(c.Option) + " " + sexpr(c.Body) + ")")
		}
		b.WriteString(")")
		return b.String()
	case *ast.SkillCheck:
		return "(check " + sexpr(n.Skill) + " " + sexpr(n.Difficulty) +
			" " + sexpr(n.Success.Body) + " " + sexpr(n.Failure.Body) + ")"
	}
	return fmt.Sprintf("<%T>", n)
}

func exprs(list []ast.Expr) string {
	var b strings.Builder
	for _, x := range list {
		b.WriteString(" ")
		b.WriteString(sexpr(x))
	}
	return b.String()
}

func optional(x ast.Expr) string {
	if x == nil {
		return "_"
	}
	return sexpr(x)
}

func codes(errs *Errors) []string {
	var out []string
	for _, e := range errs.Errors() {
		out = append(out, string(e.Code()))
	}
	return out
}

// shape lists the node types of a tree in preorder together with the
// canonical text of each leaf.
func shape(root ast.Node) []string {
	var out []string
	for n := range ast.Preorder(root) {
		entry := fmt.Sprintf("%T", n)
		if len(ast.Children(n)) == 0 {
			entry += " " + n.String()
		}
		out = append(out, entry)
	}
	return out
}
