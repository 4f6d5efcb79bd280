// Package format pretty-prints QuestLang syntax trees.
//
// The output uses four-space indentation, puts every statement on its own
// line and breaks stat blocks, dialogue choices and skill check clauses
// over several lines with trailing commas. Comments are not part of the
// tree and are not preserved. Parsing the output yields a tree with the
// same structure as the input.
package format

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/questlang/questlang/ast"
	"github.com/questlang/questlang/parser"
)

// Source returns the formatted source for a parsed file.
func Source(file *ast.SourceFile) string {
	f := &formatter{}
	for i, stmt := range file.Stmts {
		if i > 0 && (isDecl(stmt) || isDecl(file.Stmts[i-1])) {
			f.buf.WriteString("\n")
		}
		f.formatNode(stmt)
		f.buf.WriteString("\n")
	}
	return f.buf.String()
}

// Bytes parses src and returns it formatted. Source with syntax errors is
// returned unchanged together with the parse error.
func Bytes(ctx context.Context, src []byte, opts ...parser.Option) ([]byte, error) {
	file, err := parser.Parse(ctx, string(src), opts...)
	if err != nil {
		return src, err
	}
	return []byte(Source(file)), nil
}

// isDecl reports whether a top-level statement is set apart by blank lines.
func isDecl(stmt ast.Stmt) bool {
	switch stmt.(type) {
	case ast.EntityDecl, *ast.QuestDecl, *ast.Encounter, *ast.FuncDef:
		return true
	}
	return false
}

type formatter struct {
	buf    bytes.Buffer
	indent int
}

func (f *formatter) writeIndent() {
	f.buf.WriteString(strings.Repeat("    ", f.indent))
}

// line starts a new line at the current indentation.
func (f *formatter) line() {
	f.buf.WriteString("\n")
	f.writeIndent()
}

func (f *formatter) formatNode(node ast.Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *ast.Var:
		f.buf.WriteString("var ")
		f.buf.WriteString(n.Name.Name)
		f.buf.WriteString(" = ")
		f.formatNode(n.Value)

	case *ast.Assign:
		f.buf.WriteString(n.Name.Name)
		f.buf.WriteString(" = ")
		f.formatNode(n.Value)

	case *ast.ExprStmt:
		f.formatNode(n.X)

	case *ast.Return:
		f.buf.WriteString("return")
		if n.Value != nil {
			f.buf.WriteString(" ")
			f.formatNode(n.Value)
		}

	case *ast.Block:
		f.formatStmts(n.Stmts)

	case *ast.FuncDef:
		f.buf.WriteString("fn ")
		f.buf.WriteString(n.Name.Name)
		f.formatParams(n.Params)
		f.buf.WriteString(" ")
		f.formatNode(n.Body)

	case *ast.If:
		f.buf.WriteString("if ")
		f.formatNode(n.Cond)
		f.buf.WriteString(" ")
		f.formatNode(n.Consequence)
		if n.Alternative != nil {
			f.buf.WriteString(" else ")
			f.formatNode(n.Alternative)
		}

	case *ast.While:
		f.buf.WriteString("while ")
		f.formatNode(n.Cond)
		f.buf.WriteString(" ")
		f.formatNode(n.Body)

	case *ast.ForIn:
		f.buf.WriteString("for ")
		f.buf.WriteString(n.Var.Name)
		f.buf.WriteString(" in ")
		f.formatNode(n.Iterable)
		f.buf.WriteString(" ")
		f.formatNode(n.Body)

	case ast.EntityDecl:
		decl := n.Decl()
		f.buf.WriteString(n.Keyword())
		f.buf.WriteString(" ")
		f.formatNode(decl.Name)
		f.buf.WriteString(" ")
		f.formatStats(decl.Stats, true)

	case *ast.QuestDecl:
		f.buf.WriteString("quest ")
		f.formatNode(n.Name)
		if len(n.Items) == 0 {
			f.buf.WriteString(" {}")
			return
		}
		f.buf.WriteString(" {")
		f.indent++
		for i, item := range n.Items {
			if _, ok := item.(*ast.Phase); ok && i > 0 {
				f.buf.WriteString("\n")
			}
			f.line()
			f.formatNode(item)
		}
		f.indent--
		f.line()
		f.buf.WriteString("}")

	case *ast.Phase:
		f.buf.WriteString("phase ")
		f.formatNode(n.Name)
		f.buf.WriteString(" ")
		f.formatNode(n.Body)

	case *ast.Encounter:
		f.buf.WriteString("encounter ")
		f.formatNode(n.Name)
		f.buf.WriteString(" ")
		f.formatNode(n.Body)

	case *ast.Give:
		f.buf.WriteString("give ")
		f.formatNode(n.Item)
		f.buf.WriteString(" to ")
		f.formatNode(n.Target)

	case *ast.Take:
		f.buf.WriteString("take ")
		f.formatNode(n.Item)
		f.buf.WriteString(" from ")
		f.formatNode(n.Source)

	case *ast.Spawn:
		f.buf.WriteString("spawn ")
		f.formatNode(n.Name)
		if n.Overrides != nil {
			f.buf.WriteString(" with ")
			f.formatStats(n.Overrides, false)
		}

	case *ast.Strike:
		f.buf.WriteString("strike ")
		f.formatNode(n.Target)
		f.buf.WriteString(" with ")
		f.formatNode(n.Weapon)

	// Expressions
	case *ast.Paren:
		f.buf.WriteString("(")
		f.formatNode(n.X)
		f.buf.WriteString(")")

	case *ast.Prefix:
		if n.Op == "not" {
			f.buf.WriteString("not ")
		} else {
			f.buf.WriteString(n.Op)
		}
		f.formatNode(n.X)

	case *ast.Infix:
		f.formatNode(n.X)
		f.buf.WriteString(" " + n.Op + " ")
		f.formatNode(n.Y)

	case *ast.Has:
		f.formatNode(n.X)
		f.buf.WriteString(" has ")
		f.formatNode(n.Y)

	case *ast.Call:
		f.buf.WriteString(n.Fun.Name)
		f.formatArgs(n.Args)

	case *ast.MethodCall:
		f.formatNode(n.X)
		f.buf.WriteString(".")
		f.buf.WriteString(n.Method.Name)
		f.formatArgs(n.Args)

	case *ast.Index:
		f.formatNode(n.X)
		f.buf.WriteString("[")
		f.formatNode(n.Index)
		f.buf.WriteString("]")

	case *ast.Slice:
		f.formatNode(n.X)
		f.buf.WriteString("[")
		f.formatNode(n.Low)
		f.buf.WriteString("..")
		f.formatNode(n.High)
		f.buf.WriteString("]")

	case *ast.Array:
		f.buf.WriteString("[")
		for i, item := range n.Items {
			if i > 0 {
				f.buf.WriteString(", ")
			}
			f.formatNode(item)
		}
		f.buf.WriteString("]")

	case *ast.Lambda:
		f.buf.WriteString("fn")
		f.formatParams(n.Params)
		if _, ok := n.Body.(*ast.ExprBody); ok {
			f.buf.WriteString(" =>")
		}
		f.buf.WriteString(" ")
		f.formatNode(n.Body)

	case *ast.ExprBody:
		f.formatNode(n.X)

	case *ast.Dialogue:
		f.buf.WriteString("say ")
		f.formatNode(n.Prompt)
		if len(n.Choices) == 0 {
			f.buf.WriteString(" {}")
			return
		}
		f.buf.WriteString(" {")
		f.indent++
		for _, choice := range n.Choices {
			f.line()
			f.formatNode(choice.Option)
			f.buf.WriteString(" => ")
			f.formatNode(choice.Body)
			f.buf.WriteString(",")
		}
		f.indent--
		f.line()
		f.buf.WriteString("}")

	case *ast.SkillCheck:
		f.buf.WriteString("check ")
		f.formatNode(n.Skill)
		f.buf.WriteString(" vs ")
		f.formatNode(n.Difficulty)
		f.buf.WriteString(" {")
		f.indent++
		for _, clause := range []*ast.CheckClause{n.Success, n.Failure} {
			f.line()
			f.buf.WriteString(clause.Keyword)
			f.buf.WriteString(" => ")
			f.formatNode(clause.Body)
			f.buf.WriteString(",")
		}
		f.indent--
		f.line()
		f.buf.WriteString("}")

	// Literals
	case *ast.Ident:
		f.buf.WriteString(n.Name)

	case *ast.Num:
		f.buf.WriteString(n.Literal)

	case *ast.Dice:
		f.buf.WriteString(n.Literal)

	case *ast.Bool:
		if n.Value {
			f.buf.WriteString("true")
		} else {
			f.buf.WriteString("false")
		}

	case *ast.String:
		f.buf.WriteString(`"` + n.Value + `"`)

	default:
		// Fallback: print type name
		fmt.Fprintf(&f.buf, "/* %T */", n)
	}
}

// formatStmts writes a braced statement list, one statement per line.
func (f *formatter) formatStmts(stmts []ast.Stmt) {
	if len(stmts) == 0 {
		f.buf.WriteString("{}")
		return
	}
	f.buf.WriteString("{")
	f.indent++
	for _, stmt := range stmts {
		f.line()
		f.formatNode(stmt)
	}
	f.indent--
	f.line()
	f.buf.WriteString("}")
}

// formatStats writes a stat block. Multiline blocks put each entry on its
// own line followed by a comma.
func (f *formatter) formatStats(stats *ast.StatBlock, multiline bool) {
	if len(stats.Entries) == 0 {
		f.buf.WriteString("{}")
		return
	}
	if !multiline {
		f.buf.WriteString("{ ")
		for i, entry := range stats.Entries {
			if i > 0 {
				f.buf.WriteString(", ")
			}
			f.formatEntry(entry)
		}
		f.buf.WriteString(" }")
		return
	}
	f.buf.WriteString("{")
	f.indent++
	for _, entry := range stats.Entries {
		f.line()
		f.formatEntry(entry)
		f.buf.WriteString(",")
	}
	f.indent--
	f.line()
	f.buf.WriteString("}")
}

func (f *formatter) formatEntry(entry *ast.StatEntry) {
	f.buf.WriteString(entry.Key.Name)
	f.buf.WriteString(": ")
	f.formatNode(entry.Value)
}

func (f *formatter) formatParams(params []*ast.Ident) {
	f.buf.WriteString("(")
	for i, p := range params {
		if i > 0 {
			f.buf.WriteString(", ")
		}
		f.buf.WriteString(p.Name)
	}
	f.buf.WriteString(")")
}

func (f *formatter) formatArgs(args []ast.Expr) {
	f.buf.WriteString("(")
	for i, arg := range args {
		if i > 0 {
			f.buf.WriteString(", ")
		}
		f.formatNode(arg)
	}
	f.buf.WriteString(")")
}
