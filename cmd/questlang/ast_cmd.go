package main

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/questlang/questlang/ast"
	"github.com/questlang/questlang/parser"
)

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Display the AST for a QuestLang script",
	Args:  cobra.MaximumNArgs(1),
	RunE:  astHandler,
}

func init() {
	addInputFlags(astCmd)
	astCmd.Flags().StringP("output", "o", "text", "Output format (text, json)")
}

func astHandler(cmd *cobra.Command, args []string) error {
	sources, err := getSources(cmd, args)
	if err != nil {
		return err
	}
	src := sources[0]
	file, err := parser.Parse(context.Background(), src.code,
		parser.WithFilename(src.name), parser.WithLogger(newLogger()))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if output, _ := cmd.Flags().GetString("output"); output == "json" {
		return writeJSON(out, nodeToJSON(file))
	}
	printAST(out, file)
	return nil
}

// ASTNode represents a node in the JSON AST output
type ASTNode struct {
	Type     string     `json:"type"`
	Value    any        `json:"value,omitempty"`
	Line     int        `json:"line,omitempty"`
	Column   int        `json:"column,omitempty"`
	Children []*ASTNode `json:"children,omitempty"`
}

func typeName(node ast.Node) string {
	return reflect.TypeOf(node).Elem().Name()
}

// nodeValue returns the scalar shown next to a node: a literal's value,
// an operator or a declared name.
func nodeValue(node ast.Node) any {
	switch n := node.(type) {
	case *ast.Ident:
		return n.Name
	case *ast.Num:
		return n.Value
	case *ast.Dice:
		return n.Literal
	case *ast.Bool:
		return n.Value
	case *ast.String:
		return n.Value
	case *ast.Prefix:
		return n.Op
	case *ast.Infix:
		return n.Op
	case *ast.CheckClause:
		return n.Keyword
	case ast.EntityDecl:
		return n.Decl().Name.Value
	}
	return nil
}

func nodeToJSON(node ast.Node) *ASTNode {
	result := &ASTNode{Type: typeName(node), Value: nodeValue(node)}
	if _, ok := node.(*ast.SourceFile); !ok {
		result.Line = node.Pos().LineNumber()
		result.Column = node.Pos().ColumnNumber()
	}
	for _, child := range ast.Children(node) {
		result.Children = append(result.Children, nodeToJSON(child))
	}
	return result
}

var (
	nodeStyle  = color.New(color.FgCyan)
	valueStyle = color.New(color.FgYellow)
)

func printAST(w io.Writer, file *ast.SourceFile) {
	fmt.Fprintln(w, nodeStyle.Sprint("SourceFile"))
	stmts := ast.Children(file)
	for i, stmt := range stmts {
		printNode(w, stmt, "", i == len(stmts)-1)
	}
}

func printNode(w io.Writer, node ast.Node, indent string, isLast bool) {
	// Choose connector
	connector := "├─ "
	childIndent := indent + "│  "
	if isLast {
		connector = "└─ "
		childIndent = indent + "   "
	}

	label := nodeStyle.Sprint(typeName(node))
	if v := nodeValue(node); v != nil {
		label += " " + valueStyle.Sprint(fmt.Sprintf("%v", v))
	}
	fmt.Fprintf(w, "%s%s%s (%d:%d)\n", indent, connector, label,
		node.Pos().LineNumber(), node.Pos().ColumnNumber())

	children := ast.Children(node)
	for i, child := range children {
		printNode(w, child, childIndent, i == len(children)-1)
	}
}
