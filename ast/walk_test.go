package ast

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// if Mira has "Sword" { strike Goblin with "Sword" } else { give "Sword" to Mira }
func sampleFile() *SourceFile {
	return &SourceFile{Stmts: []Stmt{
		&If{
			Cond: &Has{X: ident("Mira", 3), Y: str("Sword", 12)},
			Consequence: &Block{Stmts: []Stmt{
				&Strike{Target: ident("Goblin", 29), Weapon: str("Sword", 41)},
			}},
			Alternative: &Block{Stmts: []Stmt{
				&Give{Item: str("Sword", 62), Target: ident("Mira", 73)},
			}},
		},
	}}
}

func typeNames(nodes []Node) []string {
	var names []string
	for _, n := range nodes {
		names = append(names, fmt.Sprintf("%T", n))
	}
	return names
}

func TestChildren(t *testing.T) {
	file := sampleFile()
	ifStmt := file.Stmts[0]
	require.Equal(t, []string{"*ast.Has", "*ast.Block", "*ast.Block"}, typeNames(Children(ifStmt)))

	spawn := &Spawn{Name: str("Goblin", 6)}
	require.Equal(t, []string{"*ast.String"}, typeNames(Children(spawn)))

	require.Empty(t, Children(&Return{}))
	require.Empty(t, Children(ident("x", 0)))

	slice := &Slice{X: ident("xs", 0), High: num("2", 5)}
	require.Equal(t, []string{"*ast.Ident", "*ast.Num"}, typeNames(Children(slice)))
}

func TestPreorder(t *testing.T) {
	var names []string
	for n := range Preorder(sampleFile()) {
		names = append(names, fmt.Sprintf("%T", n))
	}
	require.Equal(t, []string{
		"*ast.SourceFile",
		"*ast.If",
		"*ast.Has", "*ast.Ident", "*ast.String",
		"*ast.Block", "*ast.Strike", "*ast.Ident", "*ast.String",
		"*ast.Block", "*ast.Give", "*ast.String", "*ast.Ident",
	}, names)
}

func TestPreorderStopsEarly(t *testing.T) {
	count := 0
	for range Preorder(sampleFile()) {
		count++
		if count == 3 {
			break
		}
	}
	require.Equal(t, 3, count)
}

func TestInspectPrunes(t *testing.T) {
	var idents []string
	Inspect(sampleFile(), func(n Node) bool {
		if _, ok := n.(*Block); ok {
			return false
		}
		if id, ok := n.(*Ident); ok {
			idents = append(idents, id.Name)
		}
		return true
	})
	require.Equal(t, []string{"Mira"}, idents)
}

type countVisitor map[string]int

func (c countVisitor) Visit(n Node) Visitor {
	c[fmt.Sprintf("%T", n)]++
	return c
}

func TestWalk(t *testing.T) {
	counts := countVisitor{}
	Walk(counts, sampleFile())
	require.Equal(t, 2, counts["*ast.Block"])
	require.Equal(t, 3, counts["*ast.String"])
	require.Equal(t, 3, counts["*ast.Ident"])
}
