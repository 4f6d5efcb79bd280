package ast

import "iter"

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range Children(node) {
		Walk(v, child)
	}
}

// Inspect traverses an AST in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the AST rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			for _, child := range Children(n) {
				if !visit(child) {
					return false
				}
			}
			return true
		}
		visit(root)
	}
}

// Children returns the direct children of node in source order. Absent
// optional parts are omitted.
func Children(node Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		out = append(out, nodes...)
	}
	switch n := node.(type) {
	case *SourceFile:
		for _, s := range n.Stmts {
			add(s)
		}
	case *Block:
		for _, s := range n.Stmts {
			add(s)
		}

	// Statements
	case *ExprStmt:
		add(n.X)
	case *Var:
		add(n.Name, n.Value)
	case *Assign:
		add(n.Name, n.Value)
	case *FuncDef:
		add(n.Name)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *HeroDecl:
		add(n.Name, n.Stats)
	case *EnemyDecl:
		add(n.Name, n.Stats)
	case *ItemDecl:
		add(n.Name, n.Stats)
	case *StatBlock:
		for _, e := range n.Entries {
			add(e)
		}
	case *StatEntry:
		add(n.Key, n.Value)
	case *QuestDecl:
		add(n.Name)
		add(n.Items...)
	case *Phase:
		add(n.Name, n.Body)
	case *Encounter:
		add(n.Name, n.Body)
	case *Give:
		add(n.Item, n.Target)
	case *Take:
		add(n.Item, n.Source)
	case *Spawn:
		add(n.Name)
		if n.Overrides != nil {
			add(n.Overrides)
		}
	case *Strike:
		add(n.Target, n.Weapon)
	case *If:
		add(n.Cond, n.Consequence)
		if n.Alternative != nil {
			add(n.Alternative)
		}
	case *While:
		add(n.Cond, n.Body)
	case *ForIn:
		add(n.Var, n.Iterable, n.Body)
	case *Return:
		if n.Value != nil {
			add(n.Value)
		}

	// Expressions
	case *Paren:
		add(n.X)
	case *Prefix:
		add(n.X)
	case *Infix:
		add(n.X, n.Y)
	case *Has:
		add(n.X, n.Y)
	case *Call:
		add(n.Fun)
		for _, a := range n.Args {
			add(a)
		}
	case *MethodCall:
		add(n.X, n.Method)
		for _, a := range n.Args {
			add(a)
		}
	case *Index:
		add(n.X, n.Index)
	case *Slice:
		add(n.X)
		if n.Low != nil {
			add(n.Low)
		}
		if n.High != nil {
			add(n.High)
		}
	case *Array:
		for _, item := range n.Items {
			add(item)
		}
	case *Lambda:
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *ExprBody:
		add(n.X)
	case *Dialogue:
		add(n.Prompt)
		for _, c := range n.Choices {
			add(c)
		}
	case *DialogueChoice:
		add(n.Option, n.Body)
	case *SkillCheck:
		add(n.Skill, n.Difficulty, n.Success, n.Failure)
	case *CheckClause:
		add(n.Body)

	// Leaves: *Ident, *Bool, *Num, *Dice, *String, *BadStmt
	}
	return out
}
