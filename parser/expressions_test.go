package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/questlang/questlang/ast"
)

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"a - b - c", "(- (- a b) c)"},
		{"a / b / c", "(/ (/ a b) c)"},
		{"x % 2 * 3", "(* (% x 2) 3)"},
		{"- a + b", "(+ (- a) b)"},
		{"- -a", "(- (- a))"},
		{"not a and b", "(and (not a) b)"},
		{"a or b and c", "(or a (and b c))"},
		{"a and b or c", "(or (and a b) c)"},
		{"a == b != c", "(!= (== a b) c)"},
		{"a == b has c", "(has (== a b) c)"},
		{"a has b == c", "(== (has a b) c)"},
		{"a < b == c", "(== (< a b) c)"},
		{"x >= 1 and x <= 10", "(and (>= x 1) (<= x 10))"},
		{"1 .. 2 + 3", "(.. 1 (+ 2 3))"},
		{"a .. b .. c", "(.. (.. a b) c)"},
		{"a < b .. c", "(< a (.. b c))"},
		{"(1 + 2) * 3", "(* (paren (+ 1 2)) 3)"},
		{"-xs[0]", "(- (index xs 0))"},
		{"-a.b()", "(- (method a b))"},
		{"true or false", "(or true false)"},
		{"2d6 + 3", "(+ 2d6 3)"},
		{`Mira has "Sword" and not done`, `(and (has Mira "Sword") (not done))`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, sexpr(parseExpr(t, tt.input)))
		})
	}
}

func TestPostfixExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"f()", "(call f)"},
		{"f(1, 2 + 3)", "(call f 1 (+ 2 3))"},
		{"f(g(x))", "(call f (call g x))"},
		{"a.b()", "(method a b)"},
		{"a.b().c(1)", "(method (method a b) c 1)"},
		{"xs[1]", "(index xs 1)"},
		{"xs[1..3]", "(slice xs 1 3)"},
		{"xs[..3]", "(slice xs _ 3)"},
		{"xs[1..]", "(slice xs 1 _)"},
		{"xs[..]", "(slice xs _ _)"},
		{"xs[i + 1 .. n]", "(slice xs (+ i 1) n)"},
		{"xs[a == b]", "(index xs (== a b))"},
		{"xs[a or b .. c]", "(index xs (or a (.. b c)))"},
		{"xs[1 .. n - 1]", "(slice xs 1 (- n 1))"},
		{"f(x)[0][1..]", "(slice (index (call f x) 0) 1 _)"},
		{"bag.items()[0]", "(index (method bag items) 0)"},
		{"grid[0][1]", "(index (index grid 0) 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, sexpr(parseExpr(t, tt.input)))
		})
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"[1, 2, 3]", "[1 2 3]"},
		{"[1, 2, 3,]", "[1 2 3]"},
		{"[]", "[]"},
		{"[[1], []]", "[[1] []]"},
		{`"hello"`, `"hello"`},
		{"4.25", "4.25"},
		{"false", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, sexpr(parseExpr(t, tt.input)))
		})
	}
}

func TestDiceLiteral(t *testing.T) {
	dice, ok := parseExpr(t, "2d6").(*ast.Dice)
	require.True(t, ok)
	require.Equal(t, 2, dice.Count)
	require.Equal(t, 6, dice.Faces)

	num, ok := parseExpr(t, "26").(*ast.Num)
	require.True(t, ok)
	require.Equal(t, 26.0, num.Value)
	require.True(t, num.IsInteger())

	// "2 d6" is a number followed by an identifier: two statements.
	file := parseOK(t, "2 d6")
	require.Len(t, file.Stmts, 2)
	require.IsType(t, &ast.Num{}, file.Stmts[0].(*ast.ExprStmt).X)
	require.Equal(t, "d6", file.Stmts[1].(*ast.ExprStmt).X.(*ast.Ident).Name)
}

func TestNumberValue(t *testing.T) {
	num, ok := parseExpr(t, "4.5").(*ast.Num)
	require.True(t, ok)
	require.Equal(t, 4.5, num.Value)
	require.False(t, num.IsInteger())
}

func TestLambda(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"fn(x) => x + 1", "(fn (x) (+ x 1))"},
		{"fn(a, b) => a * b + 1", "(fn (a b) (+ (* a b) 1))"},
		{"fn() => 1", "(fn () 1)"},
		{"fn() { return 1 }", "(fn () {return 1})"},
		{"1 + fn(x) => x * 2", "(+ 1 (fn (x) (* x 2)))"},
		{"fn(x) => fn(y) => x + y", "(fn (x) (fn (y) (+ x y)))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, sexpr(parseExpr(t, tt.input)))
		})
	}
}

func TestLambdaBodyIsWholeExpression(t *testing.T) {
	lambda, ok := parseExpr(t, "fn(x) => x + 1").(*ast.Lambda)
	require.True(t, ok)
	body, ok := lambda.Body.(*ast.ExprBody)
	require.True(t, ok)
	infix, ok := body.X.(*ast.Infix)
	require.True(t, ok)
	require.Equal(t, "+", infix.Op)
	require.Equal(t, "x + 1", body.String())
}

func TestLambdaArgument(t *testing.T) {
	require.Equal(t, "(call map xs (fn (x) (* x 2)))", sexpr(parseExpr(t, "map(xs, fn(x) => x * 2)")))
}

func TestNonAddressableStartsNewStatement(t *testing.T) {
	// "(" and "[" only continue identifiers and addressable expressions.
	file := parseOK(t, "1 [2]")
	require.Len(t, file.Stmts, 2)
	require.Equal(t, "[2]", sexpr(file.Stmts[1].(*ast.ExprStmt).X))

	file = parseOK(t, "f(1)(2)")
	require.Len(t, file.Stmts, 2)
	require.Equal(t, "(call f 1)", sexpr(file.Stmts[0].(*ast.ExprStmt).X))
	require.Equal(t, "(paren 2)", sexpr(file.Stmts[1].(*ast.ExprStmt).X))

	file = parseOK(t, `"a" (b)`)
	require.Len(t, file.Stmts, 2)
}

func TestDialogue(t *testing.T) {
	input := `say "hi" { "go" => doThing(), "stay" => { wait() } }`
	dialogue, ok := parseExpr(t, input).(*ast.Dialogue)
	require.True(t, ok)
	require.Equal(t, "hi", dialogue.Prompt.Value)
	require.Len(t, dialogue.Choices, 2)

	first := dialogue.Choices[0]
	require.Equal(t, "go", first.Option.Value)
	require.IsType(t, &ast.ExprBody{}, first.Body)
	require.Equal(t, "(call doThing)", sexpr(first.Body))

	second := dialogue.Choices[1]
	require.Equal(t, "stay", second.Option.Value)
	block, ok := second.Body.(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Stmts, 1)
}

func TestDialogueChoiceCommas(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`say "q" {}`, `(say "q")`},
		{`say "q" { "a" => 1 }`, `(say "q" ("a" 1))`},
		{`say "q" { "a" => 1, }`, `(say "q" ("a" 1))`},
		{`say "q" { "a" => 1 "b" => 2 }`, `(say "q" ("a" 1) ("b" 2))`},
		{`say "q" { "a" => x + 1, "b" => {} }`, `(say "q" ("a" (+ x 1)) ("b" {}))`},
		{`say "q" { "a" => say "r" { "c" => 3 } }`, `(say "q" ("a" (say "r" ("c" 3))))`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, sexpr(parseExpr(t, tt.input)))
		})
	}
}

func TestStringOutsideDialogueIsExpression(t *testing.T) {
	file := parseOK(t, `"go" "stay"`)
	require.Len(t, file.Stmts, 2)
	for _, stmt := range file.Stmts {
		es, ok := stmt.(*ast.ExprStmt)
		require.True(t, ok)
		require.IsType(t, &ast.String{}, es.X)
	}
}

func TestSkillCheck(t *testing.T) {
	input := `check str + 2 vs 1d20 { success => give "Gold" , failure => { say "ouch" {} } }`
	// "give" is a statement, not an expression, so it cannot be a clause body.
	_, errs := parseErrors(t, input)
	require.Equal(t, []string{"E1003"}, codes(errs))

	check, ok := parseExpr(t, `check str + 2 vs 1d20 { success => 10, failure => { hp = hp - 1 } }`).(*ast.SkillCheck)
	require.True(t, ok)
	require.Equal(t, "(+ str 2)", sexpr(check.Skill))
	require.Equal(t, "1d20", sexpr(check.Difficulty))
	require.Equal(t, "success", check.Success.Keyword)
	require.Equal(t, "failure", check.Failure.Keyword)
	require.IsType(t, &ast.ExprBody{}, check.Success.Body)
	require.IsType(t, &ast.Block{}, check.Failure.Body)

	require.Equal(t, "(check a b 1 2)", sexpr(parseExpr(t, "check a vs b { success => 1 failure => 2, }")))
}

func TestMethodReceiverRestriction(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"xs[0].name()", "cannot call a method on an index expression"},
		{"xs[0..1].first()", "cannot call a method on a slice expression"},
		{"f().g()", "cannot call a method on the result of a function call"},
		{`"abc".len()`, "cannot call a method on a literal"},
		{"(a).b()", "cannot call a method on a grouped expression"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, errs := parseErrors(t, tt.input)
			require.Equal(t, 1, errs.Count())
			first := errs.First()
			require.Equal(t, "E1011", string(first.Code()))
			require.Contains(t, first.Message(), tt.message)
			require.Contains(t, first.Hint(), "variable")
		})
	}
}
