package parser

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/deepnoodle-ai/wonton/assert"

	"github.com/questlang/questlang/ast"
	"github.com/questlang/questlang/internal/lexer"
)

// programs is a corpus of valid sources shared by the property tests.
var programs = []string{
	`hero "Mira" { hp: 10, str: 2 } enemy "Goblin" { hp: 5 }
if Mira has "Sword" { strike Goblin with "Sword" } else { give "Sword" to Mira }`,
	`quest "Rescue" { var found = false phase "Search" { found = true } give "Map" to Mira }`,
	`fn heal(who, amount) { who.restore(amount) return }`,
	`var pick = fn(xs) => xs[1d6 - 1] var all = fn(a, b) { return [a, b,] }`,
	`for i in 1 .. 10 { while hp > 0 { hp = hp - i % 3 } }`,
	`say "Well met" { "Trade" => shop.open(), "Fight" => { spawn "Bandit" with { hp: 8 } } }`,
	`var ok = check str + 2 vs 1d20 { success => "hit", failure => -(dmg * 2) }`,
	`take gold[0..] from chest xs[..n] ys[a..b] -(-x) not not done (a or b) and c`,
	`encounter "Ambush" { spawn "Rat" strike Rat with bow.fire(2, 3) }`,
	`item "Potion" {} { return give "x" to y } 1 [2]`,
}

func TestParseFunctionWithFilename(t *testing.T) {
	file, err := Parse(context.Background(), `var s = "x"`, WithFilename("intro.ql"))
	assert.Nil(t, err)
	assert.Len(t, file.Stmts, 1)
	assert.Equal(t, 11, file.End().Char)
}

func TestNewWithLexer(t *testing.T) {
	l := lexer.New("give x to y", lexer.WithFile("given.ql"))
	file, err := New(l).Parse(context.Background())
	assert.Nil(t, err)
	assert.Len(t, file.Stmts, 1)

	_, err = New(lexer.New("var = 1", lexer.WithFile("given.ql"))).Parse(context.Background())
	assert.NotNil(t, err)
	assert.Equal(t, "given.ql", err.(*Errors).First().File())
}

func TestSpansContainChildren(t *testing.T) {
	for _, src := range programs {
		file := parseOK(t, src)
		ast.Inspect(file, func(n ast.Node) bool {
			assert.False(t, n.End().Before(n.Pos()), "%T %q ends before it starts", n, n.String())
			for _, child := range ast.Children(n) {
				assert.False(t, child.Pos().Before(n.Pos()),
					"%T starts before its parent %T in %q", child, n, src)
				assert.False(t, n.End().Before(child.End()),
					"%T ends after its parent %T in %q", child, n, src)
			}
			return true
		})
	}
}

// recoveryPrograms are sources with errors whose trees hold *ast.BadStmt
// placeholders.
var recoveryPrograms = []string{
	`var a = 1 var = 2 give "Sword" to Mira`,
	`fn f() { var = 1 give x to y } var b = 2`,
	`quest "q" { give x too y phase "p" {} } spawn "Rat"`,
	`if a { strike } else { give x to y } } take x from y`,
	`"a`,
	`give a to b @`,
	`var a = (1 + @`,
}

func TestSiblingSpansIncrease(t *testing.T) {
	sources := append(append([]string{}, programs...), recoveryPrograms...)
	for _, src := range sources {
		file, _ := Parse(context.Background(), src)
		assert.NotNil(t, file)
		ast.Inspect(file, func(n ast.Node) bool {
			children := ast.Children(n)
			for i := 1; i < len(children); i++ {
				prev, next := children[i-1], children[i]
				assert.False(t, next.Pos().Before(prev.End()),
					"%T overlaps or precedes its sibling %T under %T in %q", next, prev, n, src)
			}
			return true
		})
	}
}

func TestRecoveryTreesCoverPlaceholders(t *testing.T) {
	for _, src := range recoveryPrograms {
		file, err := Parse(context.Background(), src)
		assert.NotNil(t, err)
		bad := 0
		ast.Inspect(file, func(n ast.Node) bool {
			if _, ok := n.(*ast.BadStmt); ok {
				bad++
			}
			for _, child := range ast.Children(n) {
				assert.False(t, child.Pos().Before(n.Pos()),
					"%T starts before its parent %T in %q", child, n, src)
				assert.False(t, n.End().Before(child.End()),
					"%T ends after its parent %T in %q", child, n, src)
			}
			return true
		})
		assert.True(t, bad > 0, "no placeholder in %q", src)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, src := range programs {
		first := parseOK(t, src)
		printed := first.String()
		second := parseOK(t, printed)
		assert.Equal(t, shape(first), shape(second), "printed: %s", printed)
		assert.Equal(t, printed, second.String())
	}
}

func TestStatementsHaveSources(t *testing.T) {
	src := "var a = 1\ngive a to b\n"
	file := parseOK(t, src)
	assert.Equal(t, "var a = 1", src[file.Stmts[0].Pos().Char:file.Stmts[0].End().Char])
	assert.Equal(t, "give a to b", src[file.Stmts[1].Pos().Char:file.Stmts[1].End().Char])
	assert.Equal(t, 1, file.Stmts[1].Pos().Line)
}

func TestRecoveryLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	_, err := Parse(context.Background(), "var = 1 give x to y", WithLogger(logger))
	assert.NotNil(t, err)
	assert.Contains(t, buf.String(), "recovered from syntax error")
	assert.Contains(t, buf.String(), `"resume":"GIVE"`)
}

func TestLexFailureLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	_, err := Parse(context.Background(), "var a = @", WithLogger(logger))
	assert.NotNil(t, err)
	assert.Contains(t, buf.String(), "lexing stopped")
}

// To update golden files, set the environment variable:
//
//	UPDATE_GOLDEN=1 go test -run TestGolden ./parser/...
func updateGolden() bool {
	return os.Getenv("UPDATE_GOLDEN") == "1"
}

// TestGolden parses each .ql file in testdata/golden and compares the
// canonical String() form of the tree against the matching .golden file.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "golden", "*.ql"))
	assert.Nil(t, err)
	assert.NotEmpty(t, files)

	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), ".ql")
		t.Run(name, func(t *testing.T) {
			input, err := os.ReadFile(path)
			assert.Nil(t, err)
			file, err := Parse(context.Background(), string(input), WithFilename(filepath.Base(path)))
			assert.Nil(t, err)
			checkGolden(t, strings.TrimSuffix(path, ".ql")+".golden", file.String())
		})
	}
}

// TestGoldenErrors parses each .ql file in testdata/golden/errors. The
// .golden file holds one error per line.
func TestGoldenErrors(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "golden", "errors", "*.ql"))
	assert.Nil(t, err)
	assert.NotEmpty(t, files)

	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), ".ql")
		t.Run(name, func(t *testing.T) {
			input, err := os.ReadFile(path)
			assert.Nil(t, err)
			file, err := Parse(context.Background(), string(input), WithFilename(filepath.Base(path)))
			assert.NotNil(t, err)
			assert.NotNil(t, file)
			var lines []string
			for _, e := range err.(*Errors).Errors() {
				lines = append(lines, e.Error())
			}
			checkGolden(t, strings.TrimSuffix(path, ".ql")+".golden", strings.Join(lines, "\n"))
		})
	}
}

func checkGolden(t *testing.T, goldenFile, actual string) {
	t.Helper()
	if updateGolden() {
		assert.NoError(t, os.WriteFile(goldenFile, []byte(actual+"\n"), 0o644))
		t.Logf("updated golden file: %s", goldenFile)
		return
	}
	expected, err := os.ReadFile(goldenFile)
	assert.NoError(t, err, "run with UPDATE_GOLDEN=1 to create it; actual output:\n%s", actual)
	assert.Equal(t, strings.TrimRight(string(expected), "\n"), actual)
}

// FuzzParse checks that the parser never panics and always returns a tree
// when the context is live.
func FuzzParse(f *testing.F) {
	for _, src := range programs {
		f.Add(src)
	}
	seeds := []string{
		"", "}", "{", "((((", "var", "var =", `"open`, "/* open", "@",
		"fn(", "fn f(a,", "say", `say "x" {`, `say "x" { "a" =>`,
		"check", "check a vs", "check a vs b { success", "xs[", "xs[1..", "a.", "1 + ",
		`quest "q" { phase`, `spawn "x" with {`, "if a {} else", "for x in",
		"99999999999999999999d6", "1d", "else", "return return",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		file, _ := Parse(context.Background(), input)
		if file == nil {
			t.Fatalf("nil file for %q", input)
		}
		_ = file.String()
		for n := range ast.Preorder(file) {
			_ = n.Pos()
			_ = n.End()
		}
	})
}
