package lexer

import (
	"fmt"
	"testing"

	"github.com/questlang/questlang/errors"
	"github.com/questlang/questlang/internal/token"
	"github.com/stretchr/testify/require"
)

type expectedToken struct {
	expectedType    token.Type
	expectedLiteral string
}

func requireTokens(t *testing.T, input string, tests []expectedToken) {
	t.Helper()
	l := New(input)
	for i, tt := range tests {
		tok, err := l.Next()
		require.NoError(t, err)
		require.Equal(t, tt.expectedType, tok.Type, "tests[%d] - tokentype wrong", i)
		require.Equal(t, tt.expectedLiteral, tok.Literal, "tests[%d] - literal wrong", i)
	}
}

func TestOperators(t *testing.T) {
	requireTokens(t, "== != <= >= => .. = < > . + - * / % { } ( ) [ ] , :", []expectedToken{
		{token.EQ, "=="},
		{token.NOT_EQ, "!="},
		{token.LT_EQUALS, "<="},
		{token.GT_EQUALS, ">="},
		{token.ARROW, "=>"},
		{token.RANGE, ".."},
		{token.ASSIGN, "="},
		{token.LT, "<"},
		{token.GT, ">"},
		{token.PERIOD, "."},
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.ASTERISK, "*"},
		{token.SLASH, "/"},
		{token.MOD, "%"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.LBRACKET, "["},
		{token.RBRACKET, "]"},
		{token.COMMA, ","},
		{token.COLON, ":"},
		{token.EOF, ""},
	})
}

func TestGreedyOperators(t *testing.T) {
	requireTokens(t, "a==b=>c...d<==", []expectedToken{
		{token.IDENT, "a"},
		{token.EQ, "=="},
		{token.IDENT, "b"},
		{token.ARROW, "=>"},
		{token.IDENT, "c"},
		{token.RANGE, ".."},
		{token.PERIOD, "."},
		{token.IDENT, "d"},
		{token.LT_EQUALS, "<="},
		{token.ASSIGN, "="},
		{token.EOF, ""},
	})
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := `hero enemy item quest phase encounter give to take from spawn with
strike say check vs success failure if else while for in return fn var
or and not has true false heroic _x x_1`
	requireTokens(t, input, []expectedToken{
		{token.HERO, "hero"},
		{token.ENEMY, "enemy"},
		{token.ITEM, "item"},
		{token.QUEST, "quest"},
		{token.PHASE, "phase"},
		{token.ENCOUNTER, "encounter"},
		{token.GIVE, "give"},
		{token.TO, "to"},
		{token.TAKE, "take"},
		{token.FROM, "from"},
		{token.SPAWN, "spawn"},
		{token.WITH, "with"},
		{token.STRIKE, "strike"},
		{token.SAY, "say"},
		{token.CHECK, "check"},
		{token.VS, "vs"},
		{token.SUCCESS, "success"},
		{token.FAILURE, "failure"},
		{token.IF, "if"},
		{token.ELSE, "else"},
		{token.WHILE, "while"},
		{token.FOR, "for"},
		{token.IN, "in"},
		{token.RETURN, "return"},
		{token.FN, "fn"},
		{token.VAR, "var"},
		{token.OR, "or"},
		{token.AND, "and"},
		{token.NOT, "not"},
		{token.HAS, "has"},
		{token.TRUE, "true"},
		{token.FALSE, "false"},
		{token.IDENT, "heroic"},
		{token.IDENT, "_x"},
		{token.IDENT, "x_1"},
		{token.EOF, ""},
	})
}

func TestDiceAndNumbers(t *testing.T) {
	tests := []struct {
		input    string
		expected []expectedToken
	}{
		{"2d6", []expectedToken{{token.DICE, "2d6"}, {token.EOF, ""}}},
		{"26", []expectedToken{{token.NUMBER, "26"}, {token.EOF, ""}}},
		{"2 d6", []expectedToken{{token.NUMBER, "2"}, {token.IDENT, "d6"}, {token.EOF, ""}}},
		{"10d20", []expectedToken{{token.DICE, "10d20"}, {token.EOF, ""}}},
		{"3.25", []expectedToken{{token.NUMBER, "3.25"}, {token.EOF, ""}}},
		{"1..10", []expectedToken{{token.NUMBER, "1"}, {token.RANGE, ".."}, {token.NUMBER, "10"}, {token.EOF, ""}}},
		{"2d", []expectedToken{{token.NUMBER, "2"}, {token.IDENT, "d"}, {token.EOF, ""}}},
		{"2dx", []expectedToken{{token.NUMBER, "2"}, {token.IDENT, "dx"}, {token.EOF, ""}}},
		{"4.", []expectedToken{{token.NUMBER, "4"}, {token.PERIOD, "."}, {token.EOF, ""}}},
		{"1d4.5", []expectedToken{{token.DICE, "1d4"}, {token.PERIOD, "."}, {token.NUMBER, "5"}, {token.EOF, ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			requireTokens(t, tt.input, tt.expected)
		})
	}
}

func TestStrings(t *testing.T) {
	requireTokens(t, `"hello world" "" "multi
line" "back\slash"`, []expectedToken{
		{token.STRING, "hello world"},
		{token.STRING, ""},
		{token.STRING, "multi\nline"},
		{token.STRING, `back\slash`},
		{token.EOF, ""},
	})
}

func TestComments(t *testing.T) {
	input := `a // line comment
b /* block
comment */ c /* star ** inside */ d /***/ e
// continued \
still comment
f`
	requireTokens(t, input, []expectedToken{
		{token.IDENT, "a"},
		{token.IDENT, "b"},
		{token.IDENT, "c"},
		{token.IDENT, "d"},
		{token.IDENT, "e"},
		{token.IDENT, "f"},
		{token.EOF, ""},
	})
}

func TestBlockCommentEndsAtFirstClose(t *testing.T) {
	requireTokens(t, "/* a */ b */", []expectedToken{
		{token.IDENT, "b"},
		{token.ASTERISK, "*"},
		{token.SLASH, "/"},
		{token.EOF, ""},
	})
}

func TestLineContinuation(t *testing.T) {
	l := New("a \\\nb \\\r\nc")
	toks, err := Tokenize(l.Input())
	require.NoError(t, err)
	require.Len(t, toks, 4)
	require.Equal(t, "b", toks[1].Literal)
	require.Equal(t, 1, toks[1].StartPosition.Line)
	require.Equal(t, 0, toks[1].StartPosition.Column)
	require.Equal(t, "c", toks[2].Literal)
	require.Equal(t, 2, toks[2].StartPosition.Line)
}

func TestInvalids(t *testing.T) {
	tests := []struct {
		input string
		err   string
		code  errors.ErrorCode
	}{
		{`"foo`, "unterminated string literal", errors.E1002},
		{"/* open", "unterminated block comment", errors.E1010},
		{"/*/", "unterminated block comment", errors.E1010},
		{"~", "unexpected character: '~'", errors.E1012},
		{"!", "unexpected character: '!'", errors.E1012},
		{"é", "unexpected character: 'é'", errors.E1012},
		{"\\x", "unexpected character: '\\\\'", errors.E1012},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("%d-%s", i, tt.input), func(t *testing.T) {
			l := New(tt.input)
			tok, err := l.Next()
			require.Error(t, err)
			require.Equal(t, tt.err, err.Error())
			require.Equal(t, token.ILLEGAL, tok.Type)
			lexErr, ok := err.(*Error)
			require.True(t, ok)
			require.Equal(t, tt.code, lexErr.Code)
			require.Equal(t, 0, lexErr.Pos.Char)
		})
	}
}

func TestErrorIsSticky(t *testing.T) {
	l := New("a ~ b")
	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, "a", tok.Literal)
	_, err = l.Next()
	require.Error(t, err)
	_, err = l.Next()
	require.Error(t, err)
}

func TestTokenizeStopsAtError(t *testing.T) {
	toks, err := Tokenize(`var x = "open`)
	require.Error(t, err)
	require.Len(t, toks, 3)
	lexErr := err.(*Error)
	require.Equal(t, 8, lexErr.Pos.Char)
	require.Equal(t, 9, lexErr.Pos.ColumnNumber())
}

func TestPositions(t *testing.T) {
	l := New("hero \"Mira\" {\n  hp: 2d6\n}")
	toks, err := Tokenize(l.Input())
	require.NoError(t, err)

	str := toks[1]
	require.Equal(t, token.STRING, str.Type)
	require.Equal(t, 5, str.StartPosition.Char)
	require.Equal(t, 11, str.EndPosition.Char)

	dice := toks[5]
	require.Equal(t, token.DICE, dice.Type)
	require.Equal(t, 2, dice.StartPosition.LineNumber())
	require.Equal(t, 7, dice.StartPosition.ColumnNumber())
	require.Equal(t, 10, dice.EndPosition.ColumnNumber())

	rbrace := toks[6]
	require.Equal(t, token.RBRACE, rbrace.Type)
	require.Equal(t, 2, rbrace.StartPosition.Line)
	require.Equal(t, 0, rbrace.StartPosition.Column)
}

func TestMultilineStringEndPosition(t *testing.T) {
	toks, err := Tokenize("\"a\nbc\" x")
	require.NoError(t, err)
	require.Equal(t, 1, toks[0].EndPosition.Line)
	require.Equal(t, 3, toks[0].EndPosition.Column)
	require.Equal(t, 1, toks[1].StartPosition.Line)
}

func TestStateSaveRestore(t *testing.T) {
	l := New("var x = 1 + 2")
	_, err := l.Next()
	require.NoError(t, err)
	tok2, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, "x", tok2.Literal)

	state := l.SaveState()
	tok3, _ := l.Next()
	tok4, _ := l.Next()
	require.Equal(t, token.ASSIGN, tok3.Type)
	require.Equal(t, token.NUMBER, tok4.Type)

	l.RestoreState(state)
	again, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, tok3, again)
}

func TestMultipleEOFReads(t *testing.T) {
	l := New("x")
	_, _ = l.Next()
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		require.NoError(t, err)
		require.Equal(t, token.EOF, tok.Type)
	}
}

func TestGetLineText(t *testing.T) {
	t.Run("middle line", func(t *testing.T) {
		l := New("first\nsecond thing\nthird")
		_, _ = l.Next()
		tok, _ := l.Next()
		require.Equal(t, "second thing", l.GetLineText(tok))
	})
	t.Run("EOF on empty line", func(t *testing.T) {
		l := New("x\n")
		_, _ = l.Next()
		tok, err := l.Next()
		require.NoError(t, err)
		require.Equal(t, token.EOF, tok.Type)
		require.Equal(t, "x", l.GetLineText(tok))
	})
	t.Run("empty input", func(t *testing.T) {
		l := New("")
		tok, _ := l.Next()
		require.Equal(t, "", l.GetLineText(tok))
	})
	t.Run("crlf", func(t *testing.T) {
		l := New("a b\r\nc")
		tok, _ := l.Next()
		require.Equal(t, "a b", l.GetLineText(tok))
	})
}

func TestFilename(t *testing.T) {
	l := New("x", WithFile("intro.quest"))
	require.Equal(t, "intro.quest", l.Filename())
	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, "intro.quest", tok.StartPosition.File)

	l.SetFilename("other.quest")
	require.Equal(t, "other.quest", l.Position().File)
}
