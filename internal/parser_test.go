package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, source string) *interpreterState {
	t.Helper()
	state := newInterpreterState("test.rp", source)
	newLexer(state).scan()
	require.True(t, state.valid(), "lex errors in %q", source)
	newParser(state).parse()
	return state
}

// checkAST compares the parsed tree against its s-expression rendering.
func checkAST(t *testing.T, source string, want string) {
	t.Helper()
	state := parseSource(t, source)
	require.True(t, state.valid(), "parse errors in %q", source)
	var out bytes.Buffer
	printTree(&out, state.exprs)
	assert.Equal(t, want+"\n", out.String(), "source: %s", source)
}

func checkParseError(t *testing.T, source string, wantErr error) {
	t.Helper()
	state := parseSource(t, source)
	require.False(t, state.valid(), "expected parse error in %q", source)
	assert.Equal(t, wantErr, state.errors[0].err)
}

func TestParseLetAndAssign(t *testing.T) {
	checkAST(t, "let x = 5", "(let x 5)")
	checkAST(t, "x = (+ x 1)", "(set x (+ x 1))")
}

func TestParseOperatorFold(t *testing.T) {
	checkAST(t, "(+ 1 2 3)", "(+ (+ 1 2) 3)")
	checkAST(t, `(+ 1 5.8 "da")`, `(+ (+ 1 5.8) "da")`)
	checkAST(t, "(- 1)", "1")
	checkAST(t, "(== a b)", "(== a b)")
}

func TestParseBangCall(t *testing.T) {
	checkAST(t, "(! true)", "(! true)")
	checkParseError(t, "(! a b)", errBangArity)
	checkParseError(t, "(!)", errBangArity)
}

func TestParseEmptyOperatorCall(t *testing.T) {
	checkParseError(t, "(+)", errOperatorArity)
}

func TestParseBuiltinCall(t *testing.T) {
	checkAST(t, "(println 1 2)", "(println 1 2)")
	checkAST(t, "(input)", "(input)")
	// A builtin name outside the head position is an ordinary identifier.
	checkAST(t, "(f println)", "(call f println)")
}

func TestParseGeneralCall(t *testing.T) {
	checkAST(t, "(f 1 2)", "(call f 1 2)")
	checkAST(t, "((g 1) 2)", "(call (call g 1) 2)")
	checkAST(t, "(f, 1, 2)", "(call f 1 2)") // commas are optional separators
}

func TestParseFunctions(t *testing.T) {
	checkAST(t, "fn add (x y) (+ x y)", "(fn add (x y) (+ x y))")
	checkAST(t, "fn add (x, y) (+ x y)", "(fn add (x y) (+ x y))")
	checkAST(t, "fn (x) x", "(fn (x) x)")
	checkAST(t, "fn () 1", "(fn () 1)")
}

func TestParseIfWhileBlock(t *testing.T) {
	checkAST(t, "if (> x y) x else y", "(if (> x y) x (else y))")
	checkAST(t, "if true 1", "(if true 1)")
	checkAST(t, "while (< i 10) { i = (+ i 1) }", "(while (< i 10) (scope (set i (+ i 1))))")
	checkAST(t, "{ 1 2 }", "(scope 1 2)")
	checkAST(t, "{}", "(scope)")
}

func TestParseReservedFor(t *testing.T) {
	checkParseError(t, "for", errReservedKeyword)
}

func TestParseErrors(t *testing.T) {
	checkParseError(t, "let 5 = 1", errExpectedIdentifier)
	checkParseError(t, "let x 1", errExpectedEqual)
	checkParseError(t, "fn f x x", errExpectedParen)
	checkParseError(t, "fn f (5) x", errExpectedParameter)
	checkParseError(t, "(f 1", errUnclosedParen)
	checkParseError(t, "{ 1", errUnclosedBrace)
	checkParseError(t, "let x =", errUnexpectedEOF)
	checkParseError(t, ")", errUnexpectedToken)
}

func TestParseRecoversAndContinues(t *testing.T) {
	// The bad form is skipped; the next top-level expression still parses.
	state := parseSource(t, ") )\nlet x = 1")
	assert.False(t, state.valid())
	require.Len(t, state.exprs, 1)
	var out bytes.Buffer
	printTree(&out, state.exprs)
	assert.Equal(t, "(let x 1)\n", out.String())
}
