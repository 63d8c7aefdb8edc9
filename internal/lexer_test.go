package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanSource(t *testing.T, source string) *interpreterState {
	t.Helper()
	state := newInterpreterState("test.rp", source)
	newLexer(state).scan()
	return state
}

func tokenTypes(state *interpreterState) []tokenType {
	types := make([]tokenType, len(state.tokens))
	for i, tk := range state.tokens {
		types[i] = tk.token
	}
	return types
}

func TestScanBasicForm(t *testing.T) {
	state := scanSource(t, `(+ 1 5.8 "da")`)
	require.True(t, state.valid())
	assert.Equal(t,
		[]tokenType{tkLeftParen, tkPlus, tkInt, tkFloat, tkString, tkRightParen, tkEOF},
		tokenTypes(state))
	assert.Equal(t, intVal(1), state.tokens[2].literal)
	assert.Equal(t, floatVal(5.8), state.tokens[3].literal)
	assert.Equal(t, strVal("da"), state.tokens[4].literal)
}

func TestScanKeywords(t *testing.T) {
	state := scanSource(t, "let fn if else while true false for x")
	require.True(t, state.valid())
	assert.Equal(t,
		[]tokenType{tkLet, tkFn, tkIf, tkElse, tkWhile, tkTrue, tkFalse, tkFor, tkIdentifier, tkEOF},
		tokenTypes(state))
}

func TestScanSignGluedToDigit(t *testing.T) {
	// A sign directly before a digit is part of the literal; with a space
	// in between it is an operator.
	state := scanSource(t, "-1")
	require.True(t, state.valid())
	assert.Equal(t, []tokenType{tkInt, tkEOF}, tokenTypes(state))
	assert.Equal(t, intVal(-1), state.tokens[0].literal)

	state = scanSource(t, "- 1")
	require.True(t, state.valid())
	assert.Equal(t, []tokenType{tkMinus, tkInt, tkEOF}, tokenTypes(state))

	state = scanSource(t, "+3.5")
	require.True(t, state.valid())
	assert.Equal(t, floatVal(3.5), state.tokens[0].literal)
}

func TestScanTwoCharOperators(t *testing.T) {
	state := scanSource(t, "== != <= >= ** && || < > ! =")
	require.True(t, state.valid())
	assert.Equal(t,
		[]tokenType{tkEqualEqual, tkBangEqual, tkLessEqual, tkGreaterEqual,
			tkPower, tkAnd, tkOr, tkLess, tkGreater, tkBang, tkEqual, tkEOF},
		tokenTypes(state))
}

func TestScanComments(t *testing.T) {
	state := scanSource(t, "1 // the rest is ignored ** \"\n2")
	require.True(t, state.valid())
	assert.Equal(t, []tokenType{tkInt, tkInt, tkEOF}, tokenTypes(state))
	assert.Equal(t, 2, state.tokens[1].line)
}

func TestScanUnicodeIdentifier(t *testing.T) {
	state := scanSource(t, "let año = 1")
	require.True(t, state.valid())
	assert.Equal(t, "año", state.tokens[1].lexeme)
}

func TestScanStringEscapedQuote(t *testing.T) {
	state := scanSource(t, `"say \"hi\""`)
	require.True(t, state.valid())
	assert.Equal(t, strVal(`say "hi"`), state.tokens[0].literal)
}

func TestScanMultilineStringTracksLine(t *testing.T) {
	state := scanSource(t, "\"a\nb\" x")
	require.True(t, state.valid())
	assert.Equal(t, strVal("a\nb"), state.tokens[0].literal)
	assert.Equal(t, 2, state.tokens[1].line)
}

func TestScanUnclosedString(t *testing.T) {
	state := scanSource(t, `"never ends`)
	assert.False(t, state.valid())
	assert.Equal(t, errUnclosedString, state.errors[0].err)
}

func TestScanIllegalChar(t *testing.T) {
	state := scanSource(t, "@")
	assert.False(t, state.valid())
	assert.Equal(t, errIllegalChar, state.errors[0].err)

	// A lone & or | is not an operator.
	state = scanSource(t, "&")
	assert.False(t, state.valid())
	state = scanSource(t, "|")
	assert.False(t, state.valid())
}

func TestScanLineNumbers(t *testing.T) {
	state := scanSource(t, "1\n2\n\n3")
	require.True(t, state.valid())
	assert.Equal(t, 1, state.tokens[0].line)
	assert.Equal(t, 2, state.tokens[1].line)
	assert.Equal(t, 4, state.tokens[2].line)
}
