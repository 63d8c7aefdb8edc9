package internal

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() (*Session, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	console := &Console{
		Stdout: &out,
		Stderr: &errOut,
		Stdin:  bufio.NewReader(strings.NewReader("")),
	}
	return NewSession(console), &out, &errOut
}

func TestSessionAccumulatesDefinitions(t *testing.T) {
	s, _, _ := newTestSession()

	out, ok := s.Eval("let x = 40")
	require.True(t, ok)
	assert.Equal(t, "", out) // let yields Unit, nothing to echo

	out, ok = s.Eval("fn add (a b) (+ a b)")
	require.True(t, ok)
	assert.Equal(t, "", out)

	out, ok = s.Eval("(add x 2)")
	require.True(t, ok)
	assert.Equal(t, "42", out)
}

func TestSessionSurvivesErrors(t *testing.T) {
	s, _, errOut := newTestSession()

	_, ok := s.Eval("(+ 1 true)")
	assert.False(t, ok)
	assert.Contains(t, errOut.String(), "TypeMismatch")

	_, ok = s.Eval("(println nope)")
	assert.False(t, ok)

	out, ok := s.Eval("(+ 1 2)")
	require.True(t, ok)
	assert.Equal(t, "3", out)
}

func TestSessionParseErrorReported(t *testing.T) {
	s, _, errOut := newTestSession()

	_, ok := s.Eval("(+)")
	assert.False(t, ok)
	assert.Contains(t, errOut.String(), "Error on line")
}

func TestSessionEchoesLastValue(t *testing.T) {
	s, out, _ := newTestSession()

	v, ok := s.Eval(`(println "hola") (+ 1 1)`)
	require.True(t, ok)
	assert.Equal(t, "2", v)
	assert.Equal(t, "hola\n", out.String())
}

func TestPrintASTDoesNotEvaluate(t *testing.T) {
	var out, errOut bytes.Buffer
	ok := PrintAST("(println (+ 1 2))", &out, &errOut)
	require.True(t, ok)
	assert.Equal(t, "(println (+ 1 2))\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestPrintASTReportsErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	ok := PrintAST("let x", &out, &errOut)
	assert.False(t, ok)
	assert.Contains(t, errOut.String(), "Error on line")
}

func TestRunSourceReportsParseErrors(t *testing.T) {
	_, stderr, ok := runScript("let x", "")
	assert.False(t, ok)
	assert.Contains(t, stderr, "Error on line 1")
}
