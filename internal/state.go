package internal

import (
	"errors"
	"fmt"
	"io"

	"github.com/labstack/gommon/color"
)

type parseError struct {
	err  error
	line int
}

type runtimeError struct {
	err   error
	token *token
}

// interpreterState carries one script through the lexing, parsing and
// evaluation phases and collects every error they produce.
type interpreterState struct {
	absPath string
	source  string
	errors  []parseError
	tokens  []token
	exprs   []expr

	runtime *runtimeError
}

func newInterpreterState(absPath, source string) *interpreterState {
	return &interpreterState{
		absPath: absPath,
		source:  source,
		errors:  make([]parseError, 0),
	}
}

func (s *interpreterState) setError(err error, line int) {
	s.errors = append(s.errors, parseError{err: err, line: line})
}

// fatalError records the error and aborts the current phase by panicking;
// the phase entry point recovers.
func (s *interpreterState) fatalError(err error, line int) {
	s.setError(err, line)
	panic(err)
}

// runtimeErr aborts evaluation. exec.interpret recovers and reports.
func (s *interpreterState) runtimeErr(err error, tk *token) {
	s.runtime = &runtimeError{err: err, token: tk}
	panic(s.runtime)
}

func (s *interpreterState) valid() bool {
	return len(s.errors) == 0
}

func (s *interpreterState) printErrors(w io.Writer) {
	for _, e := range s.errors {
		fmt.Fprintln(w, color.Red(fmt.Sprintf("Error on line %d", e.line)))
		fmt.Fprintf(w, "\t%s\n", e.err)
	}
}

func (s *interpreterState) printRuntimeError(w io.Writer) {
	if s.runtime == nil {
		return
	}
	fmt.Fprintln(w, color.Red(fmt.Sprintf("Runtime error on line %d", s.runtime.token.line)))
	fmt.Fprintf(w, "\t%s: %s\n", s.runtime.err, s.runtime.token.lexeme)
}

// Lexer errors
var errIllegalChar = errors.New("Illegal character")
var errUnclosedString = errors.New("Closing \" was expected")
var errMalformedNumber = errors.New("Malformed number literal")

// Parser errors
var errUnclosedParen = errors.New("Expected ')' after expression")
var errUnclosedBrace = errors.New("Expected '}' at the end of a block")
var errExpectedIdentifier = errors.New("Expected variable name")
var errExpectedEqual = errors.New("Expected '=' after variable name")
var errExpectedParen = errors.New("Expected '(' before parameter list")
var errExpectedParameter = errors.New("Expected parameter name or ')'")
var errUnexpectedToken = errors.New("Unexpected token")
var errUnexpectedEOF = errors.New("Unexpected end of file")
var errReservedKeyword = errors.New("Reserved keyword is not implemented")
var errOperatorArity = errors.New("Operator needs at least one operand")
var errBangArity = errors.New("'!' takes exactly one operand")

// Runtime errors
var errUndefinedVar = errors.New("UndefinedVariable")
var errTypeMismatch = errors.New("TypeMismatch")
var errNotCallable = errors.New("NotCallable")
var errArityMismatch = errors.New("ArityMismatch")
var errDivisionByZero = errors.New("DivisionByZero")
var errStackOverflow = errors.New("StackOverflow")
var errStdinFailed = errors.New("StdInError")
