package internal

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// RunSource lexes, parses and evaluates a whole script on a fresh
// interpreter instance. It returns false when any phase reported an error;
// diagnostics go to the console's error stream.
func RunSource(absPath, source string, console *Console) bool {
	state := newInterpreterState(absPath, source)

	newLexer(state).scan()
	if !state.valid() {
		state.printErrors(console.Stderr)
		return false
	}
	log.WithField("path", absPath).Debugf("lexed %d tokens", len(state.tokens))

	newParser(state).parse()
	if !state.valid() {
		state.printErrors(console.Stderr)
		return false
	}
	log.WithField("path", absPath).Debugf("parsed %d top-level expressions", len(state.exprs))

	globals := newEnv(nil)
	ok := newExec(state, console, globals).interpret()
	if !ok {
		log.WithField("path", absPath).Debug("evaluation aborted by runtime error")
	}
	return ok
}

// PrintAST parses the source and writes the expression tree in the
// s-expression form used by the ast printer, without evaluating anything.
func PrintAST(source string, out, errOut io.Writer) bool {
	state := newInterpreterState("", source)

	newLexer(state).scan()
	if !state.valid() {
		state.printErrors(errOut)
		return false
	}
	newParser(state).parse()
	if !state.valid() {
		state.printErrors(errOut)
		return false
	}

	printTree(out, state.exprs)
	return true
}

// Session is a persistent interpreter for the REPL: one global scope
// shared across inputs, so definitions accumulate.
type Session struct {
	console *Console
	globals *env
}

func NewSession(console *Console) *Session {
	return &Session{
		console: console,
		globals: newEnv(nil),
	}
}

// Eval runs one REPL input against the session scope. It returns the text
// form of the last expression's value ("" for Unit) and whether the input
// ran without errors. Errors are reported on the console and leave the
// session usable.
func (s *Session) Eval(source string) (string, bool) {
	state := newInterpreterState("<repl>", source)

	newLexer(state).scan()
	if !state.valid() {
		state.printErrors(s.console.Stderr)
		return "", false
	}
	newParser(state).parse()
	if !state.valid() {
		state.printErrors(s.console.Stderr)
		return "", false
	}

	e := newExec(state, s.console, s.globals)

	var last value = unit
	ok := func() (ok bool) {
		defer func() {
			if r := recover(); r != nil {
				if _, isRuntime := r.(*runtimeError); !isRuntime {
					panic(r)
				}
				state.printRuntimeError(s.console.Stderr)
			}
		}()
		for _, ex := range state.exprs {
			last = e.eval(ex)
		}
		return true
	}()

	if !ok || state.runtime != nil {
		return "", false
	}
	if last.kind() == kindUnit {
		return "", true
	}
	return last.String(), true
}
