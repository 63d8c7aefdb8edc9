package internal

import (
	"fmt"
	"io"
	"strings"
)

// The builtin bridge. These are the fixed host-provided call contracts; the
// parser turns (name arg...) into a builtin call when the head identifier
// matches one of them.
type builtinFn func(e *exec, name *token, args []value) value

var builtins = map[string]builtinFn{
	"print":    builtinPrint,
	"println":  builtinPrintln,
	"eprint":   builtinEprint,
	"eprintln": builtinEprintln,
	"dbg":      builtinDbg,
	"input":    builtinInput,
}

func isBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// print stringifies every argument with the coercion text form and writes
// them with no separator and no newline.
func builtinPrint(e *exec, name *token, args []value) value {
	fmt.Fprint(e.console.Stdout, joinValues(args))
	return unit
}

func builtinPrintln(e *exec, name *token, args []value) value {
	fmt.Fprintln(e.console.Stdout, joinValues(args))
	return unit
}

func builtinEprint(e *exec, name *token, args []value) value {
	fmt.Fprint(e.console.Stderr, joinValues(args))
	return unit
}

func builtinEprintln(e *exec, name *token, args []value) value {
	fmt.Fprintln(e.console.Stderr, joinValues(args))
	return unit
}

// dbg writes the tagged debug form to the error stream and passes its
// argument through unchanged, so it can be dropped into any expression
// without altering program behavior.
func builtinDbg(e *exec, name *token, args []value) value {
	if len(args) != 1 {
		e.state.runtimeErr(errArityMismatch, name)
	}
	fmt.Fprintln(e.console.Stderr, args[0].debugString())
	return args[0]
}

// input writes the optional prompt, blocks for one line on stdin and
// returns it with the trailing line terminator stripped.
func builtinInput(e *exec, name *token, args []value) value {
	switch len(args) {
	case 0:
	case 1:
		fmt.Fprint(e.console.Stdout, args[0].String())
	default:
		e.state.runtimeErr(errArityMismatch, name)
	}

	line, err := e.console.Stdin.ReadString('\n')
	if err != nil && err != io.EOF {
		e.state.runtimeErr(errStdinFailed, name)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return strVal(line)
}

func joinValues(args []value) string {
	var b strings.Builder
	for _, a := range args {
		b.WriteString(a.String())
	}
	return b.String()
}
